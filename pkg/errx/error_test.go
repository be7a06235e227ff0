package errx_test

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echain/pkg/errx"
)

// newHierarchy declares a -> b -> c below Root with no defaults.
func newHierarchy() (a, b, c *errx.Kind) {
	a = errx.NewKind("A", nil)
	b = errx.NewKind("B", a)
	c = errx.NewKind("C", b)
	return a, b, c
}

func TestError_ChainFollowsKindDepth(t *testing.T) {
	parent := errx.Root
	for depth := 1; depth <= 6; depth++ {
		kind := errx.NewKind(fmt.Sprintf("tier%d", depth), parent)
		err := errx.New(kind)

		assert.Len(t, err.Chain(), depth)
		assert.Equal(t, strings.Join(err.Chain(), "."), err.Echain())
		if depth >= 2 {
			assert.Contains(t, err.Echain(), ".")
		}
		assert.NotContains(t, err.Chain(), "e", "root name must never appear in a chain")
		parent = kind
	}
}

func TestError_FromMessage(t *testing.T) {
	_, b, _ := newHierarchy()
	err := errx.FromMessage(b, "hello")

	if diff := cmp.Diff([]string{"a", "b"}, err.Chain()); diff != "" {
		t.Errorf("Chain() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "a.b", err.Echain())
	assert.Equal(t, "hello", err.Message())
	assert.Empty(t, err.EID())
	assert.Empty(t, err.Level())
	assert.Empty(t, err.Solution())
	assert.Nil(t, err.Data())
	assert.Empty(t, err.Fields())
}

func TestError_New(t *testing.T) {
	_, _, c := newHierarchy()
	err := errx.New(c)

	assert.Empty(t, err.Message())
	assert.Empty(t, err.EID())
	assert.Equal(t, []string{"a", "b", "c"}, err.Chain())
	assert.Equal(t, "a.b.c", err.Echain())
	assert.NotEmpty(t, err.Stack())
	assert.Equal(t, "a.b.c", err.Error(), "Error() falls back to the echain")
}

func TestError_FromMessageAndSolution(t *testing.T) {
	a, _, _ := newHierarchy()
	err := errx.FromMessageAndSolution(a, "missing env", "Please configure .env file first.")

	assert.Equal(t, "missing env", err.Message())
	assert.Equal(t, "Please configure .env file first.", err.Solution())
	assert.Equal(t, "a", err.Echain())
}

func TestError_FromMessageAndFields(t *testing.T) {
	a, _, _ := newHierarchy()
	payload := map[string]any{"username": "Not a username"}
	err := errx.FromMessageAndFields(a, "invalid input", errx.Fields{
		"eid":        "E1829",
		"data":       payload,
		"request_id": "req-1",
	})

	assert.Equal(t, "invalid input", err.Message())
	assert.Equal(t, "E1829", err.EID())
	assert.Equal(t, payload, err.Data())
	value, ok := err.Field("request_id")
	require.True(t, ok)
	assert.Equal(t, "req-1", value)
}

func TestError_FromMessageAndFields_MessageKeyWins(t *testing.T) {
	a, _, _ := newHierarchy()
	err := errx.FromMessageAndFields(a, "first", errx.Fields{"message": "second"})

	assert.Equal(t, "second", err.Message())
}

func TestError_FromFields(t *testing.T) {
	a, _, _ := newHierarchy()
	err := errx.FromFields(a, errx.Fields{
		"message":  "yo",
		"level":    "internal",
		"eid":      "E01",
		"solution": "retry",
		"extra":    42,
	})

	assert.Equal(t, "yo", err.Message())
	assert.Equal(t, "internal", err.Level())
	assert.Equal(t, "E01", err.EID())
	assert.Equal(t, "retry", err.Solution())
	assert.Equal(t, errx.Fields{"extra": 42}, err.Fields())
}

func TestError_FromFieldsOverridesKindDefaults(t *testing.T) {
	kind := errx.NewKind("a", nil, errx.Fields{"message": "a", "level": "level1"})

	assert.Equal(t, "a", errx.New(kind).Message())

	err := errx.FromFields(kind, errx.Fields{"message": "c"})
	assert.Equal(t, "c", err.Message())
	assert.Equal(t, "level1", err.Level(), "defaults not named in fields are kept")
}

func TestError_DefaultsInheritRootMostFirst(t *testing.T) {
	a := errx.NewKind("a", nil, errx.Fields{"level": "outer", "eid": "E1"})
	b := errx.NewKind("b", a, errx.Fields{"level": "inner"})

	err := errx.New(b)
	assert.Equal(t, "inner", err.Level())
	assert.Equal(t, "E1", err.EID())
}

func TestError_FromFieldsSkipsDerivedKeys(t *testing.T) {
	a, _, _ := newHierarchy()
	err := errx.FromFields(a, errx.Fields{
		"chain":  []string{"x", "y"},
		"echain": "x.y",
		"stack":  "fake",
	})

	assert.Equal(t, []string{"a"}, err.Chain())
	assert.Equal(t, "a", err.Echain())
	assert.NotEqual(t, "fake", err.Stack())
	assert.Empty(t, err.Fields())
}

func TestError_FromFieldsNonStringValues(t *testing.T) {
	a, _, _ := newHierarchy()
	err := errx.FromFields(a, errx.Fields{"eid": 1829, "message": nil})

	assert.Equal(t, "1829", err.EID())
	assert.Empty(t, err.Message())
}

func TestError_FromFieldsNil(t *testing.T) {
	a, _, _ := newHierarchy()
	err := errx.FromFields(a, nil)

	assert.Equal(t, "a", err.Echain())
	assert.Empty(t, err.Message())
}

func TestError_FromErrorClonesInstance(t *testing.T) {
	a, b, _ := newHierarchy()
	src := errx.FromFields(a, errx.Fields{
		"message":  "original",
		"eid":      "E7",
		"level":    "external",
		"solution": "fix it",
		"data":     []int{1, 2},
		"trace_id": "t-1",
	})

	err := errx.FromError(b, src)

	assert.Equal(t, "original", err.Message())
	assert.Equal(t, "E7", err.EID())
	assert.Equal(t, "external", err.Level())
	assert.Equal(t, "fix it", err.Solution())
	assert.Equal(t, []int{1, 2}, err.Data())
	assert.Equal(t, errx.Fields{"trace_id": "t-1"}, err.Fields())
	assert.Equal(t, []string{"a", "b"}, err.Chain())
	assert.Equal(t, "a.b", err.Echain())
	assert.Same(t, src, err.Cause())
	assert.Equal(t, []string{"a"}, src.Chain(), "source chain must be untouched")
}

func TestError_FromErrorKeepsDefaultsForUnsetFields(t *testing.T) {
	src := errx.FromMessage(errx.Base, "boom")

	err := errx.FromError(errx.InvalidArgument, src)

	assert.Equal(t, "E2001", err.EID())
	assert.Equal(t, errx.LevelExternal, err.Level())
	assert.Equal(t, "boom", err.Message())
	assert.Equal(t, "base.external.invalid_argument", err.Echain())
}

func TestError_FromErrorWrappedInstance(t *testing.T) {
	a, b, _ := newHierarchy()
	src := errx.FromMessage(a, "inner")
	wrapped := fmt.Errorf("context: %w", src)

	err := errx.FromError(b, wrapped)

	assert.Equal(t, "inner", err.Message())
	assert.True(t, errors.Is(err, src))
}

func TestError_FromErrorPlainError(t *testing.T) {
	a, _, _ := newHierarchy()
	err := errx.FromError(a, io.EOF)

	assert.Empty(t, err.Message(), "a plain error has no fields to copy")
	assert.Equal(t, "a", err.Echain())
	assert.True(t, errors.Is(err, io.EOF))
}

func TestError_FromErrorNil(t *testing.T) {
	a, _, _ := newHierarchy()
	err := errx.FromError(a, nil)

	assert.Nil(t, err.Cause())
	assert.Equal(t, "a", err.Echain())
}

func TestError_Wrap(t *testing.T) {
	a, _, _ := newHierarchy()
	cause := errors.New("driver: bad connection")
	err := errx.Wrap(a, "query failed", cause)

	assert.Equal(t, "query failed", err.Message())
	assert.Same(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, cause))
}

func TestError_NilKindIsRoot(t *testing.T) {
	err := errx.FromMessage(nil, "orphan")

	assert.Same(t, errx.Root, err.Kind())
	assert.Empty(t, err.Chain())
	assert.Empty(t, err.Echain())
	assert.True(t, errors.Is(err, errx.Root))
	assert.Equal(t, "orphan", err.Error())
}

func TestError_EchainIsMemoized(t *testing.T) {
	_, b, _ := newHierarchy()
	err := errx.FromMessage(b, "hello")

	first := err.Echain()
	second := err.Echain()
	assert.Equal(t, first, second)

	err.SetChain([]string{"x", "y", "z"})
	assert.Equal(t, []string{"x", "y", "z"}, err.Chain())
	assert.Equal(t, "a.b", err.Echain(), "echain must not change after it was computed")
}

func TestError_EmptyEchainIsRecomputed(t *testing.T) {
	err := errx.New(errx.Root)
	require.Empty(t, err.Echain())

	err.SetChain([]string{"x"})
	assert.Equal(t, "x", err.Echain())

	err.SetChain([]string{"y"})
	assert.Equal(t, "x", err.Echain(), "a non-empty echain is kept")
}

func TestError_ChainReturnsCopy(t *testing.T) {
	_, b, _ := newHierarchy()
	err := errx.New(b)

	chain := err.Chain()
	chain[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, err.Chain())
}

func TestError_Setters(t *testing.T) {
	a, _, _ := newHierarchy()
	err := errx.New(a)

	err.SetEID("E9")
	err.SetLevel("database")
	err.SetSolution("reconnect")
	err.SetMessage("lost connection")
	err.SetData(map[string]int{"attempts": 3})
	err.SetField("host", "db-1")
	err.SetField("message", "via field")

	assert.Equal(t, "E9", err.EID())
	assert.Equal(t, "database", err.Level())
	assert.Equal(t, "reconnect", err.Solution())
	assert.Equal(t, "via field", err.Message())
	assert.Equal(t, map[string]int{"attempts": 3}, err.Data())
	assert.Equal(t, errx.Fields{"host": "db-1"}, err.Fields())
}

func TestError_IsMatchesKindAndAncestors(t *testing.T) {
	a, b, c := newHierarchy()
	sibling := errx.NewKind("sibling", a)
	err := errx.FromMessage(c, "deep")

	for _, kind := range []*errx.Kind{c, b, a, errx.Root} {
		assert.True(t, errors.Is(err, kind), "errors.Is(err, %q)", kind.Name())
		assert.True(t, errx.IsKind(err, kind), "IsKind(err, %q)", kind.Name())
	}
	assert.False(t, errors.Is(err, sibling))
	assert.False(t, errx.IsKind(err, nil))
	assert.False(t, errx.IsKind(nil, a))

	var out *errx.Error
	require.True(t, errors.As(fmt.Errorf("outer: %w", err), &out))
	assert.Same(t, err, out)
	assert.Same(t, c, errx.KindOf(fmt.Errorf("outer: %w", err)))
	assert.Nil(t, errx.KindOf(io.EOF))
}

func TestError_ErrorString(t *testing.T) {
	a, _, _ := newHierarchy()

	assert.Equal(t, "boom", errx.FromMessage(a, "boom").Error())
	assert.Equal(t, "a", errx.New(a).Error())
	assert.Equal(t, "error", errx.New(nil).Error())
}

func TestError_NilReceiver(t *testing.T) {
	var err *errx.Error

	assert.Empty(t, err.Error())
	assert.Nil(t, err.Unwrap())
	assert.False(t, err.Is(errx.Root))
	assert.Empty(t, err.Echain())
	assert.Nil(t, err.Chain())
	assert.Nil(t, err.Kind())
	assert.Nil(t, err.Map())
	assert.NotPanics(t, func() {
		err.SetMessage("x")
		err.SetField("k", "v")
		err.Fill(errx.Fields{"eid": "E1"})
	})
}

func TestStack_FirstFrameIsConstructorCaller(t *testing.T) {
	a, _, _ := newHierarchy()
	constructors := map[string]func() *errx.Error{
		"New":                    func() *errx.Error { return errx.New(a) },
		"FromMessage":            func() *errx.Error { return errx.FromMessage(a, "m") },
		"FromMessageAndSolution": func() *errx.Error { return errx.FromMessageAndSolution(a, "m", "s") },
		"FromMessageAndFields":   func() *errx.Error { return errx.FromMessageAndFields(a, "m", nil) },
		"FromFields":             func() *errx.Error { return errx.FromFields(a, nil) },
		"FromError":              func() *errx.Error { return errx.FromError(a, io.EOF) },
		"Wrap":                   func() *errx.Error { return errx.Wrap(a, "m", io.EOF) },
	}
	for name, construct := range constructors {
		t.Run(name, func(t *testing.T) {
			stack := construct().Stack()
			firstLine := strings.SplitN(stack, "\n", 2)[0]
			assert.Contains(t, firstLine, "TestStack_FirstFrameIsConstructorCaller")
			assert.NotContains(t, firstLine, "errx.")
		})
	}
}
