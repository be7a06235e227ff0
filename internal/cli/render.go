package cli

// This file implements the "new" command: it constructs an error of a
// registered kind from flags and prints it the way a log sink or an API
// response would see it.

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"sigs.k8s.io/yaml"

	"echain/pkg/errx"
)

// RenderOptions describes the error to construct and how to print it.
type RenderOptions struct {
	Kind      string
	Message   string
	Solution  string
	EID       string
	Level     string
	Data      string
	Fields    []string
	Output    string
	WithStack bool
}

// RenderManager builds errors from flags and prints them.
type RenderManager struct {
	catalog *CatalogManager
	logger  *zap.Logger
}

// NewRenderManager creates a RenderManager with the given dependencies.
func NewRenderManager(catalog *CatalogManager, logger *zap.Logger) *RenderManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RenderManager{catalog: catalog, logger: logger}
}

// NewNewCmd returns the new subcommand.
func NewNewCmd(logger *zap.Logger) *cobra.Command {
	return NewRenderManager(DefaultCatalogManager(logger), logger).NewNewCmd()
}

// NewNewCmd returns the new subcommand using this manager.
func (m *RenderManager) NewNewCmd() *cobra.Command {
	opts := RenderOptions{}

	cmd := &cobra.Command{
		Use:   "new <echain>",
		Short: "Construct an error of a kind and print it",
		Long: `Construct an error of a registered kind and print its serialized form.

Only the fields given on the command line and the kind's defaults are set.
Extra fields are passed as --field key=value and appear next to the known
fields, the same way they would in a structured log entry.`,
		Example: `  echain new base.external.not_found --message "user 42 not found"
  echain new base.external.invalid_argument --message "bad page size" \
      --solution "Use a page size between 1 and 100." --field param=page_size -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Kind = args[0]
			m.catalog.bindOutput(cmd)
			return m.Render(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Message, "message", "", "Error message")
	cmd.Flags().StringVar(&opts.Solution, "solution", "", "Remediation hint")
	cmd.Flags().StringVar(&opts.EID, "eid", "", "Identifying code (overrides the kind default)")
	cmd.Flags().StringVar(&opts.Level, "level", "", "Level (overrides the kind default)")
	cmd.Flags().StringVar(&opts.Data, "data", "", "Payload; parsed as JSON when valid, kept as a string otherwise")
	cmd.Flags().StringArrayVar(&opts.Fields, "field", nil, "Extra field as key=value (repeatable)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", DefaultCLIConfig.Output, "Output format: json, yaml or text")
	cmd.Flags().BoolVar(&opts.WithStack, "stack", false, "Include the captured stack")

	return cmd
}

// Render constructs the error described by opts and writes it to w.
func (m *RenderManager) Render(w io.Writer, opts RenderOptions) error {
	if err := validateOutput(opts.Output); err != nil {
		logStructuredError(m.logger, err, "Unsupported output format")
		return err
	}
	kind, err := m.catalog.Resolve(opts.Kind)
	if err != nil {
		return err
	}
	e, err := Build(kind, opts)
	if err != nil {
		logStructuredError(m.logger, err, "Invalid field flag")
		return err
	}

	out, err := encode(e, opts.Output, opts.WithStack)
	if err != nil {
		wrapped := wrapWithKind(KindRender, err, fmt.Sprintf("failed to encode error: %v", err))
		logStructuredError(m.logger, wrapped, "Failed to encode error")
		return wrapped
	}
	_, err = io.WriteString(w, out)
	return err
}

// Build constructs an error of kind from opts, picking the construction form
// that matches the flags given.
func Build(kind *errx.Kind, opts RenderOptions) (*errx.Error, error) {
	fields, err := parseFields(opts.Fields)
	if err != nil {
		return nil, err
	}
	if opts.EID != "" {
		fields[errx.FieldEID] = opts.EID
	}
	if opts.Level != "" {
		fields[errx.FieldLevel] = opts.Level
	}
	if opts.Data != "" {
		fields[errx.FieldData] = parseData(opts.Data)
	}

	switch {
	case opts.Message != "" && len(fields) == 0 && opts.Solution != "":
		return errx.FromMessageAndSolution(kind, opts.Message, opts.Solution), nil
	case opts.Message != "" && len(fields) == 0:
		return errx.FromMessage(kind, opts.Message), nil
	case opts.Solution != "":
		fields[errx.FieldSolution] = opts.Solution
	}
	switch {
	case opts.Message != "":
		return errx.FromMessageAndFields(kind, opts.Message, fields), nil
	case len(fields) > 0:
		return errx.FromFields(kind, fields), nil
	default:
		return errx.New(kind), nil
	}
}

func parseFields(pairs []string) (errx.Fields, error) {
	fields := errx.Fields{}
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, newWithKindAndFields(KindInvalidFlag, "field must be key=value: "+pair, errx.Fields{
				"flag":  "field",
				"value": pair,
			})
		}
		fields[key] = value
	}
	return fields, nil
}

func parseData(raw string) any {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err == nil {
		return decoded
	}
	return raw
}

func encode(e *errx.Error, output string, withStack bool) (string, error) {
	if output == OutputText {
		return errx.DebugString(e) + "\n", nil
	}

	m := e.Map()
	if !withStack {
		delete(m, errx.FieldStack)
	}
	switch output {
	case OutputYAML:
		data, err := yaml.Marshal(m)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}
}
