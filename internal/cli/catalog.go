package cli

// This file implements the "kinds" and "explain" commands, which inspect the
// kind registry: the standard taxonomy, the CLI's own kinds and any kinds
// loaded from a taxonomy file.

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"echain/internal/taxonomy"
	"echain/pkg/errx"
)

// CatalogManager resolves the kind registry and prints it.
type CatalogManager struct {
	config  *CLIConfig
	logger  *zap.Logger
	printer *Printer

	once     sync.Once
	registry *errx.Registry
	err      error
}

// NewCatalogManager creates a CatalogManager with the given dependencies.
func NewCatalogManager(config *CLIConfig, logger *zap.Logger, printer *Printer) *CatalogManager {
	if config == nil {
		config = DefaultCLIConfig
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if printer == nil {
		printer = DefaultPrinter
	}
	return &CatalogManager{
		config:  config,
		logger:  logger,
		printer: printer,
	}
}

// DefaultCatalogManager returns a CatalogManager using the default config and printer.
func DefaultCatalogManager(logger *zap.Logger) *CatalogManager {
	return NewCatalogManager(DefaultCLIConfig, logger, DefaultPrinter)
}

// Registry returns the standard taxonomy plus CLI kinds plus the configured
// taxonomy file, loaded once.
func (m *CatalogManager) Registry() (*errx.Registry, error) {
	m.once.Do(func() {
		m.registry, m.err = m.loadRegistry()
	})
	return m.registry, m.err
}

func (m *CatalogManager) loadRegistry() (*errx.Registry, error) {
	base := errx.DefaultRegistry().Clone()
	if err := base.Register(append(taxonomy.Kinds(), Kinds()...)...); err != nil {
		return nil, err
	}
	if m.config.TaxonomyFile == "" {
		return base, nil
	}
	m.logger.Debug("Loading taxonomy", zap.String("file", m.config.TaxonomyFile))
	reg, err := taxonomy.LoadFile(m.config.TaxonomyFile, base)
	if err != nil {
		m.printer.Error("Failed to load taxonomy")
		logStructuredError(m.logger, err, "Failed to load taxonomy")
		return nil, err
	}
	return reg, nil
}

// Resolve returns the kind registered under echain.
func (m *CatalogManager) Resolve(echain string) (*errx.Kind, error) {
	reg, err := m.Registry()
	if err != nil {
		return nil, err
	}
	kind, ok := reg.Lookup(echain)
	if !ok {
		err := newWithKindAndFields(KindUnknownKind, "unknown kind: "+echain, errx.Fields{"kind": echain})
		m.printer.Error("Unknown kind " + echain)
		logStructuredError(m.logger, err, "Unknown kind")
		return nil, err
	}
	return kind, nil
}

// NewKindsCmd returns the kinds subcommand.
func NewKindsCmd(logger *zap.Logger) *cobra.Command {
	return DefaultCatalogManager(logger).NewKindsCmd()
}

// NewExplainCmd returns the explain subcommand.
func NewExplainCmd(logger *zap.Logger) *cobra.Command {
	return DefaultCatalogManager(logger).NewExplainCmd()
}

// NewKindsCmd returns the kinds subcommand using this manager.
func (m *CatalogManager) NewKindsCmd() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List registered error kinds",
		Long: `List every registered error kind with its echain, depth and the
eid and level its errors start with.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m.bindOutput(cmd)
			return m.ListKinds(prefix)
		},
	}

	cmd.Flags().StringVar(&prefix, "prefix", "", "Only list kinds whose echain starts with this prefix")

	return cmd
}

// NewExplainCmd returns the explain subcommand using this manager.
func (m *CatalogManager) NewExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <echain>",
		Short: "Show the tiers of an error kind",
		Long: `Show every tier of an error kind, root-most first, with the defaults
each tier declares and the fields its errors start with.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m.bindOutput(cmd)
			return m.ExplainKind(args[0])
		},
	}

	return cmd
}

// bindOutput points the printer at the command's output and error streams.
func (m *CatalogManager) bindOutput(cmd *cobra.Command) {
	if out := cmd.OutOrStdout(); out != nil {
		m.printer.Out = out
	}
	if errOut := cmd.ErrOrStderr(); errOut != nil {
		m.printer.Err = errOut
	}
}

// ListKinds prints the registered kinds whose echain starts with prefix.
func (m *CatalogManager) ListKinds(prefix string) error {
	reg, err := m.Registry()
	if err != nil {
		return err
	}

	rows := [][]string{{"ECHAIN", "DEPTH", "EID", "LEVEL"}}
	for _, entry := range reg.Entries() {
		if !strings.HasPrefix(entry.Echain, prefix) {
			continue
		}
		sample := errx.New(entry.Kind)
		rows = append(rows, []string{
			entry.Echain,
			strconv.Itoa(entry.Kind.Depth()),
			valueOrDash(sample.EID()),
			valueOrDash(sample.Level()),
		})
	}
	if len(rows) == 1 {
		m.printer.Warn("No kinds match " + strconv.Quote(prefix))
		return nil
	}
	m.printer.Table(rows)
	return nil
}

// ExplainKind prints the tiers of the kind registered under echain.
func (m *CatalogManager) ExplainKind(echain string) error {
	kind, err := m.Resolve(echain)
	if err != nil {
		return err
	}

	m.printer.Section("Tiers of " + kind.Echain())
	rows := [][]string{{"TIER", "ECHAIN", "DEFAULTS"}}
	for _, tier := range tiersOf(kind) {
		rows = append(rows, []string{tier.Name(), tier.Echain(), formatDefaults(tier.Defaults())})
	}
	m.printer.TableBoxed(rows)

	sample := errx.New(kind)
	m.printer.Section("Errors of this kind start with")
	m.printer.Table([][]string{
		{"FIELD", "VALUE"},
		{errx.FieldEID, valueOrDash(sample.EID())},
		{errx.FieldLevel, valueOrDash(sample.Level())},
		{errx.FieldSolution, valueOrDash(sample.Solution())},
		{errx.FieldMessage, valueOrDash(sample.Message())},
	})
	return nil
}

// tiersOf returns the tiers of kind below Root, root-most first.
func tiersOf(kind *errx.Kind) []*errx.Kind {
	var tiers []*errx.Kind
	for tier := kind; tier != nil && tier != errx.Root; tier = tier.Parent() {
		tiers = append([]*errx.Kind{tier}, tiers...)
	}
	return tiers
}

func formatDefaults(defaults errx.Fields) string {
	if len(defaults) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(defaults))
	for key := range defaults {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", key, defaults[key]))
	}
	return strings.Join(parts, ", ")
}

func valueOrDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
