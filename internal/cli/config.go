package cli

import (
	"os"
	"strings"
)

// Environment variables read at startup.
const (
	EnvTaxonomy = "ECHAIN_TAXONOMY"
	EnvOutput   = "ECHAIN_OUTPUT"
)

// Output formats supported by commands that print errors.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)

// CLIConfig holds settings shared by all commands.
// Precedence: CLI flags > environment variables > defaults.
type CLIConfig struct {
	// TaxonomyFile is an optional YAML file with extra kinds.
	TaxonomyFile string
	// Output is the default output format for the new command.
	Output string
}

// DefaultCLIConfig is loaded from the environment at startup; root flags
// use it for their defaults.
var DefaultCLIConfig = LoadCLIConfig()

// LoadCLIConfig reads the CLI configuration from environment variables.
func LoadCLIConfig() *CLIConfig {
	cfg := &CLIConfig{
		TaxonomyFile: strings.TrimSpace(os.Getenv(EnvTaxonomy)),
		Output:       strings.ToLower(strings.TrimSpace(os.Getenv(EnvOutput))),
	}
	if cfg.Output == "" {
		cfg.Output = OutputJSON
	}
	return cfg
}

// validateOutput checks an output format name.
func validateOutput(output string) error {
	switch output {
	case OutputJSON, OutputYAML, OutputText:
		return nil
	default:
		return newWithKindAndFields(KindUnsupportedOutput, "unsupported output format: "+output, map[string]any{
			"output": output,
		})
	}
}
