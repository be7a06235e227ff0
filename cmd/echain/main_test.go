package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"go.uber.org/zap"

	"echain/internal/cli"
)

func TestRootCommandHelp(t *testing.T) {
	logger, err := newConsoleLogger(false)
	if err != nil {
		t.Fatalf("newConsoleLogger() error: %v", err)
	}
	defer logger.Sync()

	initCommands(logger)
	t.Cleanup(func() { rootCmd.ResetCommands() })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("rootCmd.Execute() error: %v", err)
	}

	if !strings.Contains(out.String(), "chained error taxonomy") {
		t.Fatalf("help output missing expected text")
	}
	for _, name := range []string{"kinds", "explain", "new"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("help output missing command %q", name)
		}
	}
}

func TestRootCommandNew(t *testing.T) {
	logger, err := newConsoleLogger(false)
	if err != nil {
		t.Fatalf("newConsoleLogger() error: %v", err)
	}
	defer logger.Sync()

	initCommands(logger)
	t.Cleanup(func() { rootCmd.ResetCommands() })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"new", "base.external.not_found", "--message", "user 42 not found", "-o", "json"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("rootCmd.Execute() error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got["echain"] != "base.external.not_found" {
		t.Errorf("echain = %v, want base.external.not_found", got["echain"])
	}
	if got["message"] != "user 42 not found" {
		t.Errorf("message = %v, want %q", got["message"], "user 42 not found")
	}
}

func TestDebugFlagLowersLogLevel(t *testing.T) {
	logger, err := newConsoleLogger(false)
	if err != nil {
		t.Fatalf("newConsoleLogger() error: %v", err)
	}
	defer logger.Sync()
	if logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug logs must be off before --debug is parsed")
	}

	initCommands(logger)
	t.Cleanup(func() {
		rootCmd.ResetCommands()
		debug = false
		cli.SetDebugMode(false)
		logLevel.SetLevel(zap.ErrorLevel)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"--debug", "kinds", "--prefix", "base.database"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("rootCmd.Execute() error: %v", err)
	}
	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Errorf("--debug must enable debug logs on the logger built before flag parsing")
	}
}
