// Package taxonomy loads error kind hierarchies from YAML files.
//
// A taxonomy file declares kinds in dependency order; each entry names its
// parent by echain:
//
//	kinds:
//	  - name: payment
//	    parent: base.external
//	    defaults:
//	      eid: E2100
//	  - name: card_declined
//	    parent: base.external.payment
//	    defaults:
//	      solution: Use a different card.
//
// An empty parent places the kind directly below errx.Root.
package taxonomy

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"echain/pkg/errx"
)

// Kinds raised while loading a taxonomy.
var (
	KindTaxonomy      = errx.NewKind("taxonomy", errx.Config, errx.Fields{errx.FieldEID: "E1020"})
	KindReadFailed    = errx.NewKind("read_failed", KindTaxonomy, errx.Fields{errx.FieldEID: "E1021"})
	KindParseFailed   = errx.NewKind("parse_failed", KindTaxonomy, errx.Fields{errx.FieldEID: "E1022"})
	KindUnknownParent = errx.NewKind("unknown_parent", KindTaxonomy, errx.Fields{errx.FieldEID: "E1023"})
	KindInvalidEntry  = errx.NewKind("invalid_entry", KindTaxonomy, errx.Fields{errx.FieldEID: "E1024"})
)

// Kinds returns the kinds this package raises, parents first.
func Kinds() []*errx.Kind {
	return []*errx.Kind{KindTaxonomy, KindReadFailed, KindParseFailed, KindUnknownParent, KindInvalidEntry}
}

// File is the on-disk taxonomy document.
type File struct {
	Kinds []Entry `yaml:"kinds"`
}

// Entry declares one kind.
type Entry struct {
	Name     string         `yaml:"name"`
	Parent   string         `yaml:"parent,omitempty"`
	Defaults map[string]any `yaml:"defaults,omitempty"`
}

// LoadFile reads path and resolves its kinds on top of base.
func LoadFile(path string, base *errx.Registry) (*errx.Registry, error) {
	// #nosec G304 -- path is supplied by the operator of the CLI.
	data, err := os.ReadFile(path)
	if err != nil {
		readErr := errx.Wrap(KindReadFailed, fmt.Sprintf("failed to read taxonomy file: %v", err), err)
		readErr.SetField("path", path)
		return nil, readErr
	}
	reg, err := Load(bytes.NewReader(data), base)
	if err != nil {
		var e *errx.Error
		if errors.As(err, &e) {
			e.SetField("path", path)
		}
		return nil, err
	}
	return reg, nil
}

// Load decodes a taxonomy document and registers its kinds into a copy of
// base. A nil base starts from the standard taxonomy.
func Load(r io.Reader, base *errx.Registry) (*errx.Registry, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errx.Wrap(KindParseFailed, fmt.Sprintf("failed to parse taxonomy: %v", err), err)
	}
	return Build(file, base)
}

// Build registers the entries of file into a copy of base, in file order.
func Build(file File, base *errx.Registry) (*errx.Registry, error) {
	if base == nil {
		base = errx.DefaultRegistry()
	}
	reg := base.Clone()

	for i, entry := range file.Kinds {
		if entry.Name == "" {
			return nil, entryError(KindInvalidEntry, "kind name is required", i, entry)
		}
		parent := errx.Root
		if entry.Parent != "" {
			found, ok := reg.Lookup(entry.Parent)
			if !ok {
				return nil, entryError(KindUnknownParent, "unknown parent kind: "+entry.Parent, i, entry)
			}
			parent = found
		}
		kind := errx.NewKind(entry.Name, parent, errx.Fields(entry.Defaults))
		if err := reg.Register(kind); err != nil {
			return nil, withEntry(errx.Wrap(KindInvalidEntry, "duplicate kind: "+kind.Echain(), err), i, entry)
		}
	}
	return reg, nil
}

func entryError(kind *errx.Kind, msg string, index int, entry Entry) error {
	err := errx.FromMessageAndSolution(kind, msg, "Declare parents before their children and reference them by echain.")
	return withEntry(err, index, entry)
}

// withEntry records the offending entry in the error's data.
func withEntry(err *errx.Error, index int, entry Entry) *errx.Error {
	err.SetData(map[string]any{
		"index":  index,
		"name":   entry.Name,
		"parent": entry.Parent,
	})
	return err
}
