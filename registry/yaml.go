/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/suparena/querykit/schema"
)

// File is the YAML layout of a model definitions file:
//
//	models:
//	  - name: users
//	    tableName: users
//	    partitionKey: id
//	  - name: scores
//	    tableName: scores
//	    partitionKey: player
//	    sortKey: playedAt
type File struct {
	Models []schema.Definition `yaml:"models"`
}

// LoadYAML decodes model definitions from rd and registers each of them.
// Nothing is registered when any definition is invalid.
func (r *Registry) LoadYAML(rd io.Reader) error {
	var f File
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("registry: failed to decode model definitions: %w", err)
	}

	descs := make([]schema.Descriptor, 0, len(f.Models))
	seen := make(map[string]bool, len(f.Models))
	for _, def := range f.Models {
		d, err := schema.New(def)
		if err != nil {
			return err
		}
		if seen[d.Name()] {
			return fmt.Errorf("registry: model %q defined twice", d.Name())
		}
		seen[d.Name()] = true
		descs = append(descs, d)
	}

	return r.registerAll(descs)
}

// LoadYAMLFile is LoadYAML over the named file.
func (r *Registry) LoadYAMLFile(path string) error {
	fh, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	defer fh.Close()
	return r.LoadYAML(fh)
}
