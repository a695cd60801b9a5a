/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/suparena/querykit/errors"
)

// Definition is the declarative form of a model, as written in YAML or code.
type Definition struct {
	Name         string `yaml:"name"`
	TableName    string `yaml:"tableName" validate:"required"`
	PartitionKey string `yaml:"partitionKey" validate:"required"`
	SortKey      string `yaml:"sortKey,omitempty" validate:"omitempty,nefield=PartitionKey"`
	IndexName    string `yaml:"indexName,omitempty"`
}

// Descriptor is a read-only view of a data model. It is safe to share between
// any number of builders and goroutines.
type Descriptor struct {
	name         string
	tableName    string
	partitionKey string
	sortKey      string
	indexName    string
}

var validate = validator.New()

// New validates a definition and returns its descriptor.
func New(def Definition) (Descriptor, error) {
	def.TableName = strings.TrimSpace(def.TableName)
	def.PartitionKey = strings.TrimSpace(def.PartitionKey)
	def.SortKey = strings.TrimSpace(def.SortKey)

	if err := validate.Struct(def); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("field %q failed rule %q", e.Field(), e.Tag()))
			}
			return Descriptor{}, errors.NewModelError("invalid model definition %q: %s", def.Name, strings.Join(msgs, ", "))
		}
		return Descriptor{}, errors.NewModelError("invalid model definition %q: %v", def.Name, err)
	}

	name := def.Name
	if name == "" {
		name = def.TableName
	}
	return Descriptor{
		name:         name,
		tableName:    def.TableName,
		partitionKey: def.PartitionKey,
		sortKey:      def.SortKey,
		indexName:    def.IndexName,
	}, nil
}

// MustNew is like New but panics on an invalid definition.
func MustNew(def Definition) Descriptor {
	d, err := New(def)
	if err != nil {
		panic(err)
	}
	return d
}

// Name is the model name; it defaults to the table name.
func (d Descriptor) Name() string { return d.name }

func (d Descriptor) TableName() string { return d.tableName }

func (d Descriptor) PartitionKey() string { return d.partitionKey }

// SortKey returns the sort key attribute, or "" when the model has none.
func (d Descriptor) SortKey() string { return d.sortKey }

// IndexName returns the secondary index queried by reads, or "".
func (d Descriptor) IndexName() string { return d.indexName }

func (d Descriptor) HasSortKey() bool { return d.sortKey != "" }

// IsKey reports whether field is the partition or sort key.
func (d Descriptor) IsKey(field string) bool {
	return field == d.partitionKey || (d.sortKey != "" && field == d.sortKey)
}

// KeyFields returns the partition key followed by the sort key, if any.
func (d Descriptor) KeyFields() []string {
	if d.sortKey == "" {
		return []string{d.partitionKey}
	}
	return []string{d.partitionKey, d.sortKey}
}

// Definition returns the definition this descriptor was built from.
func (d Descriptor) Definition() Definition {
	return Definition{
		Name:         d.name,
		TableName:    d.tableName,
		PartitionKey: d.partitionKey,
		SortKey:      d.sortKey,
		IndexName:    d.indexName,
	}
}

// Valid reports whether the descriptor was produced by New.
func (d Descriptor) Valid() bool {
	return d.tableName != "" && d.partitionKey != ""
}
