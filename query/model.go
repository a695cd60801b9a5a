/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"context"

	"github.com/suparena/querykit/datastore"
	"github.com/suparena/querykit/errors"
	"github.com/suparena/querykit/expr"
	"github.com/suparena/querykit/schema"
	"github.com/suparena/querykit/storagemodels"
	"go.uber.org/zap"
)

// Model binds a schema to an executor and hands out builders.
// A Model holds no mutable state and may be shared between goroutines.
type Model struct {
	schema schema.Descriptor
	exec   datastore.Executor
	logger *zap.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger passed to every builder.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModel creates a Model for s backed by exec.
func NewModel(s schema.Descriptor, exec datastore.Executor, opts ...Option) *Model {
	m := &Model{
		schema: s,
		exec:   exec,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(zap.String("table", s.TableName()))
	return m
}

// Schema returns the model's schema.
func (m *Model) Schema() schema.Descriptor { return m.schema }

func (m *Model) builder(op Operation, probe storagemodels.Item, filters []storagemodels.FilterClause) *Builder {
	return newBuilder(m.schema, m.exec, m.logger, op, probe).Where(filters...)
}

// Find reads every row matching probe and filters.
func (m *Model) Find(probe storagemodels.Item, filters ...storagemodels.FilterClause) *Builder {
	return m.builder(OpFind, probe, filters)
}

// FindOne reads at most one row.
func (m *Model) FindOne(probe storagemodels.Item, filters ...storagemodels.FilterClause) *Builder {
	return m.builder(OpFindOne, probe, filters)
}

// Scan reads the whole table, keeping the rows that match probe and filters.
func (m *Model) Scan(probe storagemodels.Item, filters ...storagemodels.FilterClause) *Builder {
	return m.builder(OpScan, probe, filters)
}

// FindOneAndUpdate looks up a single row and replaces the fields in patch.
func (m *Model) FindOneAndUpdate(probe, patch storagemodels.Item, filters ...storagemodels.FilterClause) *Builder {
	b := m.builder(OpFindOneAndUpdate, probe, filters)
	b.patch = make(storagemodels.Item, len(patch))
	for k, v := range patch {
		b.patch[k] = v
	}
	return b
}

// FindOneAndDelete looks up a single row and deletes it.
func (m *Model) FindOneAndDelete(probe storagemodels.Item, filters ...storagemodels.FilterClause) *Builder {
	return m.builder(OpFindOneAndDelete, probe, filters)
}

// Save writes item. The item must carry its key fields.
func (m *Model) Save(ctx context.Context, item storagemodels.Item) (*storagemodels.WriteResult, error) {
	q, err := expr.CompileSave(m.schema, item)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("compiled document", zap.String("call", "put"), zap.Any("document", q))

	wr, err := m.exec.Put(ctx, q)
	if err != nil {
		m.logger.Error("executor call failed", zap.String("call", "put"), zap.Error(err))
		return nil, errors.WrapQueryError(err)
	}
	return wr, nil
}

// Get reads a single row by primary key. It returns nil when there is no such row.
func (m *Model) Get(ctx context.Context, key storagemodels.Item) (storagemodels.Item, error) {
	q, err := expr.CompileGet(m.schema, key)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("compiled document", zap.String("call", "get"), zap.Any("document", q))

	out, err := m.exec.Get(ctx, q)
	if err != nil {
		m.logger.Error("executor call failed", zap.String("call", "get"), zap.Error(err))
		return nil, errors.WrapQueryError(err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	return out.Items[0], nil
}
