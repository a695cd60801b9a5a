/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides a spy implementation of datastore.Executor for testing
package mock

import (
	"context"
	"sync"

	"github.com/suparena/querykit/storagemodels"
)

// Method names recorded by the spy.
const (
	MethodGet    = "get"
	MethodQuery  = "query"
	MethodScan   = "scan"
	MethodPut    = "put"
	MethodUpdate = "update"
	MethodDelete = "delete"
)

// Call is a single recorded executor invocation.
type Call struct {
	Method string
	Query  storagemodels.CompiledQuery
}

// Executor records every call and answers reads with canned rows.
type Executor struct {
	mu        sync.Mutex
	calls     []Call
	rows      map[string][]storagemodels.Item
	errs      map[string]error
	queryFunc func(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error)
}

// New creates a new spy Executor
func New() *Executor {
	return &Executor{
		rows: make(map[string][]storagemodels.Item),
		errs: make(map[string]error),
	}
}

// WithQueryItems makes Query return the given rows
func (m *Executor) WithQueryItems(items ...storagemodels.Item) *Executor {
	m.rows[MethodQuery] = items
	return m
}

// WithScanItems makes Scan return the given rows
func (m *Executor) WithScanItems(items ...storagemodels.Item) *Executor {
	m.rows[MethodScan] = items
	return m
}

// WithGetItem makes Get return the given row
func (m *Executor) WithGetItem(item storagemodels.Item) *Executor {
	m.rows[MethodGet] = []storagemodels.Item{item}
	return m
}

// WithQueryFunc sets a custom query function for testing
func (m *Executor) WithQueryFunc(f func(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error)) *Executor {
	m.queryFunc = f
	return m
}

// WithError makes the given method fail
func (m *Executor) WithError(method string, err error) *Executor {
	m.errs[method] = err
	return m
}

func (m *Executor) Get(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error) {
	return m.read(ctx, MethodGet, q)
}

func (m *Executor) Query(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error) {
	if m.queryFunc != nil {
		m.record(MethodQuery, q)
		return m.queryFunc(ctx, q)
	}
	return m.read(ctx, MethodQuery, q)
}

func (m *Executor) Scan(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error) {
	return m.read(ctx, MethodScan, q)
}

func (m *Executor) Put(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error) {
	return m.write(ctx, MethodPut, q)
}

func (m *Executor) Update(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error) {
	return m.write(ctx, MethodUpdate, q)
}

func (m *Executor) Delete(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error) {
	return m.write(ctx, MethodDelete, q)
}

// Helper methods for testing

// Calls returns a copy of the recorded calls
func (m *Executor) Calls() []Call {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Call, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsTo returns the recorded calls to one method
func (m *Executor) CallsTo(method string) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Call
	for _, c := range m.calls {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

// Count returns the number of recorded calls
func (m *Executor) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset forgets recorded calls
func (m *Executor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

func (m *Executor) record(method string, q storagemodels.CompiledQuery) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Method: method, Query: q})
}

func (m *Executor) read(ctx context.Context, method string, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error) {
	m.record(method, q)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs[method]; err != nil {
		return nil, err
	}

	rows := m.rows[method]
	if q.Limit != nil && int(*q.Limit) < len(rows) {
		rows = rows[:*q.Limit]
	}
	items := make([]storagemodels.Item, len(rows))
	copy(items, rows)
	return &storagemodels.ReadResult{Items: items}, nil
}

func (m *Executor) write(ctx context.Context, method string, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error) {
	m.record(method, q)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.errs[method]; err != nil {
		return nil, err
	}
	return &storagemodels.WriteResult{}, nil
}
