/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"context"
	"fmt"
	"math"

	"github.com/suparena/querykit/comparison"
	"github.com/suparena/querykit/datastore"
	"github.com/suparena/querykit/errors"
	"github.com/suparena/querykit/expr"
	"github.com/suparena/querykit/schema"
	"github.com/suparena/querykit/storagemodels"
	"go.uber.org/zap"
)

// Operation is the kind of work a Builder performs on Execute.
type Operation int

const (
	OpFind Operation = iota
	OpFindOne
	OpScan
	OpFindOneAndUpdate
	OpFindOneAndDelete
)

func (o Operation) String() string {
	switch o {
	case OpFind:
		return "find"
	case OpFindOne:
		return "findOne"
	case OpScan:
		return "scan"
	case OpFindOneAndUpdate:
		return "findOneAndUpdate"
	case OpFindOneAndDelete:
		return "findOneAndDelete"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// ParseOperation resolves an operation by its name, e.g. "findOne".
func ParseOperation(name string) (Operation, error) {
	for _, op := range []Operation{OpFind, OpFindOne, OpScan, OpFindOneAndUpdate, OpFindOneAndDelete} {
		if op.String() == name {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operation %q", name)
}

// Phase is the state of a Builder.
type Phase int

const (
	// Idle means no filter is waiting for a comparison.
	Idle Phase = iota
	// AwaitingOperator means Filter registered a field and a comparison must follow.
	AwaitingOperator
	// Failed means a construction error was recorded; every later call is a no-op.
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case AwaitingOperator:
		return "awaiting operator"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Builder accumulates filter clauses through chained calls and runs one
// operation on Execute.
//
// A Builder is owned by a single goroutine and is not safe for concurrent
// use. It may be executed once.
type Builder struct {
	schema schema.Descriptor
	exec   datastore.Executor
	logger *zap.Logger
	op     Operation

	spec       storagemodels.QuerySpec
	patch      storagemodels.Item
	registered map[string]bool
	current    string

	phase    Phase
	err      error
	executed bool
}

func newBuilder(s schema.Descriptor, exec datastore.Executor, logger *zap.Logger, op Operation, probe storagemodels.Item) *Builder {
	b := &Builder{
		schema:     s,
		exec:       exec,
		logger:     logger,
		op:         op,
		registered: make(map[string]bool),
	}
	if len(probe) > 0 {
		b.spec.EqualityProbe = make(storagemodels.Item, len(probe))
		for k, v := range probe {
			b.spec.EqualityProbe[k] = v
		}
	}
	return b
}

// Operation returns the operation bound at construction.
func (b *Builder) Operation() Operation { return b.op }

// Phase returns the current state.
func (b *Builder) Phase() Phase { return b.phase }

// Err returns the recorded construction error, if any.
func (b *Builder) Err() error { return b.err }

// Spec returns a copy of the accumulated query specification.
func (b *Builder) Spec() storagemodels.QuerySpec {
	spec := b.spec
	spec.Filters = append([]storagemodels.FilterClause(nil), b.spec.Filters...)
	return spec
}

func (b *Builder) fail(format string, args ...any) *Builder {
	b.err = errors.NewQueryError(format, args...)
	b.phase = Failed
	return b
}

// Filter registers a field and waits for a comparison.
func (b *Builder) Filter(name string) *Builder {
	switch b.phase {
	case Failed:
		return b
	case AwaitingOperator:
		return b.fail("Invalid Query state: filter() must follow comparison")
	}
	if b.registered[name] {
		return b.fail("Invalid Query state: %s filter can only be used once", name)
	}
	b.registered[name] = true
	b.current = name
	b.phase = AwaitingOperator
	return b
}

// Eq completes the pending filter with an equality comparison.
func (b *Builder) Eq(v any) *Builder { return b.compare(comparison.EQ, v) }

// Lt completes the pending filter with a less-than comparison.
func (b *Builder) Lt(v any) *Builder { return b.compare(comparison.LT, v) }

// Lte completes the pending filter with a less-or-equal comparison.
func (b *Builder) Lte(v any) *Builder { return b.compare(comparison.LTE, v) }

// Gt completes the pending filter with a greater-than comparison.
func (b *Builder) Gt(v any) *Builder { return b.compare(comparison.GT, v) }

// Gte completes the pending filter with a greater-or-equal comparison.
func (b *Builder) Gte(v any) *Builder { return b.compare(comparison.GTE, v) }

// Compare completes the pending filter with op.
func (b *Builder) Compare(op comparison.Operator, v any) *Builder { return b.compare(op, v) }

func (b *Builder) compare(op comparison.Operator, v any) *Builder {
	switch b.phase {
	case Failed:
		return b
	case Idle:
		return b.fail("Invalid Query state: %s() must follow filter()", op.MethodName())
	}
	if !op.Valid() {
		return b.fail("Invalid Query state: unsupported comparison %q", op)
	}
	b.spec.Filters = append(b.spec.Filters, storagemodels.FilterClause{
		Name:     b.current,
		Values:   []any{v},
		Operator: op,
	})
	b.current = ""
	b.phase = Idle
	return b
}

// Where adds complete clauses, as if each was built with Filter and a comparison.
func (b *Builder) Where(clauses ...storagemodels.FilterClause) *Builder {
	for _, c := range clauses {
		if b.phase == Failed {
			return b
		}
		b.Filter(c.Name)
		if b.phase == Failed {
			return b
		}
		if len(c.Values) == 0 {
			return b.fail("Invalid Query state: %s filter has no value", c.Name)
		}
		b.compare(c.Operator, c.Values[0])
		if b.phase != Failed {
			b.spec.Filters[len(b.spec.Filters)-1].Values = append([]any(nil), c.Values...)
		}
	}
	return b
}

// Limit caps the number of rows read.
func (b *Builder) Limit(n int) *Builder {
	if b.phase == Failed {
		return b
	}
	if n <= 0 {
		return b.fail("Invalid Query state: limit must be positive, got %d", n)
	}
	if n > math.MaxInt32 {
		return b.fail("Invalid Query state: limit %d exceeds %d", n, math.MaxInt32)
	}
	b.spec.Limit = n
	return b
}

// Descending reads in reverse sort-key order.
func (b *Builder) Descending() *Builder {
	if b.phase != Failed {
		b.spec.Sort = storagemodels.SortDesc
	}
	return b
}

// Ascending reads in sort-key order.
func (b *Builder) Ascending() *Builder {
	if b.phase != Failed {
		b.spec.Sort = storagemodels.SortAsc
	}
	return b
}

// Execute compiles the accumulated query and runs it. A builder in the
// Failed phase returns its recorded error without touching the executor.
func (b *Builder) Execute(ctx context.Context) (*storagemodels.Result, error) {
	if b.phase == Failed {
		return nil, b.err
	}
	if b.phase == AwaitingOperator {
		b.fail("Invalid Query state: %s filter must be followed by a comparison", b.current)
		return nil, b.err
	}
	if b.executed {
		return nil, errors.NewQueryError("Invalid Query state: %s already executed", b.op)
	}
	b.executed = true

	switch b.op {
	case OpFind:
		return b.read(ctx, b.Spec())
	case OpFindOne:
		spec := b.Spec()
		spec.Limit = 1
		return b.read(ctx, spec)
	case OpScan:
		return b.scan(ctx)
	case OpFindOneAndUpdate, OpFindOneAndDelete:
		return b.findAndWrite(ctx)
	default:
		return nil, errors.NewQueryError("unsupported operation %s", b.op)
	}
}

func (b *Builder) read(ctx context.Context, spec storagemodels.QuerySpec) (*storagemodels.Result, error) {
	q, err := expr.CompileFind(b.schema, spec)
	if err != nil {
		return nil, err
	}
	b.debug("query", q)

	out, err := b.exec.Query(ctx, q)
	if err != nil {
		return nil, b.wrap("query", err)
	}
	return &storagemodels.Result{Items: out.Items}, nil
}

func (b *Builder) scan(ctx context.Context) (*storagemodels.Result, error) {
	q, err := expr.CompileScan(b.schema, b.Spec())
	if err != nil {
		return nil, err
	}
	b.debug("scan", q)

	out, err := b.exec.Scan(ctx, q)
	if err != nil {
		return nil, b.wrap("scan", err)
	}
	return &storagemodels.Result{Items: out.Items}, nil
}

// findAndWrite looks up a single row and then updates or deletes it by the
// key values found on that row.
func (b *Builder) findAndWrite(ctx context.Context) (*storagemodels.Result, error) {
	spec := b.Spec()
	spec.Limit = 1
	found, err := b.read(ctx, spec)
	if err != nil {
		return nil, err
	}
	row := found.First()
	if row == nil {
		return nil, errors.NewQueryError("cannot operate on non-existing item")
	}

	keyProbe := storagemodels.Item{}
	for _, field := range b.schema.KeyFields() {
		if v, ok := row[field]; ok {
			keyProbe[field] = v
		}
	}

	var (
		q     storagemodels.CompiledQuery
		write func(context.Context, storagemodels.CompiledQuery) (*storagemodels.WriteResult, error)
		name  string
	)
	if b.op == OpFindOneAndUpdate {
		q, err = expr.CompileUpdate(b.schema, keyProbe, b.patch)
		write, name = b.exec.Update, "update"
	} else {
		q, err = expr.CompileDelete(b.schema, keyProbe)
		write, name = b.exec.Delete, "delete"
	}
	if err != nil {
		return nil, err
	}
	b.debug(name, q)

	wr, err := write(ctx, q)
	if err != nil {
		return nil, b.wrap(name, err)
	}
	return &storagemodels.Result{Items: []storagemodels.Item{row}, Write: wr}, nil
}

func (b *Builder) debug(call string, q storagemodels.CompiledQuery) {
	b.logger.Debug("compiled document",
		zap.String("model", b.schema.Name()),
		zap.Stringer("operation", b.op),
		zap.String("call", call),
		zap.Any("document", q))
}

func (b *Builder) wrap(call string, err error) error {
	b.logger.Error("executor call failed",
		zap.String("model", b.schema.Name()),
		zap.Stringer("operation", b.op),
		zap.String("call", call),
		zap.Error(err))
	return errors.WrapQueryError(err)
}
