/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package querykit

import (
	"context"
	"fmt"

	"github.com/suparena/querykit/query"
	"github.com/suparena/querykit/registry"
	"github.com/suparena/querykit/storagemodels"
)

// TypedModel wraps a Model with conversions between T and stored items.
// Field names follow the dynamodbav struct tags of T.
type TypedModel[T any] struct {
	model *query.Model
}

// NewTypedModel returns a TypedModel for T. T must have been bound to a
// model with registry.Bind.
func NewTypedModel[T any](c *Client) (*TypedModel[T], error) {
	d, ok := registry.DescriptorFor[T](c.Registry())
	if !ok {
		var zero T
		return nil, fmt.Errorf("no model bound to type %T", zero)
	}
	return &TypedModel[T]{model: c.ModelFor(d)}, nil
}

// Model returns the untyped model.
func (tm *TypedModel[T]) Model() *query.Model { return tm.model }

// Save encodes v and writes it.
func (tm *TypedModel[T]) Save(ctx context.Context, v T) error {
	item, err := storagemodels.EncodeItem(v)
	if err != nil {
		return fmt.Errorf("failed to encode %T: %w", v, err)
	}
	_, err = tm.model.Save(ctx, item)
	return err
}

// Get reads one value by primary key. It returns nil when there is no such row.
func (tm *TypedModel[T]) Get(ctx context.Context, key storagemodels.Item) (*T, error) {
	item, err := tm.model.Get(ctx, key)
	if err != nil || item == nil {
		return nil, err
	}
	out, err := storagemodels.DecodeItems[T]([]storagemodels.Item{item})
	if err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}
	return &out[0], nil
}

// Collect executes b and decodes every row.
func (tm *TypedModel[T]) Collect(ctx context.Context, b *query.Builder) ([]T, error) {
	res, err := b.Execute(ctx)
	if err != nil {
		return nil, err
	}
	out, err := storagemodels.DecodeItems[T](res.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return out, nil
}

// First executes b and decodes the first row. It returns nil when no row matched.
func (tm *TypedModel[T]) First(ctx context.Context, b *query.Builder) (*T, error) {
	out, err := tm.Collect(ctx, b)
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}
