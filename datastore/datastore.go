/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/querykit/storagemodels"
)

// Executor runs compiled documents against a store. Each call is a single
// round-trip; retry policy, if any, belongs to the implementation.
type Executor interface {
	Get(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error)

	Query(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error)

	Scan(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error)

	Put(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error)

	Update(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error)

	Delete(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error)
}
