/*
Package datastore defines the executor contract consumed by the query builder.

	type Executor interface {
	    Get(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error)
	    Query(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error)
	    Scan(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error)
	    Put(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error)
	    Update(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error)
	    Delete(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error)
	}

Implementations:
  - ddb: DynamoDB executor built on aws-sdk-go-v2
  - mock: spy executor recording every call, for tests

Executors receive compiled documents by value and must not retain them.
*/
package datastore
