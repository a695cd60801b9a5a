/*
Package querykit compiles schema-aware reads and writes into DynamoDB wire
documents and runs them through a pluggable executor.

The library is layered:
  - schema: immutable descriptors of a table's keys and index
  - expr: pure compilers from a query specification to a wire document
  - query: the fluent Builder state machine and the Model that hands it out
  - datastore: the Executor contract, with a DynamoDB adapter and a spy

Basic Usage:

	exec, _ := ddb.NewExecutorFromEnv(ctx)
	client := querykit.New(exec, querykit.WithLogger(logger))

	users, _ := client.Define(schema.Definition{
	    TableName:    "users",
	    PartitionKey: "id",
	})

	res, err := users.Find(storagemodels.Item{"id": "7"}).
	    Filter("age").Gt(30).
	    Execute(ctx)

Typed access goes through a type bound in the registry:

	registry.Bind[User](client.Registry(), "users")
	typed, _ := querykit.NewTypedModel[User](client)
	user, err := typed.Get(ctx, storagemodels.Item{"id": "7"})

Construction errors (an illegal builder call sequence, a duplicate filter,
a missing key) are reported by Execute before any call reaches the store.
*/
package querykit
