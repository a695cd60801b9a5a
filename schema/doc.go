/*
Package schema provides the immutable model descriptor shared by the compiler
and every builder created for that model.

A Descriptor is built once from a Definition:

	users := schema.MustNew(schema.Definition{
	    TableName:    "users",
	    PartitionKey: "id",
	    SortKey:      "createdAt", // optional
	    IndexName:    "byEmail",   // optional, used by reads
	})

Descriptors carry no mutable state and are passed by value.
*/
package schema
