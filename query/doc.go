/*
Package query provides the fluent query builder and the Model that hands it out.

A Builder is a small state machine. Filter registers a field and must be
followed by one of Eq, Lt, Lte, Gt or Gte; an illegal call sequence does not
fail at the call site but moves the builder to the Failed phase, and Execute
returns the recorded error without contacting the executor:

	users := query.NewModel(schema.MustNew(schema.Definition{
	    TableName:    "users",
	    PartitionKey: "id",
	}), exec)

	res, err := users.Find(storagemodels.Item{"id": "7"}).
	    Filter("age").Gt(30).
	    Limit(10).
	    Descending().
	    Execute(ctx)

FindOneAndUpdate and FindOneAndDelete first look up a single row and then
write using the key values found on that row, never the values the caller
filtered on.
*/
package query
