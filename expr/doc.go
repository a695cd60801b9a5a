/*
Package expr compiles schema-aware query, scan and write descriptions into
wire-ready documents.

Every function is pure: inputs are never mutated and each call allocates a
fresh storagemodels.CompiledQuery, so the compiler is safe for concurrent use.

Placeholders:

	#hkeyname / :hkeyvalue   partition key
	#rkeyname / :rkeyvalue   sort key
	#<field>  / :<field>     every other attribute

Fragments are rendered "<name> <token> <value>" and joined with " and ":

	q, err := expr.CompileFind(users, storagemodels.QuerySpec{
	    EqualityProbe: storagemodels.Item{"id": "7"},
	    Filters: []storagemodels.FilterClause{
	        {Name: "age", Values: []any{30}, Operator: comparison.GT},
	    },
	})
	// *q.KeyConditionExpression == "#hkeyname = :hkeyvalue"
	// *q.FilterExpression       == "#age > :age"

In a find, a non-key field literally named hkeyname, hkeyvalue, rkeyname or
rkeyvalue is rejected rather than allowed to shadow a reserved placeholder.
*/
package expr
