/*
Package storagemodels defines the data structures shared by the compiler,
the builder and the executors.

Key Types:

QuerySpec:
The structured description of a read before compilation:

	spec := QuerySpec{
	    EqualityProbe: Item{"id": "7"},
	    Filters: []FilterClause{
	        {Name: "age", Values: []any{30}, Operator: comparison.GT},
	    },
	    Limit: 10,
	    Sort:  SortDesc,
	}

CompiledQuery:
The wire-ready document. Its JSON form uses the store's parameter names
verbatim (TableName, KeyConditionExpression, ExpressionAttributeNames, ...):

	{
	    "TableName": "users",
	    "KeyConditionExpression": "#hkeyname = :hkeyvalue",
	    "FilterExpression": "#age > :age",
	    "ExpressionAttributeNames": {"#hkeyname": "id", "#age": "age"},
	    "ExpressionAttributeValues": {":hkeyvalue": "7", ":age": 30},
	    "Limit": 10,
	    "ScanIndexForward": false
	}

A CompiledQuery is never mutated after it is built; executors receive it by value.
*/
package storagemodels
