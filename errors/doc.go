/*
Package errors provides the error taxonomy raised by the query compiler and builder.

Three kinds are defined, each matched by a sentinel through errors.Is:

	var (
	    ErrModel = errors.New("error with model")  // item lacks a key field
	    ErrQuery = errors.New("error with query")  // query construction failed
	    ErrScan  = errors.New("error with scan")   // scan-specific validation
	)

A ScanError is a specialisation of a query error, so it matches both ErrScan
and ErrQuery.

Usage:

	rows, err := users.FindOne(storagemodels.Item{"id": "7"}).Execute(ctx)
	if err != nil {
	    if errors.IsQueryError(err) {
	        // illegal builder chain, missing item, or executor failure
	    }
	    return nil, err
	}

Failures coming back from an executor are re-wrapped with WrapQueryError so
callers never see a raw transport error at the top level; the original is
still reachable through errors.As.
*/
package errors
