/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/suparena/querykit/comparison"
)

// Item is a document as stored in a table: attribute name to scalar value.
type Item = map[string]any

// SortDirection selects the traversal order of a query.
type SortDirection string

const (
	// SortNone leaves the store's default (forward) order in place.
	SortNone SortDirection = ""
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// FilterClause restricts a single attribute with one comparison.
type FilterClause struct {
	// Name is the attribute name the clause applies to.
	Name string
	// Values holds the comparison operands; only the first is used by the
	// comparison operators.
	Values []any
	// Operator is the symbolic comparison, e.g. comparison.EQ.
	Operator comparison.Operator
}

// QuerySpec is the structured, pre-compilation description of a read.
type QuerySpec struct {
	// EqualityProbe maps attribute names to values that must match exactly.
	EqualityProbe Item
	// Filters are explicit clauses, compiled in order.
	Filters []FilterClause
	// Limit caps the number of evaluated items; zero means no limit.
	Limit int
	// Sort selects the traversal order of a query.
	Sort SortDirection
}

// AttributeUpdate is a single "replace" action applied by an update.
type AttributeUpdate struct {
	Action string `json:"Action"`
	Value  any    `json:"Value"`
}

// ActionPut replaces the attribute value.
const ActionPut = "PUT"

// CompiledQuery is the wire-ready document handed to an executor.
// Field names match the store's request parameters.
type CompiledQuery struct {
	TableName                 string                     `json:"TableName"`
	IndexName                 *string                    `json:"IndexName,omitempty"`
	KeyConditionExpression    *string                    `json:"KeyConditionExpression,omitempty"`
	FilterExpression          *string                    `json:"FilterExpression,omitempty"`
	ConditionExpression       *string                    `json:"ConditionExpression,omitempty"`
	ExpressionAttributeNames  map[string]string          `json:"ExpressionAttributeNames,omitempty"`
	ExpressionAttributeValues map[string]any             `json:"ExpressionAttributeValues,omitempty"`
	Limit                     *int32                     `json:"Limit,omitempty"`
	ScanIndexForward          *bool                      `json:"ScanIndexForward,omitempty"`
	Item                      Item                       `json:"Item,omitempty"`
	Key                       Item                       `json:"Key,omitempty"`
	AttributeUpdates          map[string]AttributeUpdate `json:"AttributeUpdates,omitempty"`
}

// ReadResult is returned by the read operations of an executor.
type ReadResult struct {
	Items []Item
}

// WriteResult is the opaque acknowledgement of a write.
type WriteResult struct {
	// Attributes holds any attributes the store chose to return.
	Attributes Item
}

// Result is what a builder hands back from Execute.
type Result struct {
	// Items are the rows read; for compound operations, the looked-up row.
	Items []Item
	// Write is set for operations that performed a write.
	Write *WriteResult
}

// First returns the first row, or nil when there is none.
func (r *Result) First() Item {
	if r == nil || len(r.Items) == 0 {
		return nil
	}
	return r.Items[0]
}

// EncodeItem converts a struct (or map) into an Item, honouring dynamodbav tags.
func EncodeItem(v any) (Item, error) {
	av, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, err
	}
	item := Item{}
	if err := attributevalue.UnmarshalMap(av, &item); err != nil {
		return nil, err
	}
	return item, nil
}

// DecodeItems converts rows into typed values, honouring dynamodbav tags.
func DecodeItems[T any](items []Item) ([]T, error) {
	out := make([]T, 0, len(items))
	for _, item := range items {
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return nil, err
		}
		var v T
		if err := attributevalue.UnmarshalMap(av, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
