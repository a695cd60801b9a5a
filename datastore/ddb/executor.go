/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/querykit/datastore"
	"github.com/suparena/querykit/storagemodels"
	"go.uber.org/zap"
)

const (
	defaultMaxRetries   = 3
	defaultRetryBackoff = 100 * time.Millisecond
)

// Executor runs compiled documents against DynamoDB.
type Executor struct {
	client       DynamoDBClient
	logger       *zap.Logger
	maxRetries   int
	retryBackoff time.Duration
}

var _ datastore.Executor = (*Executor)(nil)

// Option configures an Executor.
type Option func(*Executor)

// WithMaxRetries sets how many times a throttled call is retried.
func WithMaxRetries(n int) Option {
	return func(e *Executor) {
		if n >= 0 {
			e.maxRetries = n
		}
	}
}

// WithRetryBackoff sets the base backoff between retries.
func WithRetryBackoff(d time.Duration) Option {
	return func(e *Executor) {
		e.retryBackoff = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Executor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExecutor wraps client.
func NewExecutor(client DynamoDBClient, opts ...Option) *Executor {
	e := &Executor{
		client:       client,
		logger:       zap.NewNop(),
		maxRetries:   defaultMaxRetries,
		retryBackoff: defaultRetryBackoff,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Executor) Get(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error) {
	key, err := marshalItem(q.Key)
	if err != nil {
		return nil, err
	}

	out, err := withRetry(ctx, e, "GetItem", func(ctx context.Context) (*sdk.GetItemOutput, error) {
		return e.client.GetItem(ctx, &sdk.GetItemInput{
			TableName: &q.TableName,
			Key:       key,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return &storagemodels.ReadResult{Items: []storagemodels.Item{}}, nil
	}

	items, err := unmarshalItems([]map[string]types.AttributeValue{out.Item})
	if err != nil {
		return nil, err
	}
	return &storagemodels.ReadResult{Items: items}, nil
}

func (e *Executor) Query(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error) {
	values, err := marshalItem(q.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	input := &sdk.QueryInput{
		TableName:                 &q.TableName,
		IndexName:                 q.IndexName,
		KeyConditionExpression:    q.KeyConditionExpression,
		FilterExpression:          q.FilterExpression,
		ExpressionAttributeNames:  q.ExpressionAttributeNames,
		ExpressionAttributeValues: values,
		Limit:                     q.Limit,
		ScanIndexForward:          q.ScanIndexForward,
	}

	out, err := withRetry(ctx, e, "Query", func(ctx context.Context) (*sdk.QueryOutput, error) {
		return e.client.Query(ctx, input)
	})
	if err != nil {
		return nil, fmt.Errorf("Query error: %w", err)
	}

	items, err := unmarshalItems(out.Items)
	if err != nil {
		return nil, err
	}
	return &storagemodels.ReadResult{Items: items}, nil
}

func (e *Executor) Scan(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.ReadResult, error) {
	values, err := marshalItem(q.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}
	input := &sdk.ScanInput{
		TableName:                 &q.TableName,
		IndexName:                 q.IndexName,
		FilterExpression:          q.FilterExpression,
		ExpressionAttributeNames:  q.ExpressionAttributeNames,
		ExpressionAttributeValues: values,
		Limit:                     q.Limit,
	}

	out, err := withRetry(ctx, e, "Scan", func(ctx context.Context) (*sdk.ScanOutput, error) {
		return e.client.Scan(ctx, input)
	})
	if err != nil {
		return nil, fmt.Errorf("Scan error: %w", err)
	}

	items, err := unmarshalItems(out.Items)
	if err != nil {
		return nil, err
	}
	return &storagemodels.ReadResult{Items: items}, nil
}

func (e *Executor) Put(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error) {
	item, err := marshalItem(q.Item)
	if err != nil {
		return nil, err
	}

	_, err = withRetry(ctx, e, "PutItem", func(ctx context.Context) (*sdk.PutItemOutput, error) {
		return e.client.PutItem(ctx, &sdk.PutItemInput{
			TableName: &q.TableName,
			Item:      item,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("PutItem failed: %w", err)
	}
	return &storagemodels.WriteResult{}, nil
}

func (e *Executor) Update(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error) {
	key, err := marshalItem(q.Key)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]types.AttributeValueUpdate, len(q.AttributeUpdates))
	for field, u := range q.AttributeUpdates {
		av, err := attributevalue.Marshal(u.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal update for %q: %w", field, err)
		}
		updates[field] = types.AttributeValueUpdate{
			Action: types.AttributeAction(u.Action),
			Value:  av,
		}
	}

	out, err := withRetry(ctx, e, "UpdateItem", func(ctx context.Context) (*sdk.UpdateItemOutput, error) {
		return e.client.UpdateItem(ctx, &sdk.UpdateItemInput{
			TableName:        &q.TableName,
			Key:              key,
			AttributeUpdates: updates,
			ReturnValues:     types.ReturnValueAllNew,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("UpdateItem failed: %w", err)
	}
	return writeResult(out.Attributes)
}

func (e *Executor) Delete(ctx context.Context, q storagemodels.CompiledQuery) (*storagemodels.WriteResult, error) {
	key, err := marshalItem(q.Key)
	if err != nil {
		return nil, err
	}
	values, err := marshalItem(q.ExpressionAttributeValues)
	if err != nil {
		return nil, err
	}

	out, err := withRetry(ctx, e, "DeleteItem", func(ctx context.Context) (*sdk.DeleteItemOutput, error) {
		return e.client.DeleteItem(ctx, &sdk.DeleteItemInput{
			TableName:                 &q.TableName,
			Key:                       key,
			ConditionExpression:       q.ConditionExpression,
			ExpressionAttributeNames:  q.ExpressionAttributeNames,
			ExpressionAttributeValues: values,
			ReturnValues:              types.ReturnValueAllOld,
		})
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return nil, fmt.Errorf("delete condition failed: %w", err)
		}
		return nil, fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return writeResult(out.Attributes)
}

func marshalItem(m map[string]any) (map[string]types.AttributeValue, error) {
	if len(m) == 0 {
		return nil, nil
	}
	av, err := attributevalue.MarshalMap(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attribute values: %w", err)
	}
	return av, nil
}

func unmarshalItems(rows []map[string]types.AttributeValue) ([]storagemodels.Item, error) {
	items := make([]storagemodels.Item, 0, len(rows))
	for _, row := range rows {
		var item storagemodels.Item
		if err := attributevalue.UnmarshalMap(row, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal item: %w", err)
		}
		items = append(items, item)
	}
	return items, nil
}

func writeResult(attrs map[string]types.AttributeValue) (*storagemodels.WriteResult, error) {
	if len(attrs) == 0 {
		return &storagemodels.WriteResult{}, nil
	}
	var item storagemodels.Item
	if err := attributevalue.UnmarshalMap(attrs, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal returned attributes: %w", err)
	}
	return &storagemodels.WriteResult{Attributes: item}, nil
}
