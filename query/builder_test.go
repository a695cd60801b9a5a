/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"context"
	stderrors "errors"
	"math"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/querykit/comparison"
	"github.com/suparena/querykit/datastore/mock"
	"github.com/suparena/querykit/errors"
	"github.com/suparena/querykit/schema"
	"github.com/suparena/querykit/storagemodels"
)

func usersSchema() schema.Descriptor {
	return schema.MustNew(schema.Definition{TableName: "users", PartitionKey: "id"})
}

func scoresSchema() schema.Descriptor {
	return schema.MustNew(schema.Definition{
		TableName:    "scores",
		PartitionKey: "player",
		SortKey:      "playedAt",
		IndexName:    "by-player",
	})
}

func TestBuilderStateMachine(t *testing.T) {
	ctx := context.Background()

	t.Run("duplicate filter fails without executor calls", func(t *testing.T) {
		spy := mock.New()
		b := NewModel(usersSchema(), spy).Find(nil).
			Filter("age").Gt(30).
			Filter("age").Lt(60)

		assert.Equal(t, Failed, b.Phase())

		_, err := b.Execute(ctx)
		require.Error(t, err)
		assert.True(t, errors.IsQueryError(err))
		assert.Contains(t, err.Error(), "age filter can only be used once")
		assert.Equal(t, 0, spy.Count())
	})

	t.Run("comparison without filter names predecessor", func(t *testing.T) {
		for _, op := range comparison.Operators() {
			t.Run(string(op), func(t *testing.T) {
				spy := mock.New()
				_, err := NewModel(usersSchema(), spy).Find(nil).Compare(op, 1).Execute(ctx)
				require.Error(t, err)
				assert.True(t, errors.IsQueryError(err))
				assert.Contains(t, err.Error(), op.MethodName()+"() must follow filter()")
				assert.Equal(t, 0, spy.Count())
			})
		}
	})

	t.Run("eq without filter", func(t *testing.T) {
		b := NewModel(usersSchema(), mock.New()).Find(nil).Eq("x")
		assert.EqualError(t, b.Err(), "Invalid Query state: eq() must follow filter()")
	})

	t.Run("filter while awaiting operator", func(t *testing.T) {
		b := NewModel(usersSchema(), mock.New()).Find(nil).Filter("a").Filter("b")
		assert.Equal(t, Failed, b.Phase())
		assert.EqualError(t, b.Err(), "Invalid Query state: filter() must follow comparison")
	})

	t.Run("failed builder ignores later calls", func(t *testing.T) {
		b := NewModel(usersSchema(), mock.New()).Find(nil).Lt(1)
		first := b.Err()

		b.Filter("a").Eq(1).Limit(5).Descending().Ascending()
		assert.Same(t, first, b.Err())
		assert.Equal(t, Failed, b.Phase())
		assert.Empty(t, b.Spec().Filters)
		assert.Zero(t, b.Spec().Limit)
	})

	t.Run("dangling filter fails at execute", func(t *testing.T) {
		spy := mock.New()
		_, err := NewModel(usersSchema(), spy).Find(nil).Filter("age").Execute(ctx)
		require.Error(t, err)
		assert.True(t, errors.IsQueryError(err))
		assert.Equal(t, 0, spy.Count())
	})

	t.Run("non-positive limit fails", func(t *testing.T) {
		b := NewModel(usersSchema(), mock.New()).Find(nil).Limit(0)
		assert.Equal(t, Failed, b.Phase())
	})

	t.Run("limit bounds", func(t *testing.T) {
		b := NewModel(usersSchema(), mock.New()).Find(nil).Limit(math.MaxInt32)
		assert.Equal(t, Idle, b.Phase())
		assert.Equal(t, math.MaxInt32, b.Spec().Limit)

		for _, n := range []int{math.MaxInt32 + 1, 1<<31 + 5, 1<<32 + 1} {
			spy := mock.New()
			_, err := NewModel(usersSchema(), spy).Find(storagemodels.Item{"id": "1"}).Limit(n).Execute(ctx)
			require.Error(t, err)
			assert.True(t, errors.IsQueryError(err))
			assert.Contains(t, err.Error(), "exceeds")
			assert.Equal(t, 0, spy.Count())
		}
	})

	t.Run("limit and order keep phase", func(t *testing.T) {
		b := NewModel(usersSchema(), mock.New()).Find(nil).Filter("age")
		b.Limit(3).Descending()
		assert.Equal(t, AwaitingOperator, b.Phase())
		b.Gte(18)
		assert.Equal(t, Idle, b.Phase())

		spec := b.Spec()
		assert.Equal(t, 3, spec.Limit)
		assert.Equal(t, storagemodels.SortDesc, spec.Sort)
		assert.Equal(t, []storagemodels.FilterClause{
			{Name: "age", Values: []any{18}, Operator: comparison.GTE},
		}, spec.Filters)
	})

	t.Run("builder executes once", func(t *testing.T) {
		spy := mock.New()
		b := NewModel(usersSchema(), spy).Find(storagemodels.Item{"id": "7"})
		_, err := b.Execute(ctx)
		require.NoError(t, err)

		_, err = b.Execute(ctx)
		assert.True(t, errors.IsQueryError(err))
		assert.Equal(t, 1, spy.Count())
	})
}

func TestBuilderFind(t *testing.T) {
	ctx := context.Background()
	spy := mock.New().WithQueryItems(
		storagemodels.Item{"player": "ann", "playedAt": "2025-01-02", "score": 31},
	)

	res, err := NewModel(scoresSchema(), spy).
		Find(storagemodels.Item{"player": "ann"}).
		Filter("playedAt").Gte("2025-01-01").
		Filter("score").Gt(30).
		Limit(10).
		Descending().
		Execute(ctx)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Nil(t, res.Write)

	calls := spy.CallsTo(mock.MethodQuery)
	require.Len(t, calls, 1)
	q := calls[0].Query
	assert.Equal(t, "scores", q.TableName)
	assert.Equal(t, "by-player", aws.ToString(q.IndexName))
	assert.Equal(t, "#hkeyname = :hkeyvalue and #rkeyname >= :rkeyvalue", aws.ToString(q.KeyConditionExpression))
	assert.Equal(t, "#score > :score", aws.ToString(q.FilterExpression))
	assert.Equal(t, "ann", q.ExpressionAttributeValues[":hkeyvalue"])
	assert.Equal(t, "2025-01-01", q.ExpressionAttributeValues[":rkeyvalue"])
	assert.Equal(t, int32(10), aws.ToInt32(q.Limit))
	assert.False(t, aws.ToBool(q.ScanIndexForward))
}

func TestBuilderFindOne(t *testing.T) {
	spy := mock.New().WithQueryItems(
		storagemodels.Item{"id": "1"},
		storagemodels.Item{"id": "2"},
	)

	res, err := NewModel(usersSchema(), spy).
		FindOne(storagemodels.Item{"id": "1"}).
		Limit(50).
		Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, storagemodels.Item{"id": "1"}, res.First())
	assert.Equal(t, int32(1), aws.ToInt32(spy.Calls()[0].Query.Limit))
}

func TestBuilderScan(t *testing.T) {
	spy := mock.New().WithScanItems(storagemodels.Item{"id": "1", "status": "active"})

	res, err := NewModel(usersSchema(), spy).
		Scan(storagemodels.Item{"status": "active"}).
		Filter("age").Lte(65).
		Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)

	calls := spy.CallsTo(mock.MethodScan)
	require.Len(t, calls, 1)
	q := calls[0].Query
	assert.Nil(t, q.KeyConditionExpression)
	assert.Equal(t, "#status = :status and #age <= :age", aws.ToString(q.FilterExpression))
}

func TestBuilderFindOneAndDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("deletes by looked-up key", func(t *testing.T) {
		spy := mock.New().WithQueryItems(storagemodels.Item{"id": "7", "name": "x"})

		res, err := NewModel(usersSchema(), spy).
			FindOneAndDelete(nil).
			Filter("name").Eq("x").
			Execute(ctx)
		require.NoError(t, err)
		require.NotNil(t, res.Write)
		assert.Equal(t, storagemodels.Item{"id": "7", "name": "x"}, res.First())

		lookups := spy.CallsTo(mock.MethodQuery)
		require.Len(t, lookups, 1)
		assert.Equal(t, int32(1), aws.ToInt32(lookups[0].Query.Limit))

		deletes := spy.CallsTo(mock.MethodDelete)
		require.Len(t, deletes, 1)
		q := deletes[0].Query
		assert.Equal(t, storagemodels.Item{"id": "7"}, q.Key)
		assert.Equal(t, "#id = :id", aws.ToString(q.ConditionExpression))
		assert.Equal(t, map[string]string{"#id": "id"}, q.ExpressionAttributeNames)
		assert.Equal(t, map[string]any{":id": "7"}, q.ExpressionAttributeValues)
	})

	t.Run("no row", func(t *testing.T) {
		spy := mock.New()
		_, err := NewModel(usersSchema(), spy).
			FindOneAndDelete(storagemodels.Item{"id": "missing"}).
			Execute(ctx)
		require.Error(t, err)
		assert.True(t, errors.IsQueryError(err))
		assert.Contains(t, err.Error(), "cannot operate on non-existing item")
		assert.Empty(t, spy.CallsTo(mock.MethodDelete))
	})
}

func TestBuilderFindOneAndUpdate(t *testing.T) {
	spy := mock.New().WithQueryItems(
		storagemodels.Item{"player": "ann", "playedAt": "2025-01-02", "score": 31},
	)

	_, err := NewModel(scoresSchema(), spy).
		FindOneAndUpdate(
			storagemodels.Item{"player": "ann"},
			storagemodels.Item{"score": 40, "player": "bob"},
		).
		Execute(context.Background())
	require.NoError(t, err)

	updates := spy.CallsTo(mock.MethodUpdate)
	require.Len(t, updates, 1)
	q := updates[0].Query
	assert.Equal(t, storagemodels.Item{"player": "ann", "playedAt": "2025-01-02"}, q.Key)
	assert.Equal(t, map[string]storagemodels.AttributeUpdate{
		"score": {Action: storagemodels.ActionPut, Value: 40},
	}, q.AttributeUpdates)
}

func TestBuilderExecutorFailure(t *testing.T) {
	boom := stderrors.New("connection reset")

	t.Run("read", func(t *testing.T) {
		spy := mock.New().WithError(mock.MethodQuery, boom)
		_, err := NewModel(usersSchema(), spy).Find(storagemodels.Item{"id": "1"}).Execute(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsQueryError(err))
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("write after lookup", func(t *testing.T) {
		spy := mock.New().
			WithQueryItems(storagemodels.Item{"id": "1"}).
			WithError(mock.MethodDelete, boom)
		_, err := NewModel(usersSchema(), spy).FindOneAndDelete(storagemodels.Item{"id": "1"}).Execute(context.Background())
		assert.True(t, errors.IsQueryError(err))
		assert.ErrorIs(t, err, boom)
	})
}

func TestParseOperation(t *testing.T) {
	for _, op := range []Operation{OpFind, OpFindOne, OpScan, OpFindOneAndUpdate, OpFindOneAndDelete} {
		got, err := ParseOperation(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, got)
	}
	_, err := ParseOperation("upsert")
	assert.Error(t, err)
}
