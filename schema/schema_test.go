/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/querykit/errors"
)

func TestNew(t *testing.T) {
	d, err := New(Definition{
		Name:         "orders",
		TableName:    "orders-table",
		PartitionKey: "userId",
		SortKey:      "orderId",
		IndexName:    "byStatus",
	})
	require.NoError(t, err)

	assert.Equal(t, "orders", d.Name())
	assert.Equal(t, "orders-table", d.TableName())
	assert.Equal(t, "userId", d.PartitionKey())
	assert.Equal(t, "orderId", d.SortKey())
	assert.Equal(t, "byStatus", d.IndexName())
	assert.True(t, d.HasSortKey())
	assert.True(t, d.IsKey("userId"))
	assert.True(t, d.IsKey("orderId"))
	assert.False(t, d.IsKey("status"))
	assert.Equal(t, []string{"userId", "orderId"}, d.KeyFields())
	assert.True(t, d.Valid())
}

func TestNew_NoSortKey(t *testing.T) {
	d, err := New(Definition{TableName: "users", PartitionKey: "id"})
	require.NoError(t, err)

	assert.Equal(t, "users", d.Name())
	assert.False(t, d.HasSortKey())
	assert.False(t, d.IsKey(""))
	assert.Equal(t, []string{"id"}, d.KeyFields())
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{name: "missing table", def: Definition{PartitionKey: "id"}},
		{name: "missing partition key", def: Definition{TableName: "users"}},
		{name: "blank partition key", def: Definition{TableName: "users", PartitionKey: "  "}},
		{name: "sort key equals partition key", def: Definition{TableName: "users", PartitionKey: "id", SortKey: "id"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.def)
			require.Error(t, err)
			assert.True(t, errors.IsModelError(err))
		})
	}
}

func TestMustNew_Panics(t *testing.T) {
	assert.Panics(t, func() { MustNew(Definition{}) })
}

func TestDescriptor_Definition(t *testing.T) {
	def := Definition{Name: "users", TableName: "users", PartitionKey: "id", SortKey: "createdAt"}
	assert.Equal(t, def, MustNew(def).Definition())
}
