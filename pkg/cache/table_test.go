package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTable_MissYieldsEmpty(t *testing.T) {
	c := NewMemoryCache()

	table, err := GetTable(context.Background(), c, "object_fields")
	require.NoError(t, err)
	assert.Empty(t, table)
	assert.NotNil(t, table)
}

func TestMergeTable_PreservesOtherClasses(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	err := MergeTable(ctx, c, "object_fields", "app.Post", map[string]string{
		"title": "title",
		"body":  "body_text",
	})
	require.NoError(t, err)

	err = MergeTable(ctx, c, "object_fields", "app.Comment", map[string]string{
		"author": "author",
	})
	require.NoError(t, err)

	table, err := GetTable(ctx, c, "object_fields")
	require.NoError(t, err)

	assert.Equal(t, "body_text", table["app.Post"]["body"])
	assert.Equal(t, "author", table["app.Comment"]["author"])
}

func TestMergeTable_ReplacesOwnRow(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, MergeTable(ctx, c, "embedded_fields", "app.Post", map[string]string{
		"old": "app.Old",
	}))
	require.NoError(t, MergeTable(ctx, c, "embedded_fields", "app.Post", map[string]string{
		"meta": "app.Meta",
	}))

	table, err := GetTable(ctx, c, "embedded_fields")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"meta": "app.Meta"}, table["app.Post"])
}

func TestGetTable_MalformedPayload(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "broken", []byte("not json"), 0))

	_, err := GetTable(ctx, c, "broken")
	assert.Error(t, err)
}
