package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprep/internal/pipeline"
)

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()

	res := &pipeline.Result{ProcessedRows: 3}
	entry, err := s.Save(ctx, "a.csv", res)
	require.NoError(t, err)
	require.NotEmpty(t, entry.ID)

	got, err := s.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "a.csv", got.Filename)
	assert.Equal(t, 3, got.Result.ProcessedRows)

	list, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, s.Delete(ctx, entry.ID))
	_, err = s.Get(ctx, entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemStoreMissingID(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	_, err := s.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, "nope"), ErrNotFound)
}

func TestMemStoreListNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	first, err := s.Save(ctx, "first.csv", &pipeline.Result{})
	require.NoError(t, err)
	second, err := s.Save(ctx, "second.csv", &pipeline.Result{})
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	if list[0].ID == first.ID {
		assert.Equal(t, second.ID, list[1].ID)
		assert.False(t, list[0].CreatedAt.Before(list[1].CreatedAt))
	}
}
