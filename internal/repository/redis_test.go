package repository

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	rdb, err := NewRedisClient(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	defer rdb.Close()

	require.NoError(t, rdb.Set(context.Background(), "k", "v", 0).Err())
	v, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)
}

func TestNewRedisClientRequiresPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("s3cret")

	_, err := NewRedisClient(context.Background(), mr.Addr(), "")
	require.Error(t, err)

	rdb, err := NewRedisClient(context.Background(), mr.Addr(), "s3cret")
	require.NoError(t, err)
	rdb.Close()
}
