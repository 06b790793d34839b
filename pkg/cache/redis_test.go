package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewRedisClient(mr.Addr(), "")
	require.NoError(t, err)
	require.NotNil(t, client)
	defer Close(client)

	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestNewRedisClient_EmptyAddrDisablesCache(t *testing.T) {
	client, err := NewRedisClient("", "")
	require.NoError(t, err)
	assert.Nil(t, client)
	Close(client)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	client, err := NewRedisClient(addr, "")
	assert.Error(t, err)
	assert.Nil(t, client)
}
