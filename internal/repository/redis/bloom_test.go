package redis

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloomAdd(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBloomRepo(client, 1024)

	for _, offset := range repo.getOffset(42) {
		mock.ExpectSetBit(KeyPostBloom, int64(offset), 1).SetVal(0)
	}

	err := repo.Add(context.Background(), 42)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBloomExists_AllBitsSet(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBloomRepo(client, 1024)

	for _, offset := range repo.getOffset(42) {
		mock.ExpectGetBit(KeyPostBloom, int64(offset)).SetVal(1)
	}

	exists, err := repo.Exists(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestBloomExists_MissingBit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisBloomRepo(client, 1024)

	offsets := repo.getOffset(7)
	mock.ExpectGetBit(KeyPostBloom, int64(offsets[0])).SetVal(1)
	mock.ExpectGetBit(KeyPostBloom, int64(offsets[1])).SetVal(0)
	mock.ExpectGetBit(KeyPostBloom, int64(offsets[2])).SetVal(0)

	exists, err := repo.Exists(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBloomOffsetsAreStableAndBounded(t *testing.T) {
	repo := NewRedisBloomRepo(nil, 1024)

	first := repo.getOffset(123)
	second := repo.getOffset(123)
	assert.Equal(t, first, second)
	for _, offset := range first {
		assert.Less(t, offset, uint64(1024))
	}
}
