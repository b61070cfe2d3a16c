package reputation_test

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/infra/reputation"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	suspiciousKey = "test:suspicious"
	blockedKey    = "test:blocked"
)

func TestRedisStore_MarkSuspicious(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectSAdd(suspiciousKey, "10.0.0.1").SetVal(1)

	s := reputation.NewRedisStore(client, "test")
	require.NoError(t, s.MarkSuspicious(context.Background(), "10.0.0.1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_BlockIndefinitelyUsesInfiniteScore(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectZAddArgs(blockedKey, redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: math.Inf(1), Member: "10.0.0.1"}},
	}).SetVal(1)

	s := reputation.NewRedisStore(client, "test")
	require.NoError(t, s.Block(context.Background(), "10.0.0.1", time.Time{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_IsBlocked(t *testing.T) {
	client, mock := redismock.NewClientMock()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectZScore(blockedKey, "10.0.0.1").SetVal(float64(now.Add(time.Minute).UnixMilli()))
	mock.ExpectZScore(blockedKey, "10.0.0.2").SetVal(float64(now.Add(-time.Minute).UnixMilli()))
	mock.ExpectZScore(blockedKey, "10.0.0.3").RedisNil()
	mock.ExpectZScore(blockedKey, "10.0.0.4").SetErr(errors.New("connection refused"))

	s := reputation.NewRedisStore(client, "test")
	ctx := context.Background()

	blocked, err := s.IsBlocked(ctx, "10.0.0.1", now)
	require.NoError(t, err)
	assert.True(t, blocked)

	blocked, err = s.IsBlocked(ctx, "10.0.0.2", now)
	require.NoError(t, err)
	assert.False(t, blocked)

	blocked, err = s.IsBlocked(ctx, "10.0.0.3", now)
	require.NoError(t, err)
	assert.False(t, blocked)

	_, err = s.IsBlocked(ctx, "10.0.0.4", now)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStore_BlockedListsOnlyActiveEntries(t *testing.T) {
	client, mock := redismock.NewClientMock()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	until := now.Add(time.Hour)

	mock.ExpectZRangeByScoreWithScores(blockedKey, &redis.ZRangeBy{
		Min: "(" + strconv.FormatInt(now.UnixMilli(), 10),
		Max: "+inf",
	}).SetVal([]redis.Z{
		{Score: float64(until.UnixMilli()), Member: "10.0.0.1"},
		{Score: math.Inf(1), Member: "10.0.0.2"},
	})

	s := reputation.NewRedisStore(client, "test")
	entries, err := s.Blocked(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.NotNil(t, entries[0].Until)
	assert.True(t, until.Equal(*entries[0].Until))
	assert.Equal(t, "10.0.0.2", entries[1].Address)
	assert.Nil(t, entries[1].Until)
}

func TestRedisStore_PruneExpired(t *testing.T) {
	client, mock := redismock.NewClientMock()
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectZRemRangeByScore(blockedKey, "-inf", strconv.FormatInt(now.UnixMilli(), 10)).SetVal(3)

	s := reputation.NewRedisStore(client, "test")
	n, err := s.PruneExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestRedisStore_ClearAndSuspicious(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectSMembers(suspiciousKey).SetVal([]string{"10.0.0.1"})
	mock.ExpectDel(suspiciousKey, blockedKey).SetVal(2)

	s := reputation.NewRedisStore(client, "test")
	ctx := context.Background()

	members, err := s.Suspicious(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.1"}, members)

	require.NoError(t, s.Clear(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
