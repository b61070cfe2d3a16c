package reputation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/NeuralTrust/AuthShield/pkg/domain/threat"
	"github.com/go-redis/redis/v8"
)

const (
	defaultKeyPrefix = "authshield:reputation"
	suspiciousSuffix = ":suspicious"
	blockedSuffix    = ":blocked"
)

// RedisStore shares reputation across instances. Suspicious addresses live
// in a set; blocked addresses live in a sorted set scored by the expiry in
// unix milliseconds, with +inf for indefinite blocks.
type RedisStore struct {
	client        redis.Cmdable
	suspiciousKey string
	blockedKey    string
}

var _ threat.ReputationStore = (*RedisStore)(nil)

func NewRedisStore(client redis.Cmdable, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{
		client:        client,
		suspiciousKey: keyPrefix + suspiciousSuffix,
		blockedKey:    keyPrefix + blockedSuffix,
	}
}

func (s *RedisStore) MarkSuspicious(ctx context.Context, address string) error {
	if err := s.client.SAdd(ctx, s.suspiciousKey, address).Err(); err != nil {
		return fmt.Errorf("failed to mark %s suspicious: %w", address, err)
	}
	return nil
}

// Block uses ZADD GT so an existing longer block is kept.
func (s *RedisStore) Block(ctx context.Context, address string, until time.Time) error {
	err := s.client.ZAddArgs(ctx, s.blockedKey, redis.ZAddArgs{
		GT:      true,
		Members: []redis.Z{{Score: expiryScore(until), Member: address}},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to block %s: %w", address, err)
	}
	return nil
}

func (s *RedisStore) IsBlocked(ctx context.Context, address string, now time.Time) (bool, error) {
	score, err := s.client.ZScore(ctx, s.blockedKey, address).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check block for %s: %w", address, err)
	}
	return score > float64(now.UnixMilli()), nil
}

func (s *RedisStore) IsSuspicious(ctx context.Context, address string) (bool, error) {
	ok, err := s.client.SIsMember(ctx, s.suspiciousKey, address).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check suspicion for %s: %w", address, err)
	}
	return ok, nil
}

func (s *RedisStore) Remove(ctx context.Context, address string) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SRem(ctx, s.suspiciousKey, address)
		pipe.ZRem(ctx, s.blockedKey, address)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", address, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.suspiciousKey, s.blockedKey).Err(); err != nil {
		return fmt.Errorf("failed to clear reputation: %w", err)
	}
	return nil
}

func (s *RedisStore) Blocked(ctx context.Context, now time.Time) ([]threat.BlockEntry, error) {
	members, err := s.client.ZRangeByScoreWithScores(ctx, s.blockedKey, &redis.ZRangeBy{
		Min: "(" + strconv.FormatInt(now.UnixMilli(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list blocked addresses: %w", err)
	}
	out := make([]threat.BlockEntry, 0, len(members))
	for _, m := range members {
		address, ok := m.Member.(string)
		if !ok {
			continue
		}
		entry := threat.BlockEntry{Address: address}
		if !math.IsInf(m.Score, 1) {
			until := time.UnixMilli(int64(m.Score)).UTC()
			entry.Until = &until
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *RedisStore) Suspicious(ctx context.Context) ([]string, error) {
	members, err := s.client.SMembers(ctx, s.suspiciousKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list suspicious addresses: %w", err)
	}
	return members, nil
}

func (s *RedisStore) PruneExpired(ctx context.Context, now time.Time) (int, error) {
	n, err := s.client.ZRemRangeByScore(ctx, s.blockedKey, "-inf", strconv.FormatInt(now.UnixMilli(), 10)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to prune expired blocks: %w", err)
	}
	return int(n), nil
}

func expiryScore(until time.Time) float64 {
	if until.IsZero() {
		return math.Inf(1)
	}
	return float64(until.UnixMilli())
}
