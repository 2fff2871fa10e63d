package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/pkg/cryptox"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "otp:entry:"
	redisIndexKey  = "otp:index"
	redisRetries   = 4
)

var ErrRedisUnavailable = errors.New("otp: redis unavailable")

type redisEntry struct {
	Code      string  `json:"code"`
	Bound     *string `json:"bound"`
	CreatedAt int64   `json:"created_at"` // unix ms
}

// RedisStore keeps entries in Redis so every instance sees the same codes.
// Entries expire through the key TTL. A sorted set indexed by creation time
// tracks live keys so the oldest can be evicted once Capacity is exceeded.
type RedisStore struct {
	cfg   Config
	redis *redis.Client
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, cfg Config) *RedisStore {
	return &RedisStore{cfg: cfg.withDefaults(), redis: client}
}

func (s *RedisStore) key(k string) string { return redisKeyPrefix + k }

func (s *RedisStore) Create(ctx context.Context, key string, bound *string) (string, error) {
	code, err := s.cfg.Generate()
	if err != nil {
		return "", err
	}

	now := s.cfg.Now()
	encoded, err := json.Marshal(redisEntry{Code: code, Bound: bound, CreatedAt: now.UnixMilli()})
	if err != nil {
		return "", fmt.Errorf("otp: encode entry: %w", err)
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(key), encoded, s.cfg.TTL)
		pipe.ZAdd(ctx, redisIndexKey, redis.Z{Score: float64(now.UnixMilli()), Member: key})
		pipe.ZRemRangeByScore(ctx, redisIndexKey, "-inf", strconv.FormatInt(now.Add(-s.cfg.TTL).UnixMilli(), 10))
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	if err := s.evict(ctx); err != nil {
		return "", err
	}
	return code, nil
}

// evictScript pops the oldest index members beyond capacity and deletes
// their entries in one step, so concurrent creates never evict twice.
//
// KEYS[1] index key, ARGV[1] capacity, ARGV[2] entry key prefix.
var evictScript = redis.NewScript(`
local over = redis.call('ZCARD', KEYS[1]) - tonumber(ARGV[1])
if over <= 0 then
	return 0
end
local popped = redis.call('ZPOPMIN', KEYS[1], over)
for i = 1, #popped, 2 do
	redis.call('DEL', ARGV[2] .. popped[i])
end
return over
`)

func (s *RedisStore) evict(ctx context.Context) error {
	err := evictScript.Run(ctx, s.redis, []string{redisIndexKey}, s.cfg.Capacity, redisKeyPrefix).Err()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Verify(ctx context.Context, key string, bound *string, code string) (bool, error) {
	k := s.key(key)

	for range redisRetries {
		var matched bool

		err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, k).Bytes()
			if err != nil {
				return err
			}

			var e redisEntry
			if err := json.Unmarshal(data, &e); err != nil {
				return fmt.Errorf("otp: decode entry: %w", err)
			}

			if s.cfg.Now().UnixMilli() >= e.CreatedAt+s.cfg.TTL.Milliseconds() {
				return nil
			}

			codeOK := cryptox.EqualString(e.Code, code)
			boundOK := domain.SameUsername(e.Bound, bound)
			if !codeOK || !boundOK {
				return nil
			}

			if s.cfg.SingleUse {
				_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
					pipe.Del(ctx, k)
					pipe.ZRem(ctx, redisIndexKey, key)
					return nil
				})
				if err != nil {
					return err
				}
			}

			matched = true
			return nil
		}, k)

		switch {
		case errors.Is(err, redis.TxFailedErr):
			continue
		case errors.Is(err, redis.Nil):
			return false, nil
		case err != nil:
			return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
		return matched, nil
	}

	// The entry kept changing under us; a concurrent Create replaced it.
	return false, nil
}

func (s *RedisStore) Revoke(ctx context.Context, key string) (bool, error) {
	var del *redis.IntCmd
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, s.key(key))
		pipe.ZRem(ctx, redisIndexKey, key)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return del.Val() > 0, nil
}

func (s *RedisStore) Stats(ctx context.Context) (Stats, error) {
	cutoff := strconv.FormatInt(s.cfg.Now().Add(-s.cfg.TTL).UnixMilli(), 10)
	if err := s.redis.ZRemRangeByScore(ctx, redisIndexKey, "-inf", cutoff).Err(); err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	n, err := s.redis.ZCard(ctx, redisIndexKey).Result()
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return Stats{Backend: "redis", Entries: int(n), Capacity: s.cfg.Capacity}, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.redis.Ping(ctx).Err()
}
