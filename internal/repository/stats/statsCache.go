package statsCache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis"
	pkgerrors "github.com/pkg/errors"
)

const (
	SupplyStatsKey   = ":stats:supplies"
	DonationStatsKey = ":stats:donations"
)

var errStale = errors.New("cache: invalidated since read")

type IStatsCache interface {
	// Get decodes the cached value for key into v and reports whether there was one.
	Get(ctx context.Context, key string, v interface{}) (bool, error)
	// Generation changes every time key is invalidated. Read it before loading the
	// value that will be passed to Set.
	Generation(ctx context.Context, key string) (int64, error)
	// Set stores v and reports true, unless key was invalidated after generation
	// was read.
	Set(ctx context.Context, key string, generation int64, v interface{}) (bool, error)
	Invalidate(ctx context.Context, keys ...string) error
}

type StatsCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New returns a redis backed cache, or one that never hits when rdb is nil.
func New(rdb *redis.Client, ttl time.Duration) IStatsCache {
	if rdb == nil {
		return noCache{}
	}
	return &StatsCache{rdb: rdb, ttl: ttl}
}

func generationKey(key string) string {
	return key + ":gen"
}

func (s *StatsCache) Get(ctx context.Context, key string, v interface{}) (bool, error) {
	data, err := s.rdb.WithContext(ctx).Get(key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrap(err, "cache: Get")
	}

	if err := json.Unmarshal(data, v); err != nil {
		return false, pkgerrors.Wrap(err, "cache: decode")
	}
	return true, nil
}

func (s *StatsCache) Generation(ctx context.Context, key string) (int64, error) {
	generation, err := s.rdb.WithContext(ctx).Get(generationKey(key)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return generation, pkgerrors.Wrap(err, "cache: Generation")
}

func (s *StatsCache) Set(ctx context.Context, key string, generation int64, v interface{}) (bool, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return false, pkgerrors.Wrap(err, "cache: encode")
	}

	genKey := generationKey(key)
	err = s.rdb.WithContext(ctx).Watch(func(tx *redis.Tx) error {
		current, err := tx.Get(genKey).Int64()
		if err != nil && err != redis.Nil {
			return err
		}
		if current != generation {
			return errStale
		}

		_, err = tx.Pipelined(func(pipe redis.Pipeliner) error {
			pipe.Set(key, data, s.ttl)
			return nil
		})
		return err
	}, genKey)

	if err == errStale || err == redis.TxFailedErr {
		return false, nil
	}
	if err != nil {
		return false, pkgerrors.Wrap(err, "cache: Set")
	}
	return true, nil
}

// Invalidate drops each key and bumps its generation in one transaction.
func (s *StatsCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := s.rdb.WithContext(ctx).TxPipelined(func(pipe redis.Pipeliner) error {
		for _, key := range keys {
			pipe.Incr(generationKey(key))
			pipe.Del(key)
		}
		return nil
	})
	return pkgerrors.Wrap(err, "cache: Invalidate")
}

type noCache struct{}

func (noCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (noCache) Generation(context.Context, string) (int64, error) { return 0, nil }
func (noCache) Set(context.Context, string, int64, interface{}) (bool, error) { return false, nil }
func (noCache) Invalidate(context.Context, ...string) error { return nil }
