package locks

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/Soulinho/pandawok-project/internal/logger"
)

const (
	redisKeyPrefix = "pandawok:lock:table:"
	redisRetry     = 25 * time.Millisecond
)

// compare-and-delete so a holder never frees a lease it no longer owns
var unlockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis is a Locker shared by every instance pointing at the same server.
// Each key is a lease that expires after ttl if its holder dies.
type Redis struct {
	client  *redis.Client
	timeout time.Duration
	ttl     time.Duration
}

func NewRedis(client *redis.Client, timeout, ttl time.Duration) *Redis {
	return &Redis{client: client, timeout: timeout, ttl: ttl}
}

// NewRedisClient parses url and pings the server. It returns nil when the
// server cannot be reached.
func NewRedisClient(url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.ErrorLogger.WithError(err).Error("invalid REDIS_URL")
		return nil
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.ErrorLogger.WithError(err).Error("redis unreachable, falling back to local locks")
		_ = client.Close()
		return nil
	}
	return client
}

func (r *Redis) Acquire(ctx context.Context, keys ...uint) (func(), error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	token := uuid.NewString()

	var held []func()
	for _, key := range ordered(keys) {
		name := fmt.Sprintf("%s%d", redisKeyPrefix, key)
		if err := r.take(ctx, name, token); err != nil {
			releaseAll(held)()
			return nil, err
		}
		held = append(held, func() { r.free(name, token) })
	}

	var once sync.Once
	release := releaseAll(held)
	return func() { once.Do(release) }, nil
}

func (r *Redis) take(ctx context.Context, name, token string) error {
	for {
		ok, err := r.client.SetNX(ctx, name, token, r.ttl).Result()
		if err != nil {
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ErrTimeout
			}
			return fmt.Errorf("redis lock %s: %w", name, err)
		}
		if ok {
			return nil
		}

		select {
		case <-time.After(redisRetry):
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return ErrTimeout
			}
			return ctx.Err()
		}
	}
}

func (r *Redis) free(name, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	if err := unlockScript.Run(ctx, r.client, []string{name}, token).Err(); err != nil {
		logger.ErrorLogger.WithError(err).WithField("key", name).Error("redis unlock failed")
	}
}

var _ Locker = (*Redis)(nil)
