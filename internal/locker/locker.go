// Package locker serializes mutations of a single document across server
// instances.
package locker

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"github.com/go-redis/redis/v9"
	"github.com/pkg/errors"
	"time"
)

var ErrNotAcquired = errors.New("lock not acquired")

// Unlock releases a lock. It is safe to call more than once.
type Unlock func()

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by someone else is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	Client *redis.Client
	TTL    time.Duration
	Retry  time.Duration
	Logger logger
}

type logger interface {
	Errorf(format string, v ...any)
}

func NewRedisLocker(client *redis.Client, ttl time.Duration, l logger) *RedisLocker {
	return &RedisLocker{
		Client: client,
		TTL:    ttl,
		Retry:  25 * time.Millisecond,
		Logger: l,
	}
}

// Lock blocks until key is acquired or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string) (Unlock, error) {
	token, err := newToken()
	if err != nil {
		return nil, errors.Wrap(err, "error generating lock token")
	}
	key = "lock:" + key

	for {
		ok, err := l.Client.SetNX(ctx, key, token, l.TTL).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "error acquiring lock: %s", key)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ErrNotAcquired, "%s: %v", key, ctx.Err())
		case <-time.After(l.Retry):
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		if err := releaseScript.Run(context.Background(), l.Client, []string{key}, token).Err(); err != nil {
			l.Logger.Errorf("RedisLocker: Error releasing lock: %s, err: %v", key, err)
		}
	}, nil
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Noop is used when no Redis is configured; it never blocks.
type Noop struct{}

func (Noop) Lock(context.Context, string) (Unlock, error) {
	return func() {}, nil
}
