package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lucasnoronhagois/e-commerce-sub000/internal/core/ports"
)

const (
	defaultMaxFailures = 5
	defaultWindow      = 15 * time.Minute
)

// incrExpire bumps the failure counter and starts the window on the first hit.
var incrExpire = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return current
`)

// LoginLimiter counts failed logins per (login, ip) in a fixed window.
// Key format: login:fail:<login>:<ip>
type LoginLimiter struct {
	client      redis.Cmdable
	maxFailures int64
	window      time.Duration
}

var _ ports.LoginLimiter = (*LoginLimiter)(nil)

// NewLoginLimiter returns a limiter that blocks a (login, ip) pair after
// maxFailures failures until window elapses since the first one.
func NewLoginLimiter(client redis.Cmdable, maxFailures int, window time.Duration) *LoginLimiter {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, maxFailures: int64(maxFailures), window: window}
}

// Allow reports whether another attempt may be made and, when not, how long
// until the window resets.
func (l *LoginLimiter) Allow(ctx context.Context, login, ip string) (bool, time.Duration, error) {
	key := failureKey(login, ip)
	n, err := l.client.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return true, 0, nil
	}
	if err != nil {
		return false, 0, fmt.Errorf("login limiter get: %w", err)
	}
	if n < l.maxFailures {
		return true, 0, nil
	}

	ttl, err := l.client.PTTL(ctx, key).Result()
	if err != nil {
		return false, 0, fmt.Errorf("login limiter ttl: %w", err)
	}
	if ttl < 0 {
		ttl = l.window
	}
	return false, ttl, nil
}

func (l *LoginLimiter) Failure(ctx context.Context, login, ip string) error {
	if err := incrExpire.Run(ctx, l.client, []string{failureKey(login, ip)}, l.window.Milliseconds()).Err(); err != nil {
		return fmt.Errorf("login limiter incr: %w", err)
	}
	return nil
}

func (l *LoginLimiter) Success(ctx context.Context, login, ip string) error {
	if err := l.client.Del(ctx, failureKey(login, ip)).Err(); err != nil {
		return fmt.Errorf("login limiter reset: %w", err)
	}
	return nil
}

func failureKey(login, ip string) string {
	if ip == "" {
		ip = "unknown"
	}
	return "login:fail:" + strings.ToLower(login) + ":" + ip
}
