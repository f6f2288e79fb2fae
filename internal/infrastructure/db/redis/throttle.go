package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts login attempts per email in a fixed window.
// Key format: login:fail:<email>
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// reserveAttempt increments the counter and starts the window on the first
// attempt. Running both in one script keeps concurrent logins from reading
// the same count.
var reserveAttempt = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return n
`)

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	return &LoginThrottle{
		client:      client,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

// Allow counts an attempt for email and reports whether it is within the
// limit. Successful logins clear the count through Reset.
func (t *LoginThrottle) Allow(ctx context.Context, email string) (bool, error) {
	n, err := reserveAttempt.Run(ctx, t.client, []string{t.key(email)}, t.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("throttle reserve: %w", err)
	}
	return n <= t.maxAttempts, nil
}

// Reset clears the failure counter for email.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(email string) string {
	return "login:fail:" + strings.ToLower(email)
}
