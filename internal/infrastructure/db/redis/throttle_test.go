package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachable returns a client whose every command fails fast.
func unreachable(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestLoginThrottle_KeyIsCaseInsensitive(t *testing.T) {
	th := NewLoginThrottle(nil, 5, time.Minute)

	assert.Equal(t, "login:fail:bob@example.com", th.key("Bob@Example.com"))
}

func TestLoginThrottle_ErrorsAreReported(t *testing.T) {
	th := NewLoginThrottle(unreachable(t), 5, time.Minute)
	ctx := context.Background()

	allowed, err := th.Allow(ctx, "bob@example.com")
	require.Error(t, err)
	assert.False(t, allowed)

	assert.Error(t, th.Reset(ctx, "bob@example.com"))
}

func TestConnect_FailsWhenUnreachable(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond})
	require.Error(t, err)
}
