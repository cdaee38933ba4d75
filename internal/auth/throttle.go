package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per email in Redis and blocks
// further attempts once the limit is reached within the window. With no Redis
// client configured the throttle is a no-op.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle builds the throttle.
func NewLoginThrottle(client *redis.Client, maxAttempts, blockMinutes int) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if blockMinutes <= 0 {
		blockMinutes = 15
	}
	return &LoginThrottle{
		client:      client,
		maxAttempts: maxAttempts,
		window:      time.Duration(blockMinutes) * time.Minute,
	}
}

func (t *LoginThrottle) key(email string) string {
	return "login:fail:" + strings.ToLower(strings.TrimSpace(email))
}

// Blocked reports whether the email has exhausted its attempts.
func (t *LoginThrottle) Blocked(ctx context.Context, email string) (bool, error) {
	if t == nil || t.client == nil {
		return false, nil
	}
	count, err := t.client.Get(ctx, t.key(email)).Int()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("login throttle lookup: %w", err)
	}
	return count >= t.maxAttempts, nil
}

// RecordFailure increments the failure counter, starting the window on the
// first failure.
func (t *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	if t == nil || t.client == nil {
		return nil
	}
	key := t.key(email)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("login throttle incr: %w", err)
	}
	if count == 1 {
		if err := t.client.Expire(ctx, key, t.window).Err(); err != nil {
			return fmt.Errorf("login throttle expire: %w", err)
		}
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Del(ctx, t.key(email)).Err()
}
