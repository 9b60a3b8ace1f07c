package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	refreshPrefix = "refresh:"
	otpPrefix     = "otp:"
)

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// RefreshStore keeps the refresh-token allow-list. Entries expire with
// the refresh TTL; deleting one revokes the token.
type RefreshStore struct {
	Client *redis.Client
}

func (s RefreshStore) Save(ctx context.Context, token, userID string, ttl time.Duration) error {
	return s.Client.Set(ctx, refreshPrefix+token, userID, ttl).Err()
}

func (s RefreshStore) Lookup(ctx context.Context, token string) (string, error) {
	val, err := s.Client.Get(ctx, refreshPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (s RefreshStore) Delete(ctx context.Context, token string) error {
	return s.Client.Del(ctx, refreshPrefix+token).Err()
}

// CodeStore keeps one-time verification codes keyed by email.
type CodeStore struct {
	Client *redis.Client
}

func (s CodeStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.Client.Set(ctx, otpPrefix+email, code, ttl).Err()
}

func (s CodeStore) Lookup(ctx context.Context, email string) (string, error) {
	val, err := s.Client.Get(ctx, otpPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return val, nil
}

func (s CodeStore) Delete(ctx context.Context, email string) error {
	return s.Client.Del(ctx, otpPrefix+email).Err()
}
