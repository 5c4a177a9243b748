// Package redis keeps one-time login links in Redis so several service
// instances can share them without a shared SQL database.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/clockin/internal/clockin/domain"
	"github.com/aussiebroadwan/clockin/internal/clockin/store"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "clockin:login_link:"

// LinkStore implements store.LinkStore. Redis expiry replaces the purge
// the SQL store needs.
type LinkStore struct {
	rdb *goredis.Client
}

var _ store.LinkStore = (*LinkStore)(nil)

func NewLinkStore(rdb *goredis.Client) *LinkStore {
	return &LinkStore{rdb: rdb}
}

type linkRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Type      string    `json:"type"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *LinkStore) CreateLink(ctx context.Context, l domain.LoginLink) error {
	ttl := time.Until(l.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis link store: link already expired")
	}

	data, err := json.Marshal(linkRecord{
		ID:        l.ID,
		UserID:    l.UserID,
		Email:     l.Email,
		Type:      string(l.Type),
		Method:    string(l.Method),
		ExpiresAt: l.ExpiresAt,
		CreatedAt: l.CreatedAt,
	})
	if err != nil {
		return err
	}

	ok, err := s.rdb.SetNX(ctx, linkKey(l.TokenHash), data, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrAlreadyExists
	}
	return nil
}

// ConsumeLink uses GETDEL so exactly one caller ever sees the link.
func (s *LinkStore) ConsumeLink(ctx context.Context, tokenHash string, now time.Time) (domain.LoginLink, error) {
	value, err := s.rdb.GetDel(ctx, linkKey(tokenHash)).Result()
	if errors.Is(err, goredis.Nil) {
		return domain.LoginLink{}, store.ErrNotFound
	}
	if err != nil {
		return domain.LoginLink{}, err
	}

	var rec linkRecord
	if err := json.Unmarshal([]byte(value), &rec); err != nil {
		return domain.LoginLink{}, err
	}
	if !now.Before(rec.ExpiresAt) {
		return domain.LoginLink{}, store.ErrNotFound
	}

	usedAt := now
	return domain.LoginLink{
		ID:        rec.ID,
		UserID:    rec.UserID,
		Email:     rec.Email,
		TokenHash: tokenHash,
		Type:      domain.LinkType(rec.Type),
		Method:    domain.LoginMethod(rec.Method),
		ExpiresAt: rec.ExpiresAt,
		UsedAt:    &usedAt,
		CreatedAt: rec.CreatedAt,
	}, nil
}

// DeleteStaleLinks is a no-op; keys carry their own TTL.
func (s *LinkStore) DeleteStaleLinks(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// Ping checks the Redis connection.
func (s *LinkStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func linkKey(tokenHash string) string {
	return keyPrefix + tokenHash
}
