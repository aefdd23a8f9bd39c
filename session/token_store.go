package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrTokenNotFound = errors.New("token not found")

// TokenStore keeps API tokens in redis with a TTL.
type TokenStore struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewTokenStore(rdb redis.Cmdable, ttl time.Duration) *TokenStore {
	return &TokenStore{rdb: rdb, ttl: ttl}
}

type Token struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func key(id string) string     { return fmt.Sprintf("api:token:%s", id) }
func labelKey(l string) string { return fmt.Sprintf("api:token_label:%s", l) }

// Issue 生成新 token 并写入 redis
func (s *TokenStore) Issue(ctx context.Context, label string) (*Token, error) {
	now := time.Now()
	tok := &Token{
		ID:        uuid.NewString(),
		Label:     label,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	b, err := json.Marshal(tok)
	if err != nil {
		return nil, err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, key(tok.ID), b, s.ttl)
	if label != "" {
		pipe.SAdd(ctx, labelKey(label), tok.ID)
		pipe.Expire(ctx, labelKey(label), s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}
	return tok, nil
}

func (s *TokenStore) Get(ctx context.Context, id string) (*Token, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	var tok Token
	if err := json.Unmarshal(b, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// Verify implements the auth middleware lookup.
func (s *TokenStore) Verify(ctx context.Context, id string) (bool, error) {
	_, err := s.Get(ctx, id)
	if errors.Is(err, ErrTokenNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Revoke deletes one token; ErrTokenNotFound when it does not exist or has expired.
func (s *TokenStore) Revoke(ctx context.Context, id string) error {
	tok, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, key(id))
	if tok.Label != "" {
		pipe.SRem(ctx, labelKey(tok.Label), id)
	}
	_, err = pipe.Exec(ctx)
	return err
}

// RevokeLabel 撤销某个标签下的全部 token，返回实际删除的数量
func (s *TokenStore) RevokeLabel(ctx context.Context, label string) (int, error) {
	ids, err := s.rdb.SMembers(ctx, labelKey(label)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}

	pipe := s.rdb.TxPipeline()
	dels := make([]*redis.IntCmd, 0, len(ids))
	for _, id := range ids {
		dels = append(dels, pipe.Del(ctx, key(id)))
	}
	pipe.Del(ctx, labelKey(label))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	// 已过期的 id 仍留在集合里，不计入
	n := 0
	for _, d := range dels {
		n += int(d.Val())
	}
	return n, nil
}
