package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TTLEntries 소유자별 FAQ 목록 (변경 시 무효화)
const TTLEntries = 10 * time.Minute

// 캐시 키 접두사
const (
	PrefixEntries = "entries:"
)

// ErrUnavailable is returned by reads when no Redis client is configured
var ErrUnavailable = errors.New("redis not available")

// Service Redis 캐시 서비스 인터페이스
type Service interface {
	// 소유자별 엔트리 목록 캐시
	GetEntries(ctx context.Context, kind, ownerID string) ([]byte, error)
	SetEntries(ctx context.Context, kind, ownerID string, data interface{}) error
	InvalidateEntries(ctx context.Context, kind, ownerID string) error
	InvalidateAllEntries(ctx context.Context) error

	// 유틸리티
	IsAvailable() bool
	Ping(ctx context.Context) error
}

// redisCache Redis 기반 캐시 구현
type redisCache struct {
	client *redis.Client
}

var _ Service = (*redisCache)(nil)

// NewService 새로운 캐시 서비스 생성
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

// IsAvailable Redis 연결 가능 여부
func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

// Ping Redis 연결 테스트
func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

// ========================================
// 엔트리 목록 캐시
// ========================================

// EntriesKey returns the cache key of one owner's entry list
func EntriesKey(kind, ownerID string) string {
	return PrefixEntries + kind + ":" + ownerID
}

func (c *redisCache) GetEntries(ctx context.Context, kind, ownerID string) ([]byte, error) {
	if c.client == nil {
		return nil, ErrUnavailable
	}
	return c.client.Get(ctx, EntriesKey(kind, ownerID)).Bytes()
}

func (c *redisCache) SetEntries(ctx context.Context, kind, ownerID string, data interface{}) error {
	if c.client == nil {
		return nil
	}
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, EntriesKey(kind, ownerID), jsonData, TTLEntries).Err()
}

func (c *redisCache) InvalidateEntries(ctx context.Context, kind, ownerID string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, EntriesKey(kind, ownerID)).Err()
}

func (c *redisCache) InvalidateAllEntries(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	return c.deleteByPattern(ctx, PrefixEntries+"*")
}

// ========================================
// 내부 유틸리티
// ========================================

func (c *redisCache) deleteByPattern(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}
