package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"genstory-server/internal/interfaces"
	"genstory-server/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Compile-time check to ensure redisSessionCache implements SessionCache
var _ interfaces.SessionCache = (*redisSessionCache)(nil)

type redisSessionCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisSessionCache создает Redis-кэш чтения поверх лога сессий.
// Кэш не является источником истины: каждая запись в лог его инвалидирует,
// а истекший TTL просто приводит к повторному чтению из Postgres.
func NewRedisSessionCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) interfaces.SessionCache {
	return &redisSessionCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("RedisSessionCache"),
	}
}

func messagesKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("session:%s:messages", sessionID.String())
}

func (c *redisSessionCache) GetMessages(ctx context.Context, sessionID uuid.UUID) ([]models.SessionMessage, bool, error) {
	key := messagesKey(sessionID)
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		c.logger.Error("Failed to get session messages from redis", zap.Error(err), zap.String("key", key))
		return nil, false, fmt.Errorf("failed to get session messages from redis: %w", err)
	}

	var messages []models.SessionMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		// Битая запись в кэше не должна ломать чтение: считаем это промахом.
		c.logger.Warn("Failed to unmarshal cached session messages, treating as miss", zap.Error(err), zap.String("key", key))
		c.client.Del(ctx, key)
		return nil, false, nil
	}
	return messages, true, nil
}

func (c *redisSessionCache) SetMessages(ctx context.Context, sessionID uuid.UUID, msgs []models.SessionMessage) error {
	key := messagesKey(sessionID)
	data, err := json.Marshal(msgs)
	if err != nil {
		return fmt.Errorf("failed to marshal session messages: %w", err)
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Failed to set session messages in redis", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to set session messages in redis: %w", err)
	}
	c.logger.Debug("Cached session messages", zap.String("key", key), zap.Int("count", len(msgs)), zap.Duration("ttl", c.ttl))
	return nil
}

func (c *redisSessionCache) Invalidate(ctx context.Context, sessionID uuid.UUID) error {
	key := messagesKey(sessionID)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Failed to invalidate session cache", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("failed to invalidate session cache: %w", err)
	}
	return nil
}
