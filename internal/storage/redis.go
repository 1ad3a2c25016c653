package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/constants"
	"resume-match-go/internal/tracing"
	"resume-match-go/internal/types"

	"github.com/redis/go-redis/extra/redisotel/v9" // Redis OpenTelemetry钩子包
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned when a key is not found in Redis.
// It wraps the underlying redis.Nil error for abstraction.
var ErrNotFound = redis.Nil

// Redis wraps the Redis client
type Redis struct {
	Client *redis.Client
	config *config.RedisConfig
}

// NewRedisAdapter creates a new Redis client connection
func NewRedisAdapter(cfg *config.RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, fmt.Errorf("redis config cannot be nil")
	}
	if cfg.Address == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	// 使用扩展的配置选项
	opt := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,

		// 连接池设置
		PoolSize:     cfg.PoolSize,     // 默认10
		MinIdleConns: cfg.MinIdleConns, // 默认2

		// 超时设置
		DialTimeout:  time.Duration(cfg.DialTimeoutSeconds) * time.Second,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
	}

	client := redis.NewClient(opt)

	// 添加OpenTelemetry钩子, 记录所有Redis操作
	if err := redisotel.InstrumentTracing(client); err != nil {
		return nil, fmt.Errorf("failed to instrument Redis with OpenTelemetry: %w", err)
	}

	// Ping to check connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Address, err)
	}

	return &Redis{
		Client: client,
		config: cfg,
	}, nil
}

// Close closes the Redis client connection
func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

// Ping checks the Redis connection
func (r *Redis) Ping(ctx context.Context) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	return r.Client.Ping(ctx).Err()
}

// GetParseCacheTTL 返回解析结果缓存的过期时间
func (r *Redis) GetParseCacheTTL() time.Duration {
	hours := r.config.ParseCacheTTLHours
	if hours <= 0 {
		return constants.DefaultParseCacheTTL
	}
	return time.Duration(hours) * time.Hour
}

// Get 获取键的值
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	if r.Client == nil {
		return "", fmt.Errorf("redis客户端未初始化")
	}
	return r.Client.Get(ctx, key).Result()
}

// Set 设置键的值
func (r *Redis) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	if r.Client == nil {
		return fmt.Errorf("redis客户端未初始化")
	}
	return r.Client.Set(ctx, key, value, expiration).Err()
}

// ParseResultCache 将解析结果按文本指纹缓存到Redis。
// 实现 processor.ParseCache 接口，key格式见 constants.KeyParseResult。
type ParseResultCache struct {
	redis *Redis
}

// NewParseResultCache 创建解析结果缓存
func NewParseResultCache(r *Redis) *ParseResultCache {
	return &ParseResultCache{redis: r}
}

// Get 按指纹查询缓存的解析结果。键不存在时返回 (nil, false, nil)。
func (c *ParseResultCache) Get(ctx context.Context, fingerprint string) (*types.ParseResult, bool, error) {
	if c.redis == nil || c.redis.Client == nil {
		return nil, false, fmt.Errorf("redis client is not initialized")
	}
	key := fmt.Sprintf(constants.KeyParseResult, fingerprint)
	val, err := c.redis.Client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("读取解析结果缓存失败: %w", err)
	}

	var result types.ParseResult
	if err := json.Unmarshal([]byte(val), &result); err != nil {
		// 缓存内容损坏，当作未命中并删除坏键
		log.Warn().Str("key", tracing.SafeRedisKey(key)).Err(err).Msg("解析结果缓存内容损坏，已丢弃")
		_ = c.redis.Client.Del(ctx, key).Err()
		return nil, false, nil
	}
	return &result, true, nil
}

// Set 写入解析结果缓存，TTL来自配置
func (c *ParseResultCache) Set(ctx context.Context, fingerprint string, result *types.ParseResult) error {
	if c.redis == nil || c.redis.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	if result == nil {
		return nil
	}
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化解析结果失败: %w", err)
	}
	key := fmt.Sprintf(constants.KeyParseResult, fingerprint)
	return c.redis.Client.Set(ctx, key, data, c.redis.GetParseCacheTTL()).Err()
}

// SetScoreReport 按 (简历指纹, JD指纹) 缓存打分报告
func (r *Redis) SetScoreReport(ctx context.Context, resumeFP, jdFP string, report *types.ScoreReport) error {
	if r.Client == nil {
		return fmt.Errorf("redis client is not initialized")
	}
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("序列化打分报告失败: %w", err)
	}
	key := fmt.Sprintf(constants.KeyScoreReport, resumeFP, jdFP)
	return r.Client.Set(ctx, key, data, r.GetParseCacheTTL()).Err()
}

// GetScoreReport 获取缓存的打分报告。未命中返回 (nil, ErrNotFound)。
func (r *Redis) GetScoreReport(ctx context.Context, resumeFP, jdFP string) (*types.ScoreReport, error) {
	if r.Client == nil {
		return nil, fmt.Errorf("redis client is not initialized")
	}
	key := fmt.Sprintf(constants.KeyScoreReport, resumeFP, jdFP)
	val, err := r.Client.Get(ctx, key).Result()
	if err != nil {
		return nil, err // 包括 redis.Nil
	}
	var report types.ScoreReport
	if err := json.Unmarshal([]byte(val), &report); err != nil {
		return nil, fmt.Errorf("反序列化打分报告失败: %w", err)
	}
	return &report, nil
}
