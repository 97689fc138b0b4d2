package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"carenote/backend/config"
)

// Client Redis 客户端封装
// 用于写接口限流与图片 data URI 二级缓存
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 限流 ──

// CheckRateLimit 滑动窗口计数，返回本次请求是否放行
// 每个请求以纳秒时间戳为分值写入有序集合，窗口外的成员先被清理
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	minScore := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := c.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", minScore)
	count := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, goredis.Z{Score: float64(now.UnixNano()), Member: uuid.NewString()})
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return count.Val() < int64(limit), nil
}

// ── 图片缓存 ──

const imagePrefix = "image:dataurl:"

// GetImage 读取资源 ID 对应的 data URI，未命中返回空串
func (c *Client) GetImage(ctx context.Context, resourceID string) (string, error) {
	uri, err := c.rdb.Get(ctx, imagePrefix+resourceID).Result()
	if errors.Is(err, goredis.Nil) {
		return "", nil
	}
	return uri, err
}

// SetImage 写入带有效期的 data URI；ttl<=0 的情况由调用方跳过写入（见 imagecache.TieredCache）
func (c *Client) SetImage(ctx context.Context, resourceID, dataURI string, ttl time.Duration) error {
	return c.rdb.Set(ctx, imagePrefix+resourceID, dataURI, ttl).Err()
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
