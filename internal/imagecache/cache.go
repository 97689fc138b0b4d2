package imagecache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Cache 资源 ID → data URI 的缓存
type Cache interface {
	Get(ctx context.Context, resourceID string) (string, bool)
	Set(ctx context.Context, resourceID, dataURI string)
}

// MemoryCache 进程内缓存：惰性填充，不淘汰，进程重启后清空
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryCache 创建 MemoryCache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]string)}
}

func (c *MemoryCache) Get(_ context.Context, resourceID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	uri, ok := c.entries[resourceID]
	return uri, ok
}

func (c *MemoryCache) Set(_ context.Context, resourceID, dataURI string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[resourceID] = dataURI
}

// Len 当前缓存条目数
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// RemoteCache 二级缓存（Redis），未命中时返回 ("", nil)
type RemoteCache interface {
	GetImage(ctx context.Context, resourceID string) (string, error)
	SetImage(ctx context.Context, resourceID, dataURI string, ttl time.Duration) error
}

// TieredCache 进程内缓存叠加 Redis：跨进程、跨重启复用已解析的图片。
// Redis 出错只记日志并按未命中处理；ttl<=0 时只读 Redis、不写入。
type TieredCache struct {
	local  *MemoryCache
	remote RemoteCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewTieredCache 创建 TieredCache
func NewTieredCache(local *MemoryCache, remote RemoteCache, ttl time.Duration, logger *zap.Logger) *TieredCache {
	return &TieredCache{local: local, remote: remote, ttl: ttl, logger: logger}
}

func (c *TieredCache) Get(ctx context.Context, resourceID string) (string, bool) {
	if uri, ok := c.local.Get(ctx, resourceID); ok {
		return uri, true
	}

	uri, err := c.remote.GetImage(ctx, resourceID)
	if err != nil {
		c.logger.Warn("读取 Redis 图片缓存失败", zap.String("resource_id", resourceID), zap.Error(err))
		return "", false
	}
	if uri == "" {
		return "", false
	}

	c.local.Set(ctx, resourceID, uri)
	return uri, true
}

func (c *TieredCache) Set(ctx context.Context, resourceID, dataURI string) {
	c.local.Set(ctx, resourceID, dataURI)

	if c.ttl <= 0 {
		return
	}
	if err := c.remote.SetImage(ctx, resourceID, dataURI, c.ttl); err != nil {
		c.logger.Warn("写入 Redis 图片缓存失败", zap.String("resource_id", resourceID), zap.Error(err))
	}
}
