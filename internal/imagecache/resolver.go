// Package imagecache 把报告中的图片分享链接解析为可内嵌的 data URI。
//
// 直接把分享链接当作 <img src> 常因鉴权与限流失效，因此服务端拉取字节、
// 编码为 base64 后缓存。缓存按资源 ID 而非完整 URL 做键，
// 两个不同链接只要指向同一资源就命中同一条目。
package imagecache

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"carenote/backend/internal/blobstore"
	apperrors "carenote/backend/pkg/errors"
)

// ErrUnresolvable 链接中提取不到资源 ID
var ErrUnresolvable = errors.New("无法从链接中提取资源 ID")

const defaultMimeType = "image/jpeg"

// Fetcher 按资源 ID 拉取图片字节
type Fetcher interface {
	Fetch(ctx context.Context, resourceID string) (*blobstore.Blob, error)
}

// Resolver 带缓存的图片解析器。
// 同一资源 ID 的并发未命中会合并为一次拉取；失败不缓存，下次访问重新拉取。
type Resolver struct {
	fetcher Fetcher
	cache   Cache
	group   singleflight.Group
	logger  *zap.Logger
}

// NewResolver 创建 Resolver
func NewResolver(fetcher Fetcher, cache Cache, logger *zap.Logger) *Resolver {
	return &Resolver{fetcher: fetcher, cache: cache, logger: logger}
}

// Resolve 返回资源的 data URI
func (r *Resolver) Resolve(ctx context.Context, resourceID string) (string, error) {
	if uri, ok := r.cache.Get(ctx, resourceID); ok {
		return uri, nil
	}

	v, err, _ := r.group.Do(resourceID, func() (interface{}, error) {
		// 共享的拉取不随首个调用方断开而取消，超时由 blobstore.WithTimeout 控制
		fetchCtx := context.WithoutCancel(ctx)

		if uri, ok := r.cache.Get(fetchCtx, resourceID); ok {
			return uri, nil
		}

		blob, err := r.fetcher.Fetch(fetchCtx, resourceID)
		if err != nil {
			return "", fmt.Errorf("%w: %w", apperrors.ErrFetchFailed, err)
		}

		uri := DataURI(blob.MimeType, blob.Data)
		r.cache.Set(fetchCtx, resourceID, uri)
		r.logger.Debug("图片已解析并缓存",
			zap.String("resource_id", resourceID),
			zap.Int("bytes", len(blob.Data)),
		)
		return uri, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// ResolveURL 从分享链接提取资源 ID 后解析
func (r *Resolver) ResolveURL(ctx context.Context, rawURL string) (string, error) {
	id, ok := ExtractResourceID(rawURL)
	if !ok {
		return "", ErrUnresolvable
	}
	return r.Resolve(ctx, id)
}

// Lazy 创建延迟解析句柄，直到需要打印时才发起拉取
func (r *Resolver) Lazy(rawURL string) *Pending {
	return &Pending{resolver: r, rawURL: rawURL}
}

// Pending 延迟解析的图片
type Pending struct {
	resolver *Resolver
	rawURL   string

	once sync.Once
	src  string
	err  error
}

// RawURL 原始链接
func (p *Pending) RawURL() string { return p.rawURL }

// Src 解析为 <img src> 可用的值：成功为 data URI；
// 无法提取 ID 或拉取失败时回退为原始链接，不阻塞页面渲染
func (p *Pending) Src(ctx context.Context) string {
	p.once.Do(func() {
		if p.rawURL == "" {
			return
		}
		uri, err := p.resolver.ResolveURL(ctx, p.rawURL)
		if err != nil {
			p.err = err
			p.src = p.rawURL
			if !errors.Is(err, ErrUnresolvable) {
				p.resolver.logger.Warn("打印图片解析失败，回退为原始链接",
					zap.String("url", p.rawURL), zap.Error(err))
			}
			return
		}
		p.src = uri
	})
	return p.src
}

// Err 最近一次解析的错误
func (p *Pending) Err() error { return p.err }

// DataURI 构造 data:<mime>;base64,<data>
func DataURI(mimeType string, data []byte) string {
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = defaultMimeType
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ParseDataURI 拆出 MIME 类型与 base64 数据
func ParseDataURI(uri string) (mimeType, b64 string, ok bool) {
	rest, found := strings.CutPrefix(uri, "data:")
	if !found {
		return "", "", false
	}
	mimeType, b64, found = strings.Cut(rest, ";base64,")
	if !found {
		return "", "", false
	}
	return mimeType, b64, true
}
