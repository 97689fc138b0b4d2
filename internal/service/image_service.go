package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"carenote/backend/internal/dto"
	"carenote/backend/internal/imagecache"
)

// ImageService 图片代理业务接口
type ImageService interface {
	// Proxy 按资源 ID 取图片，返回 base64 与 MIME；与报告内嵌共用同一缓存
	Proxy(ctx context.Context, resourceID string) (*dto.ImageProxyResponse, error)
}

type imageService struct {
	images *imagecache.Resolver
	logger *zap.Logger
}

// NewImageService 创建 ImageService 实例
func NewImageService(images *imagecache.Resolver, logger *zap.Logger) ImageService {
	return &imageService{images: images, logger: logger}
}

// ────────────────────── Proxy ──────────────────────

func (s *imageService) Proxy(ctx context.Context, resourceID string) (*dto.ImageProxyResponse, error) {
	if resourceID == "" {
		return nil, fmt.Errorf("%w: resourceId", ErrValidationMissing)
	}

	uri, err := s.images.Resolve(ctx, resourceID)
	if err != nil {
		s.logger.Error("图片代理拉取失败", zap.String("resource_id", resourceID), zap.Error(err))
		return nil, err
	}

	mimeType, b64, ok := imagecache.ParseDataURI(uri)
	if !ok {
		return nil, fmt.Errorf("%w: malformed cache entry for %s", ErrFetchFailed, resourceID)
	}
	return &dto.ImageProxyResponse{Base64: b64, MimeType: mimeType}, nil
}
