package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"go.uber.org/zap"

	"carenote/backend/internal/blobstore"
	"carenote/backend/internal/dto"
)

// UploadFile 待上传的文件
type UploadFile struct {
	Name     string
	MimeType string
	Size     int64
	Body     io.Reader
}

// UploadService 图片上传业务接口
type UploadService interface {
	Upload(ctx context.Context, file *UploadFile) (*dto.UploadResponse, error)
}

type uploadService struct {
	blobs  blobstore.Store
	logger *zap.Logger
}

// NewUploadService 创建 UploadService 实例
func NewUploadService(blobs blobstore.Store, logger *zap.Logger) UploadService {
	return &uploadService{blobs: blobs, logger: logger}
}

// ────────────────────── Upload ──────────────────────

func (s *uploadService) Upload(ctx context.Context, file *UploadFile) (*dto.UploadResponse, error) {
	if file == nil || file.Body == nil {
		return nil, fmt.Errorf("%w: file", ErrValidationMissing)
	}

	name := filepath.Base(file.Name)
	if name == "." || name == "/" {
		name = "upload"
	}

	result, err := s.blobs.Upload(ctx, name, file.MimeType, file.Body, file.Size)
	if err != nil {
		s.logger.Error("上传图片失败", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}

	s.logger.Info("图片已上传", zap.String("file_id", result.FileID), zap.Int64("size", file.Size))
	return &dto.UploadResponse{
		Success: true,
		URL:     result.URL,
		FileID:  result.FileID,
		FileURL: result.FileURL,
	}, nil
}
