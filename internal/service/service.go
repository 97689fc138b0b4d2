package service

import (
	"go.uber.org/zap"

	"carenote/backend/internal/blobstore"
	"carenote/backend/internal/imagecache"
	"carenote/backend/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Report ReportService
	Upload UploadService
	Image  ImageService
	Export ExportService
	Print  PrintService
}

// NewService 创建 Service 聚合
func NewService(
	repo *repository.Repository,
	blobs blobstore.Store,
	images *imagecache.Resolver,
	logger *zap.Logger,
) *Service {
	report := NewReportService(repo, images, logger)
	return &Service{
		Report: report,
		Upload: NewUploadService(blobs, logger),
		Image:  NewImageService(images, logger),
		Export: NewExportService(report, logger),
		Print:  NewPrintService(report, images),
	}
}
