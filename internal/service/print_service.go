package service

import (
	"context"
	"time"

	"carenote/backend/internal/imagecache"
	"carenote/backend/internal/printview"
)

// PrintService 打印视图业务接口
type PrintService interface {
	// Document 组装打印文档；图片延迟到渲染时解析
	Document(ctx context.Context, id int) (*printview.Document, error)
}

type printService struct {
	reports ReportService
	images  *imagecache.Resolver
	now     func() time.Time
}

// NewPrintService 创建 PrintService 实例
func NewPrintService(reports ReportService, images *imagecache.Resolver) PrintService {
	return &printService{reports: reports, images: images, now: time.Now}
}

func (s *printService) Document(ctx context.Context, id int) (*printview.Document, error) {
	detail, err := s.reports.Get(ctx, id, false)
	if err != nil {
		return nil, err
	}

	var image *imagecache.Pending
	if detail.Report.ImageURL != "" {
		image = s.images.Lazy(detail.Report.ImageURL)
	}
	return printview.NewDocument(ctx, detail.Report, image, s.now()), nil
}
