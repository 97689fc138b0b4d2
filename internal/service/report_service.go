package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"carenote/backend/internal/dto"
	"carenote/backend/internal/imagecache"
	"carenote/backend/internal/model"
	"carenote/backend/internal/query"
	"carenote/backend/internal/repository"
)

// ReportService 报告业务接口
type ReportService interface {
	List(ctx context.Context) ([]model.Report, error)
	Query(ctx context.Context, req *dto.ReportQueryRequest) (*query.Page, error)
	Get(ctx context.Context, id int, embedImage bool) (*dto.ReportDetailResponse, error)
	Create(ctx context.Context, req *dto.CreateReportRequest) (*model.Report, error)
}

type reportService struct {
	repo   *repository.Repository
	images *imagecache.Resolver
	logger *zap.Logger
}

// NewReportService 创建 ReportService 实例
func NewReportService(repo *repository.Repository, images *imagecache.Resolver, logger *zap.Logger) ReportService {
	return &reportService{repo: repo, images: images, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *reportService) List(ctx context.Context) ([]model.Report, error) {
	reports, err := s.repo.Report.List(ctx)
	if err != nil {
		s.logger.Error("读取报告列表失败", zap.Error(err))
		return nil, err
	}
	return reports, nil
}

// ────────────────────── Query ──────────────────────

// Query 筛选 + 分页；越界页码被夹到有效范围
func (s *reportService) Query(ctx context.Context, req *dto.ReportQueryRequest) (*query.Page, error) {
	reports, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	f := query.Filter{Search: req.Search, Date: req.Date, Location: req.Location}
	page := query.Run(reports, f, req.Page)
	return &page, nil
}

// ────────────────────── Get ──────────────────────

// Get 取单条报告；embedImage 时立即解析图片为 data URI，
// 解析失败只记日志，返回空串
func (s *reportService) Get(ctx context.Context, id int, embedImage bool) (*dto.ReportDetailResponse, error) {
	report, err := s.repo.Report.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.logger.Error("读取报告失败", zap.Int("id", id), zap.Error(err))
		}
		return nil, err
	}

	resp := &dto.ReportDetailResponse{Report: *report}
	if !embedImage {
		return resp, nil
	}

	var dataURI string
	if report.ImageURL != "" {
		dataURI, err = s.images.ResolveURL(ctx, report.ImageURL)
		if err != nil {
			s.logger.Warn("报告图片解析失败",
				zap.Int("id", id), zap.String("url", report.ImageURL), zap.Error(err))
			dataURI = ""
		}
	}
	resp.ImageDataURI = &dataURI
	return resp, nil
}

// ────────────────────── Create ──────────────────────

// Create 追加报告。上游没有返回行位置，追加后重读一次按 Ref 定位 ID；
// 重读失败不影响提交结果，ID 保持为 0
func (s *reportService) Create(ctx context.Context, req *dto.CreateReportRequest) (*model.Report, error) {
	report := req.ToReport()

	if err := s.repo.Report.Create(ctx, report); err != nil {
		s.logger.Error("追加报告失败", zap.Error(err))
		return nil, err
	}

	reports, err := s.repo.Report.List(ctx)
	if err != nil {
		s.logger.Warn("追加后定位报告失败", zap.String("ref", report.Ref), zap.Error(err))
		return report, nil
	}
	for i := len(reports) - 1; i >= 0; i-- {
		if reports[i].Ref == report.Ref {
			report.ID = reports[i].ID
			break
		}
	}

	s.logger.Info("报告已提交", zap.Int("id", report.ID), zap.String("ref", report.Ref))
	return report, nil
}
