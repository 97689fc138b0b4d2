package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"carenote/backend/internal/dto"
	"carenote/backend/internal/service"
	"carenote/backend/pkg/response"
)

// ReportHandler 报告模块 HTTP 处理器
type ReportHandler struct {
	reportSvc service.ReportService
}

// NewReportHandler 创建 ReportHandler
func NewReportHandler(reportSvc service.ReportService) *ReportHandler {
	return &ReportHandler{reportSvc: reportSvc}
}

// ListReports 获取全部报告
// GET /reports
func (h *ReportHandler) ListReports(c *gin.Context) {
	reports, err := h.reportSvc.List(c.Request.Context())
	if err != nil {
		h.handleReportError(c, err, "Failed to fetch reports")
		return
	}

	response.OK(c, dto.ReportListResponse{Reports: reports})
}

// QueryReports 筛选 + 分页
// GET /reports/query?search=&date=&location=&page=
func (h *ReportHandler) QueryReports(c *gin.Context) {
	var req dto.ReportQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	page, err := h.reportSvc.Query(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err, "Failed to fetch reports")
		return
	}

	response.OK(c, page)
}

// GetReport 获取单条报告
// GET /report/:id[?embed=image]
func (h *ReportHandler) GetReport(c *gin.Context) {
	id, ok := ParseReportID(c)
	if !ok {
		return
	}

	detail, err := h.reportSvc.Get(c.Request.Context(), id, c.Query("embed") == "image")
	if err != nil {
		h.handleReportError(c, err, "Failed to fetch report")
		return
	}

	response.OK(c, detail)
}

// CreateReport 提交报告
// POST /report
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req dto.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			response.TooLarge(c, 10005, "Request body too large")
			return
		}
		response.ErrorWithDetails(c, 400, 10001, "Missing required fields", err.Error())
		return
	}

	report, err := h.reportSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleReportError(c, err, "Failed to create report")
		return
	}

	response.OK(c, dto.CreateReportResponse{
		Success: true,
		Message: "Report created successfully",
		Report:  *report,
	})
}

func (h *ReportHandler) handleReportError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, 20004, "Report not found")
	case errors.Is(err, service.ErrValidationMissing):
		response.BadRequest(c, 10001, err.Error())
	case errors.Is(err, service.ErrUpstreamUnavailable):
		response.ErrorWithDetails(c, 500, 20001, message, err.Error())
	default:
		response.InternalError(c, message)
	}
}
