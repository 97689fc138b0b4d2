package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"carenote/backend/internal/dto"
	"carenote/backend/internal/service"
	"carenote/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportReports 导出筛选后的报告
// GET /export/reports?search=&date=&location=
func (h *ExportHandler) ExportReports(c *gin.Context) {
	var req dto.ReportQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "Invalid query parameters")
		return
	}

	buf, filename, err := h.exportSvc.ExportReports(c.Request.Context(), &req)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUpstreamUnavailable):
		response.ErrorWithDetails(c, http.StatusInternalServerError, 20001, "Failed to fetch reports", err.Error())
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c, "Failed to generate export")
	default:
		response.InternalError(c, "Failed to export reports")
	}
}
