package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carenote/backend/internal/printview"
	"carenote/backend/internal/service"
	"carenote/backend/pkg/response"
)

// PrintHandler 打印视图 HTTP 处理器
// 依赖 Engine 已通过 SetHTMLTemplate 加载 printview.Template()
type PrintHandler struct {
	printSvc service.PrintService
}

// NewPrintHandler 创建 PrintHandler
func NewPrintHandler(printSvc service.PrintService) *PrintHandler {
	return &PrintHandler{printSvc: printSvc}
}

// PrintReport 正式文档格式的报告
// GET /report/:id/print
func (h *PrintHandler) PrintReport(c *gin.Context) {
	id, ok := ParseReportID(c)
	if !ok {
		return
	}

	doc, err := h.printSvc.Document(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			response.NotFound(c, 20004, "Report not found")
		default:
			response.ErrorWithDetails(c, http.StatusInternalServerError, 20001, "Failed to fetch report", err.Error())
		}
		return
	}

	c.HTML(http.StatusOK, printview.TemplateName, doc)
}
