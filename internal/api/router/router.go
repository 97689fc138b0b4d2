package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"carenote/backend/config"
	"carenote/backend/internal/api/handler"
	"carenote/backend/internal/api/middleware"
	"carenote/backend/internal/printview"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时写接口不限流
func Setup(cfg *config.Config, h *handler.Handler, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.SetHTMLTemplate(printview.Template())
	r.MaxMultipartMemory = cfg.Server.BodyLimit

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	writeLimit := middleware.RateLimit(limiter, cfg.RateLimit.Limit, cfg.RateLimit.Window, logger)

	// ── 报告 ──
	r.GET("/reports", h.Report.ListReports)
	r.GET("/reports/query", h.Report.QueryReports)
	r.GET("/report/:id", h.Report.GetReport)
	r.GET("/report/:id/print", h.Print.PrintReport)
	r.POST("/report", writeLimit, h.Report.CreateReport)

	// ── 图片 ──
	r.POST("/upload", writeLimit, h.Upload.Upload)
	r.GET("/image-proxy/:resourceId", h.Image.Proxy)

	// ── 导出 / 表单选项 ──
	r.GET("/export/reports", h.Export.ExportReports)
	r.GET("/options", h.Options.GetOptions)

	return r
}
