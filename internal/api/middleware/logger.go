package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 路由参数在日志中的字段名
var paramFields = map[string]string{
	"id":         "report_id",
	"resourceId": "resource_id",
}

// Logger 请求日志中间件，需放在 RequestID 之后。
// 健康检查只在 Debug 级别记录；报告与图片路由附带 report_id / resource_id。
func Logger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()

		level, msg := requestLevel(route, status)
		ce := logger.Check(level, msg)
		if ce == nil {
			return
		}

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
			zap.Int("size", c.Writer.Size()),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			fields = append(fields, zap.String("query", q))
		}
		for _, p := range c.Params {
			if name, ok := paramFields[p.Key]; ok {
				fields = append(fields, zap.String(name, p.Value))
			}
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.String("errors", errs.String()))
		}

		ce.Write(fields...)
	}
}

func requestLevel(route string, status int) (zapcore.Level, string) {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel, "请求处理失败"
	case status >= 400:
		return zapcore.WarnLevel, "客户端错误"
	case route == "/health":
		return zapcore.DebugLevel, "健康检查"
	default:
		return zapcore.InfoLevel, "请求完成"
	}
}
