package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"carenote/backend/pkg/response"
)

// ParseReportID 从路由参数 :id 中解析报告行位置。
// 非整数时写入 400 响应并返回 false，调用方应直接 return。
// 越界（<1 或超过行数）交给 Service 层判定为 404。
func ParseReportID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, 10001, "Invalid report id")
		return 0, false
	}
	return id, true
}

// isBodyTooLarge 请求体是否被 BodyLimit 中间件截断
func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
