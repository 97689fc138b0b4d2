package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carenote/backend/internal/service"
	"carenote/backend/pkg/response"
)

// ImageHandler 图片代理 HTTP 处理器
type ImageHandler struct {
	imageSvc service.ImageService
}

// NewImageHandler 创建 ImageHandler
func NewImageHandler(imageSvc service.ImageService) *ImageHandler {
	return &ImageHandler{imageSvc: imageSvc}
}

// Proxy 以 base64 返回远程图片
// GET /image-proxy/:resourceId
func (h *ImageHandler) Proxy(c *gin.Context) {
	resp, err := h.imageSvc.Proxy(c.Request.Context(), c.Param("resourceId"))
	if err != nil {
		if errors.Is(err, service.ErrValidationMissing) {
			response.BadRequest(c, 10001, "Missing resource id")
			return
		}
		response.ErrorWithDetails(c, http.StatusInternalServerError, 20101, "Failed to fetch file", err.Error())
		return
	}

	response.OK(c, resp)
}
