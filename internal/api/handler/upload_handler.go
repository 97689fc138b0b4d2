package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carenote/backend/internal/service"
	"carenote/backend/pkg/response"
)

// UploadHandler 图片上传 HTTP 处理器
type UploadHandler struct {
	uploadSvc service.UploadService
}

// NewUploadHandler 创建 UploadHandler
func NewUploadHandler(uploadSvc service.UploadService) *UploadHandler {
	return &UploadHandler{uploadSvc: uploadSvc}
}

// Upload 上传报告图片
// POST /upload (multipart, 字段 file)
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		if isBodyTooLarge(err) {
			response.TooLarge(c, 10005, "File too large")
			return
		}
		// 缺少 file 字段或不是 multipart 请求
		response.BadRequest(c, 10001, "No file provided")
		return
	}

	f, err := fh.Open()
	if err != nil {
		response.InternalError(c, "Failed to upload file")
		return
	}
	defer f.Close()

	resp, err := h.uploadSvc.Upload(c.Request.Context(), &service.UploadFile{
		Name:     fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Size:     fh.Size,
		Body:     f,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidationMissing):
			response.BadRequest(c, 10001, "No file provided")
		case errors.Is(err, service.ErrUpstreamUnavailable):
			response.ErrorWithDetails(c, http.StatusInternalServerError, 20001, "Failed to upload file", err.Error())
		default:
			response.InternalError(c, "Failed to upload file")
		}
		return
	}

	response.OK(c, resp)
}
