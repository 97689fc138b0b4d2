package handler

import (
	"github.com/gin-gonic/gin"

	"carenote/backend/internal/dto"
	"carenote/backend/pkg/response"
)

// OptionsHandler 表单选项
type OptionsHandler struct{}

// NewOptionsHandler 创建 OptionsHandler
func NewOptionsHandler() *OptionsHandler {
	return &OptionsHandler{}
}

// GetOptions 值班时段与地点的固定选项
// GET /options
func (h *OptionsHandler) GetOptions(c *gin.Context) {
	response.OK(c, dto.OptionsResponse{
		Times:     dto.TimeOptions,
		Locations: dto.LocationOptions,
	})
}
