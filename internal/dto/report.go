package dto

import "carenote/backend/internal/model"

// ── 报告模块 DTO ──

// CreateReportRequest 提交报告请求
// 六个字段都必须出现在请求体中，允许为空串
type CreateReportRequest struct {
	Date     *string `json:"date"     binding:"required"`
	Time     *string `json:"time"     binding:"required"`
	Name     *string `json:"name"     binding:"required"`
	Location *string `json:"location" binding:"required"`
	Event    *string `json:"event"    binding:"required"`
	ImageURL *string `json:"imageUrl" binding:"required"`
}

// ToReport 转换为待追加的报告（ID 与 Ref 由仓储层分配）
func (r *CreateReportRequest) ToReport() *model.Report {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return &model.Report{
		Date:     deref(r.Date),
		Time:     deref(r.Time),
		Name:     deref(r.Name),
		Location: deref(r.Location),
		Event:    deref(r.Event),
		ImageURL: deref(r.ImageURL),
	}
}

// ReportQueryRequest 报告筛选 + 分页参数
type ReportQueryRequest struct {
	Search   string `form:"search"`
	Date     string `form:"date"`
	Location string `form:"location"`
	Page     int    `form:"page"`
}

// ReportListResponse GET /reports
type ReportListResponse struct {
	Reports []model.Report `json:"reports"`
}

// ReportDetailResponse GET /report/:id
// ImageDataURI 仅在 ?embed=image 时填充；解析失败为空串
type ReportDetailResponse struct {
	Report       model.Report `json:"report"`
	ImageDataURI *string      `json:"imageDataUri,omitempty"`
}

// CreateReportResponse POST /report
type CreateReportResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Report  model.Report `json:"report"`
}
