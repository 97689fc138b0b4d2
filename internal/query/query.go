// Package query 报告列表的筛选与分页。
//
// 输入是仓储返回的完整报告序列（追加顺序），输出确定性的分页视图。
// 纯函数实现，不访问任何外部资源，也不会返回错误。
package query

import (
	"strings"

	"carenote/backend/internal/model"
)

const (
	// PageSize 每页报告数
	PageSize = 9
	// MaxPageButtons 页码按钮最多显示个数
	MaxPageButtons = 5
)

// Filter 筛选条件，各字段为空表示不限；多个条件之间为 AND
type Filter struct {
	Search   string `form:"search"   json:"search"`
	Date     string `form:"date"     json:"date"`
	Location string `form:"location" json:"location"`
}

// IsZero 是否未设置任何条件
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Date == "" && f.Location == ""
}

// Match 判断单条报告是否满足全部条件
//   - Search：不区分大小写，命中姓名、地点或事件任一即可
//   - Date：与 report.Date 逐字相等，不做时区或格式归一
//   - Location：不区分大小写的子串匹配
func (f Filter) Match(r *model.Report) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(r.Name), term) &&
			!strings.Contains(strings.ToLower(r.Location), term) &&
			!strings.Contains(strings.ToLower(r.Event), term) {
			return false
		}
	}
	if f.Date != "" && r.Date != f.Date {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(r.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

// Apply 返回满足条件的报告，保持原有顺序；不修改入参
func Apply(reports []model.Report, f Filter) []model.Report {
	out := make([]model.Report, 0, len(reports))
	for i := range reports {
		if f.Match(&reports[i]) {
			out = append(out, reports[i])
		}
	}
	return out
}

// TotalPages ceil(count / PageSize)
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}

// PageWindow 选出最多 5 个页码按钮，尽量以当前页为中心，两端截断
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return []int{}
	}

	var start int
	switch {
	case totalPages <= MaxPageButtons:
		start = 1
	case current <= 3:
		start = 1
	case current >= totalPages-2:
		start = totalPages - MaxPageButtons + 1
	default:
		start = current - 2
	}

	n := MaxPageButtons
	if totalPages < n {
		n = totalPages
	}
	window := make([]int, n)
	for i := range window {
		window[i] = start + i
	}
	return window
}

// Page 分页视图
type Page struct {
	Reports      []model.Report `json:"reports"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	Total        int            `json:"total"`         // 筛选后的条数
	TotalReports int            `json:"total_reports"` // 筛选前的条数，用于区分"无匹配"与"无数据"
	TotalPages   int            `json:"total_pages"`
	PageWindow   []int          `json:"page_window"`
	From         int            `json:"from"` // 当前页首条的序号（从 1 开始），无数据时为 0
	To           int            `json:"to"`
	HasPrev      bool           `json:"has_prev"`
	HasNext      bool           `json:"has_next"`
}

// ClampPage 把请求页码收敛到 [1, totalPages]；无数据时为 1
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Paginate 对已筛选的报告切页；越界页码被收敛，不会产生越界切片
func Paginate(filtered []model.Report, page, totalReports int) Page {
	total := len(filtered)
	totalPages := TotalPages(total)
	page = ClampPage(page, totalPages)

	start := (page - 1) * PageSize
	end := start + PageSize
	if end > total {
		end = total
	}

	p := Page{
		Reports:      make([]model.Report, 0, end-start),
		Page:         page,
		PageSize:     PageSize,
		Total:        total,
		TotalReports: totalReports,
		TotalPages:   totalPages,
		PageWindow:   PageWindow(page, totalPages),
		HasPrev:      page > 1,
		HasNext:      page < totalPages,
	}
	p.Reports = append(p.Reports, filtered[start:end]...)
	if total > 0 {
		p.From = start + 1
		p.To = end
	}
	return p
}

// Run 筛选并分页
func Run(reports []model.Report, f Filter, page int) Page {
	return Paginate(Apply(reports, f), page, len(reports))
}
