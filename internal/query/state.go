package query

import "carenote/backend/internal/model"

// State 列表页的筛选状态与当前页。
// 任一筛选字段发生变化都会把当前页重置为 1，避免筛选收窄后停留在越界页。
// 非并发安全，由单个调用方持有。
type State struct {
	filter Filter
	page   int
}

// NewState 创建初始状态（无筛选，第 1 页）
func NewState() *State {
	return &State{page: 1}
}

// Filter 当前筛选条件
func (s *State) Filter() Filter { return s.filter }

// Page 当前页码
func (s *State) Page() int { return s.page }

// SetSearch 设置关键词
func (s *State) SetSearch(v string) {
	if s.filter.Search != v {
		s.filter.Search = v
		s.page = 1
	}
}

// SetDate 设置日期
func (s *State) SetDate(v string) {
	if s.filter.Date != v {
		s.filter.Date = v
		s.page = 1
	}
}

// SetLocation 设置地点
func (s *State) SetLocation(v string) {
	if s.filter.Location != v {
		s.filter.Location = v
		s.page = 1
	}
}

// SetFilter 一次性替换全部条件
func (s *State) SetFilter(f Filter) {
	if s.filter != f {
		s.filter = f
		s.page = 1
	}
}

// Clear 清空全部条件
func (s *State) Clear() {
	s.SetFilter(Filter{})
}

// GoTo 跳转到指定页；page 不在 [1, totalPages] 内时拒绝并返回 false
func (s *State) GoTo(page int, reports []model.Report) bool {
	totalPages := TotalPages(len(Apply(reports, s.filter)))
	if page < 1 || page > totalPages {
		return false
	}
	s.page = page
	return true
}

// View 计算当前视图
func (s *State) View(reports []model.Report) Page {
	return Run(reports, s.filter, s.page)
}
