package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"carenote/backend/internal/model"
	"carenote/backend/internal/tablestore"
	apperrors "carenote/backend/pkg/errors"
)

// ReportRepository 报告数据访问接口
type ReportRepository interface {
	// List 读取全部报告，顺序即表格行顺序（最早的在前）
	List(ctx context.Context) ([]model.Report, error)
	// Get 按行位置取单条报告；上游没有索引，每次都读整表（快照缓存开启时除外）
	Get(ctx context.Context, id int) (*model.Report, error)
	// Create 在表尾追加一条报告，Ref 为空时生成 UUID
	Create(ctx context.Context, report *model.Report) error
}

type reportRepo struct {
	store tablestore.Store
	ttl   time.Duration
	now   func() time.Time

	mu       sync.Mutex
	snapshot []model.Report
	takenAt  time.Time
	gen      uint64 // 每次追加后递增，读取期间若变化则丢弃该次结果
}

// NewReportRepo 创建 ReportRepository 实例
func NewReportRepo(store tablestore.Store, snapshotTTL time.Duration) ReportRepository {
	return &reportRepo{store: store, ttl: snapshotTTL, now: time.Now}
}

func (r *reportRepo) List(ctx context.Context) ([]model.Report, error) {
	return r.load(ctx)
}

func (r *reportRepo) Get(ctx context.Context, id int) (*model.Report, error) {
	reports, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if id < 1 || id > len(reports) {
		return nil, fmt.Errorf("%w: id=%d", apperrors.ErrNotFound, id)
	}
	report := reports[id-1]
	return &report, nil
}

func (r *reportRepo) Create(ctx context.Context, report *model.Report) error {
	if report.Ref == "" {
		report.Ref = uuid.NewString()
	}

	if err := r.store.Append(ctx, report.Row()); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrUpstreamUnavailable, err)
	}

	r.invalidate()
	return nil
}

// ── 内部辅助方法 ──

func (r *reportRepo) load(ctx context.Context) ([]model.Report, error) {
	cached, gen := r.cached()
	if cached != nil {
		return cached, nil
	}

	rows, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUpstreamUnavailable, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: 表格为空，缺少表头", apperrors.ErrUpstreamUnavailable)
	}

	// 第 0 行是表头
	reports := make([]model.Report, 0, len(rows)-1)
	for i, row := range rows[1:] {
		reports = append(reports, model.ReportFromRow(i+1, row))
	}

	r.remember(reports, gen)
	return reports, nil
}

// cached 返回未过期的快照副本，以及当前代数供 remember 比对
func (r *reportRepo) cached() ([]model.Report, uint64) {
	if r.ttl <= 0 {
		return nil, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.snapshot == nil || r.now().Sub(r.takenAt) >= r.ttl {
		return nil, r.gen
	}
	out := make([]model.Report, len(r.snapshot))
	copy(out, r.snapshot)
	return out, r.gen
}

// remember 仅在读取期间没有发生追加时写入快照，否则该结果可能缺少新行
func (r *reportRepo) remember(reports []model.Report, gen uint64) {
	if r.ttl <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if gen != r.gen {
		return
	}

	r.snapshot = make([]model.Report, len(reports))
	copy(r.snapshot, reports)
	r.takenAt = r.now()
}

func (r *reportRepo) invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = nil
	r.gen++
}
