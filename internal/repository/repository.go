package repository

import (
	"time"

	"carenote/backend/internal/tablestore"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Report ReportRepository
}

// NewRepository 创建 Repository 聚合
// snapshotTTL > 0 时启用报告快照缓存，追加后立即失效
func NewRepository(store tablestore.Store, snapshotTTL time.Duration) *Repository {
	return &Repository{
		Report: NewReportRepo(store, snapshotTTL),
	}
}
