package tablestore

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"carenote/backend/internal/model"
)

// PostgresStore 以 report_rows 表模拟表格：按 row_no 升序读出，首行补表头
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore 创建 PostgresStore
func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, row []string) error {
	r := model.ReportFromRow(0, row)
	if r.Ref == "" {
		r.Ref = uuid.NewString()
	}

	rec := &model.ReportRow{
		Ref:      r.Ref,
		Date:     r.Date,
		Time:     r.Time,
		Name:     r.Name,
		Location: r.Location,
		Event:    r.Event,
		ImageURL: r.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("插入报告行失败: %w", err)
	}
	return nil
}

func (s *PostgresStore) ReadAll(ctx context.Context) ([][]string, error) {
	var recs []model.ReportRow
	if err := s.db.WithContext(ctx).Order("row_no ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("查询报告行失败: %w", err)
	}

	rows := make([][]string, 0, len(recs)+1)
	rows = append(rows, model.ReportHeader)
	for i := range recs {
		rows = append(rows, recs[i].Cells())
	}
	return rows, nil
}
