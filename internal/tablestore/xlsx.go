package tablestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/xuri/excelize/v2"

	"carenote/backend/internal/model"
)

// XLSXStore 基于本地 Excel 文件的表格存储，适合单机部署与本地开发。
// 同一进程内的读写通过互斥锁串行化；多进程共享同一文件不受保护。
type XLSXStore struct {
	mu    sync.Mutex
	path  string
	sheet string
}

// NewXLSXStore 打开（或创建带表头的）Excel 文件
func NewXLSXStore(path, sheet string) (*XLSXStore, error) {
	s := &XLSXStore{path: path, sheet: sheet}

	if _, err := os.Stat(path); err == nil {
		return s, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("检查 Excel 文件失败: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("设置工作表名称失败: %w", err)
	}
	header := toCells(model.ReportHeader)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("写入表头失败: %w", err)
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("保存 Excel 文件失败: %w", err)
	}

	return s, nil
}

func (s *XLSXStore) Append(ctx context.Context, row []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return fmt.Errorf("打开 Excel 文件失败: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return fmt.Errorf("读取工作表失败: %w", err)
	}

	cellName, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	cells := toCells(row)
	if err := f.SetSheetRow(s.sheet, cellName, &cells); err != nil {
		return fmt.Errorf("写入行失败: %w", err)
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("保存 Excel 文件失败: %w", err)
	}
	return nil
}

func (s *XLSXStore) ReadAll(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("打开 Excel 文件失败: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %w", err)
	}
	return rows, nil
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
