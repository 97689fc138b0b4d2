package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"carenote/backend/internal/dto"
	"carenote/backend/internal/model"
	"carenote/backend/internal/query"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

const exportSheetName = "รายงาน"

// ExportService 导出业务接口
//
// 设计说明：
//   - 导出与列表使用相同的筛选条件，但不分页
//   - 以 bytes.Buffer 返回，由 Handler 层设置下载响应头
type ExportService interface {
	ExportReports(ctx context.Context, req *dto.ReportQueryRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	reports ReportService
	now     func() time.Time
	logger  *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(reports ReportService, logger *zap.Logger) ExportService {
	return &exportService{reports: reports, now: time.Now, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportReports 导出筛选后的报告为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 第 1 行：标题（合并单元格）
//   - 第 2 行：表头 ลำดับ | วันที่ | เวลา | ชื่อ | สถานที่ | เหตุการณ์ | รูปภาพ
//   - 第 3 行起：每条报告一行，ลำดับ 为报告 ID

func (s *exportService) ExportReports(ctx context.Context, req *dto.ReportQueryRequest) (*bytes.Buffer, string, error) {
	all, err := s.reports.List(ctx)
	if err != nil {
		return nil, "", err
	}
	filtered := query.Apply(all, query.Filter{Search: req.Search, Date: req.Date, Location: req.Location})

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheetName)
	if err != nil {
		s.logger.Error("创建工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	if err := writeReportSheet(f, filtered); err != nil {
		s.logger.Error("写入报告数据失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("รายงาน_%s.xlsx", s.now().Format("2006-01-02"))
	return buf, filename, nil
}

// ── 辅助函数 ──

var exportHeader = []string{"ลำดับ", "วันที่", "เวลา", "ชื่อ", "สถานที่", "เหตุการณ์", "รูปภาพ"}

func writeReportSheet(f *excelize.File, reports []model.Report) error {
	widths := []float64{8, 14, 18, 22, 36, 60, 40}
	for i, w := range widths {
		col := colName(i)
		if err := f.SetColWidth(exportSheetName, col, col, w); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	wrapStyle, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return err
	}

	// 标题行
	lastCol := colName(len(exportHeader) - 1)
	f.SetCellValue(exportSheetName, "A1", fmt.Sprintf("รายงานการปฏิบัติหน้าที่ (%d รายการ)", len(reports)))
	if err := f.MergeCell(exportSheetName, "A1", cell(lastCol, 1)); err != nil {
		return err
	}
	f.SetCellStyle(exportSheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range exportHeader {
		f.SetCellValue(exportSheetName, cell(colName(i), 2), h)
	}
	f.SetCellStyle(exportSheetName, "A2", cell(lastCol, 2), headerStyle)

	// 数据行
	row := 3
	for _, r := range reports {
		values := []interface{}{r.ID, r.Date, r.Time, r.Name, r.Location, r.Event, r.ImageURL}
		if err := f.SetSheetRow(exportSheetName, cell("A", row), &values); err != nil {
			return err
		}
		row++
	}
	if row > 3 {
		f.SetCellStyle(exportSheetName, "F3", cell("F", row-1), wrapStyle)
	}

	return nil
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
