package model

import "time"

// 表格列顺序：日期、时段、姓名、地点、事件、图片链接、引用编号
const (
	ColDate = iota
	ColTime
	ColName
	ColLocation
	ColEvent
	ColImageURL
	ColRef

	ColumnCount
)

// ReportHeader 表头行（第 0 行），新建表格时写入
var ReportHeader = []string{"วันที่", "เวลา", "ชื่อ", "สถานที่", "เหตุการณ์", "รูปภาพ", "รหัสอ้างอิง"}

// Report 值班报告
//
// ID 为表格中的行位置（从 1 开始，不含表头），每次读取都会重新分配，
// 不是持久主键；Ref 是追加时生成的 UUID，旧数据可能为空。
type Report struct {
	ID       int    `json:"id"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Name     string `json:"name"`
	Location string `json:"location"`
	Event    string `json:"event"`
	ImageURL string `json:"imageUrl"`
	Ref      string `json:"ref,omitempty"`
}

// Row 按列顺序展开为表格行
func (r *Report) Row() []string {
	return []string{r.Date, r.Time, r.Name, r.Location, r.Event, r.ImageURL, r.Ref}
}

// ReportFromRow 把一行单元格转换为 Report，缺失的单元格按空串处理
func ReportFromRow(id int, row []string) Report {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	return Report{
		ID:       id,
		Date:     cell(ColDate),
		Time:     cell(ColTime),
		Name:     cell(ColName),
		Location: cell(ColLocation),
		Event:    cell(ColEvent),
		ImageURL: cell(ColImageURL),
		Ref:      cell(ColRef),
	}
}

// ReportRow 报告行表，对应 report_rows（store.backend=postgres）
// RowNo 自增，决定读取顺序，即追加顺序
type ReportRow struct {
	RowNo     int64     `gorm:"primaryKey;autoIncrement"           json:"row_no"`
	Ref       string    `gorm:"type:uuid;not null;uniqueIndex"     json:"ref"`
	Date      string    `gorm:"type:varchar(20);not null;default:''" json:"date"`
	Time      string    `gorm:"type:varchar(50);not null;default:''" json:"time"`
	Name      string    `gorm:"type:varchar(200);not null;default:''" json:"name"`
	Location  string    `gorm:"type:text;not null;default:''"      json:"location"`
	Event     string    `gorm:"type:text;not null;default:''"      json:"event"`
	ImageURL  string    `gorm:"type:text;not null;default:''"      json:"image_url"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (ReportRow) TableName() string { return "report_rows" }

// Cells 以表格列顺序输出
func (r *ReportRow) Cells() []string {
	return []string{r.Date, r.Time, r.Name, r.Location, r.Event, r.ImageURL, r.Ref}
}
