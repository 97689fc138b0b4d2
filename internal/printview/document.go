package printview

import (
	"context"
	"embed"
	"html/template"
	"io"
	"strings"
	"time"

	"carenote/backend/internal/imagecache"
	"carenote/backend/internal/model"
)

// TemplateName 打印页模板名（gin c.HTML 使用）
const TemplateName = "report_print.html"

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Template 已解析的打印页模板，供 gin.Engine.SetHTMLTemplate 使用
func Template() *template.Template {
	return tmpl
}

// Document 一份待打印的正式报告
// 图片在模板执行到 ImageSrc 时才解析
type Document struct {
	Report    model.Report
	PrintedAt time.Time

	ctx   context.Context
	image *imagecache.Pending
}

// NewDocument 创建打印文档，image 可为 nil
func NewDocument(ctx context.Context, report model.Report, image *imagecache.Pending, printedAt time.Time) *Document {
	return &Document{
		Report:    report,
		PrintedAt: printedAt,
		ctx:       ctx,
		image:     image,
	}
}

// DutyDate 佛历长日期
func (d *Document) DutyDate() string {
	return FormatThaiLongDate(d.Report.Date)
}

// SignedDate 签名处日期（打印当天）
func (d *Document) SignedDate() string {
	return FormatThaiShortDate(d.PrintedAt)
}

// PrintedAtText 页脚打印时间
func (d *Document) PrintedAtText() string {
	return FormatThaiShortDate(d.PrintedAt) + " " + d.PrintedAt.Format("15:04")
}

// HasImage 报告是否附带图片
func (d *Document) HasImage() bool {
	return d.image != nil && d.image.RawURL() != ""
}

// ImageSrc 解析图片；失败时退回原始链接，非 http(s) 链接不输出
func (d *Document) ImageSrc() template.URL {
	if !d.HasImage() {
		return ""
	}
	src := d.image.Src(d.ctx)
	if strings.HasPrefix(src, "data:image/") ||
		strings.HasPrefix(src, "https://") ||
		strings.HasPrefix(src, "http://") {
		return template.URL(src)
	}
	return ""
}

// Render 将文档写为 HTML
func Render(w io.Writer, doc *Document) error {
	return tmpl.ExecuteTemplate(w, TemplateName, doc)
}
