package service

import (
	"context"
	"errors"
	"testing"

	"carenote/backend/internal/blobstore"
	"carenote/backend/internal/dto"
)

func strPtr(s string) *string { return &s }

func fullRequest() *dto.CreateReportRequest {
	return &dto.CreateReportRequest{
		Date:     strPtr("2025-03-07"),
		Time:     strPtr("07.00 – 08.00 น."),
		Name:     strPtr("ครูสมชาย"),
		Location: strPtr("บริเวณสะพานลอย"),
		Event:    strPtr("ปกติ"),
		ImageURL: strPtr(""),
	}
}

// ── List / Query 测试 ──

func TestReportService_List_Success(t *testing.T) {
	svc, _ := setupTestService(newMockTableStore(
		row("2025-03-01", "07.00", "A", "gate", "e1", ""),
		row("2025-03-02", "07.00", "B", "gate", "e2", ""),
	))

	reports, err := svc.Report.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(reports) != 2 || reports[1].ID != 2 || reports[1].Name != "B" {
		t.Errorf("列表不符: %+v", reports)
	}
}

func TestReportService_List_Upstream(t *testing.T) {
	table := newMockTableStore()
	table.readErr = errors.New("timeout")
	svc, _ := setupTestService(table)

	_, err := svc.Report.List(context.Background())
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("期望 ErrUpstreamUnavailable，实际: %v", err)
	}
}

func TestReportService_Query_FiltersAndPaginates(t *testing.T) {
	var data [][]string
	for i := 0; i < 12; i++ {
		loc := "โรงอาหาร"
		if i%2 == 1 {
			loc = "สะพานลอย"
		}
		data = append(data, row("2025-03-01", "07.00", "staff", loc, "ok", ""))
	}
	svc, _ := setupTestService(newMockTableStore(data...))

	page, err := svc.Report.Query(context.Background(), &dto.ReportQueryRequest{Location: "สะพาน", Page: 1})
	if err != nil {
		t.Fatalf("Query 应成功: %v", err)
	}
	if page.Total != 6 || page.TotalReports != 12 || page.TotalPages != 1 {
		t.Errorf("统计不符: total=%d totalReports=%d pages=%d", page.Total, page.TotalReports, page.TotalPages)
	}
	if page.Reports[0].ID != 2 {
		t.Errorf("应保留行位置 ID，实际=%d", page.Reports[0].ID)
	}

	page, _ = svc.Report.Query(context.Background(), &dto.ReportQueryRequest{Page: 2})
	if len(page.Reports) != 3 || page.Page != 2 {
		t.Errorf("第2页应有3条，实际=%d page=%d", len(page.Reports), page.Page)
	}
}

// ── Get 测试 ──

func TestReportService_Get_NotFound(t *testing.T) {
	svc, _ := setupTestService(newMockTableStore(row("2025-03-01", "", "A", "", "", "")))

	_, err := svc.Report.Get(context.Background(), 2, false)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("期望 ErrNotFound，实际: %v", err)
	}
}

func TestReportService_Get_EmbedImage(t *testing.T) {
	svc, blobs := setupTestService(newMockTableStore(
		row("2025-03-01", "", "A", "", "", "https://drive.google.com/file/d/IMG1/view"),
	))
	blobs.blobs["IMG1"] = &blobstore.Blob{Data: []byte("img"), MimeType: "image/png"}

	detail, err := svc.Report.Get(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("Get 应成功: %v", err)
	}
	if detail.ImageDataURI == nil || *detail.ImageDataURI != "data:image/png;base64,aW1n" {
		t.Errorf("data URI 不符: %v", detail.ImageDataURI)
	}

	if _, err := svc.Report.Get(context.Background(), 1, true); err != nil {
		t.Fatal(err)
	}
	if blobs.fetchCalls != 1 {
		t.Errorf("第二次查看应命中缓存，fetchCalls=%d", blobs.fetchCalls)
	}
}

func TestReportService_Get_EmbedImageFailureIsEmpty(t *testing.T) {
	svc, blobs := setupTestService(newMockTableStore(
		row("2025-03-01", "", "A", "", "", "https://drive.google.com/file/d/GONE/view"),
	))
	blobs.fetchErr = errors.New("404")

	detail, err := svc.Report.Get(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("图片失败不应影响报告读取: %v", err)
	}
	if detail.ImageDataURI == nil || *detail.ImageDataURI != "" {
		t.Error("解析失败应返回空 data URI")
	}
}

func TestReportService_Get_WithoutEmbed(t *testing.T) {
	svc, blobs := setupTestService(newMockTableStore(
		row("2025-03-01", "", "A", "", "", "https://drive.google.com/file/d/IMG1/view"),
	))

	detail, err := svc.Report.Get(context.Background(), 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if detail.ImageDataURI != nil || blobs.fetchCalls != 0 {
		t.Error("未要求内嵌时不应解析图片")
	}
}

// ── Create 测试 ──

func TestReportService_Create_AssignsPosition(t *testing.T) {
	table := newMockTableStore(row("2025-03-01", "", "A", "", "", ""))
	svc, _ := setupTestService(table)

	report, err := svc.Report.Create(context.Background(), fullRequest())
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if report.ID != 2 {
		t.Errorf("新报告应位于第2行，实际=%d", report.ID)
	}
	if report.Ref == "" {
		t.Error("应生成 Ref")
	}

	reports, _ := svc.Report.List(context.Background())
	if len(reports) != 2 || reports[1].Name != "ครูสมชาย" || reports[1].Ref != report.Ref {
		t.Errorf("列表末尾应为新报告: %+v", reports)
	}
}

func TestReportService_Create_EmptyFieldsAllowed(t *testing.T) {
	svc, _ := setupTestService(newMockTableStore())
	req := fullRequest()
	req.Event = strPtr("")

	report, err := svc.Report.Create(context.Background(), req)
	if err != nil {
		t.Fatalf("空串字段应允许: %v", err)
	}
	if report.Event != "" || report.ID != 1 {
		t.Errorf("报告不符: %+v", report)
	}
}

func TestReportService_Create_Upstream(t *testing.T) {
	table := newMockTableStore()
	table.appendErr = errors.New("quota exceeded")
	svc, _ := setupTestService(table)

	_, err := svc.Report.Create(context.Background(), fullRequest())
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Errorf("期望 ErrUpstreamUnavailable，实际: %v", err)
	}
}

func TestReportService_Create_RereadFailureStillSucceeds(t *testing.T) {
	table := newMockTableStore()
	table.readErr = errors.New("flaky")
	table.failReadAfterAppend = true
	svc, _ := setupTestService(table)

	report, err := svc.Report.Create(context.Background(), fullRequest())
	if err != nil {
		t.Fatalf("追加成功即视为提交成功: %v", err)
	}
	if report.ID != 0 || report.Ref == "" {
		t.Errorf("重读失败时 ID 应为0且保留 Ref: %+v", report)
	}
}
