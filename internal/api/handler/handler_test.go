package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"carenote/backend/internal/dto"
	"carenote/backend/internal/model"
	"carenote/backend/internal/printview"
	"carenote/backend/internal/query"
	"carenote/backend/internal/service"
	"carenote/backend/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock ReportService ──

type mockReportService struct {
	listResult   []model.Report
	listErr      error
	queryResult  *query.Page
	queryErr     error
	queryReq     *dto.ReportQueryRequest
	getResult    *dto.ReportDetailResponse
	getErr       error
	getID        int
	getEmbed     bool
	createResult *model.Report
	createErr    error
	createCalled bool
}

func (m *mockReportService) List(_ context.Context) ([]model.Report, error) {
	return m.listResult, m.listErr
}
func (m *mockReportService) Query(_ context.Context, req *dto.ReportQueryRequest) (*query.Page, error) {
	m.queryReq = req
	return m.queryResult, m.queryErr
}
func (m *mockReportService) Get(_ context.Context, id int, embed bool) (*dto.ReportDetailResponse, error) {
	m.getID, m.getEmbed = id, embed
	return m.getResult, m.getErr
}
func (m *mockReportService) Create(_ context.Context, _ *dto.CreateReportRequest) (*model.Report, error) {
	m.createCalled = true
	return m.createResult, m.createErr
}

// ── Mock UploadService ──

type mockUploadService struct {
	result   *dto.UploadResponse
	err      error
	received []byte
}

func (m *mockUploadService) Upload(_ context.Context, file *service.UploadFile) (*dto.UploadResponse, error) {
	buf := new(bytes.Buffer)
	buf.ReadFrom(file.Body)
	m.received = buf.Bytes()
	return m.result, m.err
}

// ── Mock ImageService ──

type mockImageService struct {
	result *dto.ImageProxyResponse
	err    error
}

func (m *mockImageService) Proxy(_ context.Context, _ string) (*dto.ImageProxyResponse, error) {
	return m.result, m.err
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
	req      *dto.ReportQueryRequest
}

func (m *mockExportService) ExportReports(_ context.Context, req *dto.ReportQueryRequest) (*bytes.Buffer, string, error) {
	m.req = req
	return m.buf, m.filename, m.err
}

// ── Mock PrintService ──

type mockPrintService struct {
	doc *printview.Document
	err error
}

func (m *mockPrintService) Document(_ context.Context, _ int) (*printview.Document, error) {
	return m.doc, m.err
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func perform(r *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = new(bytes.Buffer)
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorBody {
	t.Helper()
	var body response.ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("响应不是 JSON: %s", w.Body.String())
	}
	return body
}

func sampleReport(id int) model.Report {
	return model.Report{
		ID: id, Date: "2025-03-07", Time: "07.00 – 08.00 น.", Name: "สมชาย",
		Location: "บริเวณสะพานลอย", Event: "ปกติ",
	}
}

// ═══════════════════════════════════════════════════════════
// ReportHandler
// ═══════════════════════════════════════════════════════════

func TestReportHandler_ListReports_Success(t *testing.T) {
	mock := &mockReportService{listResult: []model.Report{sampleReport(1), sampleReport(2)}}
	h := NewReportHandler(mock)
	r := gin.New()
	r.GET("/reports", h.ListReports)

	w := perform(r, "GET", "/reports", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body dto.ReportListResponse
	json.Unmarshal(w.Body.Bytes(), &body)
	if len(body.Reports) != 2 || body.Reports[1].ID != 2 {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestReportHandler_ListReports_Empty(t *testing.T) {
	mock := &mockReportService{listResult: []model.Report{}}
	h := NewReportHandler(mock)
	r := gin.New()
	r.GET("/reports", h.ListReports)

	w := perform(r, "GET", "/reports", nil, "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"reports":[]`) {
		t.Errorf("expected empty list, got %d %s", w.Code, w.Body.String())
	}
}

func TestReportHandler_ListReports_Upstream(t *testing.T) {
	mock := &mockReportService{listErr: fmt.Errorf("%w: timeout", service.ErrUpstreamUnavailable)}
	h := NewReportHandler(mock)
	r := gin.New()
	r.GET("/reports", h.ListReports)

	w := perform(r, "GET", "/reports", nil, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Error != "Failed to fetch reports" {
		t.Errorf("unexpected error: %q", body.Error)
	}
}

func TestReportHandler_QueryReports_BindsFilter(t *testing.T) {
	page := query.Run([]model.Report{sampleReport(1)}, query.Filter{}, 1)
	mock := &mockReportService{queryResult: &page}
	h := NewReportHandler(mock)
	r := gin.New()
	r.GET("/reports/query", h.QueryReports)

	w := perform(r, "GET", "/reports/query?search=abc&date=2025-03-07&location=gate&page=2", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	req := mock.queryReq
	if req.Search != "abc" || req.Date != "2025-03-07" || req.Location != "gate" || req.Page != 2 {
		t.Errorf("filter not bound: %+v", req)
	}
	if !strings.Contains(w.Body.String(), `"total_pages":1`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestReportHandler_QueryReports_BadPage(t *testing.T) {
	h := NewReportHandler(&mockReportService{})
	r := gin.New()
	r.GET("/reports/query", h.QueryReports)

	w := perform(r, "GET", "/reports/query?page=abc", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReportHandler_GetReport_Success(t *testing.T) {
	mock := &mockReportService{getResult: &dto.ReportDetailResponse{Report: sampleReport(3)}}
	h := NewReportHandler(mock)
	r := gin.New()
	r.GET("/report/:id", h.GetReport)

	w := perform(r, "GET", "/report/3", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if mock.getID != 3 || mock.getEmbed {
		t.Errorf("unexpected call: id=%d embed=%v", mock.getID, mock.getEmbed)
	}
	if strings.Contains(w.Body.String(), "imageDataUri") {
		t.Error("imageDataUri should be omitted without embed")
	}
}

func TestReportHandler_GetReport_EmbedImage(t *testing.T) {
	uri := "data:image/png;base64,aW1n"
	mock := &mockReportService{getResult: &dto.ReportDetailResponse{Report: sampleReport(1), ImageDataURI: &uri}}
	h := NewReportHandler(mock)
	r := gin.New()
	r.GET("/report/:id", h.GetReport)

	w := perform(r, "GET", "/report/1?embed=image", nil, "")
	if !mock.getEmbed {
		t.Error("embed=image should request eager resolution")
	}
	if !strings.Contains(w.Body.String(), `"imageDataUri":"data:image/png;base64,aW1n"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestReportHandler_GetReport_NotFound(t *testing.T) {
	mock := &mockReportService{getErr: fmt.Errorf("%w: id=9", service.ErrNotFound)}
	h := NewReportHandler(mock)
	r := gin.New()
	r.GET("/report/:id", h.GetReport)

	w := perform(r, "GET", "/report/9", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if body := decodeError(t, w); body.Error != "Report not found" {
		t.Errorf("unexpected error: %q", body.Error)
	}
}

func TestReportHandler_GetReport_InvalidID(t *testing.T) {
	mock := &mockReportService{}
	h := NewReportHandler(mock)
	r := gin.New()
	r.GET("/report/:id", h.GetReport)

	w := perform(r, "GET", "/report/abc", nil, "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReportHandler_CreateReport_Success(t *testing.T) {
	created := sampleReport(5)
	created.Ref = "3f0c9a4e-1d2b-4c5d-8e9f-0a1b2c3d4e5f"
	mock := &mockReportService{createResult: &created}
	h := NewReportHandler(mock)
	r := gin.New()
	r.POST("/report", h.CreateReport)

	body := `{"date":"2025-03-07","time":"07.00","name":"สมชาย","location":"gate","event":"","imageUrl":""}`
	w := perform(r, "POST", "/report", bytes.NewBufferString(body), "application/json")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp dto.CreateReportResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.Message != "Report created successfully" || resp.Report.ID != 5 {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestReportHandler_CreateReport_MissingField(t *testing.T) {
	mock := &mockReportService{}
	h := NewReportHandler(mock)
	r := gin.New()
	r.POST("/report", h.CreateReport)

	body := `{"date":"2025-03-07","time":"07.00","name":"สมชาย","location":"gate","event":"x"}`
	w := perform(r, "POST", "/report", bytes.NewBufferString(body), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if mock.createCalled {
		t.Error("service should not be called")
	}
}

func TestReportHandler_CreateReport_BadJSON(t *testing.T) {
	h := NewReportHandler(&mockReportService{})
	r := gin.New()
	r.POST("/report", h.CreateReport)

	w := perform(r, "POST", "/report", bytes.NewBufferString("{"), "application/json")
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestReportHandler_CreateReport_Upstream(t *testing.T) {
	mock := &mockReportService{createErr: fmt.Errorf("%w: quota", service.ErrUpstreamUnavailable)}
	h := NewReportHandler(mock)
	r := gin.New()
	r.POST("/report", h.CreateReport)

	body := `{"date":"","time":"","name":"","location":"","event":"","imageUrl":""}`
	w := perform(r, "POST", "/report", bytes.NewBufferString(body), "application/json")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	resp := decodeError(t, w)
	if resp.Error != "Failed to create report" || resp.Details == "" {
		t.Errorf("unexpected error body: %+v", resp)
	}
}

// ═══════════════════════════════════════════════════════════
// UploadHandler
// ═══════════════════════════════════════════════════════════

func multipartBody(t *testing.T, field, filename string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := new(bytes.Buffer)
	mw := multipart.NewWriter(buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(data)
	mw.Close()
	return buf, mw.FormDataContentType()
}

func TestUploadHandler_Upload_Success(t *testing.T) {
	mock := &mockUploadService{result: &dto.UploadResponse{Success: true, URL: "https://cdn/x.jpg", FileURL: "https://cdn/x.jpg"}}
	h := NewUploadHandler(mock)
	r := gin.New()
	r.POST("/upload", h.Upload)

	body, ct := multipartBody(t, "file", "x.jpg", []byte("jpeg-bytes"))
	w := perform(r, "POST", "/upload", body, ct)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if string(mock.received) != "jpeg-bytes" {
		t.Errorf("file not forwarded: %q", mock.received)
	}
	if !strings.Contains(w.Body.String(), `"url":"https://cdn/x.jpg"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestUploadHandler_Upload_NoFile(t *testing.T) {
	h := NewUploadHandler(&mockUploadService{})
	r := gin.New()
	r.POST("/upload", h.Upload)

	body, ct := multipartBody(t, "other", "x.jpg", []byte("x"))
	w := perform(r, "POST", "/upload", body, ct)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error != "No file provided" {
		t.Errorf("unexpected error: %q", resp.Error)
	}
}

func TestUploadHandler_Upload_TooLarge(t *testing.T) {
	h := NewUploadHandler(&mockUploadService{})
	r := gin.New()
	r.POST("/upload", func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 64)
		c.Next()
	}, h.Upload)

	body, ct := multipartBody(t, "file", "big.jpg", bytes.Repeat([]byte("x"), 4096))
	w := perform(r, "POST", "/upload", body, ct)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected 413, got %d", w.Code)
	}
}

func TestUploadHandler_Upload_Upstream(t *testing.T) {
	mock := &mockUploadService{err: fmt.Errorf("%w: boom", service.ErrUpstreamUnavailable)}
	h := NewUploadHandler(mock)
	r := gin.New()
	r.POST("/upload", h.Upload)

	body, ct := multipartBody(t, "file", "x.jpg", []byte("x"))
	w := perform(r, "POST", "/upload", body, ct)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error != "Failed to upload file" {
		t.Errorf("unexpected error: %q", resp.Error)
	}
}

// ═══════════════════════════════════════════════════════════
// ImageHandler
// ═══════════════════════════════════════════════════════════

func TestImageHandler_Proxy_Success(t *testing.T) {
	mock := &mockImageService{result: &dto.ImageProxyResponse{Base64: "aW1n", MimeType: "image/png"}}
	h := NewImageHandler(mock)
	r := gin.New()
	r.GET("/image-proxy/:resourceId", h.Proxy)

	w := perform(r, "GET", "/image-proxy/IMG1", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp dto.ImageProxyResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Base64 != "aW1n" || resp.MimeType != "image/png" {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestImageHandler_Proxy_FetchFailed(t *testing.T) {
	mock := &mockImageService{err: fmt.Errorf("%w: 403", service.ErrFetchFailed)}
	h := NewImageHandler(mock)
	r := gin.New()
	r.GET("/image-proxy/:resourceId", h.Proxy)

	w := perform(r, "GET", "/image-proxy/IMG1", nil, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if resp := decodeError(t, w); resp.Error != "Failed to fetch file" {
		t.Errorf("unexpected error: %q", resp.Error)
	}
}

// ═══════════════════════════════════════════════════════════
// ExportHandler
// ═══════════════════════════════════════════════════════════

func TestExportHandler_Success(t *testing.T) {
	mock := &mockExportService{
		buf:      bytes.NewBufferString("excel content"),
		filename: "รายงาน_2026-10-15.xlsx",
	}
	h := NewExportHandler(mock)
	r := gin.New()
	r.GET("/export/reports", h.ExportReports)

	w := perform(r, "GET", "/export/reports?location=gate", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("unexpected content type: %s", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment; filename*=UTF-8''") {
		t.Errorf("unexpected Content-Disposition: %s", cd)
	}
	if mock.req.Location != "gate" {
		t.Errorf("filter not bound: %+v", mock.req)
	}
}

func TestExportHandler_Upstream(t *testing.T) {
	mock := &mockExportService{err: fmt.Errorf("%w: down", service.ErrUpstreamUnavailable)}
	h := NewExportHandler(mock)
	r := gin.New()
	r.GET("/export/reports", h.ExportReports)

	w := perform(r, "GET", "/export/reports", nil, "")
	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// PrintHandler
// ═══════════════════════════════════════════════════════════

func TestPrintHandler_PrintReport_Success(t *testing.T) {
	doc := printview.NewDocument(context.Background(), sampleReport(1), nil, time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC))
	h := NewPrintHandler(&mockPrintService{doc: doc})
	r := gin.New()
	r.SetHTMLTemplate(printview.Template())
	r.GET("/report/:id/print", h.PrintReport)

	w := perform(r, "GET", "/report/1/print", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("unexpected content type: %s", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "7 มีนาคม 2568") {
		t.Error("expected Thai long date in document")
	}
}

func TestPrintHandler_PrintReport_NotFound(t *testing.T) {
	h := NewPrintHandler(&mockPrintService{err: service.ErrNotFound})
	r := gin.New()
	r.SetHTMLTemplate(printview.Template())
	r.GET("/report/:id/print", h.PrintReport)

	w := perform(r, "GET", "/report/7/print", nil, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// OptionsHandler
// ═══════════════════════════════════════════════════════════

func TestOptionsHandler_GetOptions(t *testing.T) {
	h := NewOptionsHandler()
	r := gin.New()
	r.GET("/options", h.GetOptions)

	w := perform(r, "GET", "/options", nil, "")
	var resp dto.OptionsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Times) != 6 || len(resp.Locations) != 13 {
		t.Errorf("unexpected options: %d times, %d locations", len(resp.Times), len(resp.Locations))
	}
}
