package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"carenote/backend/internal/blobstore"
	"carenote/backend/internal/imagecache"
	"carenote/backend/internal/model"
	"carenote/backend/internal/repository"
)

// ── Mock TableStore ──

type mockTableStore struct {
	rows      [][]string
	readErr   error
	appendErr error
	// failReadAfterAppend 追加成功后的读取返回 readErr
	failReadAfterAppend bool
	appended            bool
}

func newMockTableStore(data ...[]string) *mockTableStore {
	rows := [][]string{model.ReportHeader}
	rows = append(rows, data...)
	return &mockTableStore{rows: rows}
}

func (m *mockTableStore) Append(_ context.Context, row []string) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.rows = append(m.rows, append([]string(nil), row...))
	m.appended = true
	return nil
}

func (m *mockTableStore) ReadAll(_ context.Context) ([][]string, error) {
	if m.readErr != nil && (!m.failReadAfterAppend || m.appended) {
		return nil, m.readErr
	}
	out := make([][]string, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

// ── Mock BlobStore ──

type mockBlobStore struct {
	uploadResult *blobstore.UploadResult
	uploadErr    error
	uploadedName string
	uploadedMime string
	uploadedData []byte

	blobs      map[string]*blobstore.Blob
	fetchErr   error
	fetchCalls int
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{blobs: make(map[string]*blobstore.Blob)}
}

func (m *mockBlobStore) Upload(_ context.Context, name, mimeType string, r io.Reader, _ int64) (*blobstore.UploadResult, error) {
	if m.uploadErr != nil {
		return nil, m.uploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.uploadedName, m.uploadedMime, m.uploadedData = name, mimeType, data
	return m.uploadResult, nil
}

func (m *mockBlobStore) Fetch(_ context.Context, id string) (*blobstore.Blob, error) {
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	if b, ok := m.blobs[id]; ok {
		return b, nil
	}
	return nil, io.ErrUnexpectedEOF
}

// ── 测试辅助 ──

func row(date, tm, name, location, event, imageURL string) []string {
	return []string{date, tm, name, location, event, imageURL, ""}
}

func setupTestService(table *mockTableStore) (*Service, *mockBlobStore) {
	blobs := newMockBlobStore()
	logger := zap.NewNop()
	repo := repository.NewRepository(table, 0)
	resolver := imagecache.NewResolver(blobs, imagecache.NewMemoryCache(), logger)
	return NewService(repo, blobs, resolver, logger), blobs
}
