// Package blobstore 报告图片的存储后端（Google Drive / Cloudinary / S3）。
package blobstore

import (
	"context"
	"io"
	"time"
)

// UploadResult 上传结果
type UploadResult struct {
	FileID  string // 后端内的资源标识（Drive 文件 ID、S3 对象 ID、Cloudinary public_id）
	URL     string // 直链（仅 Cloudinary 提供）
	FileURL string // 写入报告 imageUrl 的可分享链接
}

// Blob 拉取到的图片字节
type Blob struct {
	Data     []byte
	MimeType string
}

// Store 图片存储接口
type Store interface {
	Upload(ctx context.Context, name, mimeType string, r io.Reader, size int64) (*UploadResult, error)
	Fetch(ctx context.Context, resourceID string) (*Blob, error)
}

// WithTimeout 为每次调用附加超时；d <= 0 时原样返回
func WithTimeout(s Store, d time.Duration) Store {
	if d <= 0 {
		return s
	}
	return &timeoutStore{next: s, timeout: d}
}

type timeoutStore struct {
	next    Store
	timeout time.Duration
}

func (t *timeoutStore) Upload(ctx context.Context, name, mimeType string, r io.Reader, size int64) (*UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Upload(ctx, name, mimeType, r, size)
}

func (t *timeoutStore) Fetch(ctx context.Context, resourceID string) (*Blob, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Fetch(ctx, resourceID)
}
