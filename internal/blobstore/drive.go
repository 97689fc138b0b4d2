package blobstore

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveStore 基于 Google Drive 的图片存储。
// 上传后授予 anyone:reader 权限，返回 /file/d/<id>/view 形式的分享链接。
type DriveStore struct {
	svc      *drive.Service
	folderID string
}

// NewDriveStore 使用服务账号凭据创建 Drive 客户端
func NewDriveStore(ctx context.Context, credentialsJSON []byte, folderID string) (*DriveStore, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(drive.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("初始化 Drive 客户端失败: %w", err)
	}
	return &DriveStore{svc: svc, folderID: folderID}, nil
}

func (s *DriveStore) Upload(ctx context.Context, name, mimeType string, r io.Reader, _ int64) (*UploadResult, error) {
	meta := &drive.File{Name: name, MimeType: mimeType}
	if s.folderID != "" {
		meta.Parents = []string{s.folderID}
	}

	created, err := s.svc.Files.Create(meta).
		Media(r, googleapi.ContentType(mimeType)).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("上传到 Drive 失败: %w", err)
	}

	_, err = s.svc.Permissions.Create(created.Id, &drive.Permission{Role: "reader", Type: "anyone"}).
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("设置 Drive 公开权限失败: %w", err)
	}

	return &UploadResult{
		FileID:  created.Id,
		FileURL: DriveViewURL(created.Id),
	}, nil
}

func (s *DriveStore) Fetch(ctx context.Context, resourceID string) (*Blob, error) {
	resp, err := s.svc.Files.Get(resourceID).SupportsAllDrives(true).Context(ctx).Download()
	if err != nil {
		return nil, fmt.Errorf("下载 Drive 文件失败: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取 Drive 文件失败: %w", err)
	}
	return &Blob{Data: data, MimeType: resp.Header.Get("Content-Type")}, nil
}

// DriveViewURL Drive 文件的分享链接
func DriveViewURL(fileID string) string {
	return "https://drive.google.com/file/d/" + fileID + "/view"
}
