package blobstore

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"carenote/backend/config"
)

// objectPrefix 对象键前缀，使公开链接形如 <base>/<bucket>/d/<id>，
// 与 Drive 分享链接的 /d/<id> 形态一致，可被同一规则提取资源 ID
const objectPrefix = "d/"

// S3Store 基于 S3 / MinIO 的图片存储
type S3Store struct {
	client        *minio.Client
	bucket        string
	region        string
	publicBaseURL string
}

// NewS3Store 从配置创建 MinIO 客户端
func NewS3Store(cfg *config.S3Config) (*S3Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("初始化 MinIO 客户端失败: %w", err)
	}
	return &S3Store{
		client:        client,
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// EnsureBucket 确保桶存在，并对 d/ 前缀开放匿名只读
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("检查桶 %s 失败: %w", s.bucket, err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return fmt.Errorf("创建桶 %s 失败: %w", s.bucket, err)
		}
	}

	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/%s*"]}]}`,
		s.bucket, objectPrefix)
	if err := s.client.SetBucketPolicy(ctx, s.bucket, policy); err != nil {
		return fmt.Errorf("设置桶公开读策略失败: %w", err)
	}
	return nil
}

func (s *S3Store) Upload(ctx context.Context, _ string, mimeType string, r io.Reader, size int64) (*UploadResult, error) {
	id := uuid.NewString()
	_, err := s.client.PutObject(ctx, s.bucket, objectPrefix+id, r, size, minio.PutObjectOptions{ContentType: mimeType})
	if err != nil {
		return nil, fmt.Errorf("上传对象失败: %w", err)
	}
	return &UploadResult{
		FileID:  id,
		FileURL: fmt.Sprintf("%s/%s/%s%s", s.publicBaseURL, s.bucket, objectPrefix, id),
	}, nil
}

func (s *S3Store) Fetch(ctx context.Context, resourceID string) (*Blob, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectPrefix+resourceID, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("获取对象失败: %w", err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, fmt.Errorf("获取对象信息失败: %w", err)
	}
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fmt.Errorf("读取对象失败: %w", err)
	}
	return &Blob{Data: data, MimeType: info.ContentType}, nil
}
