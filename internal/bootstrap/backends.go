// Package bootstrap 按配置组装存储后端与图片缓存，供 HTTP 服务与 carenotectl 共用。
package bootstrap

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"carenote/backend/config"
	"carenote/backend/internal/blobstore"
	"carenote/backend/internal/imagecache"
	"carenote/backend/internal/tablestore"
	"carenote/backend/pkg/database"
)

// Backends 已打开的表格与图片存储，均已套上 upstream.timeout
type Backends struct {
	Table tablestore.Store
	Blob  blobstore.Store

	closers []func() error
}

// Open 按 store.backend / blob.backend 打开存储
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Backends, error) {
	b := &Backends{}

	table, err := b.openTable(ctx, cfg, logger)
	if err != nil {
		b.Close()
		return nil, err
	}
	blob, err := openBlob(ctx, cfg, logger)
	if err != nil {
		b.Close()
		return nil, err
	}

	b.Table = tablestore.WithTimeout(table, cfg.Upstream.Timeout)
	b.Blob = blobstore.WithTimeout(blob, cfg.Upstream.Timeout)
	return b, nil
}

// Close 释放底层连接
func (b *Backends) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
	b.closers = nil
}

func (b *Backends) openTable(ctx context.Context, cfg *config.Config, logger *zap.Logger) (tablestore.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreSheets:
		creds, err := cfg.Google.CredentialsJSON()
		if err != nil {
			return nil, fmt.Errorf("生成 Google 凭据失败: %w", err)
		}
		s, err := tablestore.NewSheetsStore(ctx, creds, cfg.Store.Sheets.SpreadsheetID, cfg.Store.Sheets.SheetName)
		if err != nil {
			return nil, err
		}
		logger.Info("表格存储: Google Sheets", zap.String("spreadsheet_id", cfg.Store.Sheets.SpreadsheetID))
		return s, nil

	case config.StoreXLSX:
		s, err := tablestore.NewXLSXStore(cfg.Store.XLSX.Path, cfg.Store.XLSX.SheetName)
		if err != nil {
			return nil, err
		}
		logger.Info("表格存储: 本地 xlsx", zap.String("path", cfg.Store.XLSX.Path))
		return s, nil

	case config.StorePostgres:
		db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("获取底层 sql.DB 失败: %w", err)
		}
		b.closers = append(b.closers, sqlDB.Close)

		version, err := database.RunMigrations(sqlDB, logger)
		if err != nil {
			return nil, err
		}
		logger.Info("表格存储: PostgreSQL", zap.String("db", cfg.Database.Name), zap.Uint("schema_version", version))
		return tablestore.NewPostgresStore(db), nil
	}
	return nil, fmt.Errorf("未知的 store.backend %q", cfg.Store.Backend)
}

func openBlob(ctx context.Context, cfg *config.Config, logger *zap.Logger) (blobstore.Store, error) {
	switch cfg.Blob.Backend {
	case config.BlobDrive:
		creds, err := cfg.Google.CredentialsJSON()
		if err != nil {
			return nil, fmt.Errorf("生成 Google 凭据失败: %w", err)
		}
		s, err := blobstore.NewDriveStore(ctx, creds, cfg.Blob.Drive.FolderID)
		if err != nil {
			return nil, err
		}
		logger.Info("图片存储: Google Drive")
		return s, nil

	case config.BlobCloudinary:
		c := cfg.Blob.Cloudinary
		logger.Info("图片存储: Cloudinary", zap.String("cloud", c.CloudName))
		return blobstore.NewCloudinaryStore(http.DefaultClient, c.APIBase, c.CloudName, c.UploadPreset), nil

	case config.BlobS3:
		s, err := blobstore.NewS3Store(&cfg.Blob.S3)
		if err != nil {
			return nil, err
		}
		if err := s.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		logger.Info("图片存储: S3", zap.String("endpoint", cfg.Blob.S3.Endpoint), zap.String("bucket", cfg.Blob.S3.Bucket))
		return s, nil
	}
	return nil, fmt.Errorf("未知的 blob.backend %q", cfg.Blob.Backend)
}

// NewImageCache 进程内缓存；remote 非 nil 时叠加 Redis 二级缓存
func NewImageCache(cfg *config.ImageConfig, remote imagecache.RemoteCache, logger *zap.Logger) imagecache.Cache {
	local := imagecache.NewMemoryCache()
	if remote == nil {
		return local
	}
	return imagecache.NewTieredCache(local, remote, cfg.RedisTTL, logger)
}
