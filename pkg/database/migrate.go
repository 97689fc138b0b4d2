package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrationsTable 记录 report_rows 结构版本的表
const MigrationsTable = "carenote_schema_migrations"

// RunMigrations 将 report_rows 迁移到最新版本，返回迁移后的版本号。
// 上次迁移中途失败（dirty）时直接报错，不在半成品表结构上继续读写。
func RunMigrations(db *sql.DB, logger *zap.Logger) (uint, error) {
	m, err := newMigrator(db)
	if err != nil {
		return 0, err
	}

	before, dirty, err := currentVersion(m)
	if err != nil {
		return 0, err
	}
	if dirty {
		return before, fmt.Errorf("数据库迁移处于 dirty 状态（version=%d），需人工修复后再启动", before)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return before, fmt.Errorf("执行迁移失败: %w", err)
	}

	after, _, err := currentVersion(m)
	if err != nil {
		return before, err
	}

	if after == before {
		logger.Info("数据库结构已是最新", zap.Uint("version", after))
	} else {
		logger.Info("数据库迁移完成", zap.Uint("from", before), zap.Uint("to", after))
	}
	return after, nil
}

func newMigrator(db *sql.DB) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("加载迁移文件失败: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{MigrationsTable: MigrationsTable})
	if err != nil {
		return nil, fmt.Errorf("创建迁移驱动失败: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("初始化迁移实例失败: %w", err)
	}
	return m, nil
}

// currentVersion 空库返回 0
func currentVersion(m *migrate.Migrate) (uint, bool, error) {
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("读取迁移版本失败: %w", err)
	}
	return v, dirty, nil
}
