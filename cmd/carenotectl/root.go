package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"carenote/backend/config"
	"carenote/backend/internal/bootstrap"
	"carenote/backend/internal/imagecache"
	"carenote/backend/internal/repository"
	"carenote/backend/internal/service"
	applogger "carenote/backend/pkg/logger"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "carenotectl",
	Short:         "carenotectl - operator tool for CareNote duty reports",
	Long:          "carenotectl reads, exports and prints duty reports directly from the configured report store.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ./config/config.yaml)")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newPrintCmd())
	rootCmd.AddCommand(newOptionsCmd())
}

// app 单条命令使用的服务集合
type app struct {
	svc    *service.Service
	logger *zap.Logger
	close  func()
}

func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// 日志写 stderr 且只输出 warn 以上，stdout 留给表格/JSON
	logCfg := cfg.Log
	logCfg.Format = "console"
	if logCfg.Level != "debug" {
		logCfg.Level = "warn"
	}
	logger, err := applogger.NewLogger(&logCfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	backends, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	resolver := imagecache.NewResolver(backends.Blob, imagecache.NewMemoryCache(), logger)
	repo := repository.NewRepository(backends.Table, 0)

	return &app{
		svc:    service.NewService(repo, backends.Blob, resolver, logger),
		logger: logger,
		close: func() {
			backends.Close()
			_ = logger.Sync()
		},
	}, nil
}
