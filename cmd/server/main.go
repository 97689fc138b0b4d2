package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"carenote/backend/config"
	"carenote/backend/internal/api/handler"
	"carenote/backend/internal/api/middleware"
	"carenote/backend/internal/api/router"
	"carenote/backend/internal/bootstrap"
	"carenote/backend/internal/imagecache"
	"carenote/backend/internal/repository"
	"carenote/backend/internal/service"
	applogger "carenote/backend/pkg/logger"
	"carenote/backend/pkg/redis"
)

func main() {
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("store", cfg.Store.Backend),
		zap.String("blob", cfg.Blob.Backend),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 打开表格与图片存储
	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	backends, err := bootstrap.Open(initCtx, cfg, logger)
	initCancel()
	if err != nil {
		logger.Fatal("初始化存储后端失败", zap.Error(err))
	}
	defer backends.Close()

	// 4. 连接 Redis（可选：未配置或连接失败时降级运行，不限流、无二级图片缓存）
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，限流与图片二级缓存将不可用", zap.Error(err))
			rdb = nil
		}
	}

	var (
		limiter middleware.RateLimiter
		remote  imagecache.RemoteCache
	)
	if rdb != nil {
		limiter = rdb
		remote = rdb
	}

	// 5. 图片解析器（进程内缓存，可叠加 Redis）
	cache := bootstrap.NewImageCache(&cfg.Image, remote, logger)
	resolver := imagecache.NewResolver(backends.Blob, cache, logger)

	// 6. 依赖注入: Repository → Service → Handler
	repo := repository.NewRepository(backends.Table, cfg.Store.SnapshotTTL)
	svc := service.NewService(repo, backends.Blob, resolver, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, limiter, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	// 写超时需覆盖上游调用超时与图片内嵌
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Upstream.Timeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
