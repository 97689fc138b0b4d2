package config

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Store     StoreConfig     `mapstructure:"store"`
	Blob      BlobConfig      `mapstructure:"blob"`
	Google    GoogleConfig    `mapstructure:"google"`
	Database  DatabaseConfig  `mapstructure:"db"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Image     ImageConfig     `mapstructure:"image"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port      int        `mapstructure:"port"`
	BodyLimit int64      `mapstructure:"body_limit"` // 请求体上限（字节），上传接口同样受限
	CORS      CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// 表格存储后端
const (
	StoreSheets   = "sheets"
	StoreXLSX     = "xlsx"
	StorePostgres = "postgres"
)

// StoreConfig 报告表格存储配置
type StoreConfig struct {
	Backend     string        `mapstructure:"backend"`
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"` // 0 表示每次查询都全表重读
	Sheets      SheetsConfig  `mapstructure:"sheets"`
	XLSX        XLSXConfig    `mapstructure:"xlsx"`
}

// SheetsConfig Google Sheets 配置
type SheetsConfig struct {
	SpreadsheetID string `mapstructure:"spreadsheet_id"`
	SheetName     string `mapstructure:"sheet_name"`
}

// XLSXConfig 本地 Excel 文件配置
type XLSXConfig struct {
	Path      string `mapstructure:"path"`
	SheetName string `mapstructure:"sheet_name"`
}

// 图片存储后端
const (
	BlobDrive      = "drive"
	BlobCloudinary = "cloudinary"
	BlobS3         = "s3"
)

// BlobConfig 图片存储配置
type BlobConfig struct {
	Backend    string           `mapstructure:"backend"`
	Drive      DriveConfig      `mapstructure:"drive"`
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	S3         S3Config         `mapstructure:"s3"`
}

// DriveConfig Google Drive 配置
type DriveConfig struct {
	FolderID string `mapstructure:"folder_id"`
}

// CloudinaryConfig Cloudinary 无签名上传配置
type CloudinaryConfig struct {
	CloudName    string `mapstructure:"cloud_name"`
	UploadPreset string `mapstructure:"upload_preset"`
	APIBase      string `mapstructure:"api_base"`
}

// S3Config S3 / MinIO 配置
type S3Config struct {
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	Bucket        string `mapstructure:"bucket"`
	Region        string `mapstructure:"region"`
	UseSSL        bool   `mapstructure:"use_ssl"`
	PublicBaseURL string `mapstructure:"public_base_url"`
}

// GoogleConfig 服务账号凭据（Sheets 与 Drive 共用）
type GoogleConfig struct {
	ClientEmail string `mapstructure:"client_email"`
	PrivateKey  string `mapstructure:"private_key"`
}

// CredentialsJSON 拼装服务账号 JSON，环境变量中的 \n 转义还原为换行
func (c *GoogleConfig) CredentialsJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"type":         "service_account",
		"client_email": c.ClientEmail,
		"private_key":  strings.ReplaceAll(c.PrivateKey, `\n`, "\n"),
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
}

// DatabaseConfig PostgreSQL 数据库配置（仅 store.backend=postgres 时使用）
type DatabaseConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Name         string `mapstructure:"name"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	SSLMode      string `mapstructure:"sslmode"`
	Timezone     string `mapstructure:"timezone"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis 配置，Addr 为空时不启用
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// ImageConfig 图片解析缓存配置
type ImageConfig struct {
	RedisTTL time.Duration `mapstructure:"redis_ttl"` // Redis 二级缓存有效期，0 表示不写 Redis
}

// UpstreamConfig 外部服务调用配置
type UpstreamConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// RateLimitConfig 写接口限流配置
type RateLimitConfig struct {
	Limit  int           `mapstructure:"limit"`
	Window time.Duration `mapstructure:"window"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.body_limit", 10<<20)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:3000"})

	v.SetDefault("store.backend", StoreXLSX)
	v.SetDefault("store.snapshot_ttl", "0s")
	v.SetDefault("store.sheets.spreadsheet_id", "")
	v.SetDefault("store.sheets.sheet_name", "รายงาน")
	v.SetDefault("store.xlsx.path", "./data/carenote.xlsx")
	v.SetDefault("store.xlsx.sheet_name", "รายงาน")

	v.SetDefault("blob.backend", BlobS3)
	v.SetDefault("blob.drive.folder_id", "")
	v.SetDefault("blob.cloudinary.cloud_name", "")
	v.SetDefault("blob.cloudinary.upload_preset", "")
	v.SetDefault("blob.cloudinary.api_base", "https://api.cloudinary.com/v1_1")
	v.SetDefault("blob.s3.endpoint", "localhost:9000")
	v.SetDefault("blob.s3.access_key", "")
	v.SetDefault("blob.s3.secret_key", "")
	v.SetDefault("blob.s3.bucket", "carenote")
	v.SetDefault("blob.s3.region", "us-east-1")
	v.SetDefault("blob.s3.use_ssl", false)
	v.SetDefault("blob.s3.public_base_url", "http://localhost:9000")

	// 未设默认值的键无法被 AutomaticEnv 映射，凭据也需要占位
	v.SetDefault("google.client_email", "")
	v.SetDefault("google.private_key", "")

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "carenote")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Asia/Bangkok")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("db.max_idle_conns", 5)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("image.redis_ttl", "24h")
	v.SetDefault("upstream.timeout", "30s")

	v.SetDefault("rate_limit.limit", 30)
	v.SetDefault("rate_limit.window", "1m")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("CARENOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}

	switch c.Store.Backend {
	case StoreSheets:
		if c.Store.Sheets.SpreadsheetID == "" {
			return fmt.Errorf("配置校验失败: store.sheets.spreadsheet_id 不能为空")
		}
		if c.Google.ClientEmail == "" || c.Google.PrivateKey == "" {
			return fmt.Errorf("配置校验失败: sheets 后端需要 google.client_email 与 google.private_key")
		}
	case StoreXLSX:
		if c.Store.XLSX.Path == "" {
			return fmt.Errorf("配置校验失败: store.xlsx.path 不能为空")
		}
	case StorePostgres:
	default:
		return fmt.Errorf("配置校验失败: 未知的 store.backend %q", c.Store.Backend)
	}

	switch c.Blob.Backend {
	case BlobDrive:
		if c.Google.ClientEmail == "" || c.Google.PrivateKey == "" {
			return fmt.Errorf("配置校验失败: drive 后端需要 google.client_email 与 google.private_key")
		}
	case BlobCloudinary:
		if c.Blob.Cloudinary.CloudName == "" || c.Blob.Cloudinary.UploadPreset == "" {
			return fmt.Errorf("配置校验失败: cloudinary 后端需要 cloud_name 与 upload_preset")
		}
	case BlobS3:
		if c.Blob.S3.Endpoint == "" || c.Blob.S3.Bucket == "" {
			return fmt.Errorf("配置校验失败: s3 后端需要 endpoint 与 bucket")
		}
	default:
		return fmt.Errorf("配置校验失败: 未知的 blob.backend %q", c.Blob.Backend)
	}

	return nil
}
