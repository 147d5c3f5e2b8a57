package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 支持的数据库驱动
const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	Server   ServerConfig   `mapstructure:"server"`
	Session  SessionConfig  `mapstructure:"session"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Events   EventsConfig   `mapstructure:"events"`
	Landing  LandingConfig  `mapstructure:"landing"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr"`
	Port       string `mapstructure:"port"`
	GinMode    string `mapstructure:"gin_mode"`
}

// SessionConfig 会话 cookie 配置
type SessionConfig struct {
	Secret string `mapstructure:"secret"`
}

// DatabaseConfig 描述数据库连接。sqlite 使用 Path，其余驱动使用 DSN。
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver"`
	Path     string `mapstructure:"path"`
	DSN      string `mapstructure:"dsn"`
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig 为空 URL 时事件日志回退到数据库表。
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

// AdminConfig seeds the first back-office account on startup.
type AdminConfig struct {
	Name     string `mapstructure:"name"`
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// UploadConfig 上传目录与对外访问路径
type UploadConfig struct {
	Dir     string `mapstructure:"dir"`
	URLPath string `mapstructure:"url_path"`
}

// EventsConfig controls the database event stream.
type EventsConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// LandingConfig 控制首页数据的组装方式。
type LandingConfig struct {
	FeaturedSkillsOnly bool `mapstructure:"featured_skills_only"`
}

// LogConfig zap 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load 读取配置：默认值 -> 可选 YAML 文件 -> 环境变量。
// path 为空时只读取环境变量。
func Load(path string) (AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	if err := bindEnv(v); err != nil {
		return AppConfig{}, fmt.Errorf("bind env: %w", err)
	}

	if file := strings.TrimSpace(path); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return AppConfig{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.normalize()
	if err := cfg.validate(); err != nil {
		return AppConfig{}, err
	}

	return cfg, nil
}

// MustLoad wraps Load and panics on failure.
func MustLoad(path string) AppConfig {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.listen_addr", "")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("session.secret", "portfolio-dev-secret")
	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.path", "portfolio.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("redis.url", "")
	v.SetDefault("admin.name", "Administrator")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
	v.SetDefault("upload.dir", "web/static/uploads")
	v.SetDefault("upload.url_path", "/static/uploads")
	v.SetDefault("events.poll_interval", 2*time.Second)
	v.SetDefault("landing.featured_skills_only", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("metrics.enabled", true)
}

func bindEnv(v *viper.Viper) error {
	mappings := map[string]string{
		"server.port":                  "PORT",
		"server.listen_addr":           "LISTEN_ADDR",
		"server.gin_mode":              "GIN_MODE",
		"session.secret":               "SESSION_SECRET",
		"database.driver":              "DATABASE_DRIVER",
		"database.path":                "DATABASE_PATH",
		"database.dsn":                 "DATABASE_DSN",
		"database.log_level":           "DATABASE_LOG_LEVEL",
		"redis.url":                    "REDIS_URL",
		"admin.name":                   "ADMIN_NAME",
		"admin.email":                  "ADMIN_EMAIL",
		"admin.password":               "ADMIN_PASSWORD",
		"upload.dir":                   "UPLOAD_DIR",
		"upload.url_path":              "UPLOAD_URL_PATH",
		"events.poll_interval":         "EVENTS_POLL_INTERVAL",
		"landing.featured_skills_only": "LANDING_FEATURED_SKILLS_ONLY",
		"log.level":                    "LOG_LEVEL",
		"log.format":                   "LOG_FORMAT",
		"metrics.enabled":              "METRICS_ENABLED",
	}

	for key, env := range mappings {
		if err := v.BindEnv(key, env); err != nil {
			return err
		}
	}
	return nil
}

func (c *AppConfig) normalize() {
	c.Server.Port = strings.TrimSpace(c.Server.Port)
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	c.Server.ListenAddr = strings.TrimSpace(c.Server.ListenAddr)
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = fmt.Sprintf(":%s", c.Server.Port)
	}
	c.Database.Driver = strings.ToLower(strings.TrimSpace(c.Database.Driver))
	if c.Database.Driver == "" {
		c.Database.Driver = DriverSQLite
	}
	c.Database.Path = strings.TrimSpace(c.Database.Path)
	c.Database.DSN = strings.TrimSpace(c.Database.DSN)
	c.Redis.URL = strings.TrimSpace(c.Redis.URL)
	c.Admin.Email = strings.ToLower(strings.TrimSpace(c.Admin.Email))
	c.Admin.Password = strings.TrimSpace(c.Admin.Password)
	c.Admin.Name = strings.TrimSpace(c.Admin.Name)
	c.Upload.Dir = strings.TrimSpace(c.Upload.Dir)
	c.Upload.URLPath = "/" + strings.Trim(strings.TrimSpace(c.Upload.URLPath), "/")
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	c.Log.Format = strings.ToLower(strings.TrimSpace(c.Log.Format))
}

func (c AppConfig) validate() error {
	switch c.Database.Driver {
	case DriverSQLite:
	case DriverMySQL, DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for driver %s", c.Database.Driver)
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	if c.Events.PollInterval <= 0 {
		return errors.New("events.poll_interval must be positive")
	}
	if strings.TrimSpace(c.Session.Secret) == "" {
		return errors.New("session.secret is required")
	}
	return nil
}

// IsDebug reports whether gin runs in debug mode.
func (c AppConfig) IsDebug() bool {
	return c.Server.GinMode == "debug"
}
