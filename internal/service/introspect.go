package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrIntrospectionUnsupported 当前数据库不提供该指标
var ErrIntrospectionUnsupported = errors.New("introspection not supported")

// TableMeta 存储引擎与排序规则
type TableMeta struct {
	Engine    string
	Collation string
}

// Introspector 读取数据库引擎层面的运行指标，每一项都可能失败，由调用方各自回退。
type Introspector interface {
	ActiveConnections(ctx context.Context) (int64, error)
	SlowQueries(ctx context.Context) (int64, error)
	Uptime(ctx context.Context) (time.Duration, error)
	Version(ctx context.Context) (string, error)
	TableMeta(ctx context.Context, table string) (TableMeta, error)
}

// NewIntrospector 按方言选择实现
func NewIntrospector(gdb *gorm.DB) Introspector {
	switch gdb.Dialector.Name() {
	case "mysql":
		return &mysqlIntrospector{db: gdb}
	case "postgres":
		return &postgresIntrospector{db: gdb}
	default:
		return &sqliteIntrospector{db: gdb}
	}
}

type mysqlIntrospector struct {
	db *gorm.DB
}

func (m *mysqlIntrospector) status(ctx context.Context, name string) (int64, error) {
	var row struct {
		VariableName string `gorm:"column:Variable_name"`
		Value        string `gorm:"column:Value"`
	}
	result := m.db.WithContext(ctx).Raw("SHOW STATUS LIKE ?", name).Scan(&row)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, fmt.Errorf("status %s: %w", name, ErrIntrospectionUnsupported)
	}
	return strconv.ParseInt(strings.TrimSpace(row.Value), 10, 64)
}

func (m *mysqlIntrospector) ActiveConnections(ctx context.Context) (int64, error) {
	return m.status(ctx, "Threads_connected")
}

func (m *mysqlIntrospector) SlowQueries(ctx context.Context) (int64, error) {
	return m.status(ctx, "Slow_queries")
}

func (m *mysqlIntrospector) Uptime(ctx context.Context) (time.Duration, error) {
	seconds, err := m.status(ctx, "Uptime")
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func (m *mysqlIntrospector) Version(ctx context.Context) (string, error) {
	var version string
	if err := m.db.WithContext(ctx).Raw("SELECT VERSION()").Scan(&version).Error; err != nil {
		return "", err
	}
	return version, nil
}

func (m *mysqlIntrospector) TableMeta(ctx context.Context, table string) (TableMeta, error) {
	var row struct {
		Engine    *string `gorm:"column:Engine"`
		Collation *string `gorm:"column:Collation"`
	}
	result := m.db.WithContext(ctx).Raw("SHOW TABLE STATUS WHERE Name = ?", table).Scan(&row)
	if result.Error != nil {
		return TableMeta{}, result.Error
	}
	if result.RowsAffected == 0 || row.Engine == nil {
		return TableMeta{}, ErrIntrospectionUnsupported
	}
	meta := TableMeta{Engine: *row.Engine, Collation: "Unknown"}
	if row.Collation != nil {
		meta.Collation = *row.Collation
	}
	return meta, nil
}

type postgresIntrospector struct {
	db *gorm.DB
}

func (p *postgresIntrospector) ActiveConnections(ctx context.Context) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Raw("SELECT count(*) FROM pg_stat_activity WHERE datname = current_database()").Scan(&total).Error
	return total, err
}

// 需要 pg_stat_statements 扩展，未安装时返回错误
func (p *postgresIntrospector) SlowQueries(ctx context.Context) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Raw("SELECT count(*) FROM pg_stat_statements WHERE mean_exec_time > 1000").Scan(&total).Error
	return total, err
}

func (p *postgresIntrospector) Uptime(ctx context.Context) (time.Duration, error) {
	var seconds float64
	if err := p.db.WithContext(ctx).Raw("SELECT EXTRACT(EPOCH FROM now() - pg_postmaster_start_time())").Scan(&seconds).Error; err != nil {
		return 0, err
	}
	return time.Duration(seconds) * time.Second, nil
}

func (p *postgresIntrospector) Version(ctx context.Context) (string, error) {
	var version string
	if err := p.db.WithContext(ctx).Raw("SHOW server_version").Scan(&version).Error; err != nil {
		return "", err
	}
	return "PostgreSQL " + version, nil
}

func (p *postgresIntrospector) TableMeta(ctx context.Context, _ string) (TableMeta, error) {
	var collation string
	if err := p.db.WithContext(ctx).Raw("SELECT datcollate FROM pg_database WHERE datname = current_database()").Scan(&collation).Error; err != nil {
		return TableMeta{}, err
	}
	return TableMeta{Engine: "PostgreSQL", Collation: collation}, nil
}

type sqliteIntrospector struct {
	db *gorm.DB
}

// 嵌入式数据库没有独立连接，返回连接池中已打开的连接数
func (s *sqliteIntrospector) ActiveConnections(context.Context) (int64, error) {
	sqlDB, err := s.db.DB()
	if err != nil {
		return 0, err
	}
	return int64(sqlDB.Stats().OpenConnections), nil
}

func (s *sqliteIntrospector) SlowQueries(context.Context) (int64, error) {
	return 0, ErrIntrospectionUnsupported
}

func (s *sqliteIntrospector) Uptime(context.Context) (time.Duration, error) {
	return 0, ErrIntrospectionUnsupported
}

func (s *sqliteIntrospector) Version(ctx context.Context) (string, error) {
	var version string
	if err := s.db.WithContext(ctx).Raw("SELECT sqlite_version()").Scan(&version).Error; err != nil {
		return "", err
	}
	return "SQLite " + version, nil
}

func (s *sqliteIntrospector) TableMeta(context.Context, string) (TableMeta, error) {
	return TableMeta{Engine: "SQLite", Collation: "BINARY"}, nil
}
