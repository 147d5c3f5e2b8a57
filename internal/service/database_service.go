package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/events"
	"github.com/portfolio/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// 表状态
const (
	TableStatusHealthy = "healthy"
	TableStatusWarning = "warning"
	TableStatusError   = "error"
)

const (
	// 每行按 1KB 估算表大小
	estimatedRowBytes = 1024
	largeTableRows    = 10000
	recentEventLimit  = 50
	backupLookback    = 200
	unknownValue      = "Unknown"
	neverBackedUp     = "Never"
	backupTimeLayout  = "2006-01-02 15:04:05"
)

// TableInfo 单张表的概况
type TableInfo struct {
	Name       string `json:"name"`
	Records    int64  `json:"records"`
	Size       string `json:"size"`
	SizeBytes  int64  `json:"size_bytes"`
	LastBackup string `json:"last_backup"`
	Status     string `json:"status"`
	Engine     string `json:"engine"`
	Collation  string `json:"collation"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// DatabaseStats 数据库整体指标。引擎相关字段读取失败时分别回退为 1、0、"Unknown"。
type DatabaseStats struct {
	TotalTables       int    `json:"total_tables"`
	TotalRecords      int64  `json:"total_records"`
	DatabaseSize      string `json:"database_size"`
	LastBackup        string `json:"last_backup"`
	ActiveConnections int64  `json:"active_connections"`
	SlowQueries       int64  `json:"slow_queries"`
	Uptime            string `json:"uptime"`
	Version           string `json:"version"`
}

// ActionResult 备份与优化的返回
type ActionResult struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	BackupID string `json:"backup_id,omitempty"`
}

// DatabaseService 后台数据库面板：表概况、统计、事件与维护操作。
// 备份与优化只记录日志和事件，不做实际操作。
type DatabaseService struct {
	db           *gorm.DB
	log          events.Log
	introspector Introspector
	logger       *zap.Logger
	now          func() time.Time
}

// NewDatabaseService 构造 DatabaseService
func NewDatabaseService(gdb *gorm.DB, log events.Log, logger *zap.Logger) *DatabaseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DatabaseService{
		db:           gdb,
		log:          log,
		introspector: NewIntrospector(gdb),
		logger:       logger,
		now:          time.Now,
	}
}

// WithIntrospector 替换引擎指标来源，主要面向测试。
func (s *DatabaseService) WithIntrospector(introspector Introspector) *DatabaseService {
	if introspector != nil {
		s.introspector = introspector
	}
	return s
}

// Log exposes the event log backing the stream.
func (s *DatabaseService) Log() events.Log {
	return s.log
}

// TableStatus 空表或超过一万行视为 warning
func TableStatus(records int64) string {
	if records == 0 || records > largeTableRows {
		return TableStatusWarning
	}
	return TableStatusHealthy
}

// Tables 返回每张表的记录数、估算大小与状态，单表失败时状态为 error。
func (s *DatabaseService) Tables(ctx context.Context) ([]TableInfo, error) {
	names := s.tableNames(ctx)
	lastBackup := s.lastBackup(ctx)
	stamp := s.now().UTC().Format(time.RFC3339)

	tables := make([]TableInfo, len(names))
	for i, name := range names {
		info := TableInfo{
			Name:       name,
			LastBackup: lastBackup,
			Engine:     unknownValue,
			Collation:  unknownValue,
			CreatedAt:  stamp,
			UpdatedAt:  stamp,
		}

		var records int64
		if err := s.db.WithContext(ctx).Table(name).Count(&records).Error; err != nil {
			s.logger.Warn("count table records failed", zap.String("table", name), zap.Error(err))
			info.Size = FormatBytes(0)
			info.LastBackup = neverBackedUp
			info.Status = TableStatusError
			tables[i] = info
			continue
		}

		info.Records = records
		info.SizeBytes = records * estimatedRowBytes
		info.Size = FormatBytes(info.SizeBytes)
		info.Status = TableStatus(records)
		if meta, err := s.introspector.TableMeta(ctx, name); err == nil {
			info.Engine = meta.Engine
			info.Collation = meta.Collation
		}
		tables[i] = info
	}
	return tables, nil
}

// Stats 汇总统计，引擎指标并发读取且互不影响。
func (s *DatabaseService) Stats(ctx context.Context) (DatabaseStats, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return DatabaseStats{}, err
	}

	stats := DatabaseStats{
		TotalTables:       len(tables),
		LastBackup:        s.lastBackup(ctx),
		ActiveConnections: 1,
		SlowQueries:       0,
		Uptime:            unknownValue,
		Version:           unknownValue,
	}
	var totalBytes int64
	for _, table := range tables {
		stats.TotalRecords += table.Records
		totalBytes += table.SizeBytes
	}
	stats.DatabaseSize = FormatBytes(totalBytes)

	var mu sync.Mutex
	set := func(apply func()) {
		mu.Lock()
		defer mu.Unlock()
		apply()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if v, err := s.introspector.ActiveConnections(gctx); err == nil && v > 0 {
			set(func() { stats.ActiveConnections = v })
		} else if err != nil {
			s.logger.Debug("introspect active connections failed", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if v, err := s.introspector.SlowQueries(gctx); err == nil {
			set(func() { stats.SlowQueries = v })
		} else {
			s.logger.Debug("introspect slow queries failed", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if v, err := s.introspector.Uptime(gctx); err == nil {
			set(func() { stats.Uptime = FormatUptime(v) })
		} else {
			s.logger.Debug("introspect uptime failed", zap.Error(err))
		}
		return nil
	})
	g.Go(func() error {
		if v, err := s.introspector.Version(gctx); err == nil && v != "" {
			set(func() { stats.Version = v })
		} else if err != nil {
			s.logger.Debug("introspect version failed", zap.Error(err))
		}
		return nil
	})
	_ = g.Wait()

	return stats, nil
}

// SampleEvents 固定的三条示例事件，时间相对 now。
func SampleEvents(now time.Time) []events.Event {
	duration := int64(23)
	return []events.Event{
		{
			ID:         "event_" + uuid.NewString(),
			Type:       events.TypeQuery,
			Message:    `SELECT * FROM users WHERE created_at > "2024-01-01"`,
			Timestamp:  now.Add(-2 * time.Minute).UTC(),
			DurationMS: &duration,
			Table:      "users",
			Severity:   events.SeverityInfo,
		},
		{
			ID:        "event_" + uuid.NewString(),
			Type:      events.TypeConnection,
			Message:   "New database connection established",
			Timestamp: now.Add(-5 * time.Minute).UTC(),
			Severity:  events.SeverityInfo,
		},
		{
			ID:        "event_" + uuid.NewString(),
			Type:      events.TypeMaintenance,
			Message:   "Database maintenance completed",
			Timestamp: now.Add(-time.Hour).UTC(),
			Severity:  events.SeveritySuccess,
		},
	}
}

// Events 示例事件在前，之后是最近记录的事件（新的在前）。
func (s *DatabaseService) Events(ctx context.Context) ([]events.Event, error) {
	result := SampleEvents(s.now())
	if s.log == nil {
		return result, nil
	}

	recent, err := s.log.Recent(ctx, recentEventLimit)
	if err != nil {
		s.logger.Warn("load recent database events failed", zap.Error(err))
		return result, nil
	}
	return append(result, recent...), nil
}

// Backup 记录一次备份，始终成功
func (s *DatabaseService) Backup(ctx context.Context) ActionResult {
	s.record(ctx, events.TypeBackup, "Database backup initiated", events.SeverityInfo)

	backupID := "backup_" + uuid.NewString()
	s.record(ctx, events.TypeBackup, "Database backup completed", events.SeveritySuccess)
	s.logger.Info("database backup completed", zap.String("backup_id", backupID))
	metrics.AdminActions.WithLabelValues("backup").Inc()

	return ActionResult{
		Success:  true,
		Message:  "Database backup completed successfully",
		BackupID: backupID,
	}
}

// Optimize 记录一次优化，始终成功
func (s *DatabaseService) Optimize(ctx context.Context) ActionResult {
	s.record(ctx, events.TypeOptimize, "Database optimization initiated", events.SeverityInfo)
	s.record(ctx, events.TypeOptimize, "Database optimization completed", events.SeveritySuccess)
	s.logger.Info("database optimization completed")
	metrics.AdminActions.WithLabelValues("optimize").Inc()

	return ActionResult{
		Success: true,
		Message: "Database optimization completed successfully",
	}
}

// RecordConnection 启动时写入一条连接事件
func (s *DatabaseService) RecordConnection(ctx context.Context) {
	s.record(ctx, events.TypeConnection, fmt.Sprintf("Database connection established (%s)", s.db.Dialector.Name()), events.SeverityInfo)
}

func (s *DatabaseService) record(ctx context.Context, eventType, message, severity string) {
	s.logger.Info("database event",
		zap.String("type", eventType),
		zap.String("message", message),
		zap.String("severity", severity),
	)
	if s.log == nil {
		return
	}
	if _, err := s.log.Append(ctx, events.Event{Type: eventType, Message: message, Severity: severity, Timestamp: s.now().UTC()}); err != nil {
		s.logger.Warn("append database event failed", zap.String("type", eventType), zap.Error(err))
	}
}

// tableNames 只返回已迁移的实体表，引擎自带的表（如 sqlite_sequence）不计入。
func (s *DatabaseService) tableNames(ctx context.Context) []string {
	known, err := db.EntityTables(s.db)
	if err != nil {
		s.logger.Warn("resolve model tables failed", zap.Error(err))
		return nil
	}
	existing, err := s.db.WithContext(ctx).Migrator().GetTables()
	if err != nil || len(existing) == 0 {
		if err != nil {
			s.logger.Warn("list database tables failed, using model tables", zap.Error(err))
		}
		return known
	}

	present := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		present[name] = struct{}{}
	}
	names := make([]string, 0, len(known))
	for _, name := range known {
		if _, ok := present[name]; ok {
			names = append(names, name)
		}
	}
	return names
}

func (s *DatabaseService) lastBackup(ctx context.Context) string {
	if s.log == nil {
		return neverBackedUp
	}
	recent, err := s.log.Recent(ctx, backupLookback)
	if err != nil {
		return neverBackedUp
	}
	for _, event := range recent {
		if event.Type == events.TypeBackup && event.Severity == events.SeveritySuccess {
			return event.Timestamp.UTC().Format(backupTimeLayout)
		}
	}
	return neverBackedUp
}
