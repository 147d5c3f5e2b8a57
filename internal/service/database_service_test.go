package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/events"
)

type fakeIntrospector struct {
	connections int64
	slow        int64
	uptime      time.Duration
	version     string
	err         error
}

func (f fakeIntrospector) ActiveConnections(context.Context) (int64, error) {
	return f.connections, f.err
}

func (f fakeIntrospector) SlowQueries(context.Context) (int64, error) {
	return f.slow, f.err
}

func (f fakeIntrospector) Uptime(context.Context) (time.Duration, error) {
	return f.uptime, f.err
}

func (f fakeIntrospector) Version(context.Context) (string, error) {
	return f.version, f.err
}

func (f fakeIntrospector) TableMeta(context.Context, string) (TableMeta, error) {
	if f.err != nil {
		return TableMeta{}, f.err
	}
	return TableMeta{Engine: "InnoDB", Collation: "utf8mb4_unicode_ci"}, nil
}

func TestTableStatus(t *testing.T) {
	cases := map[int64]string{
		0:     TableStatusWarning,
		1:     TableStatusHealthy,
		500:   TableStatusHealthy,
		10000: TableStatusHealthy,
		10001: TableStatusWarning,
	}
	for records, want := range cases {
		if got := TableStatus(records); got != want {
			t.Fatalf("TableStatus(%d) = %s, want %s", records, got, want)
		}
	}
}

func TestDatabaseServiceTables(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewDatabaseService(gdb, events.NewGormLog(gdb), nil).WithIntrospector(fakeIntrospector{})

	if _, err := NewSkillService(gdb).Create(SkillInput{Name: "Go", Category: "Backend"}); err != nil {
		t.Fatalf("create skill failed: %v", err)
	}

	tables, err := svc.Tables(context.Background())
	if err != nil {
		t.Fatalf("tables failed: %v", err)
	}

	byName := make(map[string]TableInfo, len(tables))
	for _, table := range tables {
		byName[table.Name] = table
	}
	skills, ok := byName["skills"]
	if !ok {
		t.Fatalf("expected skills table in %v", tables)
	}
	if skills.Records != 1 || skills.Size != "1 KB" || skills.Status != TableStatusHealthy {
		t.Fatalf("unexpected skills table info: %+v", skills)
	}
	if skills.Engine != "InnoDB" || skills.LastBackup != "Never" {
		t.Fatalf("unexpected skills metadata: %+v", skills)
	}
	if projects := byName["projects"]; projects.Status != TableStatusWarning || projects.Size != "0 B" {
		t.Fatalf("expected empty projects table to warn, got %+v", projects)
	}
}

func TestDatabaseServiceStatsFallbacks(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewDatabaseService(gdb, events.NewGormLog(gdb), nil).
		WithIntrospector(fakeIntrospector{err: ErrIntrospectionUnsupported})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.ActiveConnections != 1 || stats.SlowQueries != 0 {
		t.Fatalf("unexpected connection fallbacks: %+v", stats)
	}
	if stats.Uptime != "Unknown" || stats.Version != "Unknown" || stats.LastBackup != "Never" {
		t.Fatalf("unexpected string fallbacks: %+v", stats)
	}
	if stats.TotalTables != len(db.Models()) {
		t.Fatalf("expected %d tables, got %d", len(db.Models()), stats.TotalTables)
	}
}

func TestDatabaseServiceSkipsEngineTables(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewDatabaseService(gdb, events.NewGormLog(gdb), nil).WithIntrospector(fakeIntrospector{})

	// 自增主键写入后 SQLite 会生成 sqlite_sequence
	if _, err := NewSkillService(gdb).Create(SkillInput{Name: "Go", Category: "Backend"}); err != nil {
		t.Fatalf("create skill failed: %v", err)
	}

	tables, err := svc.Tables(context.Background())
	if err != nil {
		t.Fatalf("tables failed: %v", err)
	}
	if len(tables) != len(db.Models()) {
		t.Fatalf("expected %d tables, got %d", len(db.Models()), len(tables))
	}
	for _, table := range tables {
		if strings.HasPrefix(table.Name, "sqlite_") {
			t.Fatalf("unexpected engine table %q in listing", table.Name)
		}
	}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.TotalTables != len(db.Models()) || stats.TotalRecords != 1 {
		t.Fatalf("expected only entity tables in stats, got %+v", stats)
	}
}

func TestDatabaseServiceStatsFromIntrospector(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewDatabaseService(gdb, events.NewGormLog(gdb), nil).WithIntrospector(fakeIntrospector{
		connections: 7,
		slow:        3,
		uptime:      26*time.Hour + 5*time.Minute,
		version:     "8.0.36",
	})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.ActiveConnections != 7 || stats.SlowQueries != 3 {
		t.Fatalf("unexpected counters: %+v", stats)
	}
	if stats.Uptime != "1d 2h 5m" || stats.Version != "8.0.36" {
		t.Fatalf("unexpected uptime/version: %+v", stats)
	}
}

func TestDatabaseServiceBackupRecordsEvents(t *testing.T) {
	gdb := setupServiceTestDB(t)
	log := events.NewGormLog(gdb)
	svc := NewDatabaseService(gdb, log, nil).WithIntrospector(fakeIntrospector{})
	fixed := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	result := svc.Backup(context.Background())
	if !result.Success || result.Message != "Database backup completed successfully" {
		t.Fatalf("unexpected backup result: %+v", result)
	}
	if !strings.HasPrefix(result.BackupID, "backup_") {
		t.Fatalf("expected backup id prefix, got %q", result.BackupID)
	}

	optimized := svc.Optimize(context.Background())
	if !optimized.Success || optimized.BackupID != "" {
		t.Fatalf("unexpected optimize result: %+v", optimized)
	}

	recent, err := log.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("recent events failed: %v", err)
	}
	if len(recent) != 4 || recent[0].Type != events.TypeOptimize {
		t.Fatalf("expected 4 events with optimization newest, got %+v", recent)
	}

	stats, _ := svc.Stats(context.Background())
	if stats.LastBackup != "2024-05-01 12:30:00" {
		t.Fatalf("expected last backup from events, got %q", stats.LastBackup)
	}
}

func TestDatabaseServiceEvents(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewDatabaseService(gdb, events.NewGormLog(gdb), nil).WithIntrospector(fakeIntrospector{})

	svc.RecordConnection(context.Background())

	list, err := svc.Events(context.Background())
	if err != nil {
		t.Fatalf("events failed: %v", err)
	}
	if len(list) != 4 {
		t.Fatalf("expected 3 samples plus 1 recorded event, got %d", len(list))
	}
	if list[0].Type != events.TypeQuery || list[0].DurationMS == nil || *list[0].DurationMS != 23 {
		t.Fatalf("unexpected first sample: %+v", list[0])
	}
	if !strings.HasPrefix(list[0].ID, "event_") {
		t.Fatalf("expected sample id prefix, got %q", list[0].ID)
	}
	if list[3].Type != events.TypeConnection || !strings.Contains(list[3].Message, "sqlite") {
		t.Fatalf("unexpected recorded event: %+v", list[3])
	}
}

type failingLog struct{}

func (failingLog) Append(context.Context, events.Event) (events.Event, error) {
	return events.Event{}, errors.New("down")
}

func (failingLog) Since(context.Context, string, int) ([]events.Event, error) {
	return nil, errors.New("down")
}

func (failingLog) Recent(context.Context, int) ([]events.Event, error) {
	return nil, errors.New("down")
}

func (failingLog) Cursor(context.Context) (string, error) {
	return "", errors.New("down")
}

func TestDatabaseServiceToleratesLogFailures(t *testing.T) {
	svc := NewDatabaseService(setupServiceTestDB(t), failingLog{}, nil).WithIntrospector(fakeIntrospector{})

	if result := svc.Backup(context.Background()); !result.Success {
		t.Fatalf("expected backup to succeed without an event log, got %+v", result)
	}
	list, err := svc.Events(context.Background())
	if err != nil || len(list) != 3 {
		t.Fatalf("expected only the samples, got %d (%v)", len(list), err)
	}
}
