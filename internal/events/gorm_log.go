package events

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/portfolio/internal/db"
	"gorm.io/gorm"
)

// GormLog 将事件写入 database_events 表，游标为自增主键。
type GormLog struct {
	db *gorm.DB
}

// NewGormLog 构造 GormLog
func NewGormLog(gdb *gorm.DB) *GormLog {
	return &GormLog{db: gdb}
}

func (l *GormLog) Append(ctx context.Context, event Event) (Event, error) {
	event = normalize(event)
	row := db.DatabaseEvent{
		Type:       event.Type,
		Message:    event.Message,
		Severity:   event.Severity,
		Table:      event.Table,
		DurationMS: event.DurationMS,
		CreatedAt:  event.Timestamp,
	}
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		return Event{}, fmt.Errorf("append event: %w", err)
	}
	return fromRow(row), nil
}

func (l *GormLog) Since(ctx context.Context, cursor string, limit int) ([]Event, error) {
	after, err := parseRowCursor(cursor)
	if err != nil {
		return nil, err
	}

	var rows []db.DatabaseEvent
	query := l.db.WithContext(ctx).Where("id > ?", after).Order("id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return fromRows(rows), nil
}

func (l *GormLog) Recent(ctx context.Context, limit int) ([]Event, error) {
	var rows []db.DatabaseEvent
	query := l.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}
	return fromRows(rows), nil
}

func (l *GormLog) Cursor(ctx context.Context) (string, error) {
	var last uint
	if err := l.db.WithContext(ctx).Model(&db.DatabaseEvent{}).Select("COALESCE(MAX(id), 0)").Scan(&last).Error; err != nil {
		return "", fmt.Errorf("resolve event cursor: %w", err)
	}
	if last == 0 {
		return "", nil
	}
	return strconv.FormatUint(uint64(last), 10), nil
}

func parseRowCursor(cursor string) (uint64, error) {
	cursor = strings.TrimSpace(cursor)
	if cursor == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(cursor, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCursor, cursor)
	}
	return value, nil
}

func fromRows(rows []db.DatabaseEvent) []Event {
	events := make([]Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, fromRow(row))
	}
	return events
}

func fromRow(row db.DatabaseEvent) Event {
	return Event{
		ID:         strconv.FormatUint(uint64(row.ID), 10),
		Type:       row.Type,
		Message:    row.Message,
		Timestamp:  row.CreatedAt.UTC(),
		DurationMS: row.DurationMS,
		Table:      row.Table,
		Severity:   row.Severity,
	}
}
