// Package events 记录数据库相关事件，并以轮询方式推送给后台的事件流。
package events

import (
	"context"
	"errors"
	"time"
)

// 事件类型
const (
	TypeQuery       = "query"
	TypeConnection  = "connection"
	TypeMaintenance = "maintenance"
	TypeBackup      = "backup"
	TypeOptimize    = "optimization"
)

// 事件级别
const (
	SeverityInfo    = "info"
	SeveritySuccess = "success"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// ErrInvalidCursor is returned when a cursor was not produced by the log.
var ErrInvalidCursor = errors.New("invalid event cursor")

// Event 单条事件。ID 同时作为事件流的游标。
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMS *int64    `json:"duration,omitempty"`
	Table      string    `json:"table,omitempty"`
	Severity   string    `json:"severity"`
}

// Log 是只追加的事件存储。
//
// Since 返回游标之后的事件，按写入顺序；空游标表示从头开始。
// Recent 返回最新的 limit 条，按时间倒序。
// Cursor 返回最后一条事件的游标，日志为空时返回空串。
type Log interface {
	Append(ctx context.Context, event Event) (Event, error)
	Since(ctx context.Context, cursor string, limit int) ([]Event, error)
	Recent(ctx context.Context, limit int) ([]Event, error)
	Cursor(ctx context.Context) (string, error)
}

func normalize(event Event) Event {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Severity == "" {
		event.Severity = SeverityInfo
	}
	return event
}
