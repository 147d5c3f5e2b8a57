package db

import "time"

// DatabaseEvent 追加写入的数据库事件日志，供后台事件流轮询。
type DatabaseEvent struct {
	ID         uint   `gorm:"primaryKey"`
	Type       string `gorm:"size:30;not null"`
	Message    string `gorm:"size:500;not null"`
	Severity   string `gorm:"size:20;not null"`
	Table      string `gorm:"column:table_name;size:100"`
	DurationMS *int64
	CreatedAt  time.Time `gorm:"index"`
}

// TableName 返回表名
func (DatabaseEvent) TableName() string {
	return "database_events"
}
