package db

import "time"

// LandingHourlyStat 记录首页每小时的访问量、独立访客与留言数。
type LandingHourlyStat struct {
	ID             uint      `gorm:"primaryKey"`
	Hour           time.Time `gorm:"uniqueIndex"`
	PageViews      uint64    `gorm:"default:0"`
	UniqueVisitors uint64    `gorm:"default:0"`
	Submissions    uint64    `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (LandingHourlyStat) TableName() string {
	return "landing_hourly_stats"
}

// LandingHourlyVisitor 每小时访客去重表。
type LandingHourlyVisitor struct {
	ID        uint      `gorm:"primaryKey"`
	Hour      time.Time `gorm:"uniqueIndex:idx_landing_hour_visitor"`
	VisitorID string    `gorm:"size:64;uniqueIndex:idx_landing_hour_visitor"`
	CreatedAt time.Time
}

func (LandingHourlyVisitor) TableName() string {
	return "landing_hourly_visitors"
}
