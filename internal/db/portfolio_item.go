package db

import (
	"time"

	"gorm.io/datatypes"
)

// PortfolioItem 作品集条目，Tags 以 JSON 数组存储。
type PortfolioItem struct {
	ID          uint                        `gorm:"primaryKey"`
	Title       string                      `gorm:"size:255;not null"`
	Description string                      `gorm:"type:text;not null"`
	Image       string                      `gorm:"size:255"`
	URL         string                      `gorm:"column:url;size:255"`
	Category    string                      `gorm:"size:255;not null"`
	Tags        datatypes.JSONSlice[string] `gorm:"type:json"`
	IsActive    bool                        `gorm:"not null"`
	Order       int                         `gorm:"column:order;default:0;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 返回表名
func (PortfolioItem) TableName() string {
	return "portfolio_items"
}
