package db

import (
	"time"

	"gorm.io/datatypes"
)

// 项目状态
const (
	ProjectStatusCompleted  = "completed"
	ProjectStatusInProgress = "in-progress"
	ProjectStatusPlanned    = "planned"
)

// Project 展示在首页的项目
type Project struct {
	ID             uint                        `gorm:"primaryKey"`
	Title          string                      `gorm:"size:255;not null"`
	Description    string                      `gorm:"type:text;not null"`
	Image          string                      `gorm:"size:255"`
	URL            string                      `gorm:"column:url;size:255"`
	GitHubURL      string                      `gorm:"column:github_url;size:255"`
	Technologies   datatypes.JSONSlice[string] `gorm:"type:json"`
	Category       string                      `gorm:"size:255"`
	Status         string                      `gorm:"size:20;default:completed"`
	CompletionDate *datatypes.Date
	IsFeatured     bool `gorm:"default:false"`
	IsActive       bool `gorm:"not null"`
	Order          int  `gorm:"column:order;default:0;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 返回表名
func (Project) TableName() string {
	return "projects"
}
