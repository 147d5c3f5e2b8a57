package db

import (
	"time"

	"gorm.io/datatypes"
)

// Experience 工作经历
// EndDate 为空且 IsCurrent 为 true 表示仍在职
type Experience struct {
	ID           uint           `gorm:"primaryKey"`
	Title        string         `gorm:"size:255;not null"`
	Company      string         `gorm:"size:255;not null"`
	Location     string         `gorm:"size:255"`
	StartDate    datatypes.Date `gorm:"not null"`
	EndDate      *datatypes.Date
	IsCurrent    bool   `gorm:"default:false"`
	Description  string `gorm:"type:text;not null"`
	Achievements string `gorm:"type:text"`
	Logo         string `gorm:"size:255"`
	Order        int    `gorm:"column:order;default:0;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName 返回表名
func (Experience) TableName() string {
	return "experiences"
}
