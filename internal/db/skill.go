package db

import "time"

// Skill 技能条目，Proficiency 取值 0-100。
type Skill struct {
	ID              uint   `gorm:"primaryKey"`
	Name            string `gorm:"size:255;not null"`
	Category        string `gorm:"size:255;not null"`
	Proficiency     int    `gorm:"default:0"`
	YearsExperience int    `gorm:"default:0"`
	Icon            string `gorm:"size:255"`
	Description     string `gorm:"type:text"`
	IsFeatured      bool   `gorm:"default:false"`
	Order           int    `gorm:"column:order;default:0;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName 返回表名
func (Skill) TableName() string {
	return "skills"
}
