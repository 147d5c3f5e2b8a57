package db

import "time"

// Profile 个人资料，每个账号最多一份。
type Profile struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     uint   `gorm:"uniqueIndex;not null"`
	FirstName  string `gorm:"size:255;not null"`
	MiddleName string `gorm:"size:255"`
	LastName   string `gorm:"size:255;not null"`
	Title      string `gorm:"size:255;not null"`
	Location   string `gorm:"size:255"`
	Bio        string `gorm:"type:text"`
	Avatar     string `gorm:"size:255"`
	Phone      string `gorm:"size:50"`
	Website    string `gorm:"size:255"`
	LinkedIn   string `gorm:"column:linkedin;size:255"`
	GitHub     string `gorm:"column:github;size:255"`
	Twitter    string `gorm:"size:255"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName 返回表名
func (Profile) TableName() string {
	return "profiles"
}

// FullName joins the non-empty name parts.
func (p Profile) FullName() string {
	name := p.FirstName
	if p.MiddleName != "" {
		name += " " + p.MiddleName
	}
	if p.LastName != "" {
		name += " " + p.LastName
	}
	return name
}
