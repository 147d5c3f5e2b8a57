package db

import "time"

// 留言状态流转：new -> read -> replied，任意状态可标记为 spam。
const (
	ContactFormStatusNew     = "new"
	ContactFormStatusRead    = "read"
	ContactFormStatusReplied = "replied"
	ContactFormStatusSpam    = "spam"
)

// ContactForm 访客通过首页提交的留言
type ContactForm struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Email     string `gorm:"size:255;not null"`
	Subject   string `gorm:"size:255"`
	Message   string `gorm:"type:text;not null"`
	Status    string `gorm:"size:20;default:new;index"`
	ReadAt    *time.Time
	RepliedAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 返回表名
func (ContactForm) TableName() string {
	return "contact_forms"
}
