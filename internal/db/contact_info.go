package db

import "time"

// 联系方式类型
const (
	ContactTypeEmail   = "email"
	ContactTypePhone   = "phone"
	ContactTypeAddress = "address"
	ContactTypeSocial  = "social"
	ContactTypeOther   = "other"
)

// ContactTypes 按展示顺序列出全部联系方式类型。
var ContactTypes = []string{ContactTypeEmail, ContactTypePhone, ContactTypeAddress, ContactTypeSocial, ContactTypeOther}

// ContactInfo 用于保存前台展示的联系与社交信息
// Icon 字段用于匹配前端内置的图标
// 同一 Type 下最多一条 IsPrimary
type ContactInfo struct {
	ID        uint   `gorm:"primaryKey"`
	Type      string `gorm:"size:20;not null;index"`
	Label     string `gorm:"size:255;not null"`
	Value     string `gorm:"size:255;not null"`
	Icon      string `gorm:"size:50"`
	IsPrimary bool   `gorm:"default:false"`
	IsActive  bool   `gorm:"not null"`
	Order     int    `gorm:"column:order;default:0;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 返回自定义表名
func (ContactInfo) TableName() string {
	return "contact_info"
}
