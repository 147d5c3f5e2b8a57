package db

import "time"

// 内容块类型
const (
	ContentTypeText  = "text"
	ContentTypeHTML  = "html"
	ContentTypeImage = "image"
	ContentTypeVideo = "video"
)

// ContentItem 首页可编辑的内容块，按 Key 查找。
type ContentItem struct {
	ID        uint   `gorm:"primaryKey"`
	Key       string `gorm:"size:255;uniqueIndex;not null"`
	Title     string `gorm:"size:255"`
	Content   string `gorm:"type:text"`
	Type      string `gorm:"size:20;default:text"`
	Section   string `gorm:"size:255;index"`
	IsActive  bool   `gorm:"not null"`
	Order     int    `gorm:"column:order;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 返回表名
func (ContentItem) TableName() string {
	return "content_items"
}
