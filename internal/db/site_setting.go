package db

import "gorm.io/gorm"

// SiteSetting 存储后台可配置的站点级键值对。
type SiteSetting struct {
	gorm.Model
	Key   string `gorm:"size:100;uniqueIndex;not null"`
	Value string `gorm:"type:text"`
}

// TableName 自定义表名以保持命名一致。
func (SiteSetting) TableName() string {
	return "site_settings"
}

const (
	// SettingKeySiteName 表示站点名称。
	SettingKeySiteName = "site_name"
	// SettingKeyTagline 首页副标题。
	SettingKeyTagline = "tagline"
	// SettingKeyFooterText 页脚文字。
	SettingKeyFooterText = "footer_text"
	// SettingKeyLogoURL 站点 Logo 链接。
	SettingKeyLogoURL = "logo_url"
)
