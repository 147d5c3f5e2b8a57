package service

import (
	"fmt"
	"strings"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultSiteName 未设置站点名称时的回退值
const DefaultSiteName = "Portfolio"

// SiteSettings 描述后台可配置的站点信息。
type SiteSettings struct {
	SiteName   string `json:"site_name"`
	Tagline    string `json:"tagline"`
	FooterText string `json:"footer_text"`
	LogoURL    string `json:"logo_url"`
}

// SiteSettingsInput 用于更新站点设置。
type SiteSettingsInput struct {
	SiteName   string `json:"site_name" validate:"max=100"`
	Tagline    string `json:"tagline" validate:"max=255"`
	FooterText string `json:"footer_text" validate:"max=500"`
	LogoURL    string `json:"logo_url" validate:"max=255"`
}

// SiteSettingService 提供站点设置的读取与更新能力。
type SiteSettingService struct {
	db *gorm.DB
}

// NewSiteSettingService 构造 SiteSettingService。
func NewSiteSettingService(gdb *gorm.DB) *SiteSettingService {
	return &SiteSettingService{db: gdb}
}

var settingKeys = []string{
	db.SettingKeySiteName,
	db.SettingKeyTagline,
	db.SettingKeyFooterText,
	db.SettingKeyLogoURL,
}

// Get 读取站点设置，如未设置将返回默认值。
func (s *SiteSettingService) Get() (SiteSettings, error) {
	result := SiteSettings{SiteName: DefaultSiteName}

	var records []db.SiteSetting
	if err := s.db.Where(clause.IN{Column: clause.Column{Name: "key"}, Values: stringValues(settingKeys)}).Find(&records).Error; err != nil {
		return result, fmt.Errorf("load site settings: %w", err)
	}

	for _, record := range records {
		switch record.Key {
		case db.SettingKeySiteName:
			if strings.TrimSpace(record.Value) != "" {
				result.SiteName = record.Value
			}
		case db.SettingKeyTagline:
			result.Tagline = record.Value
		case db.SettingKeyFooterText:
			result.FooterText = record.Value
		case db.SettingKeyLogoURL:
			result.LogoURL = record.Value
		}
	}

	return result, nil
}

// Update 保存站点设置，未填写站点名称时回退默认值。
func (s *SiteSettingService) Update(input SiteSettingsInput) (SiteSettings, error) {
	trimAll(&input.SiteName, &input.Tagline, &input.FooterText, &input.LogoURL)
	if err := validation.Struct(&input); err != nil {
		return SiteSettings{}, err
	}
	if input.LogoURL != "" && !strings.HasPrefix(input.LogoURL, "/") && !validation.IsAbsoluteURL(input.LogoURL) {
		return SiteSettings{}, validation.Field("logo_url", "must be a valid URL")
	}

	sanitized := SiteSettings{
		SiteName:   input.SiteName,
		Tagline:    input.Tagline,
		FooterText: input.FooterText,
		LogoURL:    input.LogoURL,
	}
	if sanitized.SiteName == "" {
		sanitized.SiteName = DefaultSiteName
	}

	values := map[string]string{
		db.SettingKeySiteName:   sanitized.SiteName,
		db.SettingKeyTagline:    sanitized.Tagline,
		db.SettingKeyFooterText: sanitized.FooterText,
		db.SettingKeyLogoURL:    sanitized.LogoURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, key := range settingKeys {
			if err := upsertSetting(tx, key, values[key]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return SiteSettings{}, fmt.Errorf("update site settings: %w", err)
	}

	return sanitized, nil
}

func upsertSetting(tx *gorm.DB, key, value string) error {
	setting := db.SiteSetting{Key: key, Value: value}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&setting).Error; err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}
	return nil
}

func stringValues(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
