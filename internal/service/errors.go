package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/portfolio/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	// ErrNotFound 所有实体不存在错误的根
	ErrNotFound = errors.New("not found")
	// ErrForbidden 访问不属于当前账号的资源
	ErrForbidden = errors.New("forbidden")

	ErrExperienceNotFound  = fmt.Errorf("experience %w", ErrNotFound)
	ErrSkillNotFound       = fmt.Errorf("skill %w", ErrNotFound)
	ErrProjectNotFound     = fmt.Errorf("project %w", ErrNotFound)
	ErrPortfolioNotFound   = fmt.Errorf("portfolio item %w", ErrNotFound)
	ErrContactInfoNotFound = fmt.Errorf("contact info %w", ErrNotFound)
	ErrContentNotFound     = fmt.Errorf("content item %w", ErrNotFound)
	ErrContactFormNotFound = fmt.Errorf("contact form %w", ErrNotFound)
	ErrProfileNotFound     = fmt.Errorf("profile %w", ErrNotFound)
	ErrUserNotFound        = fmt.Errorf("user %w", ErrNotFound)
	ErrLocationNotFound    = fmt.Errorf("location %w", ErrNotFound)

	// ErrInvalidCredentials 登录邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// findByID 加载主键记录，不存在时返回 notFound。
func findByID[T any](gdb *gorm.DB, id uint, notFound error) (*T, error) {
	var item T
	if err := gdb.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound
		}
		return nil, err
	}
	return &item, nil
}

// deleteByID 物理删除，不存在时返回 notFound。
func deleteByID[T any](gdb *gorm.DB, id uint, notFound error) error {
	result := gdb.Delete(new(T), id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound
	}
	return nil
}

func trimAll(values ...*string) {
	for _, v := range values {
		*v = strings.TrimSpace(*v)
	}
}

func trimSlice(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func boolOr(value *bool, fallback bool) bool {
	if value == nil {
		return fallback
	}
	return *value
}

func parseDate(raw string) datatypes.Date {
	parsed, _ := validation.ParseDate(raw)
	return datatypes.Date(parsed)
}

func parseOptionalDate(raw string) *datatypes.Date {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	date := parseDate(raw)
	return &date
}
