package service

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/ordering"
	"github.com/portfolio/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var contentKeyPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_.-]*$`)

// ContentService 维护首页内容块
type ContentService struct {
	db    *gorm.DB
	order *ordering.Collection[db.ContentItem]
}

// NewContentService 构造 ContentService
func NewContentService(gdb *gorm.DB) *ContentService {
	return &ContentService{db: gdb, order: ordering.New[db.ContentItem](gdb)}
}

// ContentInput 内容块表单。Key 全局唯一，只允许小写字母、数字与 . _ -
type ContentInput struct {
	Key      string `json:"key" validate:"required,max=255"`
	Title    string `json:"title" validate:"max=255"`
	Content  string `json:"content"`
	Type     string `json:"type" validate:"omitempty,oneof=text html image video"`
	Section  string `json:"section" validate:"max=255"`
	IsActive *bool  `json:"is_active"`
	Order    *int   `json:"order" validate:"omitempty,gte=0"`
}

func (in *ContentInput) validate() error {
	trimAll(&in.Key, &in.Title, &in.Type, &in.Section)
	if in.Type == "" {
		in.Type = db.ContentTypeText
	}
	if err := validation.Struct(in); err != nil {
		return err
	}
	if !contentKeyPattern.MatchString(in.Key) {
		return validation.Field("key", "may only contain lowercase letters, numbers, dots, dashes and underscores")
	}
	return nil
}

// List 按 section 过滤，section 为空时返回全部
func (s *ContentService) List(section string) ([]db.ContentItem, error) {
	var scopes []ordering.Scope
	if section != "" {
		scopes = append(scopes, func(tx *gorm.DB) *gorm.DB { return tx.Where("section = ?", section) })
	}
	items, err := s.order.List(scopes...)
	if err != nil {
		return nil, fmt.Errorf("list content items: %w", err)
	}
	return items, nil
}

// ActiveByKey 返回启用内容块，以 key 索引
func (s *ContentService) ActiveByKey() (map[string]db.ContentItem, error) {
	items, err := s.order.List(activeScope)
	if err != nil {
		return nil, fmt.Errorf("list active content items: %w", err)
	}
	result := make(map[string]db.ContentItem, len(items))
	for _, item := range items {
		result[item.Key] = item
	}
	return result, nil
}

func (s *ContentService) Get(id uint) (*db.ContentItem, error) {
	item, err := findByID[db.ContentItem](s.db, id, ErrContentNotFound)
	if err != nil {
		return nil, fmt.Errorf("get content item: %w", err)
	}
	return item, nil
}

func (s *ContentService) Create(input ContentInput) (*db.ContentItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureKeyAvailable(input.Key, 0); err != nil {
		return nil, err
	}

	order, err := s.order.Resolve(nil, input.Order)
	if err != nil {
		return nil, err
	}

	item := db.ContentItem{Order: order, IsActive: true}
	applyContentInput(&item, input)
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create content item: %w", err)
	}
	return &item, nil
}

func (s *ContentService) Update(id uint, input ContentInput) (*db.ContentItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.ensureKeyAvailable(input.Key, item.ID); err != nil {
		return nil, err
	}

	applyContentInput(item, input)
	if input.Order != nil {
		item.Order = *input.Order
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update content item: %w", err)
	}
	return item, nil
}

func (s *ContentService) Delete(id uint) error {
	if err := deleteByID[db.ContentItem](s.db, id, ErrContentNotFound); err != nil {
		return fmt.Errorf("delete content item: %w", err)
	}
	return nil
}

func (s *ContentService) ensureKeyAvailable(key string, exceptID uint) error {
	var existing db.ContentItem
	err := s.db.Where(clause.Eq{Column: clause.Column{Name: "key"}, Value: key}).First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check content key: %w", err)
	case existing.ID == exceptID:
		return nil
	default:
		return validation.Field("key", "has already been taken")
	}
}

func applyContentInput(item *db.ContentItem, input ContentInput) {
	item.Key = input.Key
	item.Title = input.Title
	item.Content = input.Content
	item.Type = input.Type
	item.Section = input.Section
	item.IsActive = boolOr(input.IsActive, item.IsActive)
}
