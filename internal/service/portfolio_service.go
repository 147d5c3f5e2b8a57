package service

import (
	"fmt"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/ordering"
	"github.com/portfolio/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PortfolioService 维护作品集条目
type PortfolioService struct {
	db    *gorm.DB
	order *ordering.Collection[db.PortfolioItem]
}

// NewPortfolioService 构造 PortfolioService
func NewPortfolioService(gdb *gorm.DB) *PortfolioService {
	return &PortfolioService{db: gdb, order: ordering.New[db.PortfolioItem](gdb)}
}

// PortfolioInput 作品表单，IsActive 未传时创建为 true、更新时保持原值。
type PortfolioInput struct {
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description" validate:"required"`
	Image       string   `json:"image" validate:"max=255"`
	URL         string   `json:"url" validate:"omitempty,absurl,max=255"`
	Category    string   `json:"category" validate:"required,max=255"`
	Tags        []string `json:"tags" validate:"omitempty,dive,max=100"`
	IsActive    *bool    `json:"is_active"`
	Order       *int     `json:"order" validate:"omitempty,gte=0"`
}

func (in *PortfolioInput) validate() error {
	trimAll(&in.Title, &in.Description, &in.Image, &in.URL, &in.Category)
	in.Tags = trimSlice(in.Tags)
	return validation.Struct(in)
}

func (s *PortfolioService) List() ([]db.PortfolioItem, error) {
	items, err := s.order.List()
	if err != nil {
		return nil, fmt.Errorf("list portfolio items: %w", err)
	}
	return items, nil
}

// ListActive 首页展示的启用条目
func (s *PortfolioService) ListActive() ([]db.PortfolioItem, error) {
	items, err := s.order.List(activeScope)
	if err != nil {
		return nil, fmt.Errorf("list active portfolio items: %w", err)
	}
	return items, nil
}

func (s *PortfolioService) Get(id uint) (*db.PortfolioItem, error) {
	item, err := findByID[db.PortfolioItem](s.db, id, ErrPortfolioNotFound)
	if err != nil {
		return nil, fmt.Errorf("get portfolio item: %w", err)
	}
	return item, nil
}

func (s *PortfolioService) Create(input PortfolioInput) (*db.PortfolioItem, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	order, err := s.order.Resolve(nil, input.Order)
	if err != nil {
		return nil, err
	}

	item := db.PortfolioItem{Order: order, IsActive: true}
	applyPortfolioInput(&item, input)
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create portfolio item: %w", err)
	}
	return &item, nil
}

func (s *PortfolioService) Update(id uint, input PortfolioInput) (*db.PortfolioItem, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	applyPortfolioInput(item, input)
	if input.Order != nil {
		item.Order = *input.Order
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update portfolio item: %w", err)
	}
	return item, nil
}

func (s *PortfolioService) Delete(id uint) error {
	if err := deleteByID[db.PortfolioItem](s.db, id, ErrPortfolioNotFound); err != nil {
		return fmt.Errorf("delete portfolio item: %w", err)
	}
	return nil
}

func (s *PortfolioService) Reorder(positions []ordering.Position) error {
	if err := s.order.Reorder(positions); err != nil {
		return fmt.Errorf("reorder portfolio items: %w", err)
	}
	return nil
}

func applyPortfolioInput(item *db.PortfolioItem, input PortfolioInput) {
	item.Title = input.Title
	item.Description = input.Description
	item.Image = input.Image
	item.URL = input.URL
	item.Category = input.Category
	item.Tags = datatypes.JSONSlice[string](input.Tags)
	item.IsActive = boolOr(input.IsActive, item.IsActive)
}
