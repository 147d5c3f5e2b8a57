package service

import (
	"fmt"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/ordering"
	"github.com/portfolio/internal/validation"
	"gorm.io/gorm"
)

// SkillService 维护技能列表
type SkillService struct {
	db    *gorm.DB
	order *ordering.Collection[db.Skill]
}

// NewSkillService 构造 SkillService
func NewSkillService(gdb *gorm.DB) *SkillService {
	return &SkillService{db: gdb, order: ordering.New[db.Skill](gdb)}
}

// SkillInput 技能表单
type SkillInput struct {
	Name            string `json:"name" validate:"required,max=255"`
	Category        string `json:"category" validate:"required,max=255"`
	Proficiency     int    `json:"proficiency" validate:"gte=0,lte=100"`
	YearsExperience int    `json:"years_experience" validate:"gte=0,lte=80"`
	Icon            string `json:"icon" validate:"max=255"`
	Description     string `json:"description"`
	IsFeatured      bool   `json:"is_featured"`
	Order           *int   `json:"order" validate:"omitempty,gte=0"`
}

func (in *SkillInput) validate() error {
	trimAll(&in.Name, &in.Category, &in.Icon, &in.Description)
	return validation.Struct(in)
}

func featuredScope(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_featured = ?", true)
}

// List 按排序返回全部技能
func (s *SkillService) List() ([]db.Skill, error) {
	items, err := s.order.List()
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	return items, nil
}

// ListFeatured 仅返回精选技能
func (s *SkillService) ListFeatured() ([]db.Skill, error) {
	items, err := s.order.List(featuredScope)
	if err != nil {
		return nil, fmt.Errorf("list featured skills: %w", err)
	}
	return items, nil
}

// Categories returns the distinct categories in use, sorted by name.
func (s *SkillService) Categories() ([]string, error) {
	var categories []string
	if err := s.db.Model(&db.Skill{}).Distinct("category").Order("category ASC").Pluck("category", &categories).Error; err != nil {
		return nil, fmt.Errorf("list skill categories: %w", err)
	}
	return categories, nil
}

func (s *SkillService) Get(id uint) (*db.Skill, error) {
	item, err := findByID[db.Skill](s.db, id, ErrSkillNotFound)
	if err != nil {
		return nil, fmt.Errorf("get skill: %w", err)
	}
	return item, nil
}

func (s *SkillService) Create(input SkillInput) (*db.Skill, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	order, err := s.order.Resolve(nil, input.Order)
	if err != nil {
		return nil, err
	}

	item := db.Skill{Order: order}
	applySkillInput(&item, input)
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create skill: %w", err)
	}
	return &item, nil
}

func (s *SkillService) Update(id uint, input SkillInput) (*db.Skill, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	applySkillInput(item, input)
	if input.Order != nil {
		item.Order = *input.Order
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update skill: %w", err)
	}
	return item, nil
}

func (s *SkillService) Delete(id uint) error {
	if err := deleteByID[db.Skill](s.db, id, ErrSkillNotFound); err != nil {
		return fmt.Errorf("delete skill: %w", err)
	}
	return nil
}

func (s *SkillService) Reorder(positions []ordering.Position) error {
	if err := s.order.Reorder(positions); err != nil {
		return fmt.Errorf("reorder skills: %w", err)
	}
	return nil
}

func applySkillInput(item *db.Skill, input SkillInput) {
	item.Name = input.Name
	item.Category = input.Category
	item.Proficiency = input.Proficiency
	item.YearsExperience = input.YearsExperience
	item.Icon = input.Icon
	item.Description = input.Description
	item.IsFeatured = input.IsFeatured
}
