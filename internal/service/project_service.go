package service

import (
	"fmt"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/ordering"
	"github.com/portfolio/internal/validation"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectService 维护项目展示
type ProjectService struct {
	db    *gorm.DB
	order *ordering.Collection[db.Project]
}

// NewProjectService 构造 ProjectService
func NewProjectService(gdb *gorm.DB) *ProjectService {
	return &ProjectService{db: gdb, order: ordering.New[db.Project](gdb)}
}

// ProjectInput 项目表单。Status 为空时按 completed 处理，IsActive 未传时默认 true。
type ProjectInput struct {
	Title          string   `json:"title" validate:"required,max=255"`
	Description    string   `json:"description" validate:"required"`
	Image          string   `json:"image" validate:"max=255"`
	URL            string   `json:"url" validate:"omitempty,absurl,max=255"`
	GitHubURL      string   `json:"github_url" validate:"omitempty,absurl,max=255"`
	Technologies   []string `json:"technologies" validate:"omitempty,dive,max=100"`
	Category       string   `json:"category" validate:"max=255"`
	Status         string   `json:"status" validate:"omitempty,oneof=completed in-progress planned"`
	CompletionDate string   `json:"completion_date" validate:"omitempty,date"`
	IsFeatured     bool     `json:"is_featured"`
	IsActive       *bool    `json:"is_active"`
	Order          *int     `json:"order" validate:"omitempty,gte=0"`
}

func (in *ProjectInput) validate() error {
	trimAll(&in.Title, &in.Description, &in.Image, &in.URL, &in.GitHubURL, &in.Category, &in.Status, &in.CompletionDate)
	in.Technologies = trimSlice(in.Technologies)
	if in.Status == "" {
		in.Status = db.ProjectStatusCompleted
	}
	return validation.Struct(in)
}

func activeScope(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_active = ?", true)
}

func (s *ProjectService) List() ([]db.Project, error) {
	items, err := s.order.List()
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return items, nil
}

// ListShowcase 首页展示：启用且精选
func (s *ProjectService) ListShowcase() ([]db.Project, error) {
	items, err := s.order.List(activeScope, featuredScope)
	if err != nil {
		return nil, fmt.Errorf("list showcase projects: %w", err)
	}
	return items, nil
}

func (s *ProjectService) Get(id uint) (*db.Project, error) {
	item, err := findByID[db.Project](s.db, id, ErrProjectNotFound)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return item, nil
}

func (s *ProjectService) Create(input ProjectInput) (*db.Project, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	order, err := s.order.Resolve(nil, input.Order)
	if err != nil {
		return nil, err
	}

	item := db.Project{Order: order, IsActive: true}
	applyProjectInput(&item, input)
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &item, nil
}

func (s *ProjectService) Update(id uint, input ProjectInput) (*db.Project, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	applyProjectInput(item, input)
	if input.Order != nil {
		item.Order = *input.Order
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return item, nil
}

func (s *ProjectService) Delete(id uint) error {
	if err := deleteByID[db.Project](s.db, id, ErrProjectNotFound); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

func (s *ProjectService) Reorder(positions []ordering.Position) error {
	if err := s.order.Reorder(positions); err != nil {
		return fmt.Errorf("reorder projects: %w", err)
	}
	return nil
}

func applyProjectInput(item *db.Project, input ProjectInput) {
	item.Title = input.Title
	item.Description = input.Description
	item.Image = input.Image
	item.URL = input.URL
	item.GitHubURL = input.GitHubURL
	item.Technologies = datatypes.JSONSlice[string](input.Technologies)
	item.Category = input.Category
	item.Status = input.Status
	item.CompletionDate = parseOptionalDate(input.CompletionDate)
	item.IsFeatured = input.IsFeatured
	item.IsActive = boolOr(input.IsActive, item.IsActive)
}
