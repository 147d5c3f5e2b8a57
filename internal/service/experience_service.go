package service

import (
	"fmt"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/ordering"
	"github.com/portfolio/internal/validation"
	"gorm.io/gorm"
)

// ExperienceService 维护工作经历
type ExperienceService struct {
	db    *gorm.DB
	order *ordering.Collection[db.Experience]
}

// NewExperienceService 构造 ExperienceService
func NewExperienceService(gdb *gorm.DB) *ExperienceService {
	return &ExperienceService{db: gdb, order: ordering.New[db.Experience](gdb)}
}

// ExperienceInput 创建与更新共用，更新时同样做完整校验。
type ExperienceInput struct {
	Title        string `json:"title" validate:"required,max=255"`
	Company      string `json:"company" validate:"required,max=255"`
	Location     string `json:"location" validate:"max=255"`
	StartDate    string `json:"start_date" validate:"required,date"`
	EndDate      string `json:"end_date" validate:"omitempty,date"`
	IsCurrent    bool   `json:"is_current"`
	Description  string `json:"description" validate:"required"`
	Achievements string `json:"achievements"`
	Logo         string `json:"logo" validate:"max=255"`
	Order        *int   `json:"order" validate:"omitempty,gte=0"`
}

func (in *ExperienceInput) validate() error {
	trimAll(&in.Title, &in.Company, &in.Location, &in.StartDate, &in.EndDate, &in.Description, &in.Achievements, &in.Logo)
	if in.IsCurrent {
		in.EndDate = ""
	}

	verr := validation.New()
	if err := validation.Struct(in); err != nil {
		structErr, ok := validation.As(err)
		if !ok {
			return err
		}
		verr.Merge(structErr)
	}

	if in.EndDate != "" && verr.First("start_date") == "" && verr.First("end_date") == "" {
		start, _ := validation.ParseDate(in.StartDate)
		end, _ := validation.ParseDate(in.EndDate)
		if end.Before(start) {
			verr.Add("end_date", "must be a date after or equal to start date")
		}
	}
	return verr.Err()
}

// List 按排序返回全部经历
func (s *ExperienceService) List() ([]db.Experience, error) {
	items, err := s.order.List()
	if err != nil {
		return nil, fmt.Errorf("list experiences: %w", err)
	}
	return items, nil
}

// Get 根据主键获取
func (s *ExperienceService) Get(id uint) (*db.Experience, error) {
	item, err := findByID[db.Experience](s.db, id, ErrExperienceNotFound)
	if err != nil {
		return nil, fmt.Errorf("get experience: %w", err)
	}
	return item, nil
}

// Create 新建经历，未指定 order 时追加到末尾
func (s *ExperienceService) Create(input ExperienceInput) (*db.Experience, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	order, err := s.order.Resolve(nil, input.Order)
	if err != nil {
		return nil, err
	}

	item := db.Experience{Order: order}
	applyExperienceInput(&item, input)
	if err := s.db.Create(&item).Error; err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}
	return &item, nil
}

// Update 全量更新，order 未传时保持原值
func (s *ExperienceService) Update(id uint, input ExperienceInput) (*db.Experience, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	applyExperienceInput(item, input)
	if input.Order != nil {
		item.Order = *input.Order
	}
	if err := s.db.Save(item).Error; err != nil {
		return nil, fmt.Errorf("update experience: %w", err)
	}
	return item, nil
}

// Delete 物理删除
func (s *ExperienceService) Delete(id uint) error {
	if err := deleteByID[db.Experience](s.db, id, ErrExperienceNotFound); err != nil {
		return fmt.Errorf("delete experience: %w", err)
	}
	return nil
}

// Reorder 批量调整排序
func (s *ExperienceService) Reorder(positions []ordering.Position) error {
	if err := s.order.Reorder(positions); err != nil {
		return fmt.Errorf("reorder experiences: %w", err)
	}
	return nil
}

// Duration 以月为单位的任职时长，在职时计算到 now。
func Duration(item db.Experience, now time.Time) int {
	start := time.Time(item.StartDate)
	end := now
	if !item.IsCurrent && item.EndDate != nil {
		end = time.Time(*item.EndDate)
	}
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

func applyExperienceInput(item *db.Experience, input ExperienceInput) {
	item.Title = input.Title
	item.Company = input.Company
	item.Location = input.Location
	item.StartDate = parseDate(input.StartDate)
	item.EndDate = parseOptionalDate(input.EndDate)
	item.IsCurrent = input.IsCurrent
	item.Description = input.Description
	item.Achievements = input.Achievements
	item.Logo = input.Logo
}
