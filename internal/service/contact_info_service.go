package service

import (
	"fmt"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/ordering"
	"github.com/portfolio/internal/validation"
	"gorm.io/gorm"
)

// ContactInfoService 维护前台展示的联系方式
// 同一类型只保留一个主联系方式
type ContactInfoService struct {
	db    *gorm.DB
	order *ordering.Collection[db.ContactInfo]
}

// NewContactInfoService 构造 ContactInfoService
func NewContactInfoService(gdb *gorm.DB) *ContactInfoService {
	return &ContactInfoService{db: gdb, order: ordering.New[db.ContactInfo](gdb)}
}

// ContactInfoInput 联系方式表单，IsActive 未传时创建为 true。
type ContactInfoInput struct {
	Type      string `json:"type" validate:"required,oneof=email phone address social other"`
	Label     string `json:"label" validate:"required,max=255"`
	Value     string `json:"value" validate:"required,max=255"`
	Icon      string `json:"icon" validate:"max=50"`
	IsPrimary bool   `json:"is_primary"`
	IsActive  *bool  `json:"is_active"`
	Order     *int   `json:"order" validate:"omitempty,gte=0"`
}

func (in *ContactInfoInput) validate() error {
	trimAll(&in.Type, &in.Label, &in.Value, &in.Icon)
	if err := validation.Struct(in); err != nil {
		return err
	}
	if in.Type == db.ContactTypeEmail && !looksLikeEmail(in.Value) {
		return validation.Field("value", "must be a valid email address")
	}
	return nil
}

func (s *ContactInfoService) List() ([]db.ContactInfo, error) {
	items, err := s.order.List()
	if err != nil {
		return nil, fmt.Errorf("list contact info: %w", err)
	}
	return items, nil
}

// ListActive 首页展示的联系方式
func (s *ContactInfoService) ListActive() ([]db.ContactInfo, error) {
	items, err := s.order.List(activeScope)
	if err != nil {
		return nil, fmt.Errorf("list active contact info: %w", err)
	}
	return items, nil
}

func (s *ContactInfoService) Get(id uint) (*db.ContactInfo, error) {
	item, err := findByID[db.ContactInfo](s.db, id, ErrContactInfoNotFound)
	if err != nil {
		return nil, fmt.Errorf("get contact info: %w", err)
	}
	return item, nil
}

func (s *ContactInfoService) Create(input ContactInfoInput) (*db.ContactInfo, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	item := db.ContactInfo{IsActive: true}
	applyContactInfoInput(&item, input)

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.order.Resolve(tx, input.Order)
		if err != nil {
			return err
		}
		item.Order = order
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		return clearOtherPrimaries(tx, item)
	})
	if err != nil {
		return nil, fmt.Errorf("create contact info: %w", err)
	}
	return &item, nil
}

func (s *ContactInfoService) Update(id uint, input ContactInfoInput) (*db.ContactInfo, error) {
	item, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	applyContactInfoInput(item, input)
	if input.Order != nil {
		item.Order = *input.Order
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		return clearOtherPrimaries(tx, *item)
	})
	if err != nil {
		return nil, fmt.Errorf("update contact info: %w", err)
	}
	return item, nil
}

func (s *ContactInfoService) Delete(id uint) error {
	if err := deleteByID[db.ContactInfo](s.db, id, ErrContactInfoNotFound); err != nil {
		return fmt.Errorf("delete contact info: %w", err)
	}
	return nil
}

func (s *ContactInfoService) Reorder(positions []ordering.Position) error {
	if err := s.order.Reorder(positions); err != nil {
		return fmt.Errorf("reorder contact info: %w", err)
	}
	return nil
}

// Primary returns the primary entry of the given type, or nil.
func (s *ContactInfoService) Primary(contactType string) (*db.ContactInfo, error) {
	var items []db.ContactInfo
	if err := s.db.Where("type = ? AND is_primary = ? AND is_active = ?", contactType, true, true).Limit(1).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("find primary contact: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func clearOtherPrimaries(tx *gorm.DB, item db.ContactInfo) error {
	if !item.IsPrimary {
		return nil
	}
	return tx.Model(&db.ContactInfo{}).
		Where("type = ? AND id <> ? AND is_primary = ?", item.Type, item.ID, true).
		Update("is_primary", false).Error
}

func applyContactInfoInput(item *db.ContactInfo, input ContactInfoInput) {
	item.Type = input.Type
	item.Label = input.Label
	item.Value = input.Value
	item.Icon = input.Icon
	item.IsPrimary = input.IsPrimary
	item.IsActive = boolOr(input.IsActive, item.IsActive)
}
