package service

import (
	"errors"
	"fmt"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/validation"
	"gorm.io/gorm"
)

// ProfileService 负责维护账号的个人资料
// 每个账号至多一份，读写他人资料返回 ErrForbidden
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService 构造 ProfileService
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// ProfileInput 描述个人资料的可编辑字段
type ProfileInput struct {
	FirstName  string `json:"first_name" validate:"required,max=255"`
	MiddleName string `json:"middle_name" validate:"max=255"`
	LastName   string `json:"last_name" validate:"required,max=255"`
	Title      string `json:"title" validate:"required,max=255"`
	Location   string `json:"location" validate:"max=255"`
	Bio        string `json:"bio"`
	Avatar     string `json:"avatar" validate:"max=255"`
	Phone      string `json:"phone" validate:"max=50"`
	Website    string `json:"website" validate:"omitempty,absurl,max=255"`
	LinkedIn   string `json:"linkedin" validate:"omitempty,absurl,max=255"`
	GitHub     string `json:"github" validate:"max=255"`
	Twitter    string `json:"twitter" validate:"max=255"`
}

func (in *ProfileInput) validate() error {
	trimAll(&in.FirstName, &in.MiddleName, &in.LastName, &in.Title, &in.Location, &in.Bio,
		&in.Avatar, &in.Phone, &in.Website, &in.LinkedIn, &in.GitHub, &in.Twitter)
	return validation.Struct(in)
}

// ForUser 返回账号自己的资料
func (s *ProfileService) ForUser(userID uint) (*db.Profile, error) {
	var profile db.Profile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return &profile, nil
}

// Primary 首页展示的资料，取最早创建的一份；没有时返回 nil。
func (s *ProfileService) Primary() (*db.Profile, error) {
	var profiles []db.Profile
	if err := s.db.Order("id ASC").Limit(1).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("get primary profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}

// Upsert 创建或覆盖账号的资料，created 表示是否新建
func (s *ProfileService) Upsert(userID uint, input ProfileInput) (profile *db.Profile, created bool, err error) {
	if err := input.validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.ForUser(userID)
	switch {
	case errors.Is(err, ErrProfileNotFound):
		profile = &db.Profile{UserID: userID}
		created = true
	case err != nil:
		return nil, false, err
	default:
		profile = existing
	}

	applyProfileInput(profile, input)
	if err := s.db.Save(profile).Error; err != nil {
		return nil, false, fmt.Errorf("save profile: %w", err)
	}
	return profile, created, nil
}

// Get 读取指定资料并校验归属
func (s *ProfileService) Get(userID, id uint) (*db.Profile, error) {
	profile, err := findByID[db.Profile](s.db, id, ErrProfileNotFound)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if profile.UserID != userID {
		return nil, ErrForbidden
	}
	return profile, nil
}

// Update 全量更新
func (s *ProfileService) Update(userID, id uint, input ProfileInput) (*db.Profile, error) {
	profile, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	applyProfileInput(profile, input)
	if err := s.db.Save(profile).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return profile, nil
}

// Delete 物理删除
func (s *ProfileService) Delete(userID, id uint) error {
	profile, err := s.Get(userID, id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(profile).Error; err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

func applyProfileInput(profile *db.Profile, input ProfileInput) {
	profile.FirstName = input.FirstName
	profile.MiddleName = input.MiddleName
	profile.LastName = input.LastName
	profile.Title = input.Title
	profile.Location = input.Location
	profile.Bio = input.Bio
	profile.Avatar = input.Avatar
	profile.Phone = input.Phone
	profile.Website = input.Website
	profile.LinkedIn = input.LinkedIn
	profile.GitHub = input.GitHub
	profile.Twitter = input.Twitter
}
