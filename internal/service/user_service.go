package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/validation"
	"gorm.io/gorm"
)

// UserService 后台账号
type UserService struct {
	db *gorm.DB
}

// NewUserService 构造 UserService
func NewUserService(gdb *gorm.DB) *UserService {
	return &UserService{db: gdb}
}

// UserInput 账号资料，Password 为空时保持原密码。
type UserInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"omitempty,min=8,max=72"`
}

// Authenticate 校验邮箱与密码
func (s *UserService) Authenticate(email, password string) (*db.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user db.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Get 只能读取自己的账号
func (s *UserService) Get(currentID, id uint) (*db.User, error) {
	user, err := findByID[db.User](s.db, id, ErrUserNotFound)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user.ID != currentID {
		return nil, ErrForbidden
	}
	return user, nil
}

// Update 修改自己的账号资料
func (s *UserService) Update(currentID, id uint, input UserInput) (*db.User, error) {
	user, err := s.Get(currentID, id)
	if err != nil {
		return nil, err
	}

	trimAll(&input.Name, &input.Email)
	input.Email = strings.ToLower(input.Email)
	if err := validation.Struct(&input); err != nil {
		return nil, err
	}

	var taken int64
	if err := s.db.Model(&db.User{}).Where("email = ? AND id <> ?", input.Email, user.ID).Count(&taken).Error; err != nil {
		return nil, fmt.Errorf("check user email: %w", err)
	}
	if taken > 0 {
		return nil, validation.Field("email", "has already been taken")
	}

	user.Name = input.Name
	user.Email = input.Email
	if input.Password != "" {
		hashed, err := db.HashPassword(input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.Password = hashed
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// Create 创建后台账号，命令行与后台接口共用
func (s *UserService) Create(input UserInput) (*db.User, error) {
	trimAll(&input.Name, &input.Email)
	input.Email = strings.ToLower(input.Email)
	if err := validation.Struct(&input); err != nil {
		return nil, err
	}
	if input.Password == "" {
		return nil, validation.Field("password", "is required")
	}

	created, err := db.EnsureUser(s.db, input.Name, input.Email, input.Password)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	if !created {
		return nil, validation.Field("email", "has already been taken")
	}

	var user db.User
	if err := s.db.Where("email = ?", input.Email).First(&user).Error; err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}
