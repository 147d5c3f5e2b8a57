package service

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/validation"
	"gorm.io/gorm"
)

// ContactFormService 处理访客留言
type ContactFormService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewContactFormService 构造 ContactFormService
func NewContactFormService(gdb *gorm.DB) *ContactFormService {
	return &ContactFormService{db: gdb, now: time.Now}
}

// ContactFormInput 访客提交的留言
type ContactFormInput struct {
	Name    string `json:"name" form:"name" validate:"required,max=255"`
	Email   string `json:"email" form:"email" validate:"required,email,max=255"`
	Subject string `json:"subject" form:"subject" validate:"max=255"`
	Message string `json:"message" form:"message" validate:"required,max=5000"`
}

// Submit 公开接口，保存为 new 状态
func (s *ContactFormService) Submit(input ContactFormInput) (*db.ContactForm, error) {
	trimAll(&input.Name, &input.Email, &input.Subject, &input.Message)
	input.Email = strings.ToLower(input.Email)
	if err := validation.Struct(&input); err != nil {
		return nil, err
	}

	form := db.ContactForm{
		Name:    input.Name,
		Email:   input.Email,
		Subject: input.Subject,
		Message: input.Message,
		Status:  db.ContactFormStatusNew,
	}
	if err := s.db.Create(&form).Error; err != nil {
		return nil, fmt.Errorf("submit contact form: %w", err)
	}
	return &form, nil
}

// List 最新的在前，status 为空时返回全部
func (s *ContactFormService) List(status string) ([]db.ContactForm, error) {
	query := s.db.Model(&db.ContactForm{})
	if status = strings.TrimSpace(status); status != "" {
		if !validContactFormStatus(status) {
			return nil, validation.Field("status", "must be one of: new, read, replied, spam")
		}
		query = query.Where("status = ?", status)
	}

	var forms []db.ContactForm
	if err := query.Order("created_at DESC, id DESC").Find(&forms).Error; err != nil {
		return nil, fmt.Errorf("list contact forms: %w", err)
	}
	return forms, nil
}

// CountByStatus 各状态的留言数量
func (s *ContactFormService) CountByStatus() (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}
	if err := s.db.Model(&db.ContactForm{}).Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("count contact forms: %w", err)
	}

	counts := map[string]int64{
		db.ContactFormStatusNew:     0,
		db.ContactFormStatusRead:    0,
		db.ContactFormStatusReplied: 0,
		db.ContactFormStatusSpam:    0,
	}
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

func (s *ContactFormService) Get(id uint) (*db.ContactForm, error) {
	form, err := findByID[db.ContactForm](s.db, id, ErrContactFormNotFound)
	if err != nil {
		return nil, fmt.Errorf("get contact form: %w", err)
	}
	return form, nil
}

// MarkRead 首次阅读时记录 read_at，已回复的留言保持 replied。
func (s *ContactFormService) MarkRead(id uint) (*db.ContactForm, error) {
	return s.transition(id, func(form *db.ContactForm, now time.Time) {
		if form.ReadAt == nil {
			form.ReadAt = &now
		}
		if form.Status != db.ContactFormStatusReplied {
			form.Status = db.ContactFormStatusRead
		}
	})
}

// MarkReplied 标记已回复，未读过的同时补上 read_at。
func (s *ContactFormService) MarkReplied(id uint) (*db.ContactForm, error) {
	return s.transition(id, func(form *db.ContactForm, now time.Time) {
		if form.ReadAt == nil {
			form.ReadAt = &now
		}
		form.RepliedAt = &now
		form.Status = db.ContactFormStatusReplied
	})
}

// MarkSpam 任意状态都可标记为垃圾留言
func (s *ContactFormService) MarkSpam(id uint) (*db.ContactForm, error) {
	return s.transition(id, func(form *db.ContactForm, _ time.Time) {
		form.Status = db.ContactFormStatusSpam
	})
}

func (s *ContactFormService) Delete(id uint) error {
	if err := deleteByID[db.ContactForm](s.db, id, ErrContactFormNotFound); err != nil {
		return fmt.Errorf("delete contact form: %w", err)
	}
	return nil
}

func (s *ContactFormService) transition(id uint, apply func(*db.ContactForm, time.Time)) (*db.ContactForm, error) {
	form, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	apply(form, s.now().UTC())
	if err := s.db.Save(form).Error; err != nil {
		return nil, fmt.Errorf("update contact form: %w", err)
	}
	return form, nil
}

func validContactFormStatus(status string) bool {
	switch status {
	case db.ContactFormStatusNew, db.ContactFormStatusRead, db.ContactFormStatusReplied, db.ContactFormStatusSpam:
		return true
	}
	return false
}

func looksLikeEmail(value string) bool {
	addr, err := mail.ParseAddress(value)
	return err == nil && addr.Address == value
}
