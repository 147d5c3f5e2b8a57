package service

import (
	"errors"
	"testing"

	"github.com/portfolio/internal/db"
)

func TestSkillServiceFeaturedAndCategories(t *testing.T) {
	svc := NewSkillService(setupServiceTestDB(t))

	if _, err := svc.Create(SkillInput{Name: "Go", Category: "Backend", Proficiency: 90, IsFeatured: true}); err != nil {
		t.Fatalf("create skill failed: %v", err)
	}
	if _, err := svc.Create(SkillInput{Name: "CSS", Category: "Frontend", Proficiency: 60}); err != nil {
		t.Fatalf("create skill failed: %v", err)
	}

	featured, err := svc.ListFeatured()
	if err != nil {
		t.Fatalf("list featured failed: %v", err)
	}
	if len(featured) != 1 || featured[0].Name != "Go" {
		t.Fatalf("unexpected featured skills: %+v", featured)
	}

	categories, err := svc.Categories()
	if err != nil {
		t.Fatalf("categories failed: %v", err)
	}
	if len(categories) != 2 || categories[0] != "Backend" {
		t.Fatalf("unexpected categories: %v", categories)
	}

	_, err = svc.Create(SkillInput{Name: "Rust", Category: "Backend", Proficiency: 101})
	requireFieldError(t, err, "proficiency")
}

func TestProjectServiceShowcase(t *testing.T) {
	svc := NewProjectService(setupServiceTestDB(t))

	shown, err := svc.Create(ProjectInput{Title: "Shown", Description: "d", IsFeatured: true, Technologies: []string{" Go ", ""}})
	if err != nil {
		t.Fatalf("create project failed: %v", err)
	}
	if shown.Status != db.ProjectStatusCompleted || !shown.IsActive {
		t.Fatalf("expected defaults completed/active, got %+v", shown)
	}
	if len(shown.Technologies) != 1 || shown.Technologies[0] != "Go" {
		t.Fatalf("expected trimmed technologies, got %v", shown.Technologies)
	}

	if _, err := svc.Create(ProjectInput{Title: "Hidden", Description: "d", IsFeatured: true, IsActive: boolPtr(false)}); err != nil {
		t.Fatalf("create project failed: %v", err)
	}
	if _, err := svc.Create(ProjectInput{Title: "Plain", Description: "d"}); err != nil {
		t.Fatalf("create project failed: %v", err)
	}

	showcase, err := svc.ListShowcase()
	if err != nil {
		t.Fatalf("list showcase failed: %v", err)
	}
	if len(showcase) != 1 || showcase[0].ID != shown.ID {
		t.Fatalf("unexpected showcase: %+v", showcase)
	}

	_, err = svc.Create(ProjectInput{Title: "Bad", Description: "d", URL: "not-a-url", Status: "abandoned"})
	requireFieldError(t, err, "url")
	requireFieldError(t, err, "status")
}

func TestPortfolioServiceDefaultsAndValidation(t *testing.T) {
	svc := NewPortfolioService(setupServiceTestDB(t))

	item, err := svc.Create(PortfolioInput{Title: "Site", Description: "d", Category: "Web", Tags: []string{"go", "gin"}})
	if err != nil {
		t.Fatalf("create portfolio item failed: %v", err)
	}
	if !item.IsActive || item.Order != 1 {
		t.Fatalf("expected active item with order 1, got %+v", item)
	}

	hidden, err := svc.Create(PortfolioInput{Title: "Draft", Description: "d", Category: "Web", IsActive: boolPtr(false)})
	if err != nil {
		t.Fatalf("create portfolio item failed: %v", err)
	}
	if hidden.IsActive {
		t.Fatal("expected explicit is_active=false to persist")
	}

	active, err := svc.ListActive()
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 1 {
		t.Fatalf("expected 1 active item, got %d", len(active))
	}

	updated, err := svc.Update(item.ID, PortfolioInput{Title: "Site 2", Description: "d", Category: "Web"})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !updated.IsActive {
		t.Fatal("expected is_active to be kept when omitted on update")
	}

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Create(PortfolioInput{Title: "T", Description: "d", Category: "Web", Tags: []string{"ok", string(long)}})
	requireFieldError(t, err, "tags.1")

	_, err = svc.Create(PortfolioInput{Title: "T", Description: "d", Category: "Web", URL: "ftp://files"})
	requireFieldError(t, err, "url")
}

func TestContactInfoServiceSinglePrimaryPerType(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContactInfoService(gdb)

	first, err := svc.Create(ContactInfoInput{Type: db.ContactTypeEmail, Label: "Work", Value: "work@example.com", IsPrimary: true})
	if err != nil {
		t.Fatalf("create contact failed: %v", err)
	}
	phone, err := svc.Create(ContactInfoInput{Type: db.ContactTypePhone, Label: "Mobile", Value: "+1 555", IsPrimary: true})
	if err != nil {
		t.Fatalf("create contact failed: %v", err)
	}
	second, err := svc.Create(ContactInfoInput{Type: db.ContactTypeEmail, Label: "Home", Value: "home@example.com", IsPrimary: true})
	if err != nil {
		t.Fatalf("create contact failed: %v", err)
	}

	reloaded, _ := svc.Get(first.ID)
	if reloaded.IsPrimary {
		t.Fatal("expected previous primary email to be cleared")
	}
	reloadedPhone, _ := svc.Get(phone.ID)
	if !reloadedPhone.IsPrimary {
		t.Fatal("expected primary phone to be untouched")
	}

	primary, err := svc.Primary(db.ContactTypeEmail)
	if err != nil || primary == nil || primary.ID != second.ID {
		t.Fatalf("expected second email as primary, got %+v (%v)", primary, err)
	}

	_, err = svc.Create(ContactInfoInput{Type: "fax", Label: "Fax", Value: "123"})
	requireFieldError(t, err, "type")

	_, err = svc.Create(ContactInfoInput{Type: db.ContactTypeEmail, Label: "Bad", Value: "nope"})
	requireFieldError(t, err, "value")
}

func TestContentServiceUniqueKey(t *testing.T) {
	svc := NewContentService(setupServiceTestDB(t))

	hero, err := svc.Create(ContentInput{Key: "hero.title", Title: "Hero", Content: "Hello", Section: "hero"})
	if err != nil {
		t.Fatalf("create content failed: %v", err)
	}
	if hero.Type != db.ContentTypeText || !hero.IsActive {
		t.Fatalf("expected text/active defaults, got %+v", hero)
	}

	_, err = svc.Create(ContentInput{Key: "hero.title", Content: "dup"})
	requireFieldError(t, err, "key")

	if _, err := svc.Update(hero.ID, ContentInput{Key: "hero.title", Content: "Updated"}); err != nil {
		t.Fatalf("expected update with own key to succeed, got %v", err)
	}

	_, err = svc.Create(ContentInput{Key: "Bad Key"})
	requireFieldError(t, err, "key")

	if _, err := svc.Create(ContentInput{Key: "about.bio", Content: "hidden", IsActive: boolPtr(false)}); err != nil {
		t.Fatalf("create content failed: %v", err)
	}

	byKey, err := svc.ActiveByKey()
	if err != nil {
		t.Fatalf("active by key failed: %v", err)
	}
	if len(byKey) != 1 || byKey["hero.title"].Content != "Updated" {
		t.Fatalf("unexpected active content: %+v", byKey)
	}

	sectioned, _ := svc.List("hero")
	if len(sectioned) != 1 {
		t.Fatalf("expected 1 item in hero section, got %d", len(sectioned))
	}

	if err := svc.Delete(9999); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestUpdateMissingRecordWinsOverValidation(t *testing.T) {
	gdb := setupServiceTestDB(t)

	// 空输入必然校验失败，但记录不存在时应先报 not found
	updates := map[string]func() error{
		"experience": func() error {
			_, err := NewExperienceService(gdb).Update(999, ExperienceInput{})
			return err
		},
		"skill": func() error {
			_, err := NewSkillService(gdb).Update(999, SkillInput{})
			return err
		},
		"project": func() error {
			_, err := NewProjectService(gdb).Update(999, ProjectInput{})
			return err
		},
		"portfolio": func() error {
			_, err := NewPortfolioService(gdb).Update(999, PortfolioInput{})
			return err
		},
		"contact info": func() error {
			_, err := NewContactInfoService(gdb).Update(999, ContactInfoInput{})
			return err
		},
		"content": func() error {
			_, err := NewContentService(gdb).Update(999, ContentInput{})
			return err
		},
	}

	for name, update := range updates {
		if err := update(); !errors.Is(err, ErrNotFound) {
			t.Fatalf("%s: expected not found, got %v", name, err)
		}
	}
}
