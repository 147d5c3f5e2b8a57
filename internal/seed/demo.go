package seed

import (
	"errors"
	"fmt"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
	"gorm.io/gorm"
)

// DemoSummary 记录每个集合是否写入了演示数据
type DemoSummary struct {
	Profile     bool
	Experiences int
	Skills      int
	Projects    int
	Portfolio   int
	ContactInfo int
	Content     int
}

// Demo 为本地开发写入演示内容，已有数据的集合会被跳过。
// ownerID 为资料所属账号，0 表示跳过个人资料。
func Demo(gdb *gorm.DB, ownerID uint) (DemoSummary, error) {
	var summary DemoSummary

	if ownerID != 0 {
		profiles := service.NewProfileService(gdb)
		_, err := profiles.ForUser(ownerID)
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			_, created, err := profiles.Upsert(ownerID, service.ProfileInput{
				FirstName: "Alex",
				LastName:  "Rivera",
				Title:     "Full-stack Engineer",
				Location:  "Manila, Philippines",
				Bio:       "I build reliable web products end to end, from database schema to the last pixel.",
				Website:   "https://example.com",
				GitHub:    "alexrivera",
			})
			if err != nil {
				return summary, fmt.Errorf("seed profile: %w", err)
			}
			summary.Profile = created
		case err != nil:
			return summary, fmt.Errorf("load profile: %w", err)
		}
	}

	steps := []struct {
		model interface{}
		count *int
		run   func() (int, error)
	}{
		{&db.Experience{}, &summary.Experiences, func() (int, error) { return demoExperiences(gdb) }},
		{&db.Skill{}, &summary.Skills, func() (int, error) { return demoSkills(gdb) }},
		{&db.Project{}, &summary.Projects, func() (int, error) { return demoProjects(gdb) }},
		{&db.PortfolioItem{}, &summary.Portfolio, func() (int, error) { return demoPortfolio(gdb) }},
		{&db.ContactInfo{}, &summary.ContactInfo, func() (int, error) { return demoContactInfo(gdb) }},
		{&db.ContentItem{}, &summary.Content, func() (int, error) { return demoContent(gdb) }},
	}

	for _, step := range steps {
		var count int64
		if err := gdb.Model(step.model).Count(&count).Error; err != nil {
			return summary, fmt.Errorf("count %T: %w", step.model, err)
		}
		if count > 0 {
			continue
		}
		created, err := step.run()
		if err != nil {
			return summary, err
		}
		*step.count = created
	}

	return summary, nil
}

func demoExperiences(gdb *gorm.DB) (int, error) {
	svc := service.NewExperienceService(gdb)
	inputs := []service.ExperienceInput{
		{
			Title:        "Senior Software Engineer",
			Company:      "Northwind Labs",
			Location:     "Remote",
			StartDate:    "2021-04-01",
			IsCurrent:    true,
			Description:  "Lead the platform team building internal developer tooling.",
			Achievements: "Cut deploy times from 40 to 6 minutes",
		},
		{
			Title:       "Software Engineer",
			Company:     "Blue Harbor",
			Location:    "Makati",
			StartDate:   "2018-06-01",
			EndDate:     "2021-03-31",
			Description: "Built payment integrations and the merchant dashboard.",
		},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, fmt.Errorf("seed experience %q: %w", input.Title, err)
		}
	}
	return len(inputs), nil
}

func demoSkills(gdb *gorm.DB) (int, error) {
	svc := service.NewSkillService(gdb)
	inputs := []service.SkillInput{
		{Name: "Go", Category: "Backend", Proficiency: 90, YearsExperience: 6, IsFeatured: true},
		{Name: "PostgreSQL", Category: "Backend", Proficiency: 80, YearsExperience: 7, IsFeatured: true},
		{Name: "TypeScript", Category: "Frontend", Proficiency: 75, YearsExperience: 5, IsFeatured: true},
		{Name: "Docker", Category: "DevOps", Proficiency: 70, YearsExperience: 5},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, fmt.Errorf("seed skill %q: %w", input.Name, err)
		}
	}
	return len(inputs), nil
}

func demoProjects(gdb *gorm.DB) (int, error) {
	svc := service.NewProjectService(gdb)
	inputs := []service.ProjectInput{
		{
			Title:        "Ledger API",
			Description:  "Double-entry bookkeeping service with an audit trail.",
			URL:          "https://example.com/ledger",
			GitHubURL:    "https://github.com/example/ledger",
			Technologies: []string{"Go", "PostgreSQL", "Redis"},
			Category:     "Backend",
			IsFeatured:   true,
		},
		{
			Title:        "Field Notes",
			Description:  "Offline-first note taking app for site inspectors.",
			Technologies: []string{"TypeScript", "SQLite"},
			Category:     "Mobile",
			Status:       "in-progress",
			IsFeatured:   true,
		},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, fmt.Errorf("seed project %q: %w", input.Title, err)
		}
	}
	return len(inputs), nil
}

func demoPortfolio(gdb *gorm.DB) (int, error) {
	svc := service.NewPortfolioService(gdb)
	inputs := []service.PortfolioInput{
		{Title: "Clinic Booking Site", Description: "Appointment booking for a small clinic.", Category: "Web Development", Tags: []string{"gin", "htmx"}},
		{Title: "Brand Refresh", Description: "Landing page redesign for a coffee roaster.", Category: "Design", Tags: []string{"css"}},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, fmt.Errorf("seed portfolio item %q: %w", input.Title, err)
		}
	}
	return len(inputs), nil
}

func demoContactInfo(gdb *gorm.DB) (int, error) {
	svc := service.NewContactInfoService(gdb)
	inputs := []service.ContactInfoInput{
		{Type: db.ContactTypeEmail, Label: "Email", Value: "hello@example.com", Icon: "mail", IsPrimary: true},
		{Type: db.ContactTypeSocial, Label: "GitHub", Value: "https://github.com/example", Icon: "github"},
		{Type: db.ContactTypeAddress, Label: "Based in", Value: "Manila, Philippines", Icon: "map-pin"},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, fmt.Errorf("seed contact info %q: %w", input.Label, err)
		}
	}
	return len(inputs), nil
}

func demoContent(gdb *gorm.DB) (int, error) {
	svc := service.NewContentService(gdb)
	inputs := []service.ContentInput{
		{Key: "hero.title", Title: "Hero title", Content: "Hi, I'm Alex.", Section: "hero"},
		{Key: "hero.subtitle", Title: "Hero subtitle", Content: "I design and ship **reliable** software.", Section: "hero"},
		{Key: "about.body", Title: "About", Content: "<p>Ten years of building for the web.</p>", Type: db.ContentTypeHTML, Section: "about"},
	}
	for _, input := range inputs {
		if _, err := svc.Create(input); err != nil {
			return 0, fmt.Errorf("seed content %q: %w", input.Key, err)
		}
	}
	return len(inputs), nil
}
