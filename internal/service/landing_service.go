package service

import (
	"context"
	"fmt"

	"github.com/portfolio/internal/db"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// LandingData 首页所需的全部数据
type LandingData struct {
	Profile        *db.Profile
	Experiences    []db.Experience
	Skills         []db.Skill
	Projects       []db.Project
	PortfolioItems []db.PortfolioItem
	ContactInfo    []db.ContactInfo
	Content        map[string]db.ContentItem
	Settings       SiteSettings
}

// LandingService 组装首页数据
type LandingService struct {
	db                 *gorm.DB
	featuredSkillsOnly bool
}

// NewLandingService 构造 LandingService，featuredSkillsOnly 为 true 时只展示精选技能。
func NewLandingService(gdb *gorm.DB, featuredSkillsOnly bool) *LandingService {
	return &LandingService{db: gdb, featuredSkillsOnly: featuredSkillsOnly}
}

// Compose 并发读取各集合，任一失败则整体失败并取消其余查询。
func (s *LandingService) Compose(ctx context.Context) (*LandingData, error) {
	var data LandingData
	g, gctx := errgroup.WithContext(ctx)
	tx := s.db.WithContext(gctx)

	profiles := NewProfileService(tx)
	experiences := NewExperienceService(tx)
	skills := NewSkillService(tx)
	projects := NewProjectService(tx)
	portfolio := NewPortfolioService(tx)
	contacts := NewContactInfoService(tx)
	content := NewContentService(tx)
	settings := NewSiteSettingService(tx)

	g.Go(func() (err error) {
		data.Profile, err = profiles.Primary()
		return err
	})
	g.Go(func() (err error) {
		data.Experiences, err = experiences.List()
		return err
	})
	g.Go(func() (err error) {
		if s.featuredSkillsOnly {
			data.Skills, err = skills.ListFeatured()
		} else {
			data.Skills, err = skills.List()
		}
		return err
	})
	g.Go(func() (err error) {
		data.Projects, err = projects.ListShowcase()
		return err
	})
	g.Go(func() (err error) {
		data.PortfolioItems, err = portfolio.ListActive()
		return err
	})
	g.Go(func() (err error) {
		data.ContactInfo, err = contacts.ListActive()
		return err
	})
	g.Go(func() (err error) {
		data.Content, err = content.ActiveByKey()
		return err
	})
	g.Go(func() (err error) {
		data.Settings, err = settings.Get()
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("compose landing page: %w", err)
	}
	return &data, nil
}
