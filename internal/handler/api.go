package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/events"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options 构造 API 所需的运行参数。
type Options struct {
	EventLog           events.Log
	Logger             *zap.Logger
	PollInterval       time.Duration
	FeaturedSkillsOnly bool
	UploadDir          string
	UploadURL          string
}

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db          *gorm.DB
	users       *service.UserService
	profiles    *service.ProfileService
	experiences *service.ExperienceService
	skills      *service.SkillService
	projects    *service.ProjectService
	portfolio   *service.PortfolioService
	contacts    *service.ContactInfoService
	content     *service.ContentService
	messages    *service.ContactFormService
	locations   *service.LocationService
	settings    *service.SiteSettingService
	landing     *service.LandingService
	analytics   analyticsProvider
	database    *service.DatabaseService
	streamer    *events.Streamer
	navigation  view.Navigation
	logger      *zap.Logger
	uploadDir   string
	uploadURL   string
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, opts Options) (*API, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	eventLog := opts.EventLog
	if eventLog == nil {
		eventLog = events.NewGormLog(gdb)
	}
	navigation, err := view.LoadNavigation()
	if err != nil {
		return nil, err
	}

	return &API{
		db:          gdb,
		users:       service.NewUserService(gdb),
		profiles:    service.NewProfileService(gdb),
		experiences: service.NewExperienceService(gdb),
		skills:      service.NewSkillService(gdb),
		projects:    service.NewProjectService(gdb),
		portfolio:   service.NewPortfolioService(gdb),
		contacts:    service.NewContactInfoService(gdb),
		content:     service.NewContentService(gdb),
		messages:    service.NewContactFormService(gdb),
		locations:   service.NewLocationService(gdb),
		settings:    service.NewSiteSettingService(gdb),
		landing:     service.NewLandingService(gdb, opts.FeaturedSkillsOnly),
		analytics:   service.NewAnalyticsService(gdb),
		database:    service.NewDatabaseService(gdb, eventLog, logger),
		streamer:    events.NewStreamer(eventLog, opts.PollInterval, logger),
		navigation:  navigation,
		logger:      logger,
		uploadDir:   opts.UploadDir,
		uploadURL:   opts.UploadURL,
	}, nil
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

// Database 返回数据库面板服务，启动时用于记录连接事件。
func (a *API) Database() *service.DatabaseService {
	return a.database
}

func (a *API) siteSettings(c *gin.Context) service.SiteSettings {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if settings, ok := cached.(service.SiteSettings); ok {
			return settings
		}
	}

	settings, err := a.settings.Get()
	if err != nil {
		c.Error(err)
	}
	if settings.SiteName == "" {
		settings.SiteName = service.DefaultSiteName
	}

	c.Set(siteSettingsContextKey, settings)
	return settings
}

// renderHTML 在向模板渲染时自动附加站点设置。
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	settings := a.siteSettings(c)

	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}
	if _, exists := payload["site"]; !exists {
		payload["site"] = settings
	}
	if _, exists := payload["siteName"]; !exists {
		payload["siteName"] = settings.SiteName
	}

	c.HTML(status, template, payload)
}
