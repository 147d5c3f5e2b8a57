package router

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/events"
	"github.com/portfolio/internal/handler"
	"github.com/portfolio/internal/metrics"
	"github.com/portfolio/internal/middleware"
	"github.com/portfolio/internal/view"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionName = "portfolio_session"

// Options 路由所需的运行参数
type Options struct {
	SessionSecret      string
	Logger             *zap.Logger
	EventLog           events.Log
	PollInterval       time.Duration
	FeaturedSkillsOnly bool
	UploadDir          string
	UploadURL          string
	StaticDir          string
	Metrics            bool
}

// SetupRouter 配置 Gin 引擎和路由，同时返回 API 以便调用方复用其服务。
func SetupRouter(gdb *gorm.DB, opts Options) (*gin.Engine, *handler.API, error) {
	if gdb == nil {
		return nil, nil, errors.New("router: database is required")
	}
	if strings.TrimSpace(opts.SessionSecret) == "" {
		return nil, nil, errors.New("router: session secret is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	staticDir := strings.TrimSpace(opts.StaticDir)
	if staticDir == "" {
		staticDir = "web/static"
	}
	uploadURL := "/" + strings.Trim(strings.TrimSpace(opts.UploadURL), "/")
	if uploadURL == "/" {
		uploadURL = "/static/uploads"
	}

	api, err := handler.NewAPI(gdb, handler.Options{
		EventLog:           opts.EventLog,
		Logger:             logger,
		PollInterval:       opts.PollInterval,
		FeaturedSkillsOnly: opts.FeaturedSkillsOnly,
		UploadDir:          opts.UploadDir,
		UploadURL:          uploadURL,
	})
	if err != nil {
		return nil, nil, err
	}

	templates, err := view.Templates()
	if err != nil {
		return nil, nil, err
	}

	r := gin.New()
	r.Use(middleware.Logger(logger), middleware.Recovery(logger))
	if opts.Metrics {
		metrics.Register()
		r.Use(metrics.GinMiddleware())
	}

	// 配置会话中间件
	store := cookie.NewStore([]byte(opts.SessionSecret))
	store.Options(sessions.Options{Path: "/", MaxAge: 7 * 24 * 3600, HttpOnly: true})
	r.Use(sessions.Sessions(sessionName, store))

	r.SetHTMLTemplate(templates)

	// 静态文件服务；上传目录不在 /static 下时单独挂载，/uploads 始终可用
	r.Static("/static", staticDir)
	if opts.UploadDir != "" {
		if !strings.HasPrefix(uploadURL, "/static/") && uploadURL != "/uploads" {
			r.Static(uploadURL, opts.UploadDir)
		}
		r.Static("/uploads", opts.UploadDir)
	}

	r.GET("/healthz", api.HealthCheck)
	if opts.Metrics {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	// 公开页面
	r.GET("/", api.ShowLanding)
	r.GET("/login", api.ShowLoginPage)
	r.POST("/login", api.Login)
	r.GET("/logout", api.Logout)

	public := r.Group("/api")
	{
		public.GET("/landing", api.GetLandingData)
		public.POST("/contact", api.SubmitContactForm)

		locations := public.Group("/locations")
		locations.GET("/countries", api.ListCountries)
		locations.GET("/countries/:id/regions", api.ListRegions)
		locations.GET("/regions/:id/provinces", api.ListProvinces)
		locations.GET("/provinces/:id/cities", api.ListCities)
		locations.GET("/cities/:id/barangays", api.ListBarangays)
	}

	// 后台页面
	admin := r.Group("/admin")
	admin.Use(handler.AuthRequired())
	{
		admin.GET("", func(c *gin.Context) { c.Redirect(http.StatusFound, "/admin/dashboard") })
		admin.GET("/dashboard", api.ShowDashboard)
		for _, key := range []string{"profile", "experience", "skills", "projects", "portfolio", "contact", "messages", "content", "analytics", "database", "settings"} {
			admin.GET("/"+key, api.ShowAdminPage(key))
		}
	}

	// 后台 API
	adminAPI := r.Group("/api/admin")
	adminAPI.Use(handler.AuthRequired())
	{
		adminAPI.GET("/profile", api.GetOwnProfile)
		adminAPI.POST("/profile", api.SaveOwnProfile)
		adminAPI.GET("/profile/:id", api.GetProfile)
		adminAPI.PUT("/profile/:id", api.UpdateProfile)
		adminAPI.DELETE("/profile/:id", api.DeleteProfile)

		adminAPI.GET("/user", api.GetCurrentUser)
		adminAPI.POST("/user", api.CreateUser)
		adminAPI.GET("/user/:id", api.GetUser)
		adminAPI.PUT("/user/:id", api.UpdateUser)

		collection(adminAPI.Group("/experiences"), crud{
			list: api.ListExperiences, get: api.GetExperience, create: api.CreateExperience,
			update: api.UpdateExperience, remove: api.DeleteExperience, reorder: api.ReorderExperiences,
		})

		skills := adminAPI.Group("/skills")
		skills.GET("/categories", api.SkillCategories)
		collection(skills, crud{
			list: api.ListSkills, get: api.GetSkill, create: api.CreateSkill,
			update: api.UpdateSkill, remove: api.DeleteSkill, reorder: api.ReorderSkills,
		})

		collection(adminAPI.Group("/projects"), crud{
			list: api.ListProjects, get: api.GetProject, create: api.CreateProject,
			update: api.UpdateProject, remove: api.DeleteProject, reorder: api.ReorderProjects,
		})

		collection(adminAPI.Group("/portfolio"), crud{
			list: api.ListPortfolioItems, get: api.GetPortfolioItem, create: api.CreatePortfolioItem,
			update: api.UpdatePortfolioItem, remove: api.DeletePortfolioItem, reorder: api.ReorderPortfolioItems,
		})

		collection(adminAPI.Group("/contact-info"), crud{
			list: api.ListContactInfo, get: api.GetContactInfo, create: api.CreateContactInfo,
			update: api.UpdateContactInfo, remove: api.DeleteContactInfo, reorder: api.ReorderContactInfo,
		})

		collection(adminAPI.Group("/content"), crud{
			list: api.ListContent, get: api.GetContent, create: api.CreateContent,
			update: api.UpdateContent, remove: api.DeleteContent,
		})

		forms := adminAPI.Group("/contact-forms")
		forms.GET("", api.ListContactForms)
		forms.GET("/counts", api.CountContactForms)
		forms.GET("/:id", api.GetContactForm)
		forms.POST("/:id/read", api.MarkContactFormRead)
		forms.POST("/:id/replied", api.MarkContactFormReplied)
		forms.POST("/:id/spam", api.MarkContactFormSpam)
		forms.DELETE("/:id", api.DeleteContactForm)

		database := adminAPI.Group("/database")
		database.GET("/tables", api.DatabaseTables)
		database.GET("/stats", api.DatabaseStats)
		database.GET("/events", api.DatabaseEvents)
		database.GET("/events/stream", api.StreamDatabaseEvents)
		database.POST("/backup", api.DatabaseBackup)
		database.POST("/optimize", api.DatabaseOptimize)

		adminAPI.GET("/analytics", api.GetAnalytics)
		adminAPI.GET("/settings", api.GetSiteSettings)
		adminAPI.PUT("/settings", api.UpdateSiteSettings)
		adminAPI.GET("/options", api.GetOptions)
		adminAPI.POST("/uploads", api.UploadImage)
	}

	return r, api, nil
}

type crud struct {
	list, get, create, update, remove, reorder gin.HandlerFunc
}

// collection 注册统一的集合路由，reorder 为空时不注册排序接口。
func collection(group *gin.RouterGroup, h crud) {
	group.GET("", h.list)
	group.POST("", h.create)
	if h.reorder != nil {
		group.POST("/reorder", h.reorder)
	}
	group.GET("/:id", h.get)
	group.PUT("/:id", h.update)
	group.DELETE("/:id", h.remove)
}
