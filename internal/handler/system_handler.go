package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
)

// HealthCheck 提供负载均衡与监控系统使用的健康检查端点。
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "up",
	})
}

// GetSiteSettings 返回当前站点设置。
func (a *API) GetSiteSettings(c *gin.Context) {
	settings, err := a.settings.Get()
	if err != nil {
		respondServiceError(c, err, "Failed to load settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// UpdateSiteSettings 保存站点设置。
func (a *API) UpdateSiteSettings(c *gin.Context) {
	var input service.SiteSettingsInput
	if !bindJSON(c, &input, "Invalid settings payload") {
		return
	}

	settings, err := a.settings.Update(input)
	if err != nil {
		respondServiceError(c, err, "Failed to save settings")
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetOptions 后台表单的下拉选项：静态配置 + 已有的技能分类 + 图标。
func (a *API) GetOptions(c *gin.Context) {
	categories, err := a.skills.Categories()
	if err != nil {
		respondServiceError(c, err, "Failed to load options")
		return
	}

	options := make(map[string]interface{}, len(a.navigation.Options)+2)
	for key, values := range a.navigation.Options {
		options[key] = values
	}
	options["skill_categories_in_use"] = categories
	options["contact_icons"] = view.ContactIconOptions()

	c.JSON(http.StatusOK, options)
}
