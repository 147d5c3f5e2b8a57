package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/service"
	"github.com/portfolio/internal/view"
)

const (
	sessionUserKey    = "user_id"
	currentUserCtxKey = "__current_user_id"
	dashboardHours    = 7 * 24
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	if currentUserID(c) != 0 {
		c.Redirect(http.StatusFound, "/admin/dashboard")
		return
	}
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{"title": "Sign in"})
}

// Login 处理表单登录
func (a *API) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")

	user, err := a.users.Authenticate(email, password)
	if err != nil {
		status := http.StatusUnauthorized
		message := "Invalid email or password"
		if !errors.Is(err, service.ErrInvalidCredentials) {
			c.Error(err)
			status = http.StatusInternalServerError
			message = "Unable to sign in right now"
		}
		a.renderHTML(c, status, "login.html", gin.H{"title": "Sign in", "error": message, "email": email})
		return
	}

	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserKey, user.ID)
	if err := session.Save(); err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{"title": "Sign in", "error": "Failed to save session"})
		return
	}

	c.Redirect(http.StatusFound, "/admin/dashboard")
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	c.Redirect(http.StatusFound, "/login")
}

// AuthRequired 页面请求跳转到登录页，API 请求返回 401。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == 0 {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
				return
			}
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(currentUserCtxKey, userID)
		c.Next()
	}
}

func currentUserID(c *gin.Context) uint {
	if value, ok := c.Get(currentUserCtxKey); ok {
		if id, ok := value.(uint); ok {
			return id
		}
	}
	switch id := sessions.Default(c).Get(sessionUserKey).(type) {
	case uint:
		return id
	case int:
		if id > 0 {
			return uint(id)
		}
	}
	return 0
}

// ShowDashboard 渲染后台主面板
func (a *API) ShowDashboard(c *gin.Context) {
	overview, err := a.analytics.Overview()
	if err != nil {
		c.Error(err)
	}
	trend, err := a.analytics.HourlyTrafficTrend(time.Now().UTC(), dashboardHours)
	if err != nil {
		c.Error(err)
	}

	a.renderAdminPage(c, "dashboard", gin.H{
		"overview": overview,
		"trend":    trend,
	})
}

// ShowAdminPage 渲染各管理页面的外壳，数据由前端通过 endpoint 拉取。
func (a *API) ShowAdminPage(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		extra := gin.H{}
		if key == "contact" || key == "settings" {
			extra["icons"] = view.ContactIconSVGMap()
		}
		a.renderAdminPage(c, key, extra)
	}
}

func (a *API) renderAdminPage(c *gin.Context, key string, data gin.H) {
	navigation := a.navigation.WithActive(key)
	item, ok := navigation.Item(key)
	if !ok {
		respondError(c, http.StatusNotFound, "Page not found")
		return
	}

	payload := gin.H{
		"title":      item.Label,
		"page":       key,
		"endpoint":   item.Endpoint,
		"navigation": navigation,
	}
	if user, err := a.users.Get(currentUserID(c), currentUserID(c)); err == nil {
		payload["user"] = user
	}
	for k, v := range data {
		payload[k] = v
	}

	a.renderHTML(c, http.StatusOK, "admin.html", payload)
}
