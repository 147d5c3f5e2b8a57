package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/portfolio/internal/service"
)

const (
	visitorCookieName   = "pf_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// ShowLanding 渲染首页并记录一次访问
func (a *API) ShowLanding(c *gin.Context) {
	data, err := a.landing.Compose(c.Request.Context())
	if err != nil {
		c.Error(err)
		a.renderHTML(c, http.StatusInternalServerError, "landing.html", gin.H{
			"data":  &service.LandingData{},
			"error": "Failed to load page",
		})
		return
	}

	visitorID := a.ensureVisitorID(c)
	if _, err := a.analytics.RecordVisit(visitorID, time.Now().UTC()); err != nil {
		c.Error(err)
	}

	a.renderHTML(c, http.StatusOK, "landing.html", gin.H{
		"data": data,
		"site": data.Settings,
	})
}

// GetLandingData returns the landing page data bag as JSON.
func (a *API) GetLandingData(c *gin.Context) {
	data, err := a.landing.Compose(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to load landing data")
		return
	}
	c.JSON(http.StatusOK, landingPayload(data))
}

func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" {
		return id
	}

	visitorID := uuid.NewString()
	secure := c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}
