package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const maxTrendHours = 90 * 24

// GetAnalytics 站点概况与按小时的访问趋势，?hours= 默认 168
func (a *API) GetAnalytics(c *gin.Context) {
	hours := parsePositiveInt(c.Query("hours"), dashboardHours)
	if hours > maxTrendHours {
		hours = maxTrendHours
	}

	overview, err := a.analytics.Overview()
	if err != nil {
		respondServiceError(c, err, "Failed to load analytics")
		return
	}
	trend, err := a.analytics.HourlyTrafficTrend(time.Now().UTC(), hours)
	if err != nil {
		respondServiceError(c, err, "Failed to load analytics")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"overview": overview,
		"trend":    trend,
		"hours":    hours,
	})
}
