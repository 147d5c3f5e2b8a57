package handler

import (
	"time"

	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
)

// analyticsProvider 首页访问统计，测试中以桩替换。
type analyticsProvider interface {
	Overview() (service.SiteOverview, error)
	HourlyTrafficTrend(now time.Time, hours int) ([]service.HourlyTrafficPoint, error)
	RecordVisit(visitorID string, now time.Time) (*db.LandingHourlyStat, error)
	RecordSubmission(now time.Time) error
}
