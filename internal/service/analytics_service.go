package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/portfolio/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsService 负责处理首页访问相关的统计逻辑。
type AnalyticsService struct {
	db *gorm.DB
}

// NewAnalyticsService 创建 AnalyticsService。
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb}
}

// HourlyTrafficPoint 每小时的访问数据
type HourlyTrafficPoint struct {
	Hour           time.Time `json:"hour"`
	PageViews      uint64    `json:"page_views"`
	UniqueVisitors uint64    `json:"unique_visitors"`
	Submissions    uint64    `json:"submissions"`
}

// SiteOverview 聚合站点层面的 UV/PV 数据及各集合数量。
type SiteOverview struct {
	TotalPageViews      uint64           `json:"total_page_views"`
	TotalUniqueVisitors uint64           `json:"total_unique_visitors"`
	TotalSubmissions    uint64           `json:"total_submissions"`
	Collections         map[string]int64 `json:"collections"`
	UnreadMessages      int64            `json:"unread_messages"`
}

// RecordVisit 记录访客对首页的浏览，同一小时内同一访客只计一次 UV。
func (s *AnalyticsService) RecordVisit(visitorID string, now time.Time) (*db.LandingHourlyStat, error) {
	if visitorID == "" {
		return nil, errors.New("invalid visitor id")
	}

	hour := now.UTC().Truncate(time.Hour)
	var stat db.LandingHourlyStat

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		visitor := db.LandingHourlyVisitor{Hour: hour, VisitorID: visitorID}
		insert := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "hour"}, {Name: "visitor_id"}},
			DoNothing: true,
		}).Create(&visitor)
		if insert.Error != nil {
			return insert.Error
		}
		isNewVisitor := insert.RowsAffected == 1

		loaded, err := lockHourlyStat(tx, hour)
		if err != nil {
			return err
		}
		stat = *loaded

		stat.PageViews++
		if isNewVisitor {
			stat.UniqueVisitors++
		}
		return tx.Save(&stat).Error
	}); err != nil {
		return nil, fmt.Errorf("record visit: %w", err)
	}

	return &stat, nil
}

// RecordSubmission 留言提交计数
func (s *AnalyticsService) RecordSubmission(now time.Time) error {
	hour := now.UTC().Truncate(time.Hour)
	return s.db.Transaction(func(tx *gorm.DB) error {
		stat, err := lockHourlyStat(tx, hour)
		if err != nil {
			return err
		}
		stat.Submissions++
		return tx.Save(stat).Error
	})
}

func lockHourlyStat(tx *gorm.DB, hour time.Time) (*db.LandingHourlyStat, error) {
	var stat db.LandingHourlyStat
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("hour = ?", hour).First(&stat)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		stat = db.LandingHourlyStat{Hour: hour}
		if err := tx.Create(&stat).Error; err != nil {
			return nil, err
		}
	case result.Error != nil:
		return nil, result.Error
	}
	return &stat, nil
}

// HourlyTrafficTrend 返回截至 now 所在小时的最近 hours 个小时，缺失的小时补零。
func (s *AnalyticsService) HourlyTrafficTrend(now time.Time, hours int) ([]HourlyTrafficPoint, error) {
	if hours <= 0 {
		hours = 24
	}
	end := now.UTC().Truncate(time.Hour)
	start := end.Add(-time.Duration(hours-1) * time.Hour)

	var stats []db.LandingHourlyStat
	if err := s.db.Where("hour >= ? AND hour <= ?", start, end).Order("hour ASC").Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("load hourly stats: %w", err)
	}

	byHour := make(map[int64]db.LandingHourlyStat, len(stats))
	for _, stat := range stats {
		byHour[stat.Hour.UTC().Unix()] = stat
	}

	points := make([]HourlyTrafficPoint, 0, hours)
	for i := 0; i < hours; i++ {
		hour := start.Add(time.Duration(i) * time.Hour)
		stat := byHour[hour.Unix()]
		points = append(points, HourlyTrafficPoint{
			Hour:           hour,
			PageViews:      stat.PageViews,
			UniqueVisitors: stat.UniqueVisitors,
			Submissions:    stat.Submissions,
		})
	}
	return points, nil
}

// Overview 汇总全站 UV/PV 以及后台各集合数量。
func (s *AnalyticsService) Overview() (SiteOverview, error) {
	overview := SiteOverview{Collections: map[string]int64{}}

	var totals struct {
		PageViews   uint64
		Submissions uint64
	}
	if err := s.db.Model(&db.LandingHourlyStat{}).
		Select("COALESCE(SUM(page_views), 0) AS page_views, COALESCE(SUM(submissions), 0) AS submissions").
		Scan(&totals).Error; err != nil {
		return overview, err
	}
	overview.TotalPageViews = totals.PageViews
	overview.TotalSubmissions = totals.Submissions

	var uniqueVisitors int64
	if err := s.db.Model(&db.LandingHourlyVisitor{}).Distinct("visitor_id").Count(&uniqueVisitors).Error; err != nil {
		return overview, err
	}
	overview.TotalUniqueVisitors = uint64(uniqueVisitors)

	collections := map[string]interface{}{
		"experiences":     &db.Experience{},
		"skills":          &db.Skill{},
		"projects":        &db.Project{},
		"portfolio_items": &db.PortfolioItem{},
		"contact_info":    &db.ContactInfo{},
		"content_items":   &db.ContentItem{},
		"contact_forms":   &db.ContactForm{},
	}
	for name, model := range collections {
		var total int64
		if err := s.db.Model(model).Count(&total).Error; err != nil {
			return overview, err
		}
		overview.Collections[name] = total
	}

	if err := s.db.Model(&db.ContactForm{}).Where("status = ?", db.ContactFormStatusNew).Count(&overview.UnreadMessages).Error; err != nil {
		return overview, err
	}

	return overview, nil
}
