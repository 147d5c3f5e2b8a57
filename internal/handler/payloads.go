package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/db"
	"github.com/portfolio/internal/service"
	"gorm.io/datatypes"
)

const dateLayout = "2006-01-02"

func datePayload(value datatypes.Date) string {
	return time.Time(value).Format(dateLayout)
}

func optionalDatePayload(value *datatypes.Date) interface{} {
	if value == nil {
		return nil
	}
	return datePayload(*value)
}

func stringsPayload(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func experiencePayload(item db.Experience) gin.H {
	return gin.H{
		"id":              item.ID,
		"title":           item.Title,
		"company":         item.Company,
		"location":        item.Location,
		"start_date":      datePayload(item.StartDate),
		"end_date":        optionalDatePayload(item.EndDate),
		"is_current":      item.IsCurrent,
		"description":     item.Description,
		"achievements":    item.Achievements,
		"logo":            item.Logo,
		"order":           item.Order,
		"duration_months": service.Duration(item, time.Now()),
		"created_at":      item.CreatedAt,
		"updated_at":      item.UpdatedAt,
	}
}

func skillPayload(item db.Skill) gin.H {
	return gin.H{
		"id":               item.ID,
		"name":             item.Name,
		"category":         item.Category,
		"proficiency":      item.Proficiency,
		"years_experience": item.YearsExperience,
		"icon":             item.Icon,
		"description":      item.Description,
		"is_featured":      item.IsFeatured,
		"order":            item.Order,
		"created_at":       item.CreatedAt,
		"updated_at":       item.UpdatedAt,
	}
}

func projectPayload(item db.Project) gin.H {
	return gin.H{
		"id":              item.ID,
		"title":           item.Title,
		"description":     item.Description,
		"image":           item.Image,
		"url":             item.URL,
		"github_url":      item.GitHubURL,
		"technologies":    stringsPayload(item.Technologies),
		"category":        item.Category,
		"status":          item.Status,
		"completion_date": optionalDatePayload(item.CompletionDate),
		"is_featured":     item.IsFeatured,
		"is_active":       item.IsActive,
		"order":           item.Order,
		"created_at":      item.CreatedAt,
		"updated_at":      item.UpdatedAt,
	}
}

func portfolioPayload(item db.PortfolioItem) gin.H {
	return gin.H{
		"id":          item.ID,
		"title":       item.Title,
		"description": item.Description,
		"image":       item.Image,
		"url":         item.URL,
		"category":    item.Category,
		"tags":        stringsPayload(item.Tags),
		"is_active":   item.IsActive,
		"order":       item.Order,
		"created_at":  item.CreatedAt,
		"updated_at":  item.UpdatedAt,
	}
}

func contactInfoPayload(item db.ContactInfo) gin.H {
	return gin.H{
		"id":         item.ID,
		"type":       item.Type,
		"label":      item.Label,
		"value":      item.Value,
		"icon":       item.Icon,
		"is_primary": item.IsPrimary,
		"is_active":  item.IsActive,
		"order":      item.Order,
		"created_at": item.CreatedAt,
		"updated_at": item.UpdatedAt,
	}
}

func contentPayload(item db.ContentItem) gin.H {
	return gin.H{
		"id":         item.ID,
		"key":        item.Key,
		"title":      item.Title,
		"content":    item.Content,
		"type":       item.Type,
		"section":    item.Section,
		"is_active":  item.IsActive,
		"order":      item.Order,
		"created_at": item.CreatedAt,
		"updated_at": item.UpdatedAt,
	}
}

func contactFormPayload(item db.ContactForm) gin.H {
	return gin.H{
		"id":         item.ID,
		"name":       item.Name,
		"email":      item.Email,
		"subject":    item.Subject,
		"message":    item.Message,
		"status":     item.Status,
		"read_at":    item.ReadAt,
		"replied_at": item.RepliedAt,
		"created_at": item.CreatedAt,
		"updated_at": item.UpdatedAt,
	}
}

func profilePayload(profile db.Profile) gin.H {
	return gin.H{
		"id":          profile.ID,
		"user_id":     profile.UserID,
		"first_name":  profile.FirstName,
		"middle_name": profile.MiddleName,
		"last_name":   profile.LastName,
		"full_name":   profile.FullName(),
		"title":       profile.Title,
		"location":    profile.Location,
		"bio":         profile.Bio,
		"avatar":      profile.Avatar,
		"phone":       profile.Phone,
		"website":     profile.Website,
		"linkedin":    profile.LinkedIn,
		"github":      profile.GitHub,
		"twitter":     profile.Twitter,
		"created_at":  profile.CreatedAt,
		"updated_at":  profile.UpdatedAt,
	}
}

func userPayload(user db.User) gin.H {
	return gin.H{
		"id":         user.ID,
		"name":       user.Name,
		"email":      user.Email,
		"created_at": user.CreatedAt,
		"updated_at": user.UpdatedAt,
	}
}

func mapPayload[T any](items []T, fn func(T) gin.H) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}

func landingPayload(data *service.LandingData) gin.H {
	var profile interface{}
	if data.Profile != nil {
		profile = profilePayload(*data.Profile)
	}
	content := make(map[string]gin.H, len(data.Content))
	for key, item := range data.Content {
		content[key] = contentPayload(item)
	}
	return gin.H{
		"profile":         profile,
		"experiences":     mapPayload(data.Experiences, experiencePayload),
		"skills":          mapPayload(data.Skills, skillPayload),
		"projects":        mapPayload(data.Projects, projectPayload),
		"portfolio_items": mapPayload(data.PortfolioItems, portfolioPayload),
		"contact_info":    mapPayload(data.ContactInfo, contactInfoPayload),
		"content":         content,
		"settings":        data.Settings,
	}
}
