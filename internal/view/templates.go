// Package view 提供页面模板、后台菜单配置与内容渲染。
package view

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/portfolio/internal/db"
	"gorm.io/datatypes"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates 解析内置模板，模板名即文件名，如 "landing.html"。
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(FuncMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// FuncMap 模板中可用的函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"formatDate":    FormatDate,
		"dateRange":     DateRange,
		"renderContent": RenderContent,
		"markdown":      RenderMarkdown,
		"contactIcon": func(item db.ContactInfo) template.HTML {
			return template.HTML(ContactIconSVG(item.Icon, item.Type))
		},
		"contentText": func(content map[string]db.ContentItem, key, fallback string) string {
			if item, ok := content[key]; ok && strings.TrimSpace(item.Content) != "" {
				return item.Content
			}
			return fallback
		},
		"contentItem": func(content map[string]db.ContentItem, key string) *db.ContentItem {
			if item, ok := content[key]; ok {
				return &item
			}
			return nil
		},
		"join": strings.Join,
		"json": func(v interface{}) (template.JS, error) {
			raw, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(raw), nil
		},
		"year": func() int {
			return time.Now().Year()
		},
	}
}

// FormatDate 按 "Jan 2006" 输出，nil 或零值返回空串。
func FormatDate(value interface{}) string {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		if v == nil {
			return ""
		}
		t = *v
	case datatypes.Date:
		t = time.Time(v)
	case *datatypes.Date:
		if v == nil {
			return ""
		}
		t = time.Time(*v)
	default:
		return ""
	}
	if t.IsZero() {
		return ""
	}
	return t.Format("Jan 2006")
}

// DateRange 经历的起止时间，在职时结束为 Present
func DateRange(item db.Experience) string {
	start := FormatDate(item.StartDate)
	switch {
	case item.IsCurrent:
		return start + " - Present"
	case item.EndDate != nil:
		return start + " - " + FormatDate(item.EndDate)
	default:
		return start
	}
}
