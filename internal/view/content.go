package view

import (
	"bytes"
	"fmt"
	htmlstd "html"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/portfolio/internal/db"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	contentPolicy = buildContentPolicy()
)

func buildContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("class", "data-video-platform").OnElements("div")
	policy.AllowAttrs("src").Matching(videoEmbedSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy").OnElements("iframe")
	return policy
}

// RenderMarkdown 渲染 Markdown 并过滤不安全的标签
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(source), &buf); err != nil {
		return template.HTML(htmlstd.EscapeString(source))
	}
	return template.HTML(contentPolicy.SanitizeBytes(buf.Bytes()))
}

// SanitizeHTML 过滤后台录入的 HTML
func SanitizeHTML(source string) template.HTML {
	return template.HTML(contentPolicy.Sanitize(source))
}

// RenderContent 按内容块类型输出 HTML：
// text 视为 Markdown，html 经过过滤，image 输出图片，video 尽量嵌入播放器。
func RenderContent(item db.ContentItem) template.HTML {
	content := strings.TrimSpace(item.Content)
	if content == "" {
		return ""
	}

	switch item.Type {
	case db.ContentTypeHTML:
		return SanitizeHTML(content)
	case db.ContentTypeImage:
		return SanitizeHTML(fmt.Sprintf(`<img src="%s" alt="%s" loading="lazy">`,
			htmlstd.EscapeString(content), htmlstd.EscapeString(item.Title)))
	case db.ContentTypeVideo:
		if embed, ok := ParseVideoEmbed(content); ok {
			return SanitizeHTML(videoEmbedHTML(embed, item.Title))
		}
		return SanitizeHTML(fmt.Sprintf(`<a href="%s" rel="nofollow noopener">%s</a>`,
			htmlstd.EscapeString(content), htmlstd.EscapeString(firstNonEmpty(item.Title, content))))
	default:
		return RenderMarkdown(content)
	}
}

func videoEmbedHTML(embed VideoEmbed, title string) string {
	if title == "" {
		title = "Video player"
	}
	return fmt.Sprintf(
		`<div class="video-embed" data-video-platform="%s"><iframe src="%s" title="%s" loading="lazy" allow="encrypted-media; picture-in-picture" allowfullscreen frameborder="0" referrerpolicy="strict-origin-when-cross-origin"></iframe></div>`,
		htmlstd.EscapeString(embed.Platform),
		htmlstd.EscapeString(embed.EmbedURL),
		htmlstd.EscapeString(title),
	)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
