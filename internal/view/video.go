package view

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	videoEmbedSrcPattern = regexp.MustCompile(`^https://(?:www\.youtube-nocookie\.com/embed/|player\.vimeo\.com/video/)`)
	videoTimePattern     = regexp.MustCompile(`(?i)(\d+)(h|m|s)`)
)

// VideoEmbed 可嵌入播放器的视频地址
type VideoEmbed struct {
	Platform string
	Source   string
	EmbedURL string
}

// ParseVideoEmbed 识别 YouTube 与 Vimeo 链接，其余返回 false。
func ParseVideoEmbed(raw string) (VideoEmbed, bool) {
	trimmed := strings.Trim(strings.TrimSpace(raw), "<>")
	lower := strings.ToLower(trimmed)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		trimmed = "https://" + trimmed
	}

	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Hostname() == "" {
		return VideoEmbed{}, false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return VideoEmbed{}, false
	}

	if embed, ok := youTubeEmbed(parsed, trimmed); ok {
		return embed, true
	}
	if embed, ok := vimeoEmbed(parsed, trimmed); ok {
		return embed, true
	}
	return VideoEmbed{}, false
}

func youTubeEmbed(u *url.URL, source string) (VideoEmbed, bool) {
	host := strings.ToLower(u.Hostname())
	path := strings.Trim(u.Path, "/")

	var videoID string
	switch {
	case host == "youtu.be":
		videoID = path
	case isHostOrSubdomain(host, "youtube.com"):
		switch {
		case path == "watch":
			videoID = u.Query().Get("v")
		case strings.HasPrefix(path, "shorts/"), strings.HasPrefix(path, "embed/"), strings.HasPrefix(path, "live/"):
			videoID = path[strings.Index(path, "/")+1:]
		}
	default:
		return VideoEmbed{}, false
	}
	if i := strings.Index(videoID, "/"); i >= 0 {
		videoID = videoID[:i]
	}
	if videoID == "" {
		return VideoEmbed{}, false
	}

	values := url.Values{}
	values.Set("rel", "0")
	values.Set("playsinline", "1")
	if start := youTubeStart(u.Query()); start > 0 {
		values.Set("start", strconv.Itoa(start))
	}

	return VideoEmbed{
		Platform: "youtube",
		Source:   source,
		EmbedURL: fmt.Sprintf("https://www.youtube-nocookie.com/embed/%s?%s", url.PathEscape(videoID), values.Encode()),
	}, true
}

func youTubeStart(query url.Values) int {
	value := query.Get("start")
	if value == "" {
		value = query.Get("t")
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return max(seconds, 0)
	}

	total := 0
	for _, match := range videoTimePattern.FindAllStringSubmatch(value, -1) {
		n, _ := strconv.Atoi(match[1])
		switch strings.ToLower(match[2]) {
		case "h":
			total += n * 3600
		case "m":
			total += n * 60
		case "s":
			total += n
		}
	}
	return total
}

func vimeoEmbed(u *url.URL, source string) (VideoEmbed, bool) {
	if !isHostOrSubdomain(strings.ToLower(u.Hostname()), "vimeo.com") {
		return VideoEmbed{}, false
	}
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	id := segments[len(segments)-1]
	if _, err := strconv.ParseUint(id, 10, 64); err != nil {
		return VideoEmbed{}, false
	}
	return VideoEmbed{
		Platform: "vimeo",
		Source:   source,
		EmbedURL: "https://player.vimeo.com/video/" + id,
	}, true
}

func isHostOrSubdomain(host, domain string) bool {
	if host == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}
