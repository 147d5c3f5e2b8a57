package service

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes 以 1024 为底格式化字节数，最多保留两位小数："0 B"、"1 KB"、"1.5 MB"。
func FormatBytes(bytes int64) string {
	if bytes <= 0 {
		return "0 B"
	}
	factor := 0
	for scaled := bytes; scaled >= 1024 && factor < len(byteUnits)-1; scaled /= 1024 {
		factor++
	}
	value := float64(bytes) / math.Pow(1024, float64(factor))
	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[factor]
}

// FormatUptime 将运行时长格式化为 "2d 3h 4m"、"3h 4m" 或 "4m"。
func FormatUptime(d time.Duration) string {
	seconds := int64(d.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
