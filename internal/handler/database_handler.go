package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio/internal/events"
	"github.com/portfolio/internal/metrics"
	"go.uber.org/zap"
)

// DatabaseTables 各表的记录数、估算大小与健康状态
func (a *API) DatabaseTables(c *gin.Context) {
	tables, err := a.database.Tables(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load tables"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tables": tables})
}

// DatabaseStats 引擎指标读取失败时使用默认值，总是返回 200
func (a *API) DatabaseStats(c *gin.Context) {
	stats, err := a.database.Stats(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "stats": stats})
}

func (a *API) DatabaseEvents(c *gin.Context) {
	list, err := a.database.Events(c.Request.Context())
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to load events"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": list})
}

func (a *API) DatabaseBackup(c *gin.Context) {
	c.JSON(http.StatusOK, a.database.Backup(c.Request.Context()))
}

func (a *API) DatabaseOptimize(c *gin.Context) {
	c.JSON(http.StatusOK, a.database.Optimize(c.Request.Context()))
}

// StreamDatabaseEvents 以 SSE 推送新事件，客户端断开后返回。
// 带 Last-Event-ID 时从该事件之后继续，否则只推送连接之后的事件。
func (a *API) StreamDatabaseEvents(c *gin.Context) {
	ctx := c.Request.Context()
	log := a.database.Log()

	cursor, err := a.resumeCursor(c, log)
	if err != nil {
		c.Error(err)
		respondError(c, http.StatusInternalServerError, "Failed to open event stream")
		return
	}

	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
	fmt.Fprintf(c.Writer, "retry: %d\n\n", a.streamer.Interval().Milliseconds())
	c.Writer.Flush()

	metrics.StreamSubscribers.Inc()
	defer metrics.StreamSubscribers.Dec()

	err = a.streamer.Run(ctx, cursor, func(event events.Event) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Writer, "id: %s\ndata: %s\n\n", event.ID, payload); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})
	if err != nil {
		a.logger.Debug("event stream closed", zap.Error(err))
	}
}

func (a *API) resumeCursor(c *gin.Context, log events.Log) (string, error) {
	ctx := c.Request.Context()
	if lastID := strings.TrimSpace(c.GetHeader("Last-Event-ID")); lastID != "" {
		_, err := log.Since(ctx, lastID, 1)
		if err == nil {
			return lastID, nil
		}
		if !errors.Is(err, events.ErrInvalidCursor) {
			return "", err
		}
	}
	return log.Cursor(ctx)
}
