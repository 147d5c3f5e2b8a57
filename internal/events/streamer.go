package events

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// DefaultInterval 事件流轮询间隔
const DefaultInterval = 2 * time.Second

const defaultBatch = 100

// Streamer 定时轮询 Log，把游标之后的新事件依次交给 emit。
type Streamer struct {
	log      Log
	interval time.Duration
	batch    int
	logger   *zap.Logger
}

// NewStreamer 构造 Streamer，interval <= 0 时使用 DefaultInterval。
func NewStreamer(log Log, interval time.Duration, logger *zap.Logger) *Streamer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Streamer{log: log, interval: interval, batch: defaultBatch, logger: logger}
}

// Interval returns the polling period.
func (s *Streamer) Interval() time.Duration {
	return s.interval
}

// Run 阻塞直到 ctx 结束或 emit 返回错误。
// 读取失败只记录日志，下一个周期重试。ctx 结束时返回 nil。
func (s *Streamer) Run(ctx context.Context, cursor string, emit func(Event) error) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		next, err := s.drain(ctx, cursor, emit)
		if err != nil {
			return err
		}
		cursor = next

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Streamer) drain(ctx context.Context, cursor string, emit func(Event) error) (string, error) {
	for {
		if ctx.Err() != nil {
			return cursor, nil
		}

		batch, err := s.log.Since(ctx, cursor, s.batch)
		if err != nil {
			if ctx.Err() == nil && !errors.Is(err, context.Canceled) {
				s.logger.Warn("poll database events failed", zap.String("cursor", cursor), zap.Error(err))
			}
			return cursor, nil
		}

		for _, event := range batch {
			if err := emit(event); err != nil {
				return cursor, err
			}
			cursor = event.ID
		}

		if len(batch) < s.batch {
			return cursor, nil
		}
	}
}
