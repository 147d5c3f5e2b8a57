package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// StreamKey 事件写入的 Redis stream
const StreamKey = "portfolio:database:events"

// DefaultMaxLen caps the stream length; trimming is approximate.
const DefaultMaxLen = 1000

// RedisLog 使用 Redis stream 保存事件，多实例部署时共享事件流。
// 游标为 stream 条目 ID。
type RedisLog struct {
	rdb    *redis.Client
	key    string
	maxLen int64
	logger *zap.Logger
}

// Connect 解析 URL 并校验连通性
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}

// NewRedisLog 构造 RedisLog，key 为空时使用 StreamKey。
func NewRedisLog(rdb *redis.Client, key string) *RedisLog {
	if strings.TrimSpace(key) == "" {
		key = StreamKey
	}
	return &RedisLog{rdb: rdb, key: key, maxLen: DefaultMaxLen, logger: zap.NewNop()}
}

// WithLogger 设置解码失败时的告警日志
func (l *RedisLog) WithLogger(logger *zap.Logger) *RedisLog {
	if logger != nil {
		l.logger = logger
	}
	return l
}

func (l *RedisLog) Append(ctx context.Context, event Event) (Event, error) {
	event = normalize(event)
	payload, err := encodePayload(event)
	if err != nil {
		return Event{}, err
	}

	id, err := l.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: l.key,
		MaxLen: l.maxLen,
		Approx: true,
		Values: map[string]interface{}{"payload": payload},
	}).Result()
	if err != nil {
		return Event{}, fmt.Errorf("append event: %w", err)
	}
	event.ID = id
	return event, nil
}

func (l *RedisLog) Since(ctx context.Context, cursor string, limit int) ([]Event, error) {
	start := "-"
	if c := strings.TrimSpace(cursor); c != "" {
		if !validStreamID(c) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidCursor, c)
		}
		start = "(" + c
	}

	for {
		var (
			messages []redis.XMessage
			err      error
		)
		if limit > 0 {
			messages, err = l.rdb.XRangeN(ctx, l.key, start, "+", int64(limit)).Result()
		} else {
			messages, err = l.rdb.XRange(ctx, l.key, start, "+").Result()
		}
		if err != nil {
			return nil, fmt.Errorf("list events: %w", err)
		}

		events := decodeMessages(messages, l.logger)
		// 整页都无法解码时继续向后读，避免游标停在坏条目上
		if len(events) > 0 || limit <= 0 || len(messages) < limit {
			return events, nil
		}
		start = "(" + messages[len(messages)-1].ID
	}
}

func (l *RedisLog) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = int(l.maxLen)
	}
	messages, err := l.rdb.XRevRangeN(ctx, l.key, "+", "-", int64(limit)).Result()
	if err != nil {
		return nil, fmt.Errorf("list recent events: %w", err)
	}
	return decodeMessages(messages, l.logger), nil
}

func (l *RedisLog) Cursor(ctx context.Context) (string, error) {
	messages, err := l.rdb.XRevRangeN(ctx, l.key, "+", "-", 1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("resolve event cursor: %w", err)
	}
	if len(messages) == 0 {
		return "", nil
	}
	return messages[0].ID, nil
}

func encodePayload(event Event) (string, error) {
	stored := event
	stored.ID = ""
	data, err := json.Marshal(stored)
	if err != nil {
		return "", fmt.Errorf("encode event: %w", err)
	}
	return string(data), nil
}

func decodeMessage(msg redis.XMessage) (Event, error) {
	raw, ok := msg.Values["payload"].(string)
	if !ok {
		return Event{}, fmt.Errorf("decode event %s: missing payload", msg.ID)
	}
	var event Event
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		return Event{}, fmt.Errorf("decode event %s: %w", msg.ID, err)
	}
	event.ID = msg.ID
	return event, nil
}

// decodeMessages 跳过无法解码的条目，只记录告警。
func decodeMessages(messages []redis.XMessage, logger *zap.Logger) []Event {
	events := make([]Event, 0, len(messages))
	for _, msg := range messages {
		event, err := decodeMessage(msg)
		if err != nil {
			logger.Warn("skip undecodable database event", zap.String("id", msg.ID), zap.Error(err))
			continue
		}
		events = append(events, event)
	}
	return events
}

// "1700000000000-0"
func validStreamID(id string) bool {
	ms, seq, found := strings.Cut(id, "-")
	if !found || ms == "" || seq == "" {
		return false
	}
	for _, part := range []string{ms, seq} {
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
		}
	}
	return true
}
