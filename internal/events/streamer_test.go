package events

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

// memoryLog is an in-process Log used to drive the streamer.
type memoryLog struct {
	mu     sync.Mutex
	events []Event
	fail   error
}

func (m *memoryLog) Append(_ context.Context, event Event) (Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event = normalize(event)
	event.ID = strconv.Itoa(len(m.events) + 1)
	m.events = append(m.events, event)
	return event, nil
}

func (m *memoryLog) Since(_ context.Context, cursor string, limit int) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	start := 0
	if cursor != "" {
		n, err := strconv.Atoi(cursor)
		if err != nil {
			return nil, ErrInvalidCursor
		}
		start = n
	}
	if start > len(m.events) {
		start = len(m.events)
	}
	out := append([]Event(nil), m.events[start:]...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryLog) Recent(_ context.Context, limit int) ([]Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, 0, len(m.events))
	for i := len(m.events) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

func (m *memoryLog) Cursor(_ context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.events) == 0 {
		return "", nil
	}
	return strconv.Itoa(len(m.events)), nil
}

func TestStreamerEmitsNewEventsInOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	log := &memoryLog{}
	ctx := context.Background()
	_, _ = log.Append(ctx, Event{Type: TypeQuery, Message: "before cursor"})
	cursor, err := log.Cursor(ctx)
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(ctx)
	received := make(chan Event, 10)
	done := make(chan error, 1)
	go func() {
		done <- NewStreamer(log, 10*time.Millisecond, nil).Run(runCtx, cursor, func(e Event) error {
			received <- e
			return nil
		})
	}()

	_, _ = log.Append(ctx, Event{Type: TypeBackup, Message: "first"})
	_, _ = log.Append(ctx, Event{Type: TypeOptimize, Message: "second"})

	for _, want := range []string{"first", "second"} {
		select {
		case e := <-received:
			require.Equal(t, want, e.Message)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %q", want)
		}
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("streamer did not stop after cancellation")
	}
}

func TestStreamerStopsOnEmitError(t *testing.T) {
	defer goleak.VerifyNone(t)

	log := &memoryLog{}
	_, _ = log.Append(context.Background(), Event{Message: "only"})

	boom := errors.New("client gone")
	err := NewStreamer(log, 10*time.Millisecond, nil).Run(context.Background(), "", func(Event) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
}

func TestStreamerSurvivesPollFailures(t *testing.T) {
	defer goleak.VerifyNone(t)

	log := &memoryLog{fail: errors.New("db down")}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := NewStreamer(log, 5*time.Millisecond, nil).Run(ctx, "", func(Event) error {
		t.Fatal("no event expected")
		return nil
	})
	require.NoError(t, err)
}

func TestNewStreamerDefaultsInterval(t *testing.T) {
	require.Equal(t, DefaultInterval, NewStreamer(&memoryLog{}, 0, nil).Interval())
}
