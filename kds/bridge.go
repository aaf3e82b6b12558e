package kds

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/websocket"

	"github.com/yeremiapane/restaurant-pos/utils"
)

// Event is one push from the backend's realtime channel. ID is set when the
// backend numbers its events.
type Event struct {
	ID   string          `json:"id,omitempty"`
	Name string          `json:"event"`
	Data json.RawMessage `json:"data"`
}

// Key identifies the event for replay detection. ok is false for settings and
// discount pushes without an ID: they replace values wholesale, so applying a
// resend is harmless, and equal payloads are real changes (5% -> 10% -> 5%).
func (e Event) Key() (key string, ok bool) {
	if e.ID != "" {
		return e.Name + ":" + e.ID, true
	}
	switch e.Name {
	case EventSettingsUpdated, EventDiscountsUpdated:
		return "", false
	}

	var ref struct {
		ID        uint      `json:"id"`
		Status    string    `json:"status"`
		UpdatedAt time.Time `json:"updatedAt"`
	}
	if err := json.Unmarshal(e.Data, &ref); err == nil && ref.ID != 0 {
		return fmt.Sprintf("%s:%d:%s:%s", e.Name, ref.ID, ref.Status, ref.UpdatedAt.UTC().Format(time.RFC3339Nano)), true
	}
	return fmt.Sprintf("%s:%016x", e.Name, xxhash.Sum64(e.Data)), true
}

// Bridge dials the backend realtime endpoint and feeds decoded events into
// an inbox. It redials with exponential backoff until its context ends.
type Bridge struct {
	url        string
	header     http.Header
	dialer     *websocket.Dialer
	inbox      chan Event
	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewBridge(url, token string) *Bridge {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return &Bridge{
		url:        url,
		header:     header,
		dialer:     websocket.DefaultDialer,
		inbox:      make(chan Event, 64),
		minBackoff: 500 * time.Millisecond,
		maxBackoff: 30 * time.Second,
	}
}

// SetBackoff tunes the redial delays.
func (b *Bridge) SetBackoff(min, max time.Duration) {
	b.minBackoff = min
	b.maxBackoff = max
}

func (b *Bridge) Inbox() <-chan Event {
	return b.inbox
}

// Run blocks until ctx is cancelled, then closes the inbox.
func (b *Bridge) Run(ctx context.Context) {
	defer close(b.inbox)

	backoff := b.minBackoff
	for {
		connected, err := b.session(ctx)
		if ctx.Err() != nil {
			return
		}
		if connected {
			backoff = b.minBackoff
		}
		utils.ErrorLogger.Errorf("Realtime bridge disconnected: %v (retrying in %s)", err, backoff)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > b.maxBackoff {
			backoff = b.maxBackoff
		}
	}
}

// session reads from one connection until it fails.
func (b *Bridge) session(ctx context.Context) (bool, error) {
	conn, _, err := b.dialer.DialContext(ctx, b.url, b.header)
	if err != nil {
		return false, fmt.Errorf("dial %s: %w", b.url, err)
	}
	defer conn.Close()
	utils.InfoLogger.Printf("Realtime bridge connected to %s", b.url)

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	for {
		var ev Event
		if err := conn.ReadJSON(&ev); err != nil {
			if _, ok := err.(*json.SyntaxError); ok {
				utils.ErrorLogger.Errorf("Realtime bridge dropped malformed message: %v", err)
				continue
			}
			return true, err
		}
		if ev.Name == "" {
			continue
		}
		select {
		case b.inbox <- ev:
		case <-ctx.Done():
			return true, ctx.Err()
		}
	}
}
