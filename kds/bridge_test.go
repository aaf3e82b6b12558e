package kds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestBridgeDeliversEventsAndReconnects(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var dials int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		n := atomic.AddInt32(&dials, 1)
		conn.WriteMessage(websocket.TextMessage, []byte(`{"event":"order_status_update","data":{"id":`+strconv.Itoa(int(n))+`,"status":"Ready"}}`))
		conn.WriteMessage(websocket.TextMessage, []byte(`not json`))
		conn.WriteMessage(websocket.TextMessage, []byte(`{"data":{}}`))
		// drop the connection to force a redial
	}))
	defer srv.Close()

	b := NewBridge(wsURL(srv), "tok")
	b.SetBackoff(5*time.Millisecond, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		b.Run(ctx)
		close(done)
	}()

	var got []Event
	for len(got) < 2 {
		select {
		case ev := <-b.Inbox():
			got = append(got, ev)
		case <-time.After(3 * time.Second):
			t.Fatal("no event from bridge")
		}
	}
	cancel()
	<-done

	assert.Equal(t, "order_status_update", got[0].Name)
	assert.JSONEq(t, `{"id":1,"status":"Ready"}`, string(got[0].Data))
	assert.JSONEq(t, `{"id":2,"status":"Ready"}`, string(got[1].Data))
	k0, _ := got[0].Key()
	k1, _ := got[1].Key()
	assert.NotEqual(t, k0, k1)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&dials), int32(2))

	// the inbox is closed once Run returns; drain whatever a redial buffered
	for range b.Inbox() {
	}
}

func TestEventKey(t *testing.T) {
	key := func(ev Event) string {
		k, ok := ev.Key()
		require.True(t, ok, ev.Name)
		return k
	}

	order := Event{Name: EventOrderStatus, Data: []byte(`{"id":4,"status":"Ready","updatedAt":"2026-03-01T10:00:00Z","totalAmount":20}`)}
	resent := Event{Name: EventOrderStatus, Data: []byte(`{"totalAmount":20,"updatedAt":"2026-03-01T10:00:00Z","status":"Ready","id":4}`)}
	served := Event{Name: EventOrderStatus, Data: []byte(`{"id":4,"status":"Served","updatedAt":"2026-03-01T10:05:00Z"}`)}
	assert.Equal(t, key(order), key(resent), "field order does not matter")
	assert.NotEqual(t, key(order), key(served))
	assert.Equal(t, "order_status_update:4:Ready:2026-03-01T10:00:00Z", key(order))

	numbered := Event{ID: "evt-19", Name: EventSettingsUpdated, Data: []byte(`{"tax_rate":"5"}`)}
	assert.Equal(t, "settings_updated:evt-19", key(numbered))

	opaque := Event{Name: "custom", Data: []byte(`[1,2]`)}
	assert.True(t, strings.HasPrefix(key(opaque), "custom:"))
}

func TestValueEventsAreNotDeduplicated(t *testing.T) {
	for _, name := range []string{EventSettingsUpdated, EventDiscountsUpdated} {
		_, ok := Event{Name: name, Data: []byte(`{"tax_rate":"5"}`)}.Key()
		assert.False(t, ok, name)
	}
}
