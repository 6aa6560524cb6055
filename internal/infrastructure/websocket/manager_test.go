package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	gws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingHandler struct {
	mu      sync.Mutex
	ctxErrs []error
	frames  [][]byte
}

func (h *recordingHandler) HandleClientMessage(ctx context.Context, client *Client, raw []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ctxErrs = append(h.ctxErrs, ctx.Err())
	h.frames = append(h.frames, raw)
}

func (h *recordingHandler) HandleConnect(ctx context.Context, client *Client)    {}
func (h *recordingHandler) HandleDisconnect(ctx context.Context, client *Client) {}

// The upgrade handler returns right after spawning the pumps, which cancels
// the request context. Frames arriving afterwards must still be handled under
// a live context or every store call from the pumps fails.
func TestPumpContextOutlivesUpgradeRequest(t *testing.T) {
	m := NewManager()
	rec := &recordingHandler{}
	m.SetHandler(rec)
	m.Start(context.Background())

	up := gws.Upgrader{CheckOrigin: func(*http.Request) bool { return true }}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		client := NewClient("user-1", conn)
		m.Register <- client
		go client.ReadPump(m)
		go client.WritePump()
	}))
	defer srv.Close()

	conn, _, err := gws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(gws.TextMessage, []byte(`{"type":"ping"}`)))

	require.Eventually(t, func() bool {
		rec.mu.Lock()
		defer rec.mu.Unlock()
		return len(rec.ctxErrs) == 1
	}, time.Second, 10*time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.NoError(t, rec.ctxErrs[0])
}

func TestClientShutdownCancelsContext(t *testing.T) {
	client := NewClient("user-1", nil)
	require.NoError(t, client.Context().Err())

	client.shutdown()
	assert.ErrorIs(t, client.Context().Err(), context.Canceled)

	// A second shutdown is a no-op.
	assert.NotPanics(t, func() { client.shutdown() })
}

func TestSendAfterShutdownDoesNotPanic(t *testing.T) {
	m := NewManager()
	client := NewClient("user-1", nil)

	m.mutex.Lock()
	m.clients[client.UserID] = client
	m.mutex.Unlock()
	m.JoinRoom("room-1", client)

	client.shutdown()

	assert.NotPanics(t, func() {
		m.SendToUser("user-1", []byte("frame"))
		m.SendToRoom("room-1", []byte("frame"), "")
	})
}

func TestRegisterReplacesStaleConnection(t *testing.T) {
	m := NewManager()
	m.Start(context.Background())

	stale := NewClient("user-1", nil)
	fresh := NewClient("user-1", nil)

	m.Register <- stale
	m.Register <- fresh

	require.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		return m.clients["user-1"] == fresh
	}, time.Second, 10*time.Millisecond)

	assert.ErrorIs(t, stale.Context().Err(), context.Canceled)
	assert.NoError(t, fresh.Context().Err())
	assert.NotPanics(t, func() { m.SendToUser("user-1", []byte("frame")) })
}
