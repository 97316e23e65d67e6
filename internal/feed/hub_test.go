package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestHub_PublishDelivers(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewHub(4, nil)
	a := h.Subscribe()
	b := h.Subscribe()

	h.PublishSubmission(map[string]string{"reference": "r1"})

	for _, s := range []*Subscriber{a, b} {
		msg := <-s.C()
		var evt map[string]any
		require.NoError(t, json.Unmarshal(msg, &evt))
		assert.Equal(t, EventSubmissionCreated, evt["type"])
		assert.Equal(t, "r1", evt["submission"].(map[string]any)["reference"])
	}

	h.Unsubscribe(a)
	assert.Equal(t, 1, h.Len())
	h.Close()
	assert.Equal(t, 0, h.Len())

	_, ok := <-b.C()
	assert.False(t, ok)
}

func TestHub_SlowSubscriberDropped(t *testing.T) {
	defer goleak.VerifyNone(t)

	h := NewHub(1, nil)
	slow := h.Subscribe()

	h.Publish(Event{Type: "a"})
	h.Publish(Event{Type: "b"})

	assert.Equal(t, 0, h.Len())
	first, ok := <-slow.C()
	require.True(t, ok)
	assert.Contains(t, string(first), `"a"`)
	_, ok = <-slow.C()
	assert.False(t, ok)

	// Unsubscribing after a drop is harmless.
	h.Unsubscribe(slow)
}

func TestHub_ServeStreamsEvents(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	h := NewHub(4, nil)
	upgrader := websocket.Upgrader{}
	served := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		h.Serve(conn)
		close(served)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	require.Eventually(t, func() bool { return h.Len() == 1 }, time.Second, 10*time.Millisecond)
	h.PublishSubmission(map[string]any{"id": 7})

	_ = client.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := client.ReadMessage()
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"submission.created","submission":{"id":7}}`, string(msg))

	require.NoError(t, client.Close())
	select {
	case <-served:
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after client closed")
	}
	assert.Equal(t, 0, h.Len())
}
