package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropic(url string) *Anthropic {
	a := NewAnthropic(Config{APIKey: "test-key", BaseURL: url, HTTPClient: http.DefaultClient})
	a.backoff = time.Millisecond
	return a
}

func TestAnthropic_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, DefaultAnthropicModel, req.Model)
		assert.Equal(t, 400, req.MaxTokens)
		assert.Equal(t, "be helpful", req.System)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "hi", req.Messages[0].Content)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"hello "},{"type":"text","text":"there"}]}`))
	}))
	defer srv.Close()

	out, err := newTestAnthropic(srv.URL).Complete(context.Background(), "be helpful", "hi", 400)
	require.NoError(t, err)
	assert.Equal(t, "hello there", out)
}

func TestAnthropic_RetriesRateLimit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"ok"}]}`))
	}))
	defer srv.Close()

	out, err := newTestAnthropic(srv.URL).Complete(context.Background(), "", "hi", 10)
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAnthropic_NoRetryOnClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"type":"invalid_request_error","message":"bad"}}`))
	}))
	defer srv.Close()

	_, err := newTestAnthropic(srv.URL).Complete(context.Background(), "", "hi", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAnthropic_EmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"content":[]}`))
	}))
	defer srv.Close()

	_, err := newTestAnthropic(srv.URL).Complete(context.Background(), "", "hi", 10)
	assert.ErrorIs(t, err, ErrEmptyReply)
}

func TestNew_NoKey(t *testing.T) {
	c, err := New(context.Background(), Config{Provider: ProviderAnthropic})
	assert.NoError(t, err)
	assert.Nil(t, c)
}

func TestNew_Providers(t *testing.T) {
	c, err := New(context.Background(), Config{Provider: "ANTHROPIC", APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &Anthropic{}, c)

	c, err = New(context.Background(), Config{Provider: ProviderOpenAI, APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &OpenAI{}, c)

	_, err = New(context.Background(), Config{Provider: "mystery", APIKey: "k"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
