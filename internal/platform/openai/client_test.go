package openai

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/ecotrack-backend/internal/pkg/httpx"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

const okBody = `{"choices":[{"message":{"content":"{\"recommendations\":[]}"},"finish_reason":"stop"}],"usage":{"prompt_tokens":10,"completion_tokens":5}}`

func newTestClient(t *testing.T, h http.HandlerFunc) *client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := NewClient(logger.Nop(), Config{APIKey: "sk-test", BaseURL: srv.URL, Temperature: 0.7, MaxRetries: 2})
	require.NoError(t, err)
	cc := c.(*client)
	cc.backoff = time.Millisecond
	return cc
}

func decodeRequest(t *testing.T, r *http.Request) chatRequest {
	t.Helper()
	raw, err := io.ReadAll(r.Body)
	require.NoError(t, err)
	var req chatRequest
	require.NoError(t, json.Unmarshal(raw, &req))
	return req
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient(logger.Nop(), Config{})
	assert.Error(t, err)
}

func TestGenerateJSONObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, chatCompletionsPath, r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		req := decodeRequest(t, r)
		assert.Equal(t, "gpt-4o", req.Model)
		require.NotNil(t, req.ResponseFormat)
		assert.Equal(t, "json_object", req.ResponseFormat.Type)
		require.NotNil(t, req.Temperature)
		assert.Equal(t, 0.7, *req.Temperature)
		assert.Equal(t, 1500, req.MaxTokens)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		_, _ = w.Write([]byte(okBody))
	})

	out, err := c.GenerateJSONObject(context.Background(), "sys", "usr", Options{MaxTokens: 1500})
	require.NoError(t, err)
	assert.Equal(t, `{"recommendations":[]}`, out)
}

func TestRetriesServerErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(okBody))
	})

	_, err := c.GenerateJSONObject(context.Background(), "s", "u", Options{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key"}}`))
	})

	_, err := c.GenerateJSONObject(context.Background(), "s", "u", Options{})
	var se *httpx.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTemperatureFallback(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		req := decodeRequest(t, r)
		if atomic.AddInt32(&calls, 1) == 1 {
			require.NotNil(t, req.Temperature)
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Unsupported parameter: 'temperature' is not supported with this model."}}`))
			return
		}
		assert.Nil(t, req.Temperature)
		_, _ = w.Write([]byte(okBody))
	})

	_, err := c.GenerateJSONObject(context.Background(), "s", "u", Options{})
	require.NoError(t, err)
	assert.True(t, c.modelIsNoTemp("gpt-4o"))

	// remembered: the next call omits temperature up front
	_, err = c.GenerateJSONObject(context.Background(), "s", "u", Options{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestEmptyCompletion(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	_, err := c.GenerateJSONObject(context.Background(), "s", "u", Options{})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestTimeoutBoundsAllAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	const timeout = 300 * time.Millisecond
	c, err := NewClient(logger.Nop(), Config{APIKey: "sk-test", BaseURL: srv.URL, Timeout: timeout, MaxRetries: 2})
	require.NoError(t, err)
	c.(*client).backoff = time.Millisecond

	start := time.Now()
	_, err = c.GenerateJSONObject(context.Background(), "s", "u", Options{})
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Less(t, elapsed, 2*timeout, "stalled provider held the call for %s", elapsed)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
