package nanobanana

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

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/polaroid-studio/internal/infrastructure/adapter/logger"
)

// fakeVendor serves the submit endpoint and answers result polls from a script
type fakeVendor struct {
	t         *testing.T
	submit    string
	polls     []string
	pollCount atomic.Int32
	lastBody  map[string]any
}

func (f *fakeVendor) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(submitPath, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(f.t, http.MethodPost, r.Method)
		assert.Equal(f.t, "Bearer secret-key", r.Header.Get("Authorization"))
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&f.lastBody))
		_, _ = w.Write([]byte(f.submit))
	})
	mux.HandleFunc(resultPath, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(f.t, "task-1", body["id"])

		n := int(f.pollCount.Add(1)) - 1
		if n >= len(f.polls) {
			n = len(f.polls) - 1
		}
		if f.polls[n] == "500" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(f.polls[n]))
	})
	return mux
}

func newTestClient(t *testing.T, vendor *fakeVendor, attempts int) *Client {
	vendor.t = t
	server := httptest.NewServer(vendor.handler())
	t.Cleanup(server.Close)

	return NewClient(Options{
		BaseURL:         server.URL,
		APIKey:          "secret-key",
		PollInterval:    time.Millisecond,
		MaxPollAttempts: attempts,
	}, logger.NewNoopLogger())
}

const (
	submitted = `{"code":0,"msg":"ok","data":{"id":"task-1","status":"running","progress":0}}`
	running   = `{"code":0,"msg":"ok","data":{"id":"task-1","status":"running","progress":40}}`
	succeeded = `{"code":0,"msg":"ok","data":{"id":"task-1","status":"succeeded","progress":100,"results":[{"url":"https://cdn.example.com/out.png","content":"done"}]}}`
	failed    = `{"code":0,"msg":"ok","data":{"id":"task-1","status":"failed","failure_reason":"","error":"nsfw content"}}`
)

func TestClient_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("should submit then poll until success", func(t *testing.T) {
		vendor := &fakeVendor{submit: submitted, polls: []string{running, succeeded}}
		client := newTestClient(t, vendor, 5)

		result, err := client.Generate(ctx, gateway.GenerationRequest{
			Prompt:          "a cat",
			ReferenceImages: []string{"data:image/png;base64,aGVsbG8="},
		})

		require.NoError(t, err)
		assert.Equal(t, gateway.VendorStatusSucceeded, result.Status)
		assert.Equal(t, "task-1", result.TaskID)
		assert.Equal(t, "https://cdn.example.com/out.png", result.ImageURL)
		assert.Equal(t, "done", result.Content)
		assert.JSONEq(t, succeeded, string(result.Raw))

		assert.Equal(t, DefaultModel, vendor.lastBody["model"])
		assert.Equal(t, "a cat", vendor.lastBody["prompt"])
		assert.Equal(t, "-1", vendor.lastBody["webHook"])
		assert.Equal(t, false, vendor.lastBody["shutProgress"])
		assert.Equal(t, []any{"data:image/png;base64,aGVsbG8="}, vendor.lastBody["urls"])
	})

	t.Run("should omit urls without reference images", func(t *testing.T) {
		vendor := &fakeVendor{submit: submitted, polls: []string{succeeded}}
		client := newTestClient(t, vendor, 5)

		_, err := client.Generate(ctx, gateway.GenerationRequest{Prompt: "a cat"})

		require.NoError(t, err)
		_, present := vendor.lastBody["urls"]
		assert.False(t, present)
	})

	t.Run("should fall back to the error field for failure reasons", func(t *testing.T) {
		vendor := &fakeVendor{submit: submitted, polls: []string{failed}}
		client := newTestClient(t, vendor, 5)

		result, err := client.Generate(ctx, gateway.GenerationRequest{Prompt: "a cat"})

		require.NoError(t, err)
		assert.Equal(t, gateway.VendorStatusFailed, result.Status)
		assert.Equal(t, "nsfw content", result.FailureReason)
	})

	t.Run("should retry transient poll errors", func(t *testing.T) {
		vendor := &fakeVendor{submit: submitted, polls: []string{"500", "not json", succeeded}}
		client := newTestClient(t, vendor, 5)

		result, err := client.Generate(ctx, gateway.GenerationRequest{Prompt: "a cat"})

		require.NoError(t, err)
		assert.Equal(t, gateway.VendorStatusSucceeded, result.Status)
		assert.Equal(t, int32(3), vendor.pollCount.Load())
	})

	t.Run("should report running when polling is exhausted", func(t *testing.T) {
		vendor := &fakeVendor{submit: submitted, polls: []string{running}}
		client := newTestClient(t, vendor, 3)

		result, err := client.Generate(ctx, gateway.GenerationRequest{Prompt: "a cat"})

		require.NoError(t, err)
		assert.Equal(t, gateway.VendorStatusRunning, result.Status)
		assert.Equal(t, "task-1", result.TaskID)
		assert.Equal(t, int32(3), vendor.pollCount.Load())
	})

	t.Run("should reject a submit without task id", func(t *testing.T) {
		vendor := &fakeVendor{submit: `{"code":0,"msg":"ok","data":{}}`, polls: []string{running}}
		client := newTestClient(t, vendor, 3)

		_, err := client.Generate(ctx, gateway.GenerationRequest{Prompt: "a cat"})

		assert.ErrorIs(t, err, errs.ErrVendorUnavailable)
	})

	t.Run("should reject vendor error codes", func(t *testing.T) {
		vendor := &fakeVendor{submit: `{"code":-1,"msg":"apikey invalid"}`, polls: []string{running}}
		client := newTestClient(t, vendor, 3)

		_, err := client.Generate(ctx, gateway.GenerationRequest{Prompt: "a cat"})

		assert.ErrorIs(t, err, errs.ErrVendorUnavailable)
		assert.Contains(t, err.Error(), "apikey invalid")
	})

	t.Run("should stop polling when the context ends", func(t *testing.T) {
		vendor := &fakeVendor{submit: submitted, polls: []string{running}}
		vendor.t = t
		server := httptest.NewServer(vendor.handler())
		t.Cleanup(server.Close)
		client := NewClient(Options{
			BaseURL:         server.URL,
			APIKey:          "secret-key",
			PollInterval:    time.Hour,
			MaxPollAttempts: 5,
		}, logger.NewNoopLogger())

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.Generate(ctx, gateway.GenerationRequest{Prompt: "a cat"})

		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestClient_Fetch(t *testing.T) {
	vendor := &fakeVendor{submit: submitted, polls: []string{succeeded}}
	client := newTestClient(t, vendor, 1)

	result, err := client.Fetch(context.Background(), "task-1")

	require.NoError(t, err)
	assert.Equal(t, gateway.VendorStatusSucceeded, result.Status)
	assert.Equal(t, "https://cdn.example.com/out.png", result.ImageURL)
}
