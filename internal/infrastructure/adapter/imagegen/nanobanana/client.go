// Package nanobanana talks to the nano-banana drawing API: a task is submitted,
// then its result endpoint is polled until the task leaves the running state.
package nanobanana

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	errs "github.com/amirhossein-jamali/polaroid-studio/internal/domain/error"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/core"
	"github.com/amirhossein-jamali/polaroid-studio/internal/domain/port/gateway"
)

const (
	submitPath = "/v1/draw/nano-banana"
	resultPath = "/v1/draw/result"

	// pollingOnlyWebhook asks the vendor not to call back
	pollingOnlyWebhook = "-1"

	maxResponseBytes = 4 << 20
)

// Defaults used when options leave a field empty
const (
	DefaultBaseURL         = "https://api.grsai.com"
	DefaultModel           = "nano-banana-fast"
	DefaultPollInterval    = 2 * time.Second
	DefaultMaxPollAttempts = 30
	DefaultRequestTimeout  = 30 * time.Second
)

// Options configures the client
type Options struct {
	BaseURL         string
	APIKey          string
	Model           string
	PollInterval    time.Duration
	MaxPollAttempts int
	RequestTimeout  time.Duration
	HTTPClient      *http.Client
}

// Client implements gateway.ImageGenerator against the nano-banana API
type Client struct {
	baseURL         string
	apiKey          string
	model           string
	pollInterval    time.Duration
	maxPollAttempts int
	httpClient      *http.Client
	logger          core.Logger
}

var _ gateway.ImageGenerator = (*Client)(nil)

type submitRequest struct {
	Model        string   `json:"model"`
	Prompt       string   `json:"prompt"`
	WebHook      string   `json:"webHook"`
	ShutProgress bool     `json:"shutProgress"`
	URLs         []string `json:"urls,omitempty"`
}

type resultRequest struct {
	ID string `json:"id"`
}

// NewClient creates a vendor client
func NewClient(opts Options, logger core.Logger) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.MaxPollAttempts <= 0 {
		opts.MaxPollAttempts = DefaultMaxPollAttempts
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: opts.RequestTimeout}
	}

	return &Client{
		baseURL:         strings.TrimRight(opts.BaseURL, "/"),
		apiKey:          opts.APIKey,
		model:           opts.Model,
		pollInterval:    opts.PollInterval,
		maxPollAttempts: opts.MaxPollAttempts,
		httpClient:      opts.HTTPClient,
		logger:          logger,
	}
}

// Generate submits a task and polls it. When polling runs out the task is reported as running.
func (c *Client) Generate(ctx context.Context, req gateway.GenerationRequest) (*gateway.GenerationResult, error) {
	body, err := c.post(ctx, submitPath, submitRequest{
		Model:        c.model,
		Prompt:       req.Prompt,
		WebHook:      pollingOnlyWebhook,
		ShutProgress: false,
		URLs:         req.ReferenceImages,
	})
	if err != nil {
		return nil, err
	}

	submitted, err := parseResult(body)
	if err != nil {
		return nil, fmt.Errorf("create generation task: %w", err)
	}
	if submitted.TaskID == "" {
		return nil, fmt.Errorf("%w: create generation task: missing task id", errs.ErrVendorUnavailable)
	}

	c.logger.Info("Generation task submitted", map[string]any{
		"task_id":          submitted.TaskID,
		"reference_images": len(req.ReferenceImages),
	})

	if submitted.Status != gateway.VendorStatusRunning && submitted.Status != "" {
		return submitted, nil
	}

	return c.poll(ctx, submitted.TaskID)
}

func (c *Client) poll(ctx context.Context, taskID string) (*gateway.GenerationResult, error) {
	last := &gateway.GenerationResult{TaskID: taskID, Status: gateway.VendorStatusRunning}

	for attempt := 1; attempt <= c.maxPollAttempts; attempt++ {
		result, err := c.Fetch(ctx, taskID)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.logger.Warn("Polling generation task failed", map[string]any{
				"task_id": taskID,
				"attempt": attempt,
				"error":   err.Error(),
			})
		case result.Status != gateway.VendorStatusRunning && result.Status != "":
			return result, nil
		default:
			last = result
		}

		if attempt == c.maxPollAttempts {
			break
		}

		timer := time.NewTimer(c.pollInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	c.logger.Warn("Generation task still running after polling", map[string]any{
		"task_id":  taskID,
		"attempts": c.maxPollAttempts,
	})
	last.Status = gateway.VendorStatusRunning
	return last, nil
}

// Fetch reads the current state of a task once
func (c *Client) Fetch(ctx context.Context, taskID string) (*gateway.GenerationResult, error) {
	body, err := c.post(ctx, resultPath, resultRequest{ID: taskID})
	if err != nil {
		return nil, err
	}

	result, err := parseResult(body)
	if err != nil {
		return nil, fmt.Errorf("fetch task %s: %w", taskID, err)
	}
	if result.TaskID == "" {
		result.TaskID = taskID
	}
	return result, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrVendorUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", errs.ErrVendorUnavailable, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s returned %d", errs.ErrVendorUnavailable, path, resp.StatusCode)
	}
	return body, nil
}

// parseResult maps a vendor envelope {code, msg, data{...}} to a generation result
func parseResult(body []byte) (*gateway.GenerationResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: malformed response", errs.ErrVendorUnavailable)
	}

	envelope := gjson.ParseBytes(body)
	if code := envelope.Get("code").Int(); code != 0 {
		return nil, fmt.Errorf("%w: code %d: %s", errs.ErrVendorUnavailable, code, envelope.Get("msg").String())
	}

	data := envelope.Get("data")
	result := &gateway.GenerationResult{
		TaskID:   data.Get("id").String(),
		Status:   gateway.VendorStatus(data.Get("status").String()),
		ImageURL: data.Get("results.0.url").String(),
		Content:  data.Get("results.0.content").String(),
		Raw:      body,
	}

	if result.Status == gateway.VendorStatusFailed {
		result.FailureReason = data.Get("failure_reason").String()
		if result.FailureReason == "" {
			result.FailureReason = data.Get("error").String()
		}
	}

	switch result.Status {
	case gateway.VendorStatusRunning, gateway.VendorStatusSucceeded, gateway.VendorStatusFailed, "":
	default:
		return nil, fmt.Errorf("%w: unexpected status %q", errs.ErrVendorUnavailable, result.Status)
	}
	return result, nil
}
