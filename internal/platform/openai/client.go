package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/attribute"

	"github.com/yungbote/ecotrack-backend/internal/observability"
	"github.com/yungbote/ecotrack-backend/internal/pkg/httpx"
	"github.com/yungbote/ecotrack-backend/internal/platform/envutil"
	"github.com/yungbote/ecotrack-backend/internal/platform/logger"
)

const chatCompletionsPath = "/v1/chat/completions"

// ErrEmptyCompletion is returned when the model answers with no content.
var ErrEmptyCompletion = errors.New("openai: empty completion")

// Options tune a single generation call. A nil Temperature uses the client default.
type Options struct {
	Temperature *float64
	MaxTokens   int
}

// TextGenerator is the text-generation capability: a system instruction and a
// user prompt in, a JSON object (as text) out.
type TextGenerator interface {
	GenerateJSONObject(ctx context.Context, system, user string, opts Options) (string, error)
}

// Client is the OpenAI chat-completions client used by the advisory services.
type Client interface {
	TextGenerator
	Model() string
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	Timeout     time.Duration
	MaxRetries  int
}

// ConfigFromEnv reads the OPENAI_* variables.
func ConfigFromEnv() Config {
	return Config{
		APIKey:      envutil.String("OPENAI_API_KEY", ""),
		BaseURL:     envutil.String("OPENAI_BASE_URL", "https://api.openai.com"),
		Model:       envutil.String("OPENAI_MODEL", "gpt-4o"),
		Temperature: envutil.Float("OPENAI_TEMPERATURE", 0.7),
		Timeout:     envutil.Seconds("OPENAI_TIMEOUT_SECONDS", 30*time.Second),
		MaxRetries:  envutil.Int("OPENAI_MAX_RETRIES", 2),
	}
}

type client struct {
	log         *logger.Logger
	baseURL     string
	apiKey      string
	model       string
	temperature float64
	httpClient  *http.Client
	timeout     time.Duration
	maxRetries  int
	backoff     time.Duration

	// Models that rejected the temperature parameter; omitted thereafter.
	noTempMu sync.RWMutex
	noTemp   map[string]bool
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &client{
		log:         log.With("service", "OpenAIClient"),
		baseURL:     baseURL,
		apiKey:      apiKey,
		model:       model,
		temperature: cfg.Temperature,
		httpClient:  &http.Client{Timeout: timeout},
		timeout:     timeout,
		maxRetries:  maxRetries,
		backoff:     time.Second,
		noTemp:      map[string]bool{},
	}, nil
}

func (c *client) Model() string { return c.model }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// GenerateJSONObject bounds the whole call, retries and temperature fallback
// included, by the configured timeout.
func (c *client) GenerateJSONObject(ctx context.Context, system, user string, opts Options) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ctx, span := observability.Tracer("openai").Start(ctx, "openai.chat_completions")
	span.SetAttributes(attribute.String("llm.model", c.model))
	defer span.End()

	req := &chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
		MaxTokens:      opts.MaxTokens,
	}
	if !c.modelIsNoTemp(c.model) {
		t := c.temperature
		if opts.Temperature != nil {
			t = *opts.Temperature
		}
		req.Temperature = &t
	}

	var resp chatResponse
	if err := c.doWithTempFallback(ctx, req, &resp); err != nil {
		span.RecordError(err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return "", fmt.Errorf("model refused: %s", msg.Refusal)
	}
	if strings.TrimSpace(msg.Content) == "" {
		return "", ErrEmptyCompletion
	}
	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.PromptTokens),
		attribute.Int("llm.output_tokens", resp.Usage.CompletionTokens),
	)
	return msg.Content, nil
}

// doWithTempFallback retries exactly once without temperature if the model rejects it.
func (c *client) doWithTempFallback(ctx context.Context, req *chatRequest, out *chatResponse) error {
	err := c.do(ctx, req, out)
	if err == nil || req.Temperature == nil || !isUnsupportedTemperatureParam(err) {
		return err
	}
	c.noteNoTempModel(req.Model)
	req.Temperature = nil
	return c.do(ctx, req, out)
}

func (c *client) doOnce(ctx context.Context, body any) (*http.Response, []byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+chatCompletionsPath, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return resp, nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, raw, &httpx.StatusError{Service: "openai", StatusCode: resp.StatusCode, Body: string(raw)}
	}
	return resp, raw, nil
}

func (c *client) do(ctx context.Context, req *chatRequest, out *chatResponse) error {
	backoff := c.backoff
	start := time.Now()

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		resp, raw, err := c.doOnce(ctx, req)
		if err == nil {
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				c.observe(req.Model, "decode_error", start, 0, 0)
				return fmt.Errorf("openai decode error: %w", uErr)
			}
			c.observe(req.Model, "ok", start, out.Usage.PromptTokens, out.Usage.CompletionTokens)
			return nil
		}

		if !httpx.IsRetryableError(err) || attempt == c.maxRetries {
			c.observe(req.Model, statusLabel(err), start, 0, 0)
			return err
		}

		sleepFor := httpx.JitterSleep(httpx.RetryAfterDuration(resp, backoff, 10*time.Second))
		c.log.Warn("OpenAI request retrying",
			"attempt", attempt+1,
			"max_retries", c.maxRetries,
			"sleep", sleepFor.String(),
			"error", err.Error(),
		)
		if sErr := httpx.Sleep(ctx, sleepFor); sErr != nil {
			return sErr
		}
		backoff *= 2
	}
	return fmt.Errorf("unreachable retry loop")
}

func (c *client) observe(model, status string, start time.Time, in, out int) {
	if m := observability.Current(); m != nil {
		m.ObserveLLMRequest(model, status, time.Since(start), in, out)
	}
}

func statusLabel(err error) string {
	var sc httpx.HTTPStatusCoder
	if errors.As(err, &sc) {
		return fmt.Sprint(sc.HTTPStatusCode())
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return "timeout"
	}
	return "error"
}

func (c *client) modelIsNoTemp(model string) bool {
	c.noTempMu.RLock()
	defer c.noTempMu.RUnlock()
	return c.noTemp[strings.ToLower(model)]
}

func (c *client) noteNoTempModel(model string) {
	c.noTempMu.Lock()
	c.noTemp[strings.ToLower(model)] = true
	c.noTempMu.Unlock()
	c.log.Warn("model rejected temperature; omitting it from now on", "model", model)
}

func isUnsupportedTemperatureParam(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	if !strings.Contains(msg, "temperature") {
		return false
	}
	for _, marker := range []string{
		"unsupported parameter",
		"unknown parameter",
		"unrecognized parameter",
		"not supported",
		"does not support",
		"only the default",
		"unsupported_value",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
