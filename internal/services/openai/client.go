package openai

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"inquest/internal/analysis"
	"inquest/internal/logging"
	"inquest/internal/services"
)

const (
	defaultTimeout      = 300 * time.Second
	defaultMaxAttempts  = 3
	defaultBackoffBase  = 2 * time.Second
	defaultBackoffMax   = 10 * time.Second
	commentsTemperature = 0.2
	streamTerminator    = "[DONE]"
	maxScanLineSize     = 1 << 20
)

// Summarizer generates streaming summaries of extracted video content.
type Summarizer interface {
	SummarizeTranscript(ctx context.Context, transcript analysis.TranscriptData, instruction string, cfg analysis.PipelineConfig, emit func(string)) error
	SummarizeComments(ctx context.Context, comments analysis.CommentsData, cfg analysis.PipelineConfig, emit func(string)) error
}

// Config captures the runtime settings required to talk to the chat API.
// Model and temperature travel with each call so per-run pipeline settings
// apply without rebuilding the client.
type Config struct {
	APIKey         string
	BaseURL        string
	TimeoutSeconds int
}

// Client wraps the OpenAI chat completions API in streaming mode.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	logger      *slog.Logger
	maxAttempts int
	backoffBase time.Duration
	backoffMax  time.Duration
	sleeper     func(time.Duration)
}

var _ Summarizer = (*Client)(nil)

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger used for request metrics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRetryMaxAttempts sets how many times a request is attempted.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(base, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.backoffBase = base
		c.backoffMax = maxDelay
	}
}

// WithSleeper replaces the retry backoff sleep, letting tests avoid delays.
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		if sleeper != nil {
			c.sleeper = sleeper
		}
	}
}

// New creates a chat completions client.
func New(cfg Config, opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "openai", "new client", "api key required, set OPENAI_API_KEY or openai.api_key", nil)
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		logger:      logging.NewNop(),
		maxAttempts: defaultMaxAttempts,
		backoffBase: defaultBackoffBase,
		backoffMax:  defaultBackoffMax,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// SummarizeTranscript streams a transcript summary, calling emit once per
// content fragment in arrival order. An unavailable or empty transcript
// short-circuits with a fixed notice instead of calling the API.
func (c *Client) SummarizeTranscript(ctx context.Context, transcript analysis.TranscriptData, instruction string, cfg analysis.PipelineConfig, emit func(string)) error {
	if emit == nil {
		return services.Wrap(services.ErrValidation, "openai", "summarize transcript", "emit callback required", nil)
	}
	if !transcript.Available || strings.TrimSpace(transcript.Text) == "" {
		c.logger.Warn("no transcript available for summarization")
		emit(NoTranscriptNotice)
		return nil
	}
	if strings.TrimSpace(instruction) == "" {
		instruction = SummarizeForReflection
	}

	payload := chatRequest{
		Model: cfg.OpenAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: TranscriptPrompt(transcript.Text, instruction)},
		},
		Temperature:   cfg.OpenAITemperature,
		Stream:        true,
		StreamOptions: &streamOptions{IncludeUsage: true},
	}
	if err := c.streamCompletion(ctx, "summarize transcript", payload, emit); err != nil {
		return services.Wrap(services.ErrAPI, "openai", "summarize transcript", "chat completion failed", err)
	}
	return nil
}

// SummarizeComments selects comments within the configured caps, renders
// them as a comment/replies/like_count table, and streams a prioritised
// bullet summary. Comment summaries always run at a low fixed temperature.
func (c *Client) SummarizeComments(ctx context.Context, comments analysis.CommentsData, cfg analysis.PipelineConfig, emit func(string)) error {
	if emit == nil {
		return services.Wrap(services.ErrValidation, "openai", "summarize comments", "emit callback required", nil)
	}
	selected := SelectComments(comments.Comments, cfg.MaxComments, cfg.MaxCommentWords)
	if len(selected) == 0 {
		return services.Wrap(services.ErrValidation, "openai", "summarize comments", "no comments within selection limits", nil)
	}
	c.logger.Debug("comments selected for summarization",
		logging.Int("selected", len(selected)),
		logging.Int("collected", len(comments.Comments)))

	payload := chatRequest{
		Model: cfg.OpenAIModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: CommentsPrompt(selected)},
		},
		Temperature:   commentsTemperature,
		Stream:        true,
		StreamOptions: &streamOptions{IncludeUsage: true},
	}
	if err := c.streamCompletion(ctx, "summarize comments", payload, emit); err != nil {
		return services.Wrap(services.ErrAPI, "openai", "summarize comments", "chat completion failed", err)
	}
	return nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type streamOptions struct {
	IncludeUsage bool `json:"include_usage"`
}

type chatRequest struct {
	Model         string         `json:"model"`
	Messages      []chatMessage  `json:"messages"`
	Temperature   float64        `json:"temperature"`
	Stream        bool           `json:"stream"`
	StreamOptions *streamOptions `json:"stream_options,omitempty"`
}

type chatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type chatStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
			Refusal string `json:"refusal"`
		} `json:"delta"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage *chatUsage `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type httpStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	snippet := summarizePayloadSnippet(e.Body)
	return fmt.Sprintf("chat request: http %d: %s", e.StatusCode, snippet)
}

type emptyContentError struct {
	Op           string
	FinishReason string
	Refusal      string
	Snippet      string
}

func (e *emptyContentError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: empty content", e.Op)
	if e.FinishReason != "" {
		fmt.Fprintf(&b, " finish_reason=%s", e.FinishReason)
	}
	if e.Refusal != "" {
		fmt.Fprintf(&b, " refusal=%q", e.Refusal)
	}
	fmt.Fprintf(&b, " response_snippet=%s", e.Snippet)
	return b.String()
}

// streamCompletion runs the retry loop around single streaming attempts.
// Once a fragment has been emitted the stream cannot be restarted, so any
// later failure is returned as-is instead of retried.
func (c *Client) streamCompletion(ctx context.Context, op string, payload chatRequest, emit func(string)) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, retryDelay(lastErr, attempt, c.backoffBase, c.backoffMax)); err != nil {
				return err
			}
		}
		emitted, err := c.streamOnce(ctx, op, payload, emit)
		if err == nil {
			return nil
		}
		lastErr = err
		if emitted {
			return err
		}
		if ctx.Err() != nil || !retryable(err) {
			return err
		}
	}
	return fmt.Errorf("%s: failed after %d attempts: %w", op, c.maxAttempts, lastErr)
}

func (c *Client) streamOnce(ctx context.Context, op string, payload chatRequest, emit func(string)) (bool, error) {
	endpoint, err := url.JoinPath(c.baseURL, "chat/completions")
	if err != nil {
		return false, fmt.Errorf("build endpoint: %w", err)
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("execute request (latency=%v): %w", time.Since(requestStart), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return false, fmt.Errorf("request failed (latency=%v): %w", time.Since(requestStart), &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		})
	}

	var (
		emitted      bool
		finishReason string
		refusal      string
		firstPayload string
		outputChars  int
		usage        *chatUsage
	)

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScanLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		if data == "" {
			continue
		}
		if data == streamTerminator {
			break
		}
		if firstPayload == "" {
			firstPayload = data
		}

		var chunk chatStreamChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			return emitted, fmt.Errorf("decode stream chunk: %w", err)
		}
		if chunk.Error != nil && chunk.Error.Message != "" {
			return emitted, fmt.Errorf("%s: api error: %s", op, chunk.Error.Message)
		}
		if chunk.Usage != nil {
			usage = chunk.Usage
		}
		if len(chunk.Choices) == 0 {
			continue
		}
		choice := chunk.Choices[0]
		if choice.FinishReason != "" {
			finishReason = choice.FinishReason
		}
		if choice.Delta.Refusal != "" {
			refusal = choice.Delta.Refusal
		}
		if choice.Delta.Content != "" {
			emitted = true
			outputChars += len(choice.Delta.Content)
			emit(choice.Delta.Content)
		}
	}
	if err := scanner.Err(); err != nil {
		return emitted, fmt.Errorf("read stream: %w", err)
	}
	if !emitted {
		return false, &emptyContentError{
			Op:           op,
			FinishReason: finishReason,
			Refusal:      refusal,
			Snippet:      summarizePayloadSnippet(firstPayload),
		}
	}

	attrs := []logging.Attr{
		logging.String("operation", op),
		logging.Duration("latency", time.Since(requestStart)),
		logging.Int("output_chars", outputChars),
	}
	if usage != nil {
		attrs = append(attrs,
			logging.Int("prompt_tokens", usage.PromptTokens),
			logging.Int("completion_tokens", usage.CompletionTokens),
			logging.Int("total_tokens", usage.TotalTokens))
	}
	c.logger.Debug("chat completion stream finished", logging.Args(attrs...)...)
	return true, nil
}

func retryable(err error) bool {
	var empty *emptyContentError
	if errors.As(err, &empty) {
		return true
	}
	var status *httpStatusError
	if errors.As(err, &status) {
		switch {
		case status.StatusCode == http.StatusRequestTimeout:
			return true
		case status.StatusCode == http.StatusTooManyRequests:
			return true
		case status.StatusCode >= 500:
			return true
		}
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

// retryDelay prefers the server-provided Retry-After interval, capped at the
// configured maximum, over the exponential schedule.
func retryDelay(err error, attempt int, base, maxDelay time.Duration) time.Duration {
	var status *httpStatusError
	if errors.As(err, &status) && status.RetryAfter > 0 {
		return capDelay(status.RetryAfter, maxDelay)
	}
	return backoffDelay(attempt, base, maxDelay)
}

func backoffDelay(attempt int, base, maxDelay time.Duration) time.Duration {
	delay := base
	for i := 2; i < attempt; i++ {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}
	return capDelay(delay, maxDelay)
}

func capDelay(delay, maxDelay time.Duration) time.Duration {
	if maxDelay > 0 && delay > maxDelay {
		return maxDelay
	}
	return delay
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	if c.sleeper != nil {
		c.sleeper(d)
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds <= 0 {
			return 0
		}
		return time.Duration(seconds) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if wait := time.Until(at); wait > 0 {
			return wait
		}
	}
	return 0
}

// summarizePayloadSnippet compresses a payload into a single log-friendly
// line capped at 160 runes.
func summarizePayloadSnippet(payload string) string {
	fields := strings.Fields(payload)
	if len(fields) == 0 {
		return "<empty>"
	}
	joined := strings.Join(fields, " ")
	runes := []rune(joined)
	if len(runes) > 160 {
		return string(runes[:160]) + "..."
	}
	return joined
}
