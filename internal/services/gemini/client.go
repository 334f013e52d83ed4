package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"google.golang.org/genai"

	"inquest/internal/analysis"
	"inquest/internal/logging"
	"inquest/internal/services"
)

const (
	defaultTimeout         = 180 * time.Second
	defaultMaxOutputTokens = 8192
	defaultMaxAttempts     = 3
	defaultBackoffBase     = 2 * time.Second
	defaultBackoffMax      = 10 * time.Second
	mimeTypeJSON           = "application/json"
)

// Synthesizer compresses the per-stage summaries into a final digest.
type Synthesizer interface {
	Compress(ctx context.Context, transcriptSummary, commentsSummary string, cfg analysis.PipelineConfig) (string, error)
}

// Evaluator assesses the summaries against the critical thinking standards.
type Evaluator interface {
	EvaluateStandards(ctx context.Context, transcriptSummary, commentsSummary string, cfg analysis.PipelineConfig) ([]analysis.CriticalThinkingStandard, error)
}

// Config captures the runtime settings for the GenAI backend. Model and
// temperature travel with each call so per-run pipeline settings apply
// without rebuilding the client.
type Config struct {
	APIKey          string
	BaseURL         string
	MaxOutputTokens int
	TimeoutSeconds  int
}

// Client wraps the Google GenAI API for synthesis and evaluation calls.
type Client struct {
	api             *genai.Client
	httpClient      *http.Client
	logger          *slog.Logger
	maxOutputTokens int
	maxAttempts     int
	backoffBase     time.Duration
	backoffMax      time.Duration
	sleeper         func(time.Duration)
}

var (
	_ Synthesizer = (*Client)(nil)
	_ Evaluator   = (*Client)(nil)
)

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client handed to the GenAI SDK.
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

// New creates a GenAI client against the Gemini API backend.
func New(ctx context.Context, cfg Config, opts ...Option) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, services.Wrap(services.ErrConfiguration, "gemini", "new client", "api key required, set GEMINI_API_KEY or gemini.api_key", nil)
	}
	timeout := defaultTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	maxTokens := defaultMaxOutputTokens
	if cfg.MaxOutputTokens > 0 {
		maxTokens = cfg.MaxOutputTokens
	}
	client := &Client{
		httpClient:      &http.Client{Timeout: timeout},
		logger:          logging.NewNop(),
		maxOutputTokens: maxTokens,
		maxAttempts:     defaultMaxAttempts,
		backoffBase:     defaultBackoffBase,
		backoffMax:      defaultBackoffMax,
	}
	for _, opt := range opts {
		opt(client)
	}

	genaiCfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: client.httpClient,
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		genaiCfg.HTTPOptions.BaseURL = base
	}
	api, err := genai.NewClient(ctx, genaiCfg)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "gemini", "new client", "create genai client", err)
	}
	client.api = api
	return client, nil
}

// Compress synthesizes the transcript and comments summaries into one
// compact digest using the compression prompt.
func (c *Client) Compress(ctx context.Context, transcriptSummary, commentsSummary string, cfg analysis.PipelineConfig) (string, error) {
	prompt := CompressionPrompt(transcriptSummary, commentsSummary)
	c.logger.Debug("compressing stage summaries",
		logging.String("model", cfg.GeminiModel),
		logging.Int("prompt_chars", len(prompt)),
		logging.Int("input_words", len(strings.Fields(transcriptSummary))+len(strings.Fields(commentsSummary))))

	text, err := c.GenerateText(ctx, cfg.GeminiModel, cfg.GeminiTemperature, prompt)
	if err != nil {
		return "", services.Wrap(services.ErrAPI, "gemini", "compress content", "content compression failed", err)
	}
	return text, nil
}

// EvaluateStandards runs the critical thinking assessment over the two
// summaries and returns the decoded standards. Question selection happens
// downstream so callers can rank against their own limits.
func (c *Client) EvaluateStandards(ctx context.Context, transcriptSummary, commentsSummary string, cfg analysis.PipelineConfig) ([]analysis.CriticalThinkingStandard, error) {
	prompt := EvaluationPrompt(transcriptSummary, commentsSummary)
	c.logger.Debug("evaluating critical thinking standards",
		logging.String("model", cfg.GeminiModel),
		logging.Int("prompt_chars", len(prompt)))

	var envelope standardsEnvelope
	if err := c.GenerateJSON(ctx, cfg.GeminiModel, cfg.GeminiTemperature, prompt, standardsSchema(), &envelope); err != nil {
		return nil, services.Wrap(services.ErrAPI, "gemini", "evaluate standards", "critical thinking evaluation failed", err)
	}
	standards, err := envelope.toStandards()
	if err != nil {
		return nil, services.Wrap(services.ErrAPI, "gemini", "evaluate standards", "critical thinking evaluation failed", err)
	}
	c.logger.Debug("critical thinking evaluation finished",
		logging.Int("standards", len(standards)))
	return standards, nil
}

// GenerateText sends prompt as a single user turn and returns the model's
// text response.
func (c *Client) GenerateText(ctx context.Context, model string, temperature float64, prompt string) (string, error) {
	return c.generate(ctx, "generate text", model, prompt, c.generationConfig(temperature), nil)
}

// GenerateJSON requests a schema-constrained JSON response and decodes it
// into target. Attempts whose payload cannot be parsed as JSON are retried
// like transport failures; target is only written once a payload parses.
func (c *Client) GenerateJSON(ctx context.Context, model string, temperature float64, prompt string, schema *genai.Schema, target any) error {
	genCfg := c.generationConfig(temperature)
	genCfg.ResponseMIMEType = mimeTypeJSON
	genCfg.ResponseSchema = schema

	text, err := c.generate(ctx, "generate json", model, prompt, genCfg, func(candidate string) error {
		var probe json.RawMessage
		return DecodeJSON(candidate, &probe)
	})
	if err != nil {
		return err
	}
	return DecodeJSON(text, target)
}

func (c *Client) generationConfig(temperature float64) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(temperature)),
		MaxOutputTokens: int32(c.maxOutputTokens),
	}
}

type emptyResponseError struct {
	Op           string
	FinishReason string
}

func (e *emptyResponseError) Error() string {
	if e.FinishReason != "" {
		return fmt.Sprintf("%s: empty response finish_reason=%s", e.Op, e.FinishReason)
	}
	return fmt.Sprintf("%s: empty response", e.Op)
}

// generate runs the retry loop around single GenerateContent calls. Empty
// responses and accept rejections count as failed attempts; an accepted
// response is returned verbatim.
func (c *Client) generate(ctx context.Context, op, model, prompt string, genCfg *genai.GenerateContentConfig, accept func(string) error) (string, error) {
	contents := []*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}}

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, backoffDelay(attempt, c.backoffBase, c.backoffMax)); err != nil {
				return "", err
			}
		}

		requestStart := time.Now()
		resp, err := c.api.Models.GenerateContent(ctx, model, contents, genCfg)
		latency := time.Since(requestStart)
		if err != nil {
			lastErr = fmt.Errorf("%s: generate content (latency=%v): %w", op, latency, err)
			var apiErr *genai.APIError
			if errors.As(err, &apiErr) && (apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
				return "", services.Wrap(services.ErrConfiguration, "gemini", op, "api key rejected, check GEMINI_API_KEY or gemini.api_key", err)
			}
			if ctx.Err() != nil || !retryable(err) {
				return "", lastErr
			}
			continue
		}

		text := ""
		if resp != nil {
			text = resp.Text()
		}
		if strings.TrimSpace(text) == "" {
			lastErr = &emptyResponseError{Op: op, FinishReason: candidateFinishReason(resp)}
			continue
		}
		if accept != nil {
			if acceptErr := accept(text); acceptErr != nil {
				lastErr = fmt.Errorf("%s: decode response: %w", op, acceptErr)
				continue
			}
		}

		attrs := []logging.Attr{
			logging.String("operation", op),
			logging.String("model", model),
			logging.Duration("latency", latency),
			logging.Int("output_chars", len(text)),
		}
		if resp.UsageMetadata != nil {
			attrs = append(attrs,
				logging.Int("prompt_tokens", int(resp.UsageMetadata.PromptTokenCount)),
				logging.Int("output_tokens", int(resp.UsageMetadata.CandidatesTokenCount)),
				logging.Int("total_tokens", int(resp.UsageMetadata.TotalTokenCount)))
		}
		c.logger.Debug("generate content finished", logging.Args(attrs...)...)
		return text, nil
	}
	return "", fmt.Errorf("%s: failed after %d attempts: %w", op, c.maxAttempts, lastErr)
}

func candidateFinishReason(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	return string(resp.Candidates[0].FinishReason)
}

func retryable(err error) bool {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == http.StatusRequestTimeout:
			return true
		case apiErr.Code == http.StatusTooManyRequests:
			return true
		case apiErr.Code >= 500:
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
