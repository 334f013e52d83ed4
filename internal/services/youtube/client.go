package youtube

import (
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

	"golang.org/x/time/rate"

	"inquest/internal/analysis"
	"inquest/internal/logging"
	"inquest/internal/services"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxAttempts = 3
	defaultBackoffBase = 2 * time.Second
	defaultBackoffMax  = 10 * time.Second
	defaultRate        = 10
	maxPageSize        = 100
)

// Extractor defines the Data API operations used by the pipeline.
type Extractor interface {
	FetchMetadata(ctx context.Context, videoID string) (*analysis.VideoMetadata, error)
	FetchComments(ctx context.Context, videoID string, maxComments, maxWords int) (analysis.CommentsData, error)
}

// Client provides access to the YouTube Data API v3.
type Client struct {
	apiKey      string
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
	maxAttempts int
	backoffBase time.Duration
	backoffMax  time.Duration
	sleeper     func(time.Duration)
}

var _ Extractor = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithLogger attaches a logger used for partial-failure warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestsPerSecond adjusts the API request rate limit.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
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

// WithSleeper replaces the retry backoff sleep, letting tests avoid delays.
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		if sleeper != nil {
			c.sleeper = sleeper
		}
	}
}

// New creates a YouTube Data API client.
func New(apiKey, baseURL string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("youtube api key required")
	}
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("youtube base url required")
	}
	client := &Client{
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: defaultTimeout},
		limiter:     rate.NewLimiter(rate.Limit(defaultRate), 1),
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

type videoSnippet struct {
	Title        string `json:"title"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
}

type videoListResponse struct {
	Items []struct {
		ID      string       `json:"id"`
		Snippet videoSnippet `json:"snippet"`
	} `json:"items"`
}

// FetchMetadata retrieves the snippet for a video. A missing video maps to a
// not-found error rather than an empty result.
func (c *Client) FetchMetadata(ctx context.Context, videoID string) (*analysis.VideoMetadata, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return nil, services.Wrap(services.ErrValidation, "youtube", "fetch metadata", "video id is empty", nil)
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("id", videoID)

	var payload videoListResponse
	if err := c.getJSON(ctx, "/videos", params, &payload); err != nil {
		return nil, services.Wrap(services.ErrAPI, "youtube", "fetch metadata", "videos.list failed", err)
	}
	if len(payload.Items) == 0 {
		return nil, services.Wrap(services.ErrNotFound, "youtube", "fetch metadata", "video not found", nil)
	}

	item := payload.Items[0]
	return &analysis.VideoMetadata{
		VideoID:      videoID,
		Title:        item.Snippet.Title,
		Author:       item.Snippet.ChannelTitle,
		ChannelTitle: item.Snippet.ChannelTitle,
		PublishedAt:  parseTimestamp(item.Snippet.PublishedAt),
		URL:          "https://www.youtube.com/watch?v=" + videoID,
	}, nil
}

type commentSnippet struct {
	TextDisplay       string `json:"textDisplay"`
	AuthorDisplayName string `json:"authorDisplayName"`
	PublishedAt       string `json:"publishedAt"`
	LikeCount         int64  `json:"likeCount"`
}

type commentThreadsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet commentSnippet `json:"snippet"`
			} `json:"topLevelComment"`
			TotalReplyCount int `json:"totalReplyCount"`
		} `json:"snippet"`
		Replies struct {
			Comments []struct {
				Snippet commentSnippet `json:"snippet"`
			} `json:"comments"`
		} `json:"replies"`
	} `json:"items"`
	NextPageToken string `json:"nextPageToken"`
}

// FetchComments pages through top-level comment threads until either limit is
// reached. The word budget counts top-level text only; a comment that would
// exceed it skips the remainder of its page. Page failures after retries
// return whatever was collected so far rather than an error, so a partially
// unavailable comment section still produces an analysis.
func (c *Client) FetchComments(ctx context.Context, videoID string, maxComments, maxWords int) (analysis.CommentsData, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return analysis.CommentsData{}, services.Wrap(services.ErrValidation, "youtube", "fetch comments", "video id is empty", nil)
	}

	comments := make([]analysis.Comment, 0, min(maxComments, maxPageSize))
	totalWords := 0
	pageToken := ""

	for len(comments) < maxComments && totalWords < maxWords {
		params := url.Values{}
		params.Set("part", "snippet,replies")
		params.Set("videoId", videoID)
		params.Set("textFormat", "plainText")
		params.Set("maxResults", strconv.Itoa(min(maxPageSize, maxComments-len(comments))))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page commentThreadsResponse
		if err := c.getJSON(ctx, "/commentThreads", params, &page); err != nil {
			if ctx.Err() != nil {
				return analysis.NewCommentsData(comments), ctx.Err()
			}
			c.logger.Warn("comment page fetch failed, returning partial set",
				logging.Error(err),
				logging.String(logging.FieldVideoID, videoID),
				logging.Int("comments_collected", len(comments)))
			break
		}

		for _, item := range page.Items {
			snippet := item.Snippet.TopLevelComment.Snippet
			words := analysis.WordCount(snippet.TextDisplay)
			if totalWords+words > maxWords {
				break
			}
			replies := make([]string, 0, len(item.Replies.Comments))
			for _, reply := range item.Replies.Comments {
				replies = append(replies, reply.Snippet.TextDisplay)
			}
			comments = append(comments, analysis.Comment{
				Author:    snippet.AuthorDisplayName,
				Text:      snippet.TextDisplay,
				LikeCount: snippet.LikeCount,
				Published: parseTimestamp(snippet.PublishedAt),
				Replies:   replies,
			})
			totalWords += words
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	return analysis.NewCommentsData(comments), nil
}

type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	body := e.Body
	if len(body) > 160 {
		body = body[:160] + "..."
	}
	if body == "" {
		return fmt.Sprintf("youtube api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("youtube api returned %d: %s", e.StatusCode, body)
}

func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, backoffDelay(attempt, c.backoffBase, c.backoffMax)); err != nil {
				return err
			}
		}
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		err := c.doOnce(ctx, path, params, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if ctx.Err() != nil || !retryable(err) {
			return err
		}
	}
	return lastErr
}

func (c *Client) doOnce(ctx context.Context, path string, params url.Values, out any) error {
	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("parse youtube url: %w", err)
	}
	query := url.Values{}
	for key, values := range params {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	query.Set("key", c.apiKey)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("request failed (latency=%v): %w", latency, &statusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))})
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode youtube response: %w", err)
	}
	return nil
}

func retryable(err error) bool {
	var status *statusError
	if errors.As(err, &status) {
		switch {
		case status.StatusCode == http.StatusTooManyRequests:
			return true
		case status.StatusCode == http.StatusRequestTimeout:
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

func backoffDelay(attempt int, base, maxDelay time.Duration) time.Duration {
	delay := base
	for i := 2; i < attempt; i++ {
		delay *= 2
		if delay >= maxDelay {
			return maxDelay
		}
	}
	if delay > maxDelay {
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

func parseTimestamp(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}
	}
	return ts
}
