package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"inquest/internal/analysis"
	"inquest/internal/logging"
)

const (
	defaultTimeout = 30 * time.Second
	// A browser-like user agent; the watch page serves a reduced shell to
	// unknown clients that omits the player response.
	userAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:129.0) Gecko/20100101 Firefox/129.0"

	// Source tags recorded on the returned transcript.
	SourceManual = "manual"
	SourceAuto   = "auto"
)

// Fetcher retrieves a transcript for a video. A missing or unusable
// transcript is not an error: implementations report it through
// TranscriptData.Available and reserve the error return for aborted fetches.
type Fetcher interface {
	Fetch(ctx context.Context, videoID string) (analysis.TranscriptData, error)
}

// Client scrapes caption tracks from the public watch page. No API key is
// required; captions are fetched through the same timedtext endpoints the
// player uses.
type Client struct {
	baseURL    string
	languages  []string
	httpClient *http.Client
	logger     *slog.Logger
}

var _ Fetcher = (*Client)(nil)

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

// WithLogger attaches a logger used for fetch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a transcript client. Languages are tried in order; manually
// created tracks win over auto-generated ones regardless of order.
func New(baseURL string, languages []string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("transcript base url required")
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		languages:  languages,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
	Name         struct {
		SimpleText string `json:"simpleText"`
	} `json:"name"`
}

type playerResponse struct {
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// Fetch retrieves the transcript for videoID. Caption-level failures (no
// tracks, blocked page, empty track) produce TranscriptData with
// Available=false and the reason in Error, so the pipeline can continue
// without a transcript. Only a cancelled context returns an error.
func (c *Client) Fetch(ctx context.Context, videoID string) (analysis.TranscriptData, error) {
	videoID = strings.TrimSpace(videoID)
	if videoID == "" {
		return unavailable("video id is empty"), nil
	}

	tracks, err := c.captionTracks(ctx, videoID)
	if err != nil {
		if ctx.Err() != nil {
			return analysis.TranscriptData{}, ctx.Err()
		}
		c.logger.Debug("transcript unavailable",
			logging.String(logging.FieldVideoID, videoID),
			logging.Error(err))
		return unavailable(err.Error()), nil
	}
	if len(tracks) == 0 {
		return unavailable("no caption tracks available"), nil
	}

	track := selectTrack(tracks, c.languages)
	text, err := c.fetchTrack(ctx, track)
	if err != nil {
		if ctx.Err() != nil {
			return analysis.TranscriptData{}, ctx.Err()
		}
		c.logger.Debug("caption track fetch failed",
			logging.String(logging.FieldVideoID, videoID),
			logging.String("language", track.LanguageCode),
			logging.Error(err))
		return unavailable(err.Error()), nil
	}
	if text == "" {
		return unavailable("caption track is empty"), nil
	}

	source := SourceManual
	if isAutoGenerated(track) {
		source = SourceAuto
	}
	return analysis.TranscriptData{
		Text:      text,
		WordCount: analysis.WordCount(text),
		Language:  track.LanguageCode,
		Source:    source,
		Available: true,
	}, nil
}

func (c *Client) captionTracks(ctx context.Context, videoID string) ([]captionTrack, error) {
	watchURL := c.baseURL + "/watch?v=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build watch request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("watch page returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	payload := ""
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, "ytInitialPlayerResponse")
		if idx < 0 {
			return true
		}
		brace := strings.Index(text[idx:], "{")
		if brace < 0 {
			return true
		}
		payload = text[idx+brace:]
		return false
	})
	if payload == "" {
		return nil, errors.New("player response not found in watch page")
	}

	// The script tail after the JSON object is ignored; the decoder stops at
	// the end of the first value.
	var player playerResponse
	if err := json.NewDecoder(strings.NewReader(payload)).Decode(&player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks, nil
}

func isAutoGenerated(track captionTrack) bool {
	return strings.EqualFold(track.Kind, "asr")
}

func selectTrack(tracks []captionTrack, languages []string) captionTrack {
	for _, lang := range languages {
		for _, track := range tracks {
			if !isAutoGenerated(track) && strings.EqualFold(track.LanguageCode, lang) {
				return track
			}
		}
	}
	for _, track := range tracks {
		if !isAutoGenerated(track) {
			return track
		}
	}
	for _, lang := range languages {
		for _, track := range tracks {
			if strings.EqualFold(track.LanguageCode, lang) {
				return track
			}
		}
	}
	return tracks[0]
}

type timedTextResponse struct {
	Events []struct {
		Segs []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (c *Client) fetchTrack(ctx context.Context, track captionTrack) (string, error) {
	endpoint, err := url.Parse(track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse caption url: %w", err)
	}
	query := endpoint.Query()
	query.Set("fmt", "json3")
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build caption request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch caption track: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("caption track returned %d", resp.StatusCode)
	}

	var timed timedTextResponse
	if err := json.NewDecoder(resp.Body).Decode(&timed); err != nil {
		return "", fmt.Errorf("decode caption track: %w", err)
	}

	var parts []string
	for _, event := range timed.Events {
		var line strings.Builder
		for _, seg := range event.Segs {
			line.WriteString(seg.UTF8)
		}
		if text := strings.TrimSpace(line.String()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " "), nil
}

func unavailable(reason string) analysis.TranscriptData {
	return analysis.TranscriptData{Available: false, Error: reason}
}
