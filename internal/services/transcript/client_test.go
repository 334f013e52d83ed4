package transcript_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"inquest/internal/services/transcript"
)

// newCaptionServer serves a watch page whose player response lists the given
// caption tracks, plus a timedtext endpoint serving json3 payloads keyed by
// the track name query parameter.
func newCaptionServer(t *testing.T, tracksJSON func(baseURL string) string, timedText map[string]string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, `<html><head><script>var meta = 1;</script></head><body>
<script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":%s}}};var other = {"x":2};</script>
</body></html>`, tracksJSON(server.URL))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		payload, ok := timedText[r.URL.Query().Get("track")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("fmt"); got != "json3" {
			t.Errorf("expected fmt=json3, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	})
	return server
}

func TestFetchPrefersManualTrackInConfiguredLanguage(t *testing.T) {
	tracks := func(base string) string {
		return fmt.Sprintf(`[
			{"baseUrl":"%s/api/timedtext?track=en-auto","languageCode":"en","kind":"asr"},
			{"baseUrl":"%s/api/timedtext?track=fr-manual","languageCode":"fr"},
			{"baseUrl":"%s/api/timedtext?track=en-manual","languageCode":"en"}
		]`, base, base, base)
	}
	server := newCaptionServer(t, tracks, map[string]string{
		"en-manual": `{"events":[{"segs":[{"utf8":"hello"},{"utf8":" there"}]},{"segs":[{"utf8":"general remarks"}]}]}`,
	})

	client, err := transcript.New(server.URL, []string{"en", "en-US"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	data, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !data.Available {
		t.Fatalf("expected transcript available, got error %q", data.Error)
	}
	if data.Text != "hello there general remarks" {
		t.Fatalf("unexpected transcript text %q", data.Text)
	}
	if data.Language != "en" {
		t.Fatalf("unexpected language %q", data.Language)
	}
	if data.Source != transcript.SourceManual {
		t.Fatalf("expected manual source, got %q", data.Source)
	}
}

func TestFetchFallsBackToAutoCaptions(t *testing.T) {
	tracks := func(base string) string {
		return fmt.Sprintf(`[{"baseUrl":"%s/api/timedtext?track=en-auto","languageCode":"en","kind":"asr"}]`, base)
	}
	server := newCaptionServer(t, tracks, map[string]string{
		"en-auto": `{"events":[{"segs":[{"utf8":"auto generated text"}]}]}`,
	})

	client, err := transcript.New(server.URL, []string{"en"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	data, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !data.Available {
		t.Fatalf("expected transcript available, got error %q", data.Error)
	}
	if data.Source != transcript.SourceAuto {
		t.Fatalf("expected auto source, got %q", data.Source)
	}
	if data.Text != "auto generated text" {
		t.Fatalf("unexpected transcript text %q", data.Text)
	}
}

func TestFetchHonorsLanguagePreferenceOrder(t *testing.T) {
	tracks := func(base string) string {
		return fmt.Sprintf(`[
			{"baseUrl":"%s/api/timedtext?track=en-manual","languageCode":"en"},
			{"baseUrl":"%s/api/timedtext?track=de-manual","languageCode":"de"}
		]`, base, base)
	}
	server := newCaptionServer(t, tracks, map[string]string{
		"de-manual": `{"events":[{"segs":[{"utf8":"hallo welt"}]}]}`,
	})

	client, err := transcript.New(server.URL, []string{"de", "en"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	data, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !data.Available {
		t.Fatalf("expected transcript available, got error %q", data.Error)
	}
	if data.Language != "de" {
		t.Fatalf("expected de track, got %q", data.Language)
	}
}

func TestFetchUnavailableWhenNoCaptions(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><script>var unrelated = {"a":1};</script></body></html>`))
	})

	client, err := transcript.New(server.URL, []string{"en"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	data, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if data.Available {
		t.Fatal("expected transcript unavailable")
	}
	if data.Error == "" {
		t.Fatal("expected failure reason recorded")
	}
}

func TestFetchUnavailableOnWatchPageError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client, err := transcript.New(server.URL, []string{"en"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	data, err := client.Fetch(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if data.Available {
		t.Fatal("expected transcript unavailable")
	}
	if data.Error == "" {
		t.Fatal("expected failure reason recorded")
	}
}

func TestFetchReturnsErrorWhenCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client, err := transcript.New(server.URL, []string{"en"})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Fetch(ctx, "dQw4w9WgXcQ"); err == nil {
		t.Fatal("expected error from cancelled fetch")
	}
}
