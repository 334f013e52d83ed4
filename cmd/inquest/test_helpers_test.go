package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"inquest/internal/analysis"
	"inquest/internal/config"
	"inquest/internal/history"
)

// runCLI executes a fresh root command with args and captures its output.
func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// isolateHome points HOME at a scratch directory so commands that fall back
// to default paths never touch the real user profile. It also blanks the
// API key env vars so only file-supplied credentials are in play.
func isolateHome(t *testing.T, base string) {
	t.Helper()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
}

func writeTestConfig(t *testing.T) string {
	return writeConfigWithHistory(t, true)
}

func writeConfigWithHistory(t *testing.T, enabled bool) string {
	t.Helper()

	base := t.TempDir()
	isolateHome(t, base)

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
reports_dir = %q

[youtube]
api_key = "test-youtube-key"

[openai]
api_key = "test-openai-key"

[gemini]
api_key = "test-gemini-key"

[history]
enabled = %t
path = %q
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		filepath.Join(base, "reports"),
		enabled,
		filepath.Join(base, "data", "history.db"),
	)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}

func sampleRunResult(runID, title string) *analysis.Result {
	return &analysis.Result{
		RunID: runID,
		Metadata: analysis.VideoMetadata{
			VideoID:      "dQw4w9WgXcQ",
			Title:        title,
			Author:       "Systems Weekly",
			ChannelTitle: "Systems Weekly",
			PublishedAt:  time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC),
			URL:          "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		},
		Transcript: analysis.TranscriptData{
			Text:      "one two three four five",
			WordCount: 5,
			Language:  "en",
			Source:    "auto",
			Available: true,
		},
		CompressedSummary: "compressed digest",
		Assessment: analysis.Assessment{
			Standards:         []analysis.CriticalThinkingStandard{},
			SelectedQuestions: []string{"What evidence supports the main claim?"},
			ImpactScores:      map[string]float64{},
		},
		TotalTime: 12,
	}
}

// seedHistoryRun archives one completed run through the same store the CLI
// opens, so list/show tests exercise real reads.
func seedHistoryRun(t *testing.T, configPath, runID, title string) {
	t.Helper()
	store := openTestStore(t, configPath)
	defer store.Close()
	if _, err := store.SaveResult(context.Background(), sampleRunResult(runID, title)); err != nil {
		t.Fatalf("seed run: %v", err)
	}
}

// seedHistoryFailure archives one failed run and returns its generated run id.
func seedHistoryFailure(t *testing.T, configPath, videoURL string, runErr error) string {
	t.Helper()
	store := openTestStore(t, configPath)
	defer store.Close()
	record, err := store.SaveFailure(context.Background(), videoURL, runErr)
	if err != nil {
		t.Fatalf("seed failure: %v", err)
	}
	return record.RunID
}

func openTestStore(t *testing.T, configPath string) *history.Store {
	t.Helper()
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	return store
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
