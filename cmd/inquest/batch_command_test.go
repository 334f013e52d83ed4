package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBatchRequiresURLs(t *testing.T) {
	configPath := writeTestConfig(t)

	_, _, err := runCLI(t, "--config", configPath, "batch")
	if err == nil {
		t.Fatal("expected error when no urls are given")
	}
}

func TestBatchRejectsBadConcurrency(t *testing.T) {
	configPath := writeTestConfig(t)

	_, _, err := runCLI(t, "--config", configPath, "batch",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "--concurrency", "0")
	if err == nil {
		t.Fatal("expected error for zero concurrency")
	}
	requireContains(t, err.Error(), "concurrency must be at least 1")
}

func TestCollectBatchURLsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	content := "# weekly backlog\n\nhttps://youtu.be/aaaaaaaaaaa\nhttps://youtu.be/bbbbbbbbbbb\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write url file: %v", err)
	}

	urls, err := collectBatchURLs([]string{path})
	if err != nil {
		t.Fatalf("collectBatchURLs: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d: %v", len(urls), urls)
	}
	if urls[0] != "https://youtu.be/aaaaaaaaaaa" {
		t.Fatalf("unexpected first url: %q", urls[0])
	}
}

func TestCollectBatchURLsPassesThroughArgs(t *testing.T) {
	args := []string{
		"https://youtu.be/aaaaaaaaaaa",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
	}
	urls, err := collectBatchURLs(args)
	if err != nil {
		t.Fatalf("collectBatchURLs: %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("expected 2 urls, got %d", len(urls))
	}
}

func TestCollectBatchURLsEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	if err := os.WriteFile(path, []byte("# nothing here\n"), 0o644); err != nil {
		t.Fatalf("write url file: %v", err)
	}

	_, err := collectBatchURLs([]string{path})
	if err == nil {
		t.Fatal("expected error for url file with no entries")
	}
}
