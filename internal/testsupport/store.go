package testsupport

import (
	"context"
	"testing"

	"inquest/internal/analysis"
	"inquest/internal/config"
	"inquest/internal/history"
)

// MustOpenStore opens a history.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *history.Store {
	t.Helper()

	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("history.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SaveResult archives a result for tests using the provided store.
func SaveResult(t testing.TB, store *history.Store, result *analysis.Result) *history.Record {
	t.Helper()

	record, err := store.SaveResult(context.Background(), result)
	if err != nil {
		t.Fatalf("store.SaveResult: %v", err)
	}
	return record
}
