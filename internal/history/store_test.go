package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"modelopt/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestAppendAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	started := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	for i, driver := range []string{"mo-import-tflite", "mo-optimize", "mo-quantize"} {
		_, err := store.Append(ctx, history.Record{
			RunID:      "run-1",
			Driver:     driver,
			Command:    driver + " --input_path m.circle",
			ExitCode:   i % 2,
			StartedAt:  started,
			FinishedAt: started.Add(time.Minute),
		})
		if err != nil {
			t.Fatalf("Append %s: %v", driver, err)
		}
	}

	records, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].Driver != "mo-quantize" {
		t.Fatalf("newest first expected, got %q", records[0].Driver)
	}
	if !records[0].StartedAt.Equal(started) {
		t.Fatalf("started_at round-trip: %v", records[0].StartedAt)
	}
	if records[1].ExitCode != 1 {
		t.Fatalf("exit code round-trip: %d", records[1].ExitCode)
	}
}

func TestRecentOnEmptyStore(t *testing.T) {
	store := openStore(t)
	records, err := store.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}
