package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmarkov/verascope/internal/model"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return store
}

func sampleResult(id string, kind model.AnalysisKind, score int) model.AnalysisResult {
	return model.AnalysisResult{
		ID:         id,
		Kind:       kind,
		CreatedAt:  time.Now().UTC(),
		Score:      score,
		Confidence: 70,
		Status:     model.StatusUnverified,
		Flags:      []string{"one", "two"},
		Sources:    []string{"https://example.com"},
		Narrative:  "narrative text",
	}
}

func TestSaveAndGet(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	original := sampleResult("va-1", model.KindFactCheck, 80)
	id, err := store.Save(ctx, original)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id != "va-1" {
		t.Errorf("id = %q, want va-1", id)
	}

	fetched, err := store.Get(ctx, "va-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched == nil {
		t.Fatal("expected result, got nil")
	}
	if fetched.Score != 80 || fetched.Kind != model.KindFactCheck {
		t.Errorf("round trip mismatch: %+v", fetched)
	}
	if len(fetched.Flags) != 2 || fetched.Flags[0] != "one" {
		t.Errorf("flags = %v", fetched.Flags)
	}
	if len(fetched.Sources) != 1 {
		t.Errorf("sources = %v", fetched.Sources)
	}
}

func TestGet_Missing(t *testing.T) {
	store := testStore(t)

	result, err := store.Get(context.Background(), "va-missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != nil {
		t.Errorf("expected nil for missing row, got %+v", result)
	}
}

func TestSave_DuplicateID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	if _, err := store.Save(ctx, sampleResult("va-dup", model.KindBias, 50)); err != nil {
		t.Fatalf("first save: %v", err)
	}

	_, err := store.Save(ctx, sampleResult("va-dup", model.KindBias, 60))
	if err == nil {
		t.Fatal("expected error on duplicate primary key")
	}
	var storageErr *model.StorageError
	if !errors.As(err, &storageErr) {
		t.Errorf("expected StorageError, got %T", err)
	}
}

func TestList(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, kind := range []model.AnalysisKind{model.KindFactCheck, model.KindBias, model.KindFactCheck} {
		r := sampleResult(resultID(i), kind, 40+i*10)
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		if _, err := store.Save(ctx, r); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	all, err := store.List(ctx, "", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 results, got %d", len(all))
	}
	// Newest first.
	if all[0].ID != resultID(2) {
		t.Errorf("expected newest first, got %s", all[0].ID)
	}

	factChecks, err := store.List(ctx, model.KindFactCheck, 0)
	if err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(factChecks) != 2 {
		t.Errorf("expected 2 fact-checks, got %d", len(factChecks))
	}

	limited, err := store.List(ctx, "", 1)
	if err != nil {
		t.Fatalf("limited list: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 result with limit, got %d", len(limited))
	}
}

func TestAggregate(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	empty, err := store.Aggregate(ctx)
	if err != nil {
		t.Fatalf("aggregate empty: %v", err)
	}
	if empty.TotalResults != 0 {
		t.Errorf("expected 0 total, got %d", empty.TotalResults)
	}

	scores := []int{40, 60, 80}
	for i, score := range scores {
		if _, err := store.Save(ctx, sampleResult(resultID(i), model.KindFactCheck, score)); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	if _, err := store.Save(ctx, sampleResult("va-bias", model.KindBias, 50)); err != nil {
		t.Fatal(err)
	}

	metrics, err := store.Aggregate(ctx)
	if err != nil {
		t.Fatalf("aggregate: %v", err)
	}
	if metrics.TotalResults != 4 {
		t.Errorf("total = %d, want 4", metrics.TotalResults)
	}
	if metrics.CountsByKind[string(model.KindFactCheck)] != 3 {
		t.Errorf("fact_check count = %d, want 3", metrics.CountsByKind[string(model.KindFactCheck)])
	}
	if metrics.CountsByKind[string(model.KindBias)] != 1 {
		t.Errorf("bias count = %d, want 1", metrics.CountsByKind[string(model.KindBias)])
	}
	want := float64(40+60+80+50) / 4
	if metrics.AverageScore != want {
		t.Errorf("average = %f, want %f", metrics.AverageScore, want)
	}
	if metrics.LatestCreated == nil {
		t.Error("expected latest timestamp")
	}
}

func resultID(i int) string {
	return "va-" + string(rune('a'+i))
}
