package worker

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/dmarkov/verascope/internal/model"
)

type fakeAnalyzer struct {
	shouldError bool
}

func (a *fakeAnalyzer) AnalyzeText(ctx context.Context, kind model.AnalysisKind, content, userID string) (*model.AnalysisResult, error) {
	time.Sleep(10 * time.Millisecond)
	if a.shouldError {
		return nil, errors.New("analysis error")
	}
	return &model.AnalysisResult{
		ID:    "va-test",
		Kind:  kind,
		Score: 50,
	}, nil
}

func TestBatchProcessor_ProcessEntries(t *testing.T) {
	processor := NewBatchProcessor(&fakeAnalyzer{}, 2, 0)

	entries := []string{"claim one", "claim two", "http://example.com"}
	results := processor.ProcessEntries(context.Background(), model.KindFactCheck, entries)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %q: %v", res.Entry, res.Error)
			continue
		}
		if res.Result == nil {
			t.Errorf("expected result for %q", res.Entry)
		} else if res.Result.Kind != model.KindFactCheck {
			t.Errorf("expected kind %s, got %s", model.KindFactCheck, res.Result.Kind)
		}
	}
}

func TestBatchProcessor_ProcessEntries_Error(t *testing.T) {
	processor := NewBatchProcessor(&fakeAnalyzer{shouldError: true}, 2, 0)

	results := processor.ProcessEntries(context.Background(), model.KindBias, []string{"some claim"})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Error == nil {
		t.Error("expected error, got nil")
	}
	if results[0].Result != nil {
		t.Error("expected nil result on error")
	}
}

func TestBatchProcessor_ProcessEntries_Empty(t *testing.T) {
	processor := NewBatchProcessor(&fakeAnalyzer{}, 2, 0)

	results := processor.ProcessEntries(context.Background(), model.KindFactCheck, nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_RateLimited(t *testing.T) {
	processor := NewBatchProcessor(&fakeAnalyzer{}, 2, 100)

	results := processor.ProcessEntries(context.Background(), model.KindFactCheck,
		[]string{"http://example.com/a", "http://example.com/b"})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, res := range results {
		if res.Error != nil {
			t.Errorf("unexpected error for %q: %v", res.Entry, res.Error)
		}
	}
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "entries")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tmpfile.WriteString(content); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}
	return tmpfile.Name()
}

func TestReadEntriesFromFile(t *testing.T) {
	path := writeTempFile(t, "http://example.com\n# comment\nclaim about taxes\n   \nhttp://example.org   \n")

	entries, err := ReadEntriesFromFile(path)
	if err != nil {
		t.Fatalf("ReadEntriesFromFile failed: %v", err)
	}

	expected := []string{"http://example.com", "claim about taxes", "http://example.org"}
	if len(entries) != len(expected) {
		t.Fatalf("expected %d entries, got %d", len(expected), len(entries))
	}
	for i, entry := range entries {
		if entry != expected[i] {
			t.Errorf("expected %q at index %d, got %q", expected[i], i, entry)
		}
	}
}

func TestReadEntriesFromFile_Deduplication(t *testing.T) {
	path := writeTempFile(t, "http://example.com\nhttp://example.com\n")

	entries, err := ReadEntriesFromFile(path)
	if err != nil {
		t.Fatalf("ReadEntriesFromFile failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry after deduplication, got %d", len(entries))
	}
}

func TestReadEntriesFromFile_NonExistent(t *testing.T) {
	if _, err := ReadEntriesFromFile("no_such_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchProcessor_ProcessFile(t *testing.T) {
	path := writeTempFile(t, "claim one\nclaim two\n# comment\n\nclaim three\n")

	processor := NewBatchProcessor(&fakeAnalyzer{}, 2, 0)
	results, err := processor.ProcessFile(context.Background(), model.KindFactCheck, path)
	if err != nil {
		t.Fatalf("ProcessFile failed: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("expected 3 results, got %d", len(results))
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&fakeAnalyzer{}, 2, 0)
	if _, err := processor.ProcessFile(context.Background(), model.KindFactCheck, "no_such_file.txt"); err == nil {
		t.Error("expected error for non-existent file, got nil")
	}
}

func TestBatchResult_Err(t *testing.T) {
	ok := &BatchResult{Entry: "claim"}
	if ok.Err() != nil {
		t.Errorf("expected nil error, got %v", ok.Err())
	}

	expected := errors.New("analysis failed")
	bad := &BatchResult{Entry: "claim", Error: expected}
	if bad.Err() != expected {
		t.Errorf("expected %v, got %v", expected, bad.Err())
	}
}
