package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmarkov/verascope/internal/model"
)

// Analyzer runs one entry through the text-analysis pipeline.
type Analyzer interface {
	AnalyzeText(ctx context.Context, kind model.AnalysisKind, content, userID string) (*model.AnalysisResult, error)
}

// AnalysisJob analyzes one batch entry. URL-shaped entries wait for the
// per-domain limiter before the fetch happens downstream.
type AnalysisJob struct {
	Entry    string
	Kind     model.AnalysisKind
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute runs the job.
func (j *AnalysisJob) Execute(ctx context.Context) Result {
	if j.Limiter != nil && strings.HasPrefix(j.Entry, "http") {
		if err := j.Limiter.Wait(ctx, j.Entry); err != nil {
			return &BatchResult{Entry: j.Entry, Error: err}
		}
	}

	result, err := j.Analyzer.AnalyzeText(ctx, j.Kind, j.Entry, "")
	return &BatchResult{Entry: j.Entry, Result: result, Error: err}
}

// BatchResult is the outcome of one batch entry. Entries fail independently;
// one bad entry never aborts the batch.
type BatchResult struct {
	Entry  string
	Result *model.AnalysisResult
	Error  error
}

// Err returns the entry's error, if any.
func (r *BatchResult) Err() error {
	return r.Error
}

// BatchProcessor analyzes many entries concurrently with bounded workers and
// per-domain rate limiting for URL entries.
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	limiter     *Limiter
}

// NewBatchProcessor creates a processor. requestsPerSecond <= 0 disables the
// per-domain limiter.
func NewBatchProcessor(analyzer Analyzer, concurrency int, requestsPerSecond float64) *BatchProcessor {
	var limiter *Limiter
	if requestsPerSecond > 0 {
		limiter = NewLimiter(requestsPerSecond, 0)
	}
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		limiter:     limiter,
	}
}

// ProcessEntries analyzes every entry as kind and returns one result per
// entry, order not guaranteed.
func (b *BatchProcessor) ProcessEntries(ctx context.Context, kind model.AnalysisKind, entries []string) []*BatchResult {
	if len(entries) == 0 {
		return []*BatchResult{}
	}

	pool := NewPool(b.concurrency)
	pool.Start()

	for _, entry := range entries {
		pool.Submit(&AnalysisJob{
			Entry:    entry,
			Kind:     kind,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		})
	}

	results := pool.Wait()
	out := make([]*BatchResult, len(results))
	for i, result := range results {
		out[i] = result.(*BatchResult)
	}
	return out
}

// ProcessFile reads entries from a file and analyzes them concurrently.
func (b *BatchProcessor) ProcessFile(ctx context.Context, kind model.AnalysisKind, path string) ([]*BatchResult, error) {
	entries, err := ReadEntriesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entries: %w", err)
	}
	return b.ProcessEntries(ctx, kind, entries), nil
}

// ReadEntriesFromFile reads one entry per line, skipping blanks and
// #-comments and deduplicating.
func ReadEntriesFromFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var entries []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !seen[line] {
			seen[line] = true
			entries = append(entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return entries, nil
}
