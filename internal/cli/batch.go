package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmarkov/verascope/internal/model"
	"github.com/dmarkov/verascope/internal/pipeline"
	"github.com/dmarkov/verascope/internal/worker"
)

var (
	batchKind    string
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	domainRPS    float64
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Analyze entries from a file in parallel",
	Long: `Batch analyzes many inputs concurrently:
- Read entries from the input file (one text or URL per line)
- Process entries in parallel with a configurable worker count
- Rate limit URL fetches per domain
- Write one JSON result per entry

Example:
  verascope batch claims.txt
  verascope batch urls.txt --kind bias --concurrency 10 --output-dir ./results
  verascope batch urls.txt --rps 2 --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringVar(&batchKind, "kind", "fact_check", "analysis kind (fact_check, bias)")
	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "./verascope-results", "output directory for results")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().Float64Var(&domainRPS, "rps", 2, "per-domain requests per second for URL entries (0 disables)")

	batchCmd.Flags().DurationVar(&timeout, "entry-timeout", 30*time.Second, "timeout for individual fetches")
	batchCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")

	batchCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	batchCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	batchCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	kind := model.AnalysisKind(batchKind)
	if kind != model.KindFactCheck && kind != model.KindBias {
		return fmt.Errorf("unsupported kind %q (expected fact_check or bias)", batchKind)
	}

	cfg, err := buildAnalysisConfig()
	if err != nil {
		return err
	}
	cfg.Concurrency.BatchWorkers = concurrency

	fmt.Fprintf(os.Stderr, "Input file: %s\n", file)
	fmt.Fprintf(os.Stderr, "Kind:       %s\n", kind)
	fmt.Fprintf(os.Stderr, "Workers:    %d\n", concurrency)
	fmt.Fprintf(os.Stderr, "Output dir: %s\n\n", outputDir)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	pipe, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(pipe, concurrency, domainRPS)
	results, err := processor.ProcessFile(ctx, kind, file)
	if err != nil {
		return fmt.Errorf("process file: %w", err)
	}

	successCount := 0
	failureCount := 0
	for _, res := range results {
		if res.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Entry, res.Error)
			continue
		}

		path := filepath.Join(outputDir, res.Result.ID+".json")
		if err := writeResultJSON(res.Result, path); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", res.Entry, err)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (score %d/100)\n", res.Entry, res.Result.Score)
	}

	fmt.Fprintf(os.Stderr, "\nTotal: %d  Success: %d  Failures: %d\n", len(results), successCount, failureCount)
	fmt.Fprintf(os.Stderr, "Output: %s\n", outputDir)

	return nil
}
