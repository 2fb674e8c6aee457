package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmarkov/verascope/internal/model"
	"github.com/dmarkov/verascope/internal/pipeline"
)

var (
	analyzeKind string
	outJSON     string
	timeout     time.Duration
	userAgent   string
	maxBytes    int64
	noCache     bool
	insecureTLS bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <text|url>",
	Short: "Analyze a single text or URL",
	Long: `Analyze runs one submission through the full pipeline:
- Normalize the input (URLs are fetched and stripped of markup)
- Score it with local keyword heuristics
- Optionally generate and parse an LLM narrative
- Print the assembled result as JSON

Example:
  verascope analyze "The senator claimed unemployment fell to 3%."
  verascope analyze https://example.com/article --kind bias
  verascope analyze "some claim" --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeKind, "kind", "fact_check", "analysis kind (fact_check, bias)")
	analyzeCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")

	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 0, "max response bytes to read for URL submissions")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")

	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM narrative generation")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	content := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	kind := model.AnalysisKind(analyzeKind)
	if kind != model.KindFactCheck && kind != model.KindBias {
		return fmt.Errorf("unsupported kind %q (expected fact_check or bias)", analyzeKind)
	}

	cfg, err := buildAnalysisConfig()
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing (%s): %s\n", kind, content)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n\n", timeout)
	}

	pipe, err := pipeline.New(cfg)
	if err != nil {
		return err
	}

	result, err := pipe.AnalyzeText(ctx, kind, content, "")
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Score: %d/100 (confidence %d)\n", result.Score, result.Confidence)
		if name := pipe.GeneratorName(); name != "" {
			fmt.Fprintf(os.Stderr, "✓ Narrative generated by %s\n", name)
		}
		fmt.Fprintln(os.Stderr)
	}

	return writeResultJSON(result, outJSON)
}

// buildAnalysisConfig applies the analyze/batch flags over the loaded
// configuration.
func buildAnalysisConfig() (*model.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	cfg.HTTP.Timeout = timeout
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if maxBytes > 0 {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	cfg.HTTP.InsecureTLS = insecureTLS
	if noCache {
		cfg.Cache.Enabled = false
	}

	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		if llmModel != "" {
			cfg.LLM.Model = llmModel
		}
		applyAPIKeyEnv(cfg)
		switch llmProvider {
		case "openai", "anthropic", "claude":
			if cfg.LLM.APIKey == "" {
				return nil, fmt.Errorf("no API key configured for %s", llmProvider)
			}
		}
	} else {
		cfg.LLM.Provider = ""
	}

	return cfg, nil
}

func writeResultJSON(result *model.AnalysisResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", path)
	}
	return nil
}
