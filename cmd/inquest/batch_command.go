package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"inquest/internal/analysis"
	"inquest/internal/config"
	"inquest/internal/history"
	"inquest/internal/logging"
	"inquest/internal/pipeline"
	"inquest/internal/report"
)

type batchOutcome struct {
	URL       string  `json:"url"`
	Status    string  `json:"status"`
	RunID     string  `json:"run_id,omitempty"`
	Title     string  `json:"title,omitempty"`
	Questions int     `json:"priority_questions"`
	Seconds   float64 `json:"elapsed_seconds"`
	Error     string  `json:"error,omitempty"`
}

type batchDocument struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Total       int            `json:"total"`
	Completed   int            `json:"completed"`
	Failed      int            `json:"failed"`
	Results     []batchOutcome `json:"results"`
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var (
		concurrency int
		outputPath  string
		noSave      bool
	)

	cmd := &cobra.Command{
		Use:   "batch <file|url...>",
		Short: "Analyze several videos with a bounded worker pool",
		Long: `Batch accepts either a file containing one video URL per line (blank lines
and # comments are skipped) or URLs given directly as arguments. Videos are
analyzed concurrently up to --concurrency, each with its own isolated run,
and archived in history like single analyze runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if concurrency < 1 {
				return errors.New("concurrency must be at least 1")
			}
			urls, err := collectBatchURLs(args)
			if err != nil {
				return err
			}
			if concurrency > len(urls) {
				concurrency = len(urls)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, _, err := ctx.runLogger(cfg)
			if err != nil {
				return err
			}

			pcfg := cfg.PipelineConfig()
			// One orchestrator per worker lane; concurrent runs never share
			// pipeline or client instances.
			orchs := make([]*pipeline.Orchestrator, concurrency)
			for i := range orchs {
				orch, err := buildOrchestrator(cmd.Context(), cfg, pcfg, logger)
				if err != nil {
					return err
				}
				orchs[i] = orch
			}

			var store *history.Store
			if cfg.History.Enabled && !noSave {
				store, err = history.Open(cfg)
				if err != nil {
					return err
				}
				defer store.Close()
			}

			outcomes := make([]batchOutcome, len(urls))
			for i, u := range urls {
				outcomes[i] = batchOutcome{URL: u, Status: "skipped"}
			}

			jobs := make(chan int)
			var wg sync.WaitGroup
			for i := 0; i < concurrency; i++ {
				wg.Add(1)
				go func(orch *pipeline.Orchestrator) {
					defer wg.Done()
					for idx := range jobs {
						outcomes[idx] = runBatchVideo(cmd.Context(), orch, store, logger, pcfg, urls[idx])
					}
				}(orchs[i])
			}
		feed:
			for idx := range urls {
				select {
				case <-cmd.Context().Done():
					break feed
				case jobs <- idx:
				}
			}
			close(jobs)
			wg.Wait()

			completed, failed := 0, 0
			rows := make([][]string, 0, len(outcomes))
			for _, outcome := range outcomes {
				switch outcome.Status {
				case string(history.StatusCompleted):
					completed++
				case string(history.StatusFailed):
					failed++
				}
				rows = append(rows, []string{
					truncateCell(outcome.URL, 48),
					outcome.Status,
					strconv.Itoa(outcome.Questions),
					fmt.Sprintf("%.1fs", outcome.Seconds),
					truncateCell(outcome.Error, 60),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, report.RenderTable(
				[]string{"URL", "Status", "Questions", "Time", "Error"},
				rows,
				[]report.ColumnAlignment{report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignRight, report.AlignLeft},
			))
			fmt.Fprintf(out, "Analyzed %d videos: %d completed, %d failed\n", len(outcomes), completed, failed)

			if path := strings.TrimSpace(outputPath); path != "" {
				expanded, err := config.ExpandPath(path)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				doc := batchDocument{
					GeneratedAt: time.Now().UTC(),
					Total:       len(outcomes),
					Completed:   completed,
					Failed:      failed,
					Results:     outcomes,
				}
				if err := writeBatchDocument(expanded, doc); err != nil {
					return err
				}
				fmt.Fprintf(out, "Results saved to: %s\n", expanded)
			}

			if err := cmd.Context().Err(); err != nil {
				return err
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d videos failed", failed, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 2, "Number of videos analyzed in parallel")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write a JSON results document to this file")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record runs in history")

	return cmd
}

func runBatchVideo(ctx context.Context, orch *pipeline.Orchestrator, store *history.Store, logger *slog.Logger, pcfg analysis.PipelineConfig, videoURL string) batchOutcome {
	outcome := batchOutcome{URL: videoURL}
	start := time.Now()
	result, err := orch.AnalyzeVideo(ctx, videoURL, pcfg, "")
	outcome.Seconds = time.Since(start).Seconds()

	if err != nil {
		outcome.Status = string(history.StatusFailed)
		outcome.Error = err.Error()
		if store != nil {
			if _, saveErr := store.SaveFailure(context.Background(), videoURL, err); saveErr != nil {
				logging.WarnWithContext(logger, "failed run not recorded in history", "history_save_failed",
					logging.String("url", videoURL),
					logging.Error(saveErr),
					logging.String(logging.FieldImpact, "run missing from history list"),
				)
			}
		}
		return outcome
	}

	outcome.Status = string(history.StatusCompleted)
	outcome.RunID = result.RunID
	outcome.Title = result.Metadata.Title
	outcome.Questions = result.Assessment.TotalQuestions()
	if store != nil {
		if record, saveErr := store.SaveResult(context.Background(), result); saveErr != nil {
			logging.WarnWithContext(logger, "completed run not recorded in history", "history_save_failed",
				logging.String("url", videoURL),
				logging.Error(saveErr),
				logging.String(logging.FieldImpact, "run missing from history list"),
			)
		} else {
			outcome.RunID = record.RunID
		}
	}
	return outcome
}

func collectBatchURLs(args []string) ([]string, error) {
	if len(args) == 1 {
		if path, err := config.ExpandPath(args[0]); err == nil {
			if info, statErr := os.Stat(path); statErr == nil && info.Mode().IsRegular() {
				return readURLFile(path)
			}
		}
	}
	urls := make([]string, 0, len(args))
	for _, arg := range args {
		if trimmed := strings.TrimSpace(arg); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	if len(urls) == 0 {
		return nil, errors.New("no video urls provided")
	}
	return urls, nil
}

func readURLFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open url file: %w", err)
	}
	defer file.Close()

	var urls []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read url file: %w", err)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no video urls found in %s", path)
	}
	return urls, nil
}

func writeBatchDocument(path string, doc batchDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		file.Close()
		return fmt.Errorf("encode results: %w", err)
	}
	return file.Close()
}
