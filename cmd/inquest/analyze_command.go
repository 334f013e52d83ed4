package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"inquest/internal/analysis"
	"inquest/internal/config"
	"inquest/internal/history"
	"inquest/internal/report"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var (
		instruction            string
		maxComments            int
		maxWords               int
		questions              int
		outputPath             string
		formatFlag             string
		noTranscript           bool
		noComments             bool
		noTranscriptProcessing bool
		noCommentsProcessing   bool
		noSynthesis            bool
		noEvaluation           bool
		transcriptOnly         bool
		commentsOnly           bool
		noSave                 bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <url>",
		Short: "Run the full analysis chain for one YouTube video",
		Long: `Analyze extracts a video's metadata, transcript, and comments, streams
summaries through the configured OpenAI model, synthesizes them with Gemini,
and evaluates the content against critical thinking standards. Stage toggles
let partial runs skip extraction or processing steps.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			videoURL := strings.TrimSpace(args[0])
			if videoURL == "" {
				return errors.New("video url is required")
			}
			format, err := normalizeFormat(formatFlag)
			if err != nil {
				return err
			}
			if transcriptOnly && commentsOnly {
				return errors.New("--transcript-only and --comments-only are mutually exclusive")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			pcfg := cfg.PipelineConfig()
			flags := cmd.Flags()
			if flags.Changed("max-comments") {
				pcfg.MaxComments = maxComments
			}
			if flags.Changed("max-words") {
				pcfg.MaxCommentWords = maxWords
			}
			if flags.Changed("questions") {
				pcfg.MaxPriorityQuestions = questions
			}
			applyStageToggles(&pcfg, stageToggles{
				noTranscript:           noTranscript,
				noComments:             noComments,
				noTranscriptProcessing: noTranscriptProcessing,
				noCommentsProcessing:   noCommentsProcessing,
				noSynthesis:            noSynthesis,
				noEvaluation:           noEvaluation,
				transcriptOnly:         transcriptOnly,
				commentsOnly:           commentsOnly,
			})

			outPath := strings.TrimSpace(outputPath)
			if outPath != "" {
				expanded, err := config.ExpandPath(outPath)
				if err != nil {
					return fmt.Errorf("resolve output path: %w", err)
				}
				outPath = expanded
			}

			logger, _, err := ctx.runLogger(cfg)
			if err != nil {
				return err
			}

			orch, err := buildOrchestrator(cmd.Context(), cfg, pcfg, logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			decorate := report.ShouldDecorate(out)
			if format == formatRich {
				fmt.Fprintf(out, "Analyzing video: %s\n\n", videoURL)
			}

			result, err := orch.AnalyzeVideo(cmd.Context(), videoURL, pcfg, instruction)
			if err != nil {
				recordFailure(cmd, cfg, videoURL, err, noSave)
				return err
			}

			if format == formatRich {
				if decorate {
					fmt.Fprintln(out, "✓ Analysis completed!")
				} else {
					fmt.Fprintln(out, "Analysis completed!")
				}
				fmt.Fprintln(out)
			}

			if err := displayResult(cmd, result, format, outPath); err != nil {
				return err
			}

			if cfg.History.Enabled && !noSave {
				record, err := saveRun(cfg, result)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: run not recorded in history: %v\n", err)
				} else if format == formatRich {
					fmt.Fprintf(out, "\nRun recorded in history: %s\n", record.RunID)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&instruction, "instruction", "i", "", "Custom summarization instruction for the transcript")
	cmd.Flags().IntVarP(&maxComments, "max-comments", "c", 0, "Maximum number of comments to collect")
	cmd.Flags().IntVarP(&maxWords, "max-words", "w", 0, "Maximum total words across collected comments")
	cmd.Flags().IntVarP(&questions, "questions", "q", 0, "Maximum number of priority questions to select")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write results to this file")
	cmd.Flags().StringVar(&formatFlag, "format", "rich", "Output format: rich, json, or markdown")
	cmd.Flags().BoolVar(&noTranscript, "no-transcript", false, "Skip transcript extraction")
	cmd.Flags().BoolVar(&noComments, "no-comments", false, "Skip comment extraction")
	cmd.Flags().BoolVar(&noTranscriptProcessing, "no-transcript-processing", false, "Skip transcript summarization")
	cmd.Flags().BoolVar(&noCommentsProcessing, "no-comments-processing", false, "Skip comment summarization")
	cmd.Flags().BoolVar(&noSynthesis, "no-synthesis", false, "Skip summary synthesis")
	cmd.Flags().BoolVar(&noEvaluation, "no-evaluation", false, "Skip critical thinking evaluation")
	cmd.Flags().BoolVar(&transcriptOnly, "transcript-only", false, "Process only the transcript (skip comments)")
	cmd.Flags().BoolVar(&commentsOnly, "comments-only", false, "Process only the comments (skip transcript)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record this run in history")

	return cmd
}

type stageToggles struct {
	noTranscript           bool
	noComments             bool
	noTranscriptProcessing bool
	noCommentsProcessing   bool
	noSynthesis            bool
	noEvaluation           bool
	transcriptOnly         bool
	commentsOnly           bool
}

func applyStageToggles(pcfg *analysis.PipelineConfig, toggles stageToggles) {
	if toggles.noTranscript {
		pcfg.EnableTranscript = false
	}
	if toggles.noComments {
		pcfg.EnableComments = false
	}
	if toggles.noTranscriptProcessing {
		pcfg.EnableTranscriptProcessing = false
	}
	if toggles.noCommentsProcessing {
		pcfg.EnableCommentsProcessing = false
	}
	if toggles.noSynthesis {
		pcfg.EnableSynthesis = false
	}
	if toggles.noEvaluation {
		pcfg.EnableEvaluation = false
	}
	if toggles.transcriptOnly {
		pcfg.EnableComments = false
		pcfg.EnableCommentsProcessing = false
	}
	if toggles.commentsOnly {
		pcfg.EnableTranscript = false
		pcfg.EnableTranscriptProcessing = false
	}
}

// saveRun archives a completed result. The write uses a fresh context so a
// canceled run context cannot lose the record.
func saveRun(cfg *config.Config, result *analysis.Result) (*history.Record, error) {
	store, err := history.Open(cfg)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.SaveResult(context.Background(), result)
}

func recordFailure(cmd *cobra.Command, cfg *config.Config, videoURL string, runErr error, noSave bool) {
	if cfg == nil || !cfg.History.Enabled || noSave {
		return
	}
	store, err := history.Open(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failure not recorded in history: %v\n", err)
		return
	}
	defer store.Close()
	if _, err := store.SaveFailure(context.Background(), videoURL, runErr); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: failure not recorded in history: %v\n", err)
	}
}
