// Package pipeline chains extraction, summarization, synthesis, and
// evaluation into a single analysis run over a shared processing context.
// Extraction and summarization failures degrade the run and are recorded as
// failed steps; synthesis and evaluation failures abort it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"inquest/internal/analysis"
	"inquest/internal/logging"
	"inquest/internal/services"
	"inquest/internal/services/gemini"
	"inquest/internal/services/openai"
	"inquest/internal/services/transcript"
	"inquest/internal/services/youtube"
)

// ErrPipelineFailed marks a fatal failure of the analysis chain.
var ErrPipelineFailed = errors.New("analysis pipeline failed")

const (
	synthesisInput    = "Transcript + Comments summaries"
	synthesisFallback = "Analysis completed without content synthesis."
)

// Deps collects the collaborators the chain calls into. Extractor is always
// required; the rest may be left nil when the pipeline config disables the
// stages that use them.
type Deps struct {
	Extractor   youtube.Extractor
	Transcripts transcript.Fetcher
	Summarizer  openai.Summarizer
	Synthesizer gemini.Synthesizer
	Evaluator   gemini.Evaluator
}

// Orchestrator runs the chain-of-thought analysis pipeline.
type Orchestrator struct {
	deps   Deps
	logger *slog.Logger
}

// Option customizes an Orchestrator.
type Option func(*Orchestrator)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New wires an Orchestrator from its stage collaborators.
func New(deps Deps, opts ...Option) (*Orchestrator, error) {
	if deps.Extractor == nil {
		return nil, services.Wrap(services.ErrConfiguration, "pipeline", "new orchestrator", "youtube extractor required", nil)
	}
	o := &Orchestrator{deps: deps, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// AnalyzeVideo runs the full chain for one video URL and assembles the
// result. instruction overrides the transcript summary prompt; blank selects
// the reflection default. Any error returned wraps ErrPipelineFailed.
func (o *Orchestrator) AnalyzeVideo(ctx context.Context, videoURL string, cfg analysis.PipelineConfig, instruction string) (*analysis.Result, error) {
	if strings.TrimSpace(instruction) == "" {
		instruction = openai.SummarizeForReflection
	}
	runID := uuid.NewString()
	ctx = services.WithRequestID(ctx, runID)
	start := time.Now()

	pctx, err := o.run(ctx, videoURL, cfg, instruction)
	if err != nil {
		logging.WithContext(ctx, o.logger).Error("video analysis failed",
			logging.Error(err),
			logging.Duration("elapsed", time.Since(start)))
		return nil, fmt.Errorf("%w: %w", ErrPipelineFailed, err)
	}

	result := pctx.Result(time.Since(start))
	result.RunID = runID
	logging.WithContext(ctx, o.logger).Info("video analysis completed",
		logging.Duration("total_time", time.Since(start)),
		logging.Int("successful_steps", pctx.SuccessfulSteps()),
		logging.Int("failed_steps", len(pctx.FailedSteps())),
		logging.Int("priority_questions", len(result.Assessment.SelectedQuestions)))
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, videoURL string, cfg analysis.PipelineConfig, instruction string) (*analysis.ProcessingContext, error) {
	if err := o.validate(cfg); err != nil {
		return nil, err
	}

	videoID, err := youtube.ResolveVideoID(videoURL)
	if err != nil {
		return nil, err
	}
	ctx = services.WithVideoID(ctx, videoID)
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("starting video analysis", logging.String("url", videoURL))

	metadata, err := o.deps.Extractor.FetchMetadata(ctx, videoID)
	if err != nil {
		return nil, err
	}
	logger.Info("video metadata fetched",
		logging.String("title", metadata.Title),
		logging.String("channel", metadata.ChannelTitle))

	pctx := &analysis.ProcessingContext{Metadata: *metadata, Config: cfg}
	o.extractData(ctx, pctx)
	o.processContent(ctx, pctx, instruction)
	if err := o.synthesizeContent(ctx, pctx); err != nil {
		return nil, err
	}
	if err := o.evaluateContent(ctx, pctx); err != nil {
		return nil, err
	}
	return pctx, nil
}

// validate checks that every enabled stage has a collaborator to run on.
func (o *Orchestrator) validate(cfg analysis.PipelineConfig) error {
	if cfg.EnableTranscript && o.deps.Transcripts == nil {
		return services.Wrap(services.ErrConfiguration, "pipeline", "configure run", "transcript fetcher not configured", nil)
	}
	if (cfg.EnableTranscriptProcessing || cfg.EnableCommentsProcessing) && o.deps.Summarizer == nil {
		return services.Wrap(services.ErrConfiguration, "pipeline", "configure run", "openai summarizer not configured", nil)
	}
	if cfg.EnableSynthesis && o.deps.Synthesizer == nil {
		return services.Wrap(services.ErrConfiguration, "pipeline", "configure run", "gemini synthesizer not configured", nil)
	}
	if cfg.EnableEvaluation && o.deps.Evaluator == nil {
		return services.Wrap(services.ErrConfiguration, "pipeline", "configure run", "gemini evaluator not configured", nil)
	}
	return nil
}

// extractData gathers transcript and comments. Failures here never abort the
// run; the affected data is left empty and the step recorded as failed.
func (o *Orchestrator) extractData(ctx context.Context, pctx *analysis.ProcessingContext) {
	if pctx.Config.EnableTranscript {
		stageCtx, logger := o.stageContext(ctx, analysis.StepExtractTranscript)
		logger.Info("extracting transcript")
		start := time.Now()
		data, err := o.deps.Transcripts.Fetch(stageCtx, pctx.Metadata.VideoID)
		if err != nil {
			logger.Warn("transcript extraction failed", logging.Error(err))
			pctx.Transcript = analysis.TranscriptData{Available: false}
			pctx.AddStep(stepRecord(analysis.StepExtractTranscript, pctx.Metadata.VideoID, "", start, err))
		} else {
			pctx.Transcript = data
			pctx.AddStep(stepRecord(analysis.StepExtractTranscript, pctx.Metadata.VideoID,
				fmt.Sprintf("Transcript available: %t, Words: %d", data.Available, data.WordCount), start, nil))
			if !data.Available {
				logger.Warn("transcript unavailable",
					logging.String("reason", data.Error),
					logging.String(logging.FieldImpact, "transcript summary will be skipped"))
			}
		}
	}

	if pctx.Config.EnableComments {
		stageCtx, logger := o.stageContext(ctx, analysis.StepExtractComments)
		logger.Info("extracting comments", logging.Int("max_comments", pctx.Config.MaxComments))
		start := time.Now()
		comments, err := o.deps.Extractor.FetchComments(stageCtx, pctx.Metadata.VideoID, pctx.Config.MaxComments, pctx.Config.MaxCommentWords)
		if err != nil {
			logger.Warn("comment extraction failed", logging.Error(err))
			pctx.AddStep(stepRecord(analysis.StepExtractComments, pctx.Metadata.VideoID, "", start, err))
			return
		}
		pctx.Comments = comments
		pctx.AddStep(stepRecord(analysis.StepExtractComments, pctx.Metadata.VideoID,
			fmt.Sprintf("Comments: %d, Words: %d", comments.TotalCount, comments.TotalWordCount), start, nil))
	}
}

// processContent summarizes whatever extractData produced. Summaries stream
// in fragments; a failure discards any partial output for that summary.
func (o *Orchestrator) processContent(ctx context.Context, pctx *analysis.ProcessingContext, instruction string) {
	if pctx.Config.EnableTranscriptProcessing && pctx.Transcript.Available {
		stageCtx, logger := o.stageContext(ctx, analysis.StepProcessTranscript)
		logger.Info("summarizing transcript", logging.Int("words", pctx.Transcript.WordCount))
		start := time.Now()
		input := fmt.Sprintf("Transcript (%d words)", pctx.Transcript.WordCount)
		var buf strings.Builder
		err := o.deps.Summarizer.SummarizeTranscript(stageCtx, pctx.Transcript, instruction, pctx.Config, func(fragment string) {
			buf.WriteString(fragment)
		})
		if err != nil {
			logger.Warn("transcript summarization failed", logging.Error(err))
			pctx.AddStep(stepRecord(analysis.StepProcessTranscript, input, "", start, err))
		} else {
			pctx.TranscriptSummary = buf.String()
			pctx.AddStep(stepRecord(analysis.StepProcessTranscript, input,
				fmt.Sprintf("Summary (%d words)", analysis.WordCount(pctx.TranscriptSummary)), start, nil))
		}
	}

	if pctx.Config.EnableCommentsProcessing && pctx.Comments.TotalCount > 0 {
		stageCtx, logger := o.stageContext(ctx, analysis.StepProcessComments)
		logger.Info("summarizing comments", logging.Int("comments", pctx.Comments.TotalCount))
		start := time.Now()
		input := fmt.Sprintf("Comments (%d items)", pctx.Comments.TotalCount)
		var buf strings.Builder
		err := o.deps.Summarizer.SummarizeComments(stageCtx, pctx.Comments, pctx.Config, func(fragment string) {
			buf.WriteString(fragment)
		})
		if err != nil {
			logger.Warn("comment summarization failed", logging.Error(err))
			pctx.AddStep(stepRecord(analysis.StepProcessComments, input, "", start, err))
		} else {
			pctx.CommentsSummary = buf.String()
			pctx.AddStep(stepRecord(analysis.StepProcessComments, input,
				fmt.Sprintf("Summary (%d words)", analysis.WordCount(pctx.CommentsSummary)), start, nil))
		}
	}
}

// synthesizeContent compresses the stage summaries into one digest. When
// synthesis is disabled the richest available summary stands in, comments
// first.
func (o *Orchestrator) synthesizeContent(ctx context.Context, pctx *analysis.ProcessingContext) error {
	if !pctx.Config.EnableSynthesis {
		switch {
		case pctx.CommentsSummary != "":
			pctx.CompressedSummary = pctx.CommentsSummary
		case pctx.TranscriptSummary != "":
			pctx.CompressedSummary = pctx.TranscriptSummary
		default:
			pctx.CompressedSummary = synthesisFallback
		}
		return nil
	}

	stageCtx, logger := o.stageContext(ctx, analysis.StepSynthesizeContent)
	logger.Info("synthesizing content")
	start := time.Now()
	compressed, err := o.deps.Synthesizer.Compress(stageCtx, pctx.TranscriptSummary, pctx.CommentsSummary, pctx.Config)
	if err != nil {
		pctx.AddStep(stepRecord(analysis.StepSynthesizeContent, synthesisInput, "", start, err))
		return err
	}
	pctx.CompressedSummary = compressed
	pctx.AddStep(stepRecord(analysis.StepSynthesizeContent, synthesisInput,
		fmt.Sprintf("Compressed summary (%d words)", analysis.WordCount(compressed)), start, nil))
	return nil
}

// evaluateContent scores the summaries against the critical thinking
// standards and ranks the follow-up questions they raise.
func (o *Orchestrator) evaluateContent(ctx context.Context, pctx *analysis.ProcessingContext) error {
	if !pctx.Config.EnableEvaluation {
		pctx.Assessment = emptyAssessment()
		return nil
	}

	stageCtx, logger := o.stageContext(ctx, analysis.StepEvaluateCriticalThinking)
	logger.Info("evaluating critical thinking")
	start := time.Now()
	standards, err := o.deps.Evaluator.EvaluateStandards(stageCtx, pctx.TranscriptSummary, pctx.CommentsSummary, pctx.Config)
	if err != nil {
		pctx.AddStep(stepRecord(analysis.StepEvaluateCriticalThinking, synthesisInput, "", start, err))
		return err
	}

	selected := SelectQuestions(standards, pctx.Config.MaxPriorityQuestions)
	pctx.Assessment = analysis.Assessment{
		Standards:         standards,
		SelectedQuestions: selected,
		ImpactScores:      ImpactScores(standards),
	}
	logger.Info("priority questions selected",
		logging.Int("selected", len(selected)),
		logging.Int("candidates", pctx.Assessment.TotalQuestions()))
	pctx.AddStep(stepRecord(analysis.StepEvaluateCriticalThinking, synthesisInput,
		fmt.Sprintf("Assessment with %d standards, %d priority questions", len(standards), len(selected)), start, nil))
	return nil
}

func (o *Orchestrator) stageContext(ctx context.Context, stage string) (context.Context, *slog.Logger) {
	stageCtx := services.WithStage(ctx, stage)
	return stageCtx, logging.WithContext(stageCtx, o.logger)
}

func stepRecord(name, input, output string, start time.Time, err error) analysis.StepRecord {
	record := analysis.StepRecord{
		Name:     name,
		Input:    input,
		Output:   output,
		Duration: time.Since(start).Seconds(),
		Success:  err == nil,
	}
	if err != nil {
		record.Error = err.Error()
	}
	return record
}

func emptyAssessment() analysis.Assessment {
	return analysis.Assessment{
		Standards:         []analysis.CriticalThinkingStandard{},
		SelectedQuestions: []string{},
		ImpactScores:      map[string]float64{},
	}
}
