package analysis

import "time"

// Stage step names recorded in the processing log. Extraction and processing
// steps are recorded per data source; synthesis and evaluation record a
// single step each.
const (
	StepExtractTranscript        = "extract_transcript"
	StepExtractComments          = "extract_comments"
	StepProcessTranscript        = "process_transcript"
	StepProcessComments          = "process_comments"
	StepSynthesizeContent        = "synthesize_content"
	StepEvaluateCriticalThinking = "evaluate_critical_thinking"
)

// StepRecord captures one stage execution for the processing log. Both
// successful and failed stage runs append a record; skipped stages append
// nothing. Duration is elapsed seconds.
type StepRecord struct {
	Name     string  `json:"step_name"`
	Input    string  `json:"input_data"`
	Output   string  `json:"output_data"`
	Duration float64 `json:"processing_time"`
	Success  bool    `json:"success"`
	Error    string  `json:"error_message,omitempty"`
}

// ProcessingContext carries intermediate state between pipeline stages.
type ProcessingContext struct {
	Metadata          VideoMetadata
	Config            PipelineConfig
	Transcript        TranscriptData
	Comments          CommentsData
	Steps             []StepRecord
	TranscriptSummary string
	CommentsSummary   string
	CompressedSummary string
	Assessment        Assessment
}

// AddStep appends a step record to the processing log.
func (p *ProcessingContext) AddStep(record StepRecord) {
	p.Steps = append(p.Steps, record)
}

// SuccessfulSteps returns the number of steps that completed successfully.
func (p *ProcessingContext) SuccessfulSteps() int {
	count := 0
	for _, step := range p.Steps {
		if step.Success {
			count++
		}
	}
	return count
}

// FailedSteps returns the records for steps that failed.
func (p *ProcessingContext) FailedSteps() []StepRecord {
	var failed []StepRecord
	for _, step := range p.Steps {
		if !step.Success {
			failed = append(failed, step)
		}
	}
	return failed
}

// Result assembles the final analysis result from the accumulated context.
func (p *ProcessingContext) Result(totalTime time.Duration) *Result {
	return &Result{
		Metadata:          p.Metadata,
		Transcript:        p.Transcript,
		Comments:          p.Comments,
		Steps:             p.Steps,
		TranscriptSummary: p.TranscriptSummary,
		CommentsSummary:   p.CommentsSummary,
		CompressedSummary: p.CompressedSummary,
		Assessment:        p.Assessment,
		TotalTime:         totalTime.Seconds(),
	}
}
