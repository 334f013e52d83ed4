package analysis

// PipelineConfig controls which stages run and how the model calls behave.
type PipelineConfig struct {
	MaxComments          int     `json:"max_comments"`
	MaxCommentWords      int     `json:"max_comment_words"`
	OpenAIModel          string  `json:"openai_model"`
	OpenAITemperature    float64 `json:"openai_temperature"`
	GeminiModel          string  `json:"gemini_model"`
	GeminiTemperature    float64 `json:"gemini_temperature"`
	MaxPriorityQuestions int     `json:"max_priority_questions"`

	EnableTranscript           bool `json:"enable_transcript"`
	EnableComments             bool `json:"enable_comments"`
	EnableTranscriptProcessing bool `json:"enable_transcript_processing"`
	EnableCommentsProcessing   bool `json:"enable_comments_processing"`
	EnableSynthesis            bool `json:"enable_synthesis"`
	EnableEvaluation           bool `json:"enable_evaluation"`

	// Accepted for forward compatibility; no stage consumes audio today.
	EnableAudioDownload bool `json:"enable_audio_download"`
}

// DefaultPipelineConfig returns the stock pipeline settings with every
// analysis stage enabled.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		MaxComments:                5000,
		MaxCommentWords:            80000,
		OpenAIModel:                "gpt-5",
		OpenAITemperature:          0.35,
		GeminiModel:                "gemini-1.5-flash",
		GeminiTemperature:          0.5,
		MaxPriorityQuestions:       6,
		EnableTranscript:           true,
		EnableComments:             true,
		EnableTranscriptProcessing: true,
		EnableCommentsProcessing:   true,
		EnableSynthesis:            true,
		EnableEvaluation:           true,
	}
}
