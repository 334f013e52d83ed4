package config

const (
	defaultDataDir              = "~/.local/share/inquest"
	defaultLogDir               = "~/.local/share/inquest/logs"
	defaultReportsDir           = "~/.local/share/inquest/reports"
	defaultLogRetentionDays     = 60
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultYouTubeBaseURL       = "https://www.googleapis.com/youtube/v3"
	defaultYouTubeMaxComments   = 5000
	defaultYouTubeMaxWords      = 80000
	defaultYouTubeRPS           = 10.0
	defaultYouTubeTimeout       = 30
	defaultTranscriptBaseURL    = "https://www.youtube.com"
	defaultTranscriptTimeout    = 30
	defaultOpenAIBaseURL        = "https://api.openai.com/v1"
	defaultOpenAIModel          = "gpt-5"
	defaultOpenAITemperature    = 0.35
	defaultOpenAITimeout        = 300
	defaultGeminiModel          = "gemini-1.5-flash"
	defaultGeminiTemperature    = 0.5
	defaultGeminiMaxTokens      = 8192
	defaultGeminiTimeout        = 180
	defaultMaxPriorityQuestions = 6
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
			ReportsDir: defaultReportsDir,
		},
		YouTube: YouTube{
			BaseURL:           defaultYouTubeBaseURL,
			MaxComments:       defaultYouTubeMaxComments,
			MaxCommentWords:   defaultYouTubeMaxWords,
			RequestsPerSecond: defaultYouTubeRPS,
			TimeoutSeconds:    defaultYouTubeTimeout,
		},
		Transcript: Transcript{
			BaseURL:        defaultTranscriptBaseURL,
			Languages:      []string{"en", "en-US", "en-GB"},
			TimeoutSeconds: defaultTranscriptTimeout,
		},
		OpenAI: OpenAI{
			BaseURL:        defaultOpenAIBaseURL,
			Model:          defaultOpenAIModel,
			Temperature:    defaultOpenAITemperature,
			TimeoutSeconds: defaultOpenAITimeout,
		},
		Gemini: Gemini{
			Model:           defaultGeminiModel,
			Temperature:     defaultGeminiTemperature,
			MaxOutputTokens: defaultGeminiMaxTokens,
			TimeoutSeconds:  defaultGeminiTimeout,
		},
		Pipeline: Pipeline{
			EnableTranscript:           true,
			EnableComments:             true,
			EnableTranscriptProcessing: true,
			EnableCommentsProcessing:   true,
			EnableSynthesis:            true,
			EnableEvaluation:           true,
			EnableAudioDownload:        false,
			MaxPriorityQuestions:       defaultMaxPriorityQuestions,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
