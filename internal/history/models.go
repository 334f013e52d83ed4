package history

import (
	"encoding/json"
	"fmt"
	"time"

	"inquest/internal/analysis"
)

// Status describes the archived outcome of an analysis run.
type Status string

const (
	// StatusCompleted marks a run that produced a full result document.
	StatusCompleted Status = "completed"
	// StatusFailed marks a run that aborted before producing a result.
	StatusFailed Status = "failed"
)

// Record is one archived analysis run.
type Record struct {
	ID              int64
	RunID           string
	VideoID         string
	VideoURL        string
	Title           string
	Channel         string
	Status          Status
	TranscriptWords int
	CommentCount    int
	QuestionCount   int
	ElapsedSeconds  float64
	ErrorMessage    string
	ResultJSON      string
	CreatedAt       time.Time
}

// Result decodes the stored result document. Records saved for failed runs
// carry no document and return nil.
func (r *Record) Result() (*analysis.Result, error) {
	if r == nil || r.ResultJSON == "" {
		return nil, nil
	}
	var result analysis.Result
	if err := json.Unmarshal([]byte(r.ResultJSON), &result); err != nil {
		return nil, fmt.Errorf("decode stored result: %w", err)
	}
	return &result, nil
}

// DatabaseHealth reports diagnostic information about the history database.
type DatabaseHealth struct {
	DBPath           string   `json:"db_path"`
	DatabaseExists   bool     `json:"database_exists"`
	DatabaseReadable bool     `json:"database_readable"`
	SchemaVersion    string   `json:"schema_version"`
	TableExists      bool     `json:"table_exists"`
	ColumnsPresent   []string `json:"columns_present,omitempty"`
	MissingColumns   []string `json:"missing_columns,omitempty"`
	IntegrityCheck   bool     `json:"integrity_check"`
	TotalRuns        int      `json:"total_runs"`
	Error            string   `json:"error,omitempty"`
}
