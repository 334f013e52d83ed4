package report

import (
	"encoding/json"
	"io"

	"inquest/internal/analysis"
)

// Document is the JSON rendering of an analysis run: the result's fields
// plus the insights derived from its compressed summary.
type Document struct {
	analysis.Result
	Insights ContentStructure `json:"insights"`
}

// NewDocument pairs a result with its derived insights.
func NewDocument(result *analysis.Result) Document {
	return Document{
		Result:   *result,
		Insights: AnalyzeContent(result.CompressedSummary),
	}
}

// EncodeJSON writes the indented JSON document for result to w.
func EncodeJSON(w io.Writer, result *analysis.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(result))
}
