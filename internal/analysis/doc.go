// Package analysis defines the data model shared by the extraction,
// processing, synthesis, and evaluation stages: video metadata, transcript
// and comment payloads, per-stage step records, and the final result.
package analysis
