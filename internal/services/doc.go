// Package services defines shared utilities consumed by the pipeline stages
// and external API clients.
//
// Key responsibilities:
//   - Context helpers that stamp video IDs, stage names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that tag failures with
//     the service that produced them and distinguish fatal configuration or
//     validation problems from degraded-input failures.
//
// Use these helpers when wiring new stage logic so operational behaviour
// (error handling, observability, retries) stays uniform across the pipeline.
package services
