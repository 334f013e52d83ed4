// Package gemini provides the Google GenAI client used by the synthesis and
// evaluation stages.
//
// Compress merges the transcript and comments summaries into one digest via
// a plain text generation. EvaluateStandards requests a JSON response
// constrained to the critical thinking standards schema and decodes it
// tolerantly: code fences and prose around the payload are stripped before
// unmarshalling.
//
// # Retry Behaviour
//
// Calls retry on GenAI API errors with status 408/429/5xx, network
// timeouts, empty responses, and undecodable JSON payloads, with
// exponential backoff (base 2s, max 10s, 3 attempts by default). A 401 or
// 403 fails immediately as a configuration error since retrying a rejected
// key cannot succeed.
package gemini
