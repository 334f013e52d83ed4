// Package openai provides the streaming chat completions client used by the
// processing stage.
//
// Both summarization operations send the fixed philosopher-technologist
// system prompt and stream the response as server-sent events, emitting each
// content fragment through a caller-supplied callback. Transcript summaries
// run at the configured temperature; comment summaries run at a low fixed
// temperature for focused output.
//
// # Retry Behaviour
//
// Requests retry on HTTP 408/429/5xx, network timeouts, and empty responses
// with exponential backoff (base 2s, max 10s, 3 attempts by default),
// honouring Retry-After when the server provides one. A stream that fails
// after emitting fragments is not retried: the fragment sequence is
// non-restartable and the caller already consumed part of it.
package openai
