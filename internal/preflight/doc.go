// Package preflight provides readiness checks for the credentials and
// filesystem paths an analysis run depends on.
//
// The CLI "inquest doctor" command runs these before any real work so a
// misconfigured setup fails in seconds instead of mid-pipeline. Each check
// is gated by its config toggle; keys for disabled stages are not demanded.
package preflight
