// Package youtube provides the minimal YouTube Data API client used during
// video extraction.
//
// It resolves video IDs from the URL shapes users paste, fetches snippet
// metadata, and pages through comment threads under configurable count and
// word budgets. Requests are rate limited and retried on transient failures;
// comment collection tolerates partial page failures so an analysis can still
// proceed with whatever was gathered. Options allow tests to supply custom
// HTTP clients, rates, and sleep behaviour without modifying production code.
package youtube
