// Package search defines the contract with the external web-search
// collaborator.
package search

import "context"

// Source is one crawled source's contribution: an identifier (usually the
// cited URL) and the raw text attributed to it. Entries crossing this
// boundary have already been validated; malformed collaborator output is
// dropped before it reaches the pipeline.
type Source struct {
	SourceID string
	RawText  string
}

// Searcher issues a search for a prompt and returns up to maxSources
// sources. Implementations must honor ctx cancellation and deadlines.
// Returning fewer sources than requested is not an error.
type Searcher interface {
	Search(ctx context.Context, prompt string, maxSources int) ([]Source, error)
}
