package index

import "context"

// UnknownDate stands in for a document whose metadata carries no date.
const UnknownDate = "Unknown"

/*
Document is a read-only entry of the semantic index.
*/
type Document struct {
	ID       string   `json:"id"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

type Metadata struct {
	Date     string   `json:"date,omitempty"`
	Keywords []string `json:"keywords,omitempty"`
}

// DateOrUnknown returns the metadata date, or UnknownDate when none was stored.
func (doc Document) DateOrUnknown() string {
	if doc.Metadata.Date == "" {
		return UnknownDate
	}

	return doc.Metadata.Date
}

/*
Searcher runs a similarity query and returns at most k documents, most
similar first. Identical index state and arguments yield identical results.
*/
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]Document, error)
}
