package retrieval

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/theapemachine/herewego/pkg/index"
)

// DefaultK is the size of the candidate pool drawn from the index before filtering.
const DefaultK = 20

/*
Hit is a retrieved document that mentions the queried entity.
*/
type Hit struct {
	Text string `json:"text"`
	Date string `json:"date"`
}

/*
Retriever queries a semantic index with an entity name and keeps only the
documents that actually mention it.
*/
type Retriever struct {
	searcher index.Searcher
}

func NewRetriever(searcher index.Searcher) *Retriever {
	return &Retriever{searcher: searcher}
}

/*
Retrieve draws the top k candidates for entity and filters them with
Mentions. The similarity order is kept; the result may be shorter than k
or empty.
*/
func (retriever *Retriever) Retrieve(ctx context.Context, entity string, k int) ([]Hit, error) {
	if k <= 0 {
		k = DefaultK
	}

	docs, err := retriever.searcher.Search(ctx, entity, k)

	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(docs))

	for _, doc := range docs {
		if !Mentions(doc, entity) {
			continue
		}

		hits = append(hits, Hit{Text: doc.Content, Date: doc.DateOrUnknown()})
	}

	log.Debug("retrieved", "entity", entity, "candidates", len(docs), "hits", len(hits))
	return hits, nil
}

/*
Mentions reports whether entity occurs, ignoring case, in the document
content or inside any one of its keywords.
*/
func Mentions(doc index.Document, entity string) bool {
	needle := strings.ToLower(entity)

	if strings.Contains(strings.ToLower(doc.Content), needle) {
		return true
	}

	for _, keyword := range doc.Metadata.Keywords {
		if strings.Contains(strings.ToLower(keyword), needle) {
			return true
		}
	}

	return false
}
