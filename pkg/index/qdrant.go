package index

import (
	"context"
	"fmt"

	"github.com/theapemachine/herewego/pkg/provider"
	"github.com/theapemachine/herewego/pkg/stores/qdrant"
)

/*
QdrantIndex serves similarity queries from a remote qdrant collection whose
point payloads carry content, date and keywords.
*/
type QdrantIndex struct {
	client   *qdrant.Client
	embedder provider.Embedder
}

func NewQdrantIndex(endpoint, collection string, embedder provider.Embedder) *QdrantIndex {
	return &QdrantIndex{
		client:   qdrant.New(endpoint, collection),
		embedder: embedder,
	}
}

func (idx *QdrantIndex) Search(ctx context.Context, query string, k int) ([]Document, error) {
	vec, err := idx.embedder.Embed(ctx, query)

	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	points, err := idx.client.Search(ctx, vec, k)

	if err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(points))

	for _, point := range points {
		docs = append(docs, pointToDocument(point))
	}

	return docs, nil
}

func pointToDocument(point qdrant.Point) Document {
	doc := Document{ID: fmt.Sprintf("%v", point.ID)}

	doc.Content, _ = point.Payload["content"].(string)
	doc.Metadata.Date, _ = point.Payload["date"].(string)

	if keywords, ok := point.Payload["keywords"].([]any); ok {
		for _, keyword := range keywords {
			if s, ok := keyword.(string); ok {
				doc.Metadata.Keywords = append(doc.Metadata.Keywords, s)
			}
		}
	}

	return doc
}
