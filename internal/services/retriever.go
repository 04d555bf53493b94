package services

import (
	"context"
	"fmt"

	"conductum/ats-api/internal/models"
)

const (
	// retrievalProbe is a deliberately broad multi-topic anchor so one
	// query surfaces chunks touching every profile section instead of
	// over-fitting a single topic.
	retrievalProbe = "skills education experience projects contact work"

	retrievalTopK = 10
)

type Retriever interface {
	Retrieve(ctx context.Context, handle *IndexHandle, chunks []models.TextChunk) ([]string, error)
}

type retriever struct {
	index VectorIndexService
}

func NewRetriever(index VectorIndexService) Retriever {
	return &retriever{index: index}
}

// Retrieve implements Retriever. The header chunk is force-included because
// contact fields are usually front-loaded and can be outranked by denser text
// blocks.
func (r *retriever) Retrieve(ctx context.Context, handle *IndexHandle, chunks []models.TextChunk) ([]string, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks to retrieve from")
	}

	topK := len(chunks)
	if topK > retrievalTopK {
		topK = retrievalTopK
	}

	hits, err := r.index.Query(ctx, handle, retrievalProbe, topK)
	if err != nil {
		return nil, fmt.Errorf("similarity query failed: %w", err)
	}

	combined := append([]string{chunks[0].Text}, hits...)

	return dedupePreservingOrder(combined), nil
}

func dedupePreservingOrder(texts []string) []string {
	seen := make(map[string]struct{}, len(texts))
	unique := make([]string, 0, len(texts))

	for _, text := range texts {
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		unique = append(unique, text)
	}

	return unique
}
