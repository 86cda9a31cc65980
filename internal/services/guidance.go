package services

import (
	"context"
	"fmt"
	"log"
)

// GuidanceRetriever returns reference material to add to the analysis prompt.
// An empty string means no guidance.
type GuidanceRetriever interface {
	Retrieve(ctx context.Context, resumeText string) (string, error)
}

// VectorSearcher is the part of QdrantService the retriever needs.
type VectorSearcher interface {
	SearchSimilar(ctx context.Context, queryEmbedding []float32, docTypes []string, limit int) ([]SearchResult, error)
}

type ragRetriever struct {
	embedder EmbeddingClient
	store    VectorSearcher
	docTypes []string
	topK     int
}

func NewGuidanceRetriever(embedder EmbeddingClient, store VectorSearcher, topK int) GuidanceRetriever {
	if topK <= 0 {
		topK = 3
	}
	return &ragRetriever{
		embedder: embedder,
		store:    store,
		docTypes: []string{DocTypeResumeGuide, DocTypeIndustryKeywords},
		topK:     topK,
	}
}

// Retrieve implements GuidanceRetriever.
func (r *ragRetriever) Retrieve(ctx context.Context, resumeText string) (string, error) {
	embedding, err := r.embedder.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		return "", fmt.Errorf("failed to embed resume: %w", err)
	}

	results, err := r.store.SearchSimilar(ctx, embedding, r.docTypes, r.topK)
	if err != nil {
		return "", fmt.Errorf("failed to search reference guidance: %w", err)
	}

	log.Printf("📚 Found %d reference chunks", len(results))
	return FormatGuidance(results), nil
}
