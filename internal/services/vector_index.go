package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"conductum/ats-api/internal/models"
)

// Embedder turns text into a vector. Index build and probe query must go
// through the same Embedder instance; mixing models makes similarity scores
// meaningless.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// IndexHandle identifies one ephemeral collection. It is owned by exactly one
// pipeline run: created, queried and deleted by the same request.
type IndexHandle struct {
	Name    string
	deleted bool
}

type VectorIndexService interface {
	CreateIndex(ctx context.Context) (*IndexHandle, error)
	AddChunks(ctx context.Context, handle *IndexHandle, chunks []models.TextChunk) error
	Query(ctx context.Context, handle *IndexHandle, probeText string, topK int) ([]string, error)
	// DeleteIndex is best-effort: failures are logged and swallowed because
	// cleanup must never fail a request whose extraction already succeeded.
	DeleteIndex(ctx context.Context, handle *IndexHandle)
}

type qdrantIndexService struct {
	client     *qdrant.Client
	embedder   Embedder
	vectorSize uint64
	log        *zap.Logger
}

func NewQdrantIndexService(urlStr, apiKey string, embedder Embedder, log *zap.Logger) (VectorIndexService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantIndexService{
		client:     client,
		embedder:   embedder,
		vectorSize: 768, // text-embedding-004 embedding size
		log:        log,
	}, nil
}

// CreateIndex implements VectorIndexService. The collection name carries a
// nanosecond suffix so concurrent requests never collide.
func (q *qdrantIndexService) CreateIndex(ctx context.Context) (*IndexHandle, error) {
	name := fmt.Sprintf("resume_%d", time.Now().UnixNano())

	err := q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}

	return &IndexHandle{Name: name}, nil
}

// AddChunks implements VectorIndexService.
func (q *qdrantIndexService) AddChunks(ctx context.Context, handle *IndexHandle, chunks []models.TextChunk) error {
	points := make([]*qdrant.PointStruct, 0, len(chunks))

	for _, chunk := range chunks {
		embedding, err := q.embedder.GenerateEmbedding(ctx, chunk.Text)
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", chunk.Position, err)
		}

		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewIDNum(uint64(chunk.Position)),
			Vectors: qdrant.NewVectors(embedding...),
			Payload: qdrant.NewValueMap(map[string]interface{}{
				"chunk_id":  fmt.Sprintf("chunk_%d", chunk.Position),
				"position":  chunk.Position,
				"is_header": chunk.IsHeader,
				"text":      chunk.Text,
			}),
		})
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: handle.Name,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}

	return nil
}

// Query implements VectorIndexService.
func (q *qdrantIndexService) Query(ctx context.Context, handle *IndexHandle, probeText string, topK int) ([]string, error) {
	embedding, err := q.embedder.GenerateEmbedding(ctx, probeText)
	if err != nil {
		return nil, fmt.Errorf("failed to embed probe: %w", err)
	}

	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: handle.Name,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(topK)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query collection: %w", err)
	}

	var texts []string
	for _, point := range searchResult {
		if text, ok := point.Payload["text"]; ok {
			if val, ok := text.GetKind().(*qdrant.Value_StringValue); ok {
				texts = append(texts, val.StringValue)
			}
		}
	}

	return texts, nil
}

// DeleteIndex implements VectorIndexService. Safe to call twice and safe to
// call with a nil handle (index creation never succeeded).
func (q *qdrantIndexService) DeleteIndex(ctx context.Context, handle *IndexHandle) {
	if handle == nil || handle.deleted {
		return
	}

	if err := q.client.DeleteCollection(ctx, handle.Name); err != nil {
		// Stale collections are a bounded leak, reaped out-of-band.
		q.log.Warn("failed to delete ephemeral collection",
			zap.String("collection", handle.Name),
			zap.Error(err),
		)
		return
	}

	handle.deleted = true
}
