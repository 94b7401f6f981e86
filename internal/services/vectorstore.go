package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

type VectorStoreService interface {
	InitCollection() error
	IndexAnalysis(ctx context.Context, analysisID uuid.UUID, resumeText, jobExcerpt string, matchScore float64) error
	SearchAnalyses(ctx context.Context, query string, limit int) ([]AnalysisMatch, error)
}

// AnalysisMatch is one hit from a semantic search over past analyses.
type AnalysisMatch struct {
	AnalysisID string  `json:"analysis_id"`
	Score      float32 `json:"score"`
	JobExcerpt string  `json:"job_excerpt"`
	MatchScore float64 `json:"match_score"`
}

type vectorStoreService struct {
	client         *qdrant.Client
	gemini         GeminiService
	collectionName string
	vectorSize     uint64
}

func NewVectorStoreService(urlStr, apiKey, collectionName string, gemini GeminiService) (VectorStoreService, error) {
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

	return &vectorStoreService{
		client:         client,
		gemini:         gemini,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements VectorStoreService.
func (v *vectorStoreService) InitCollection() error {
	ctx := context.Background()

	exists, err := v.client.CollectionExists(ctx, v.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = v.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: v.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     v.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", v.collectionName)
	return nil
}

// IndexAnalysis implements VectorStoreService.
func (v *vectorStoreService) IndexAnalysis(ctx context.Context, analysisID uuid.UUID, resumeText, jobExcerpt string, matchScore float64) error {
	embedding, err := v.gemini.GenerateEmbedding(ctx, resumeText)
	if err != nil {
		return fmt.Errorf("failed to embed analysis: %w", err)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(analysisID.ID())),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"analysis_id": analysisID.String(),
			"job_excerpt": jobExcerpt,
			"match_score": matchScore,
		}),
	}

	_, err = v.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: v.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert point: %w", err)
	}

	return nil
}

// SearchAnalyses implements VectorStoreService.
func (v *vectorStoreService) SearchAnalyses(ctx context.Context, query string, limit int) ([]AnalysisMatch, error) {
	embedding, err := v.gemini.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	searchResult, err := v.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: v.collectionName,
		Query:          qdrant.NewQuery(embedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})

	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]AnalysisMatch, 0, len(searchResult))
	for _, point := range searchResult {
		payload := point.Payload

		match := AnalysisMatch{
			Score: point.Score,
		}

		if id, ok := payload["analysis_id"]; ok {
			if val, ok := id.GetKind().(*qdrant.Value_StringValue); ok {
				match.AnalysisID = val.StringValue
			}
		}

		if excerpt, ok := payload["job_excerpt"]; ok {
			if val, ok := excerpt.GetKind().(*qdrant.Value_StringValue); ok {
				match.JobExcerpt = val.StringValue
			}
		}

		if score, ok := payload["match_score"]; ok {
			if val, ok := score.GetKind().(*qdrant.Value_DoubleValue); ok {
				match.MatchScore = val.DoubleValue
			}
		}

		results = append(results, match)
	}

	return results, nil
}
