package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"conductum/ats-api/internal/config"
	"conductum/ats-api/internal/models"
)

// ProfileGenerator is the completion capability the parser consumes.
type ProfileGenerator interface {
	GenerateJSONWithRetry(ctx context.Context, prompt string, systemInstruction string, maxRetries int) (string, error)
}

type ResumeParserService interface {
	ParseResume(ctx context.Context, doc *models.RawDocument) (*models.ExtractedProfile, error)
}

type resumeParserService struct {
	pdfParser     PDFParserService
	chunker       TextChunker
	index         VectorIndexService
	retriever     Retriever
	generator     ProfileGenerator
	promptBuilder *PromptBuilder
	normalizer    *ProfileNormalizer
	timeouts      config.ParserConfig
	maxRetries    int
	log           *zap.Logger
}

func NewResumeParserService(
	pdfParser PDFParserService,
	chunker TextChunker,
	index VectorIndexService,
	generator ProfileGenerator,
	timeouts config.ParserConfig,
	maxRetries int,
	log *zap.Logger,
) ResumeParserService {
	return &resumeParserService{
		pdfParser:     pdfParser,
		chunker:       chunker,
		index:         index,
		retriever:     NewRetriever(index),
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		normalizer:    NewProfileNormalizer(),
		timeouts:      timeouts,
		maxRetries:    maxRetries,
		log:           log,
	}
}

// ParseResume runs the full extraction pipeline for one uploaded resume.
// Stages run strictly in order; the ephemeral index created mid-pipeline is
// released on every exit path once it exists.
func (s *resumeParserService) ParseResume(ctx context.Context, doc *models.RawDocument) (*models.ExtractedProfile, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	text, err := s.pdfParser.ExtractText(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("extract text: %w", err)
	}

	chunks := s.chunker.ChunkText(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document cleaned to nothing", ErrUnreadableDocument)
	}

	s.log.Debug("resume chunked",
		zap.String("filename", doc.Filename),
		zap.Int("chunks", len(chunks)),
	)

	indexCtx, cancelIndex := context.WithTimeout(ctx, s.timeouts.IndexTimeout)
	defer cancelIndex()

	handle, err := s.index.CreateIndex(indexCtx)
	if err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	// Cleanup survives caller cancellation; failures are logged inside
	// DeleteIndex and never surface.
	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeouts.IndexTimeout)
		defer cancel()
		s.index.DeleteIndex(cleanupCtx, handle)
	}()

	embedCtx, cancelEmbed := context.WithTimeout(ctx, s.timeouts.EmbedTimeout)
	defer cancelEmbed()

	if err := s.index.AddChunks(embedCtx, handle, chunks); err != nil {
		return nil, fmt.Errorf("add chunks: %w", err)
	}

	queryCtx, cancelQuery := context.WithTimeout(ctx, s.timeouts.EmbedTimeout)
	defer cancelQuery()

	retrieved, err := s.retriever.Retrieve(queryCtx, handle, chunks)
	if err != nil {
		return nil, fmt.Errorf("retrieve: %w", err)
	}

	prompt := s.promptBuilder.BuildExtractionPrompt(retrieved)

	genCtx, cancelGen := context.WithTimeout(ctx, s.timeouts.GenerateTimeout)
	defer cancelGen()

	response, err := s.generator.GenerateJSONWithRetry(genCtx, prompt, extractionSystemInstruction, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	return s.normalizer.Normalize(response), nil
}

// validateDocument accepts only a declared PDF media type together with a
// .pdf filename; either check failing alone is a rejection.
func validateDocument(doc *models.RawDocument) error {
	if doc == nil || len(doc.Data) == 0 {
		return fmt.Errorf("%w: empty document", ErrUnsupportedMediaType)
	}

	mediaType := strings.ToLower(strings.TrimSpace(doc.MediaType))
	if idx := strings.Index(mediaType, ";"); idx != -1 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}

	if mediaType != "application/pdf" {
		return fmt.Errorf("%w: got %q", ErrUnsupportedMediaType, doc.MediaType)
	}

	if !strings.HasSuffix(strings.ToLower(doc.Filename), ".pdf") {
		return fmt.Errorf("%w: filename %q", ErrUnsupportedMediaType, doc.Filename)
	}

	return nil
}
