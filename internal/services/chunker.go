package services

import (
	"regexp"
	"strings"

	"conductum/ats-api/internal/models"
)

type TextChunker interface {
	ChunkText(text string) []models.TextChunk
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// Paragraph boundary: a run of two or more newlines, CRLF included.
var paragraphBoundary = regexp.MustCompile(`(?:\r?\n){2,}`)

// ChunkText splits raw resume text into cleaned paragraph chunks. Candidates
// that clean down to nothing are dropped; position 0 of the surviving list is
// the header chunk. A document with no blank-line structure becomes a single
// chunk.
func (tc *textChunker) ChunkText(text string) []models.TextChunk {
	candidates := paragraphBoundary.Split(text, -1)

	chunks := make([]models.TextChunk, 0, len(candidates))
	for _, candidate := range candidates {
		cleaned := CleanText(candidate)
		if cleaned == "" {
			continue
		}

		position := len(chunks)
		chunks = append(chunks, models.TextChunk{
			Position: position,
			Text:     cleaned,
			IsHeader: position == 0,
		})
	}

	return chunks
}

// CleanText strips C0/C1 control characters (U+0000-U+001F, U+007F-U+009F),
// collapses whitespace runs to single spaces and trims.
func CleanText(text string) string {
	stripped := strings.Map(func(r rune) rune {
		if r <= 0x1F || (r >= 0x7F && r <= 0x9F) {
			return -1
		}
		return r
	}, text)

	return strings.Join(strings.Fields(stripped), " ")
}
