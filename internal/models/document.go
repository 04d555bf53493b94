package models

// RawDocument is one uploaded resume held entirely in memory. It lives for a
// single parse request and is discarded after text extraction.
type RawDocument struct {
	Filename  string
	MediaType string
	Data      []byte
}

// TextChunk is one cleaned paragraph of the extracted resume text. Position
// is the index within the filtered chunk sequence; the chunk at position 0
// is the document header and usually carries the contact block.
type TextChunk struct {
	Position int
	Text     string
	IsHeader bool
}
