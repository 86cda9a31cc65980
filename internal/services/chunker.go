package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// TextChunker splits reference documents into pieces small enough to embed.
type TextChunker interface {
	Chunk(text string) []string
	ChunkDocument(source, docType, text string) []ReferenceChunk
}

type textChunker struct {
	maxRunes int
	overlap  int
}

func NewTextChunker(maxRunes, overlap int) TextChunker {
	if maxRunes <= 0 {
		maxRunes = DefaultChunkSize
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxRunes {
		overlap = maxRunes / 4
	}
	return &textChunker{maxRunes: maxRunes, overlap: overlap}
}

// ChunkDocument implements TextChunker.
func (tc *textChunker) ChunkDocument(source, docType, text string) []ReferenceChunk {
	pieces := tc.Chunk(text)
	chunks := make([]ReferenceChunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, ReferenceChunk{
			Source:  source,
			DocType: docType,
			Index:   i,
			Text:    piece,
		})
	}
	return chunks
}

// Chunk implements TextChunker. Paragraphs are packed together until the
// limit; a paragraph longer than the limit is packed sentence by sentence.
func (tc *textChunker) Chunk(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	b := &chunkBuilder{maxRunes: tc.maxRunes, overlap: tc.overlap}
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if utf8.RuneCountInString(para) <= tc.maxRunes {
			b.add(para, "\n\n")
			continue
		}

		for _, sentence := range splitIntoSentences(para) {
			for _, piece := range splitToLimit(sentence, tc.maxRunes) {
				b.add(piece, " ")
			}
		}
	}

	return b.finish()
}

type chunkBuilder struct {
	maxRunes int
	overlap  int
	current  strings.Builder
	chunks   []string
}

func (b *chunkBuilder) add(piece, sep string) {
	needed := utf8.RuneCountInString(sep + piece)
	if b.current.Len() > 0 && b.runes()+needed > b.maxRunes {
		b.flush(b.maxRunes - needed)
	}

	if b.current.Len() > 0 {
		b.current.WriteString(sep)
	}
	b.current.WriteString(piece)
}

// flush closes the current chunk and seeds the next one with at most room
// runes of its tail.
func (b *chunkBuilder) flush(room int) {
	prev := b.current.String()
	b.chunks = append(b.chunks, prev)
	b.current.Reset()
	b.current.WriteString(lastRunes(prev, min(b.overlap, room)))
}

func (b *chunkBuilder) finish() []string {
	if strings.TrimSpace(b.current.String()) != "" {
		b.chunks = append(b.chunks, b.current.String())
	}
	return b.chunks
}

func (b *chunkBuilder) runes() int {
	return utf8.RuneCountInString(b.current.String())
}

// splitIntoSentences keeps the terminating punctuation on each sentence.
func splitIntoSentences(text string) []string {
	var result []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				result = append(result, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		result = append(result, s)
	}
	return result
}

// splitToLimit cuts text into pieces of at most limit runes, preferring to
// cut at whitespace.
func splitToLimit(text string, limit int) []string {
	runes := []rune(text)
	var parts []string

	for len(runes) > limit {
		cut := limit
		for i := limit; i > limit/2; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}

		if part := strings.TrimSpace(string(runes[:cut])); part != "" {
			parts = append(parts, part)
		}
		runes = runes[cut:]
		for len(runes) > 0 && unicode.IsSpace(runes[0]) {
			runes = runes[1:]
		}
	}

	if rest := strings.TrimSpace(string(runes)); rest != "" {
		parts = append(parts, rest)
	}
	return parts
}

func lastRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	// A chunk no longer than the overlap would be repeated whole.
	runes := []rune(text)
	if len(runes) <= n {
		return ""
	}

	return strings.TrimSpace(string(runes[len(runes)-n:]))
}
