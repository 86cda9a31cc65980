package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ChunkStore is the write side of the reference guidance store.
type ChunkStore interface {
	UpsertChunk(ctx context.Context, chunk ReferenceChunk, embedding []float32) error
	DeleteSource(ctx context.Context, source string) error
}

type IngestReport struct {
	Source string
	Chunks int
	Stored int
	Failed int
}

// Ingestor loads reference documents into the guidance store.
type Ingestor struct {
	parser      DocumentParserService
	chunker     TextChunker
	embedder    EmbeddingClient
	store       ChunkStore
	concurrency int
}

func NewIngestor(parser DocumentParserService, chunker TextChunker, embedder EmbeddingClient, store ChunkStore, concurrency int) *Ingestor {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Ingestor{
		parser:      parser,
		chunker:     chunker,
		embedder:    embedder,
		store:       store,
		concurrency: concurrency,
	}
}

func ValidDocType(docType string) bool {
	return docType == DocTypeResumeGuide || docType == DocTypeIndustryKeywords
}

// IngestDir ingests every PDF, DOCX and DOC file directly inside dir, in name
// order. A file that fails is reported and skipped.
func (i *Ingestor) IngestDir(ctx context.Context, dir, docType string) ([]IngestReport, int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || MediaTypeFromFilename(entry.Name()) == "" {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	var reports []IngestReport
	failed := 0
	for _, path := range paths {
		report, err := i.IngestFile(ctx, path, docType)
		if err != nil {
			log.Printf("   ❌ Failed to ingest %s: %v", path, err)
			failed++
			continue
		}
		reports = append(reports, *report)
	}

	return reports, failed, nil
}

// IngestFile replaces every stored chunk of the file with freshly embedded
// ones. Chunks that fail to embed or store are counted, not fatal.
func (i *Ingestor) IngestFile(ctx context.Context, path, docType string) (*IngestReport, error) {
	if !ValidDocType(docType) {
		return nil, fmt.Errorf("unknown document type %q", docType)
	}

	log.Printf("\n📄 Processing: %s (%s)", path, docType)
	text, err := i.parser.ExtractFile(path)
	if err != nil {
		return nil, err
	}

	source := filepath.Base(path)
	chunks := i.chunker.ChunkDocument(source, docType, text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyContent, source)
	}
	log.Printf("   ✅ Created %d chunks from %d characters", len(chunks), len(text))

	if err := i.store.DeleteSource(ctx, source); err != nil {
		return nil, err
	}

	var stored, failed atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(i.concurrency)

	for _, chunk := range chunks {
		g.Go(func() error {
			embedding, err := i.embedder.GenerateEmbedding(gCtx, chunk.Text)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", chunk.Index+1, err)
				failed.Add(1)
				return nil
			}

			if err := i.store.UpsertChunk(gCtx, chunk, embedding); err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", chunk.Index+1, err)
				failed.Add(1)
				return nil
			}

			stored.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("ingestion cancelled: %w", err)
	}

	report := &IngestReport{
		Source: source,
		Chunks: len(chunks),
		Stored: int(stored.Load()),
		Failed: int(failed.Load()),
	}
	log.Printf("   📊 Stored %d/%d chunks", report.Stored, report.Chunks)

	return report, nil
}
