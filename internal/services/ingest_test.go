package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIngestor(parser DocumentParserService, embedder *fakeEmbedder, store *fakeStore) *Ingestor {
	return NewIngestor(parser, NewTextChunker(40, 0), embedder, store, 3)
}

func TestIngestFile(t *testing.T) {
	parser := &fakeParser{text: strings.Join([]string{
		"Lead every bullet with a strong verb.",
		"Quantify outcomes wherever possible.",
		"Keep the summary under four lines.",
	}, "\n\n")}
	embedder := &fakeEmbedder{}
	store := newFakeStore()
	store.chunks["stale"] = ReferenceChunk{Source: "guide.pdf", Index: 9, Text: "old"}

	report, err := newTestIngestor(parser, embedder, store).IngestFile(context.Background(), "/docs/guide.pdf", DocTypeResumeGuide)

	require.NoError(t, err)
	assert.Equal(t, &IngestReport{Source: "guide.pdf", Chunks: 3, Stored: 3}, report)
	assert.Equal(t, []string{"guide.pdf"}, store.deleted)
	assert.Len(t, store.chunks, 3)
	assert.Len(t, embedder.texts, 3)
	for _, chunk := range store.chunks {
		assert.Equal(t, DocTypeResumeGuide, chunk.DocType)
	}
}

func TestIngestFile_CountsChunkFailures(t *testing.T) {
	parser := &fakeParser{text: "One paragraph of guidance."}
	embedder := &fakeEmbedder{err: errors.New("quota exceeded")}

	report, err := newTestIngestor(parser, embedder, newFakeStore()).IngestFile(context.Background(), "guide.pdf", DocTypeResumeGuide)

	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed)
	assert.Zero(t, report.Stored)
}

func TestIngestFile_Rejects(t *testing.T) {
	t.Run("unknown doc type", func(t *testing.T) {
		parser := &fakeParser{text: "text"}
		_, err := newTestIngestor(parser, &fakeEmbedder{}, newFakeStore()).IngestFile(context.Background(), "guide.pdf", "job_description")

		assert.Error(t, err)
		assert.Zero(t, parser.calls)
	})

	t.Run("empty document", func(t *testing.T) {
		store := newFakeStore()
		_, err := newTestIngestor(&fakeParser{text: "  "}, &fakeEmbedder{}, store).IngestFile(context.Background(), "guide.pdf", DocTypeResumeGuide)

		assert.ErrorIs(t, err, ErrEmptyContent)
		assert.Empty(t, store.deleted)
	})
}

func TestIngestDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keywords.docx"), buildDocx(t, testDocumentXML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.pdf"), []byte("not a pdf"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	store := newFakeStore()
	ingestor := NewIngestor(NewDocumentParserService(), NewTextChunker(1000, 0), &fakeEmbedder{}, store, 2)

	reports, failed, err := ingestor.IngestDir(context.Background(), dir, DocTypeIndustryKeywords)

	require.NoError(t, err)
	assert.Equal(t, 1, failed)
	require.Len(t, reports, 1)
	assert.Equal(t, "keywords.docx", reports[0].Source)
	assert.Equal(t, 1, reports[0].Stored)
}

func TestIngestDir_MissingDirectory(t *testing.T) {
	ingestor := newTestIngestor(&fakeParser{}, &fakeEmbedder{}, newFakeStore())

	_, _, err := ingestor.IngestDir(context.Background(), filepath.Join(t.TempDir(), "missing"), DocTypeResumeGuide)

	assert.Error(t, err)
}
