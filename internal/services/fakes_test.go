package services

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeParser struct {
	text      string
	err       error
	calls     int
	mediaType string
	size      int
}

func (f *fakeParser) ExtractText(data []byte, mediaType string) (string, error) {
	f.calls++
	f.mediaType = mediaType
	f.size = len(data)
	return f.text, f.err
}

func (f *fakeParser) ExtractFile(string) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeCompletion struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeCompletion) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

type fakeGuidance struct {
	guidance string
	err      error
	calls    int
}

func (f *fakeGuidance) Retrieve(context.Context, string) (string, error) {
	f.calls++
	return f.guidance, f.err
}

type fakeEmbedder struct {
	mu    sync.Mutex
	texts []string
	err   error
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.texts = append(f.texts, text)
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 1}, nil
}

type fakeStore struct {
	mu       sync.Mutex
	chunks   map[string]ReferenceChunk
	deleted  []string
	results  []SearchResult
	docTypes []string
	limit    int
	err      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{chunks: map[string]ReferenceChunk{}}
}

func (f *fakeStore) UpsertChunk(_ context.Context, chunk ReferenceChunk, _ []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.chunks[chunk.PointID()] = chunk
	return nil
}

func (f *fakeStore) DeleteSource(_ context.Context, source string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, source)
	for id, chunk := range f.chunks {
		if chunk.Source == source {
			delete(f.chunks, id)
		}
	}
	return nil
}

func (f *fakeStore) SearchSimilar(_ context.Context, _ []float32, docTypes []string, limit int) ([]SearchResult, error) {
	f.docTypes = docTypes
	f.limit = limit
	return f.results, f.err
}

// fileHeader builds a multipart file part the way fiber hands it over.
func fileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="resume"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	return form.File["resume"][0]
}
