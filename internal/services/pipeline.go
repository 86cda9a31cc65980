package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"strings"
	"time"

	"alfredoptarigan/resume-roaster/internal/models"
)

type Mode string

const (
	// ModeAnalysis returns the structured AnalysisResult.
	ModeAnalysis Mode = "analysis"
	// ModeRoast returns the model's plain roast text.
	ModeRoast Mode = "roast"
)

type PipelineOptions struct {
	Mode         Mode
	MaxFileSize  int64
	AllowedTypes []string
}

func AnalysisPipelineOptions(maxFileSize int64) PipelineOptions {
	return PipelineOptions{
		Mode:         ModeAnalysis,
		MaxFileSize:  maxFileSize,
		AllowedTypes: []string{models.MediaTypePDF, models.MediaTypeDOCX, models.MediaTypeDOC},
	}
}

func RoastPipelineOptions(maxFileSize int64) PipelineOptions {
	return PipelineOptions{
		Mode:         ModeRoast,
		MaxFileSize:  maxFileSize,
		AllowedTypes: []string{models.MediaTypePDF},
	}
}

// Outcome is what one upload produced. Analysis is set in ModeAnalysis and
// Roast in ModeRoast.
type Outcome struct {
	Analysis     *models.AnalysisResult
	Roast        string
	UsedFallback bool
	MediaType    string
	Size         int64
	Duration     time.Duration
}

// Pipeline turns an uploaded file into an analysis. It keeps no state between
// calls and is safe for concurrent use.
type Pipeline struct {
	parser        DocumentParserService
	completion    CompletionClient
	promptBuilder *PromptBuilder
	response      *ResponseParser
	guidance      GuidanceRetriever
	opts          PipelineOptions
}

// NewPipeline wires the pipeline collaborators. guidance may be nil.
func NewPipeline(
	parser DocumentParserService,
	completion CompletionClient,
	response *ResponseParser,
	guidance GuidanceRetriever,
	opts PipelineOptions,
) *Pipeline {
	return &Pipeline{
		parser:        parser,
		completion:    completion,
		promptBuilder: NewPromptBuilder(),
		response:      response,
		guidance:      guidance,
		opts:          opts,
	}
}

func (p *Pipeline) Mode() Mode {
	return p.opts.Mode
}

func (p *Pipeline) MaxFileSize() int64 {
	return p.opts.MaxFileSize
}

// Process validates and reads an uploaded file, then analyzes it.
func (p *Pipeline) Process(ctx context.Context, file *multipart.FileHeader) (*Outcome, error) {
	if file == nil {
		return nil, ErrNoFile
	}

	mediaType := NormalizeMediaType(file.Header.Get("Content-Type"))
	if err := p.validate(mediaType, file.Size); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	// One extra byte detects a part that is larger than its header claims.
	data, err := io.ReadAll(io.LimitReader(src, p.opts.MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return p.ProcessDocument(ctx, &models.UploadedDocument{
		Filename:  file.Filename,
		MediaType: mediaType,
		Size:      int64(len(data)),
		Data:      data,
	})
}

// ProcessDocument runs validation, extraction, prompting and parsing on a
// document that is already in memory.
func (p *Pipeline) ProcessDocument(ctx context.Context, doc *models.UploadedDocument) (*Outcome, error) {
	if doc == nil {
		return nil, ErrNoFile
	}

	start := time.Now()
	if err := p.validate(doc.MediaType, doc.Size); err != nil {
		return nil, err
	}

	log.Printf("📄 Extracting text from %s (%s, %d bytes)", doc.Filename, doc.MediaType, doc.Size)
	text, err := p.parser.ExtractText(doc.Data, doc.MediaType)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyContent
	}

	outcome := &Outcome{
		MediaType: doc.MediaType,
		Size:      doc.Size,
	}

	switch p.opts.Mode {
	case ModeRoast:
		log.Println("🤖 Generating roast with LLM...")
		raw, err := p.completion.Complete(ctx, p.promptBuilder.BuildRoastPrompt(text))
		if err != nil {
			return nil, err
		}
		outcome.Roast = strings.TrimSpace(raw)
	default:
		prompt := p.promptBuilder.BuildAnalysisPromptWithGuidance(text, p.retrieveGuidance(ctx, text))
		log.Printf("🤖 Analyzing resume with LLM (prompt length: %d characters)", len(prompt))

		raw, err := p.completion.Complete(ctx, prompt)
		if err != nil {
			return nil, err
		}
		outcome.Analysis, outcome.UsedFallback = p.response.Parse(raw)
	}

	outcome.Duration = time.Since(start)
	log.Printf("✅ Resume processed in %s", outcome.Duration)

	return outcome, nil
}

func (p *Pipeline) validate(mediaType string, size int64) error {
	if !p.allows(mediaType) {
		return fmt.Errorf("%w: %q", ErrUnsupportedType, mediaType)
	}

	if size > p.opts.MaxFileSize {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrFileTooLarge, size, p.opts.MaxFileSize)
	}

	return nil
}

func (p *Pipeline) allows(mediaType string) bool {
	for _, allowed := range p.opts.AllowedTypes {
		if mediaType == allowed {
			return true
		}
	}
	return false
}

func (p *Pipeline) retrieveGuidance(ctx context.Context, text string) string {
	if p.guidance == nil {
		return ""
	}

	log.Println("🔍 Retrieving reference guidance...")
	guidance, err := p.guidance.Retrieve(ctx, text)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to retrieve guidance: %v\n", err)
		return ""
	}

	return guidance
}

// NormalizeMediaType drops parameters and case from a Content-Type value.
func NormalizeMediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}
