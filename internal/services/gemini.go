package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"
)

// CompletionClient turns a prompt into raw model text.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiService interface {
	CompletionClient
	EmbeddingClient
}

type GeminiOptions struct {
	APIKey         string
	Model          string
	EmbedModel     string
	Timeout        time.Duration
	MaxAttempts    int
	RetryDelay     time.Duration
	Temperature    float32
	SafetySettings []*genai.SafetySetting
	// BaseURL overrides the API endpoint; empty means the public Gemini API.
	BaseURL string
}

type geminiService struct {
	client         *genai.Client
	modelName      string
	embedModel     string
	timeout        time.Duration
	maxAttempts    int
	retryDelay     time.Duration
	temperature    float32
	safetySettings []*genai.SafetySetting
}

// SafetySettings applies one threshold to the four content categories a
// resume roast can trip.
func SafetySettings(threshold genai.HarmBlockThreshold) []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategoryDangerousContent,
		genai.HarmCategorySexuallyExplicit,
	}

	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: threshold,
		})
	}
	return settings
}

func NewGeminiService(ctx context.Context, opts GeminiOptions) (GeminiService, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.SafetySettings == nil {
		opts.SafetySettings = SafetySettings(genai.HarmBlockThresholdBlockNone)
	}

	return &geminiService{
		client:         client,
		modelName:      opts.Model,
		embedModel:     opts.EmbedModel,
		timeout:        opts.Timeout,
		maxAttempts:    opts.MaxAttempts,
		retryDelay:     opts.RetryDelay,
		temperature:    opts.Temperature,
		safetySettings: opts.SafetySettings,
	}, nil
}

// Complete implements CompletionClient.
func (g *geminiService) Complete(ctx context.Context, prompt string) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:    &temperature,
		SafetySettings: g.safetySettings,
	}

	text, attempts, err := withRetry(ctx, g.maxAttempts, g.retryDelay, func(ctx context.Context) (string, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		return g.generateOnce(attemptCtx, prompt, config)
	})
	if err != nil {
		log.Printf("❌ Gemini API error: %v", err)
		return "", &CompletionError{Attempts: attempts, Err: err}
	}

	log.Printf("📊 Gemini response received: %d characters", len(text))
	return text, nil
}

func (g *geminiService) generateOnce(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", nil
	}

	// An empty answer is handed on; the parser turns it into the fallback.
	text := resp.Text()
	if strings.TrimSpace(text) == "" && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w (%s)", errPromptBlocked, resp.PromptFeedback.BlockReason)
	}

	return text, nil
}

// GenerateEmbedding implements EmbeddingClient.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	text = truncateRunes(text, maxEmbeddingRunes)

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

const maxEmbeddingRunes = 40000

func truncateRunes(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}

// withRetry runs fn up to maxAttempts times, retrying only transient errors.
// It returns the number of attempts made.
func withRetry(ctx context.Context, maxAttempts int, delay time.Duration, fn func(context.Context) (string, error)) (string, int, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			return result, attempt, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", attempt, fmt.Errorf("context cancelled: %w", ctx.Err())
		}
		if attempt == maxAttempts || !isTransientError(err) {
			return "", attempt, lastErr
		}

		log.Printf("⚠️ Attempt %d failed: %v. Retrying...", attempt, err)

		select {
		case <-ctx.Done():
			return "", attempt, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay * time.Duration(attempt)):
		}
	}

	return "", maxAttempts, lastErr
}

func isTransientError(err error) bool {
	if err == nil || errors.Is(err, errPromptBlocked) {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
