// Package main provides roastctl, the command line companion of the Resume Roaster API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"google.golang.org/genai"

	"alfredoptarigan/resume-roaster/internal/config"
	"alfredoptarigan/resume-roaster/internal/services"
)

var rootCmd = &cobra.Command{
	Use:   "roastctl",
	Short: "Resume Roaster command line tools",
	Long:  "roastctl analyzes local resume files and loads reference guidance into the vector store.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newGeminiService(ctx context.Context, cfg *config.Config) (services.GeminiService, error) {
	return services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:         cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		EmbedModel:     cfg.Gemini.EmbedModel,
		Timeout:        cfg.Gemini.Timeout,
		MaxAttempts:    cfg.Gemini.MaxAttempts,
		RetryDelay:     cfg.Gemini.RetryDelay,
		Temperature:    cfg.Gemini.Temperature,
		SafetySettings: services.SafetySettings(genai.HarmBlockThreshold(cfg.Gemini.SafetyThreshold)),
	})
}
