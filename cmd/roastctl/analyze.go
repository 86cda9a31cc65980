package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-roaster/internal/models"
	"alfredoptarigan/resume-roaster/internal/services"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <resume-file>",
	Short: "Analyze a local PDF or DOCX resume",
	Long:  "Analyze a local resume file with the same pipeline the API uses and print the JSON result.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var analyzeRoastOnly bool

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeRoastOnly, "roast", false, "Return only the plain-text roast (PDF only)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	ctx := context.Background()
	geminiService, err := newGeminiService(ctx, cfg)
	if err != nil {
		return err
	}

	responseParser, err := services.NewResponseParser(cfg.Analysis.StrictSchema)
	if err != nil {
		return err
	}

	opts := services.AnalysisPipelineOptions(cfg.Upload.MaxFileSize)
	if analyzeRoastOnly {
		opts = services.RoastPipelineOptions(cfg.Upload.MaxFileSize)
	}
	pipeline := services.NewPipeline(services.NewDocumentParserService(), geminiService, responseParser, nil, opts)

	outcome, err := pipeline.ProcessDocument(ctx, &models.UploadedDocument{
		Filename:  filepath.Base(path),
		MediaType: services.MediaTypeFromFilename(path),
		Size:      int64(len(data)),
		Data:      data,
	})
	if err != nil {
		return err
	}

	var payload any = models.AnalysisResponse{Success: true, Data: outcome.Analysis}
	if analyzeRoastOnly {
		payload = models.RoastResponse{Message: "Success", Roast: outcome.Roast}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}
