package main

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-roaster/internal/services"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Load reference documents into the guidance store",
	Long:  "Extract, chunk and embed every PDF/DOCX file in a directory and upsert the chunks into Qdrant.",
	RunE:  runIngest,
}

var (
	ingestDir         string
	ingestDocType     string
	ingestChunkSize   int
	ingestOverlap     int
	ingestConcurrency int
)

func init() {
	ingestCmd.Flags().StringVarP(&ingestDir, "dir", "d", "./reference_docs", "Directory containing reference documents")
	ingestCmd.Flags().StringVarP(&ingestDocType, "type", "t", services.DocTypeResumeGuide, "Document type: resume_guide or industry_keywords")
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", services.DefaultChunkSize, "Maximum characters per chunk")
	ingestCmd.Flags().IntVar(&ingestOverlap, "overlap", services.DefaultChunkOverlap, "Characters repeated between chunks")
	ingestCmd.Flags().IntVar(&ingestConcurrency, "concurrency", 4, "Concurrent embedding requests")

	rootCmd.AddCommand(ingestCmd)
}

func runIngest(_ *cobra.Command, _ []string) error {
	if !services.ValidDocType(ingestDocType) {
		return fmt.Errorf("--type must be %s or %s", services.DocTypeResumeGuide, services.DocTypeIndustryKeywords)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log.Println("🚀 Starting document ingestion...")
	ctx := context.Background()

	geminiService, err := newGeminiService(ctx, cfg)
	if err != nil {
		return err
	}

	qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
	if err != nil {
		return err
	}
	defer qdrantService.Close()

	if err := qdrantService.InitCollection(ctx); err != nil {
		return err
	}

	ingestor := services.NewIngestor(
		services.NewDocumentParserService(),
		services.NewTextChunker(ingestChunkSize, ingestOverlap),
		geminiService,
		qdrantService,
		ingestConcurrency,
	)

	reports, failCount, err := ingestor.IngestDir(ctx, ingestDir, ingestDocType)
	if err != nil {
		return err
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	for _, report := range reports {
		log.Printf("   %s: %d/%d chunks stored", report.Source, report.Stored, report.Chunks)
	}
	log.Printf("   ✅ Successful: %d documents", len(reports))
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		return fmt.Errorf("%d documents failed to ingest", failCount)
	}

	log.Println("✅ All documents ingested successfully!")
	return nil
}
