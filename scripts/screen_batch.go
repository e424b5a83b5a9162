package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"screenerpro/engine/internal/config"
	"screenerpro/engine/internal/screening"
	"screenerpro/engine/internal/services"
)

// screen_batch ranks a directory of resumes against a job description and
// writes the result to an XLSX report. It runs fully offline unless
// GEMINI_API_KEY is set.
func main() {
	var (
		resumeDir = flag.String("dir", "./resumes", "directory of resume files (pdf, png, jpg)")
		jdPath    = flag.String("jd", "", "job description file (txt or pdf)")
		outPath   = flag.String("out", "./screening_report.xlsx", "output XLSX path")
		jobTitle  = flag.String("title", "", "job title for the report header")
		high      = flag.String("high", "", "comma-separated high priority skills")
		medium    = flag.String("medium", "", "comma-separated medium priority skills")
	)
	flag.Parse()

	if *jdPath == "" {
		log.Fatal("❌ -jd is required")
	}

	cfg := config.Load()
	ctx := context.Background()

	ocrEngine := services.NewTesseractEngine(cfg.Screening.TesseractPath, cfg.Screening.PdftoppmPath)
	if !ocrEngine.Available() {
		log.Println("⚠️  tesseract/pdftoppm not found, scanned resumes will fail extraction")
	}
	extractor := services.NewTextExtractorService(ocrEngine, cfg.Screening.MinTextYield)

	var embedder services.EmbeddingService
	if cfg.Gemini.APIKey != "" {
		var err error
		embedder, err = services.NewGeminiEmbedder(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini embedder: %v", err)
		}
	} else {
		embedder = services.NewLocalEmbedder()
		log.Println("⚠️  GEMINI_API_KEY not set, using local embedder")
	}

	strategy, warning := screening.SelectStrategy(cfg.Screening.ModelPath)
	if warning != "" {
		log.Printf("⚠️  %s\n", warning)
	}

	pipeline := services.NewPipelineService(
		extractor, embedder, screening.DefaultVocabulary(), strategy, cfg.Screening.Concurrency)

	jdText, err := readJobDescription(ctx, extractor, *jdPath)
	if err != nil {
		log.Fatalf("❌ Failed to read job description: %v", err)
	}

	docs, err := collectResumes(*resumeDir)
	if err != nil {
		log.Fatalf("❌ Failed to read resumes: %v", err)
	}
	if len(docs) == 0 {
		log.Fatalf("❌ No resume files found in %s", *resumeDir)
	}
	log.Printf("🚀 Screening %d resumes...\n", len(docs))

	rows, err := pipeline.Screen(ctx, services.ScreenRequest{
		Job: screening.JobRequirement{
			Text:           jdText,
			HighPriority:   splitList(*high),
			MediumPriority: splitList(*medium),
		},
		MaxExperience: cfg.Screening.MaxExperienceYears,
		Documents:     docs,
	})
	if err != nil {
		log.Fatalf("❌ Screening failed: %v", err)
	}

	for i, row := range rows {
		if row.Failed {
			log.Printf("  %2d. %-40s FAILED: %s\n", i+1, row.FileName, row.Assessment)
			continue
		}
		log.Printf("  %2d. %-40s %6.1f  %s\n", i+1, row.FileName, row.Score, row.Tier)
	}

	report := services.NewReportService()
	if err := report.WriteXLSX(rows, *jobTitle, *outPath); err != nil {
		log.Fatalf("❌ Failed to write report: %v", err)
	}
	log.Printf("✅ Report written to %s\n", *outPath)
}

func readJobDescription(ctx context.Context, extractor services.TextExtractorService, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if mediaType := services.MediaTypeForFile(path); mediaType != "" {
		return extractor.ExtractText(ctx, data, mediaType)
	}
	// Anything else is treated as plain text.
	return string(data), nil
}

func collectResumes(dir string) ([]services.InputDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var docs []services.InputDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		mediaType := services.MediaTypeForFile(entry.Name())
		if mediaType == "" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		docs = append(docs, services.InputDocument{
			FileName:  entry.Name(),
			MediaType: mediaType,
			Data:      data,
		})
	}
	return docs, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
