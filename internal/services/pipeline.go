package services

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"sort"
	"sync"

	"screenerpro/engine/internal/screening"
)

// InputDocument is one raw resume handed to the pipeline.
type InputDocument struct {
	FileName  string
	MediaType string
	Data      []byte
}

// ScreenRequest is one batch: N resumes against one job description.
type ScreenRequest struct {
	Job           screening.JobRequirement
	MaxExperience float64
	Documents     []InputDocument
}

// PipelineService drives the three screening stages across a batch:
// concurrent extraction, one batched embedding call, concurrent scoring.
// Every document yields exactly one row; per-document failures become error
// rows, never batch aborts.
type PipelineService interface {
	Screen(ctx context.Context, req ScreenRequest) ([]screening.ResultRow, error)
}

type pipelineService struct {
	extractor   TextExtractorService
	embedder    EmbeddingService
	vocab       *screening.Vocabulary
	strategy    screening.Strategy
	concurrency int
}

// NewPipelineService wires the screening pipeline. Concurrency <= 0 defaults
// to the host's CPU count.
func NewPipelineService(
	extractor TextExtractorService,
	embedder EmbeddingService,
	vocab *screening.Vocabulary,
	strategy screening.Strategy,
	concurrency int,
) PipelineService {
	if concurrency <= 0 {
		concurrency = runtime.NumCPU()
	}
	if vocab == nil {
		vocab = screening.DefaultVocabulary()
	}
	return &pipelineService{
		extractor:   extractor,
		embedder:    embedder,
		vocab:       vocab,
		strategy:    strategy,
		concurrency: concurrency,
	}
}

type extractOutcome struct {
	doc  InputDocument
	text string
	err  error
}

// Screen implements PipelineService.
func (p *pipelineService) Screen(ctx context.Context, req ScreenRequest) ([]screening.ResultRow, error) {
	if req.Job.Text == "" {
		return nil, fmt.Errorf("job description is required")
	}
	maxExp := req.MaxExperience
	if maxExp <= 0 {
		maxExp = 15
	}

	// Stage 1: extraction fan-out.
	outcomes := p.extractAll(ctx, req.Documents)

	var rows []screening.ResultRow
	var extracted []extractOutcome
	for _, o := range outcomes {
		if o.err != nil {
			log.Printf("⚠️  Extraction failed for %s: %v\n", o.doc.FileName, o.err)
			rows = append(rows, errorRow(o.doc.FileName, fmt.Sprintf("text extraction failed: %v", o.err)))
			continue
		}
		extracted = append(extracted, o)
	}

	// Stage 2: one embedding for the JD, one batched call for all resumes.
	jobEmbedding, err := p.embedder.EmbedText(ctx, req.Job.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	var resumeEmbeddings [][]float32
	if len(extracted) > 0 {
		texts := make([]string, len(extracted))
		for i, o := range extracted {
			texts[i] = o.text
		}
		resumeEmbeddings, err = p.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("failed to embed resumes: %w", err)
		}
	}

	jobSkills, _ := p.vocab.ExtractSkills(req.Job.Text)

	// Stage 3: scoring fan-out.
	scored := p.scoreAll(ctx, extracted, resumeEmbeddings, jobEmbedding, jobSkills, req.Job, maxExp)
	rows = append(rows, scored...)

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].FileName < rows[j].FileName
	})
	return rows, nil
}

func (p *pipelineService) extractAll(ctx context.Context, docs []InputDocument) []extractOutcome {
	outcomes := make([]extractOutcome, len(docs))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				doc := docs[i]
				text, err := p.extractor.ExtractText(ctx, doc.Data, doc.MediaType)
				outcomes[i] = extractOutcome{doc: doc, text: text, err: err}
			}
		}()
	}

	for i := range docs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
	return outcomes
}

func (p *pipelineService) scoreAll(
	ctx context.Context,
	extracted []extractOutcome,
	resumeEmbeddings [][]float32,
	jobEmbedding []float32,
	jobSkills []string,
	job screening.JobRequirement,
	maxExp float64,
) []screening.ResultRow {
	rows := make([]screening.ResultRow, len(extracted))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				rows[i] = p.scoreOne(extracted[i], resumeEmbeddings[i], jobEmbedding, jobSkills, job, maxExp)
			}
		}()
	}

	for i := range extracted {
		select {
		case jobs <- i:
		case <-ctx.Done():
			// Unsubmitted candidates become error rows; submitted ones finish.
			rows[i] = errorRow(extracted[i].doc.FileName, "screening cancelled")
		}
	}
	close(jobs)
	wg.Wait()
	return rows
}

// scoreOne runs field extraction, skill matching and scoring for a single
// candidate. A panic in any heuristic is converted to an error row so one
// pathological resume cannot take down the batch.
func (p *pipelineService) scoreOne(
	o extractOutcome,
	resumeEmbedding []float32,
	jobEmbedding []float32,
	jobSkills []string,
	job screening.JobRequirement,
	maxExp float64,
) (row screening.ResultRow) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("❌ Panic while scoring %s: %v\n", o.doc.FileName, r)
			row = errorRow(o.doc.FileName, fmt.Sprintf("candidate processing failed: %v", r))
		}
	}()

	profile := screening.ExtractProfile(o.text, o.doc.FileName, p.vocab)
	resumeSkills, _ := p.vocab.ExtractSkills(o.text)

	overlap, matched, missing := screening.WeightedOverlap(jobSkills, resumeSkills, job)

	score, similarity := p.strategy.Score(screening.ScoreInput{
		JobEmbedding:    jobEmbedding,
		ResumeEmbedding: resumeEmbedding,
		YearsExperience: profile.YearsExperience,
		CGPA:            profile.CGPA,
		WeightedOverlap: overlap,
	})

	tier := screening.Tier(score, profile.YearsExperience, maxExp, similarity, profile.CGPA)

	return screening.ResultRow{
		FileName:        o.doc.FileName,
		CandidateName:   profile.Name,
		Score:           score,
		YearsExperience: profile.YearsExperience,
		CGPA:            profile.CGPA,
		Email:           profile.Email,
		Phone:           profile.Phone,
		Location:        profile.Location,
		Languages:       profile.Languages,
		Education:       profile.Education,
		WorkHistory:     profile.WorkHistory,
		Projects:        profile.Projects,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		Similarity:      similarity,
		RawText:         o.text,
		Tier:            tier,
		CertificateRank: screening.CertificateRank(score),
		Assessment:      fmt.Sprintf("Scored %.1f via %s strategy", score, p.strategy.Name()),
	}
}

// errorRow builds the default-valued row for a document that failed before
// or during scoring.
func errorRow(fileName, reason string) screening.ResultRow {
	return screening.ResultRow{
		FileName:        fileName,
		CandidateName:   screening.Name("", fileName),
		Email:           screening.NotFound,
		Phone:           screening.NotFound,
		Location:        screening.NotFound,
		Education:       screening.NotFound,
		Tier:            "Error",
		CertificateRank: "None",
		Assessment:      reason,
		Failed:          true,
	}
}
