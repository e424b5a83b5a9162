package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"screenerpro/engine/internal/models"
	"screenerpro/engine/internal/repositories"
	"screenerpro/engine/internal/screening"
)

type Worker interface {
	Start(ctx context.Context)
	Stop()
	EnqueueJob(screeningID uuid.UUID)
}

type worker struct {
	screeningRepo repositories.ScreeningRepository
	docRepo       repositories.DocumentRepository
	pipeline      PipelineService
	vectorStore   VectorStoreService
	jobQueue      chan uuid.UUID
	concurrency   int
	wg            sync.WaitGroup
	stopChan      chan struct{}
}

func NewWorker(
	screeningRepo repositories.ScreeningRepository,
	docRepo repositories.DocumentRepository,
	pipeline PipelineService,
	vectorStore VectorStoreService,
	concurrency int,
) Worker {
	return &worker{
		screeningRepo: screeningRepo,
		docRepo:       docRepo,
		pipeline:      pipeline,
		vectorStore:   vectorStore,
		jobQueue:      make(chan uuid.UUID, 100),
		concurrency:   concurrency,
		stopChan:      make(chan struct{}),
	}
}

// Start implements Worker.
func (w *worker) Start(ctx context.Context) {
	log.Printf("🚀 Starting worker with %d concurrent workers\n", w.concurrency)

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}

	// Pick up batches that were queued before a restart.
	w.wg.Add(1)
	go w.pollPendingJobs(ctx)

	log.Println("✅ Worker started successfully")
}

// Stop implements Worker.
func (w *worker) Stop() {
	log.Println("🛑 Stopping worker...")
	close(w.stopChan)
	w.wg.Wait()
	log.Println("✅ Worker stopped")
}

// EnqueueJob implements Worker.
func (w *worker) EnqueueJob(screeningID uuid.UUID) {
	select {
	case w.jobQueue <- screeningID:
		log.Printf("📥 Screening %s enqueued\n", screeningID)
	case <-w.stopChan:
		log.Printf("⚠️  Worker stopped, cannot enqueue screening %s\n", screeningID)
	}
}

func (w *worker) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()
	log.Printf("🚀 Worker %d started processing jobs\n", workerID)

	for {
		select {
		case <-w.stopChan:
			log.Printf("👷 Worker #%d stopped\n", workerID)
			return
		case screeningID := <-w.jobQueue:
			log.Printf("👷 Worker #%d processing screening %s\n", workerID, screeningID)
			if err := w.runScreening(ctx, screeningID); err != nil {
				log.Printf("❌ Worker #%d failed screening %s: %v\n", workerID, screeningID, err)
			} else {
				log.Printf("✅ Worker #%d completed screening %s\n", workerID, screeningID)
			}
		}
	}
}

func (w *worker) pollPendingJobs(ctx context.Context) {
	defer w.wg.Done()
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	log.Println("🔄 Starting pending jobs poller")

	for {
		select {
		case <-w.stopChan:
			log.Println("🔄 Pending jobs poller stopped")
			return
		case <-ticker.C:
			pendingJobs, err := w.screeningRepo.FindPendingJobs(10)
			if err != nil {
				log.Printf("⚠️  Failed to fetch pending jobs: %v\n", err)
				continue
			}

			if len(pendingJobs) > 0 {
				log.Printf("📋 Found %d pending screenings\n", len(pendingJobs))
			}

			for _, job := range pendingJobs {
				w.EnqueueJob(job.ID)
			}
		}
	}
}

// runScreening loads a batch, drives the pipeline, and persists one row per
// resume. Per-resume failures are inside the rows; only infrastructure
// failures mark the whole screening failed.
func (w *worker) runScreening(ctx context.Context, screeningID uuid.UUID) error {
	if err := w.screeningRepo.UpdateStatus(screeningID, models.StatusProcessing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	batch, err := w.screeningRepo.FindByID(screeningID)
	if err != nil {
		w.screeningRepo.UpdateError(screeningID, err.Error())
		return fmt.Errorf("failed to load screening: %w", err)
	}

	docs, err := w.loadDocuments(batch)
	if err != nil {
		w.screeningRepo.UpdateError(screeningID, err.Error())
		return fmt.Errorf("failed to load documents: %w", err)
	}

	rows, err := w.pipeline.Screen(ctx, ScreenRequest{
		Job: screening.JobRequirement{
			Text:           batch.JobDescription,
			HighPriority:   batch.HighPriority,
			MediumPriority: batch.MediumPriority,
		},
		MaxExperience: batch.MaxExperience,
		Documents:     docs,
	})
	if err != nil {
		w.screeningRepo.UpdateError(screeningID, err.Error())
		return fmt.Errorf("pipeline failed: %w", err)
	}

	results := make([]models.ScreeningResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.ResultFromRow(screeningID, row))
	}

	if err := w.screeningRepo.SaveResults(screeningID, results); err != nil {
		w.screeningRepo.UpdateError(screeningID, err.Error())
		return fmt.Errorf("failed to save results: %w", err)
	}

	// Talent-pool indexing is best effort; search quality degrades, results
	// do not.
	if w.vectorStore != nil {
		if err := w.vectorStore.IndexResults(ctx, batch, results); err != nil {
			log.Printf("⚠️  Failed to index results in vector store: %v\n", err)
		}
	}
	return nil
}

func (w *worker) loadDocuments(batch *models.Screening) ([]InputDocument, error) {
	ids := make([]uuid.UUID, 0, len(batch.DocumentIDs))
	for _, raw := range batch.DocumentIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid document id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}

	records, err := w.docRepo.FindResumesByIDs(ids)
	if err != nil {
		return nil, err
	}
	if len(records) != len(ids) {
		return nil, fmt.Errorf("found %d of %d resume documents", len(records), len(ids))
	}

	docs := make([]InputDocument, 0, len(records))
	for _, rec := range records {
		data, err := os.ReadFile(rec.FilePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", rec.OriginalFileName, err)
		}
		docs = append(docs, InputDocument{
			FileName:  rec.OriginalFileName,
			MediaType: rec.MediaType,
			Data:      data,
		})
	}
	return docs, nil
}
