package handlers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenerpro/engine/internal/models"
	"screenerpro/engine/internal/repositories"
)

type fakeScreeningRepo struct {
	repositories.ScreeningRepository
	created []*models.Screening
}

func (f *fakeScreeningRepo) Create(s *models.Screening) error {
	f.created = append(f.created, s)
	return nil
}

type fakeQueue struct {
	enqueued []uuid.UUID
}

func (f *fakeQueue) Start(ctx context.Context) {}

func (f *fakeQueue) Stop() {}

func (f *fakeQueue) EnqueueJob(screeningID uuid.UUID) {
	f.enqueued = append(f.enqueued, screeningID)
}

func newScreenApp(docRepo repositories.DocumentRepository) (*fiber.App, *fakeScreeningRepo, *fakeQueue) {
	screeningRepo := &fakeScreeningRepo{}
	queue := &fakeQueue{}
	handler := NewScreeningHandler(screeningRepo, docRepo, nil, queue, 15)

	app := fiber.New()
	app.Post("/api/v1/screenings", handler.HandleScreen)
	return app, screeningRepo, queue
}

func postScreenings(t *testing.T, app *fiber.App, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/screenings", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func TestHandleScreenQueuesBatch(t *testing.T) {
	resume := models.Document{
		ID:       uuid.New(),
		FileType: models.FileTypeResume,
	}
	app, screeningRepo, queue := newScreenApp(newFakeDocumentRepo(resume))

	body := `{
		"job_title": "Data Engineer",
		"job_description": "Looking for Python and SQL experience.",
		"document_ids": ["` + resume.ID.String() + `"]
	}`
	status := postScreenings(t, app, body)
	assert.Equal(t, fiber.StatusAccepted, status)

	require.Len(t, screeningRepo.created, 1)
	batch := screeningRepo.created[0]
	assert.Equal(t, models.StatusQueued, batch.Status)
	assert.Equal(t, 15.0, batch.MaxExperience, "max experience should default from config")
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, batch.ID, queue.enqueued[0])
}

// A job description uploaded under "jd" must never be scored as a candidate,
// even when its id is passed in document_ids.
func TestHandleScreenRejectsNonResumeDocuments(t *testing.T) {
	resume := models.Document{ID: uuid.New(), FileType: models.FileTypeResume}
	jd := models.Document{ID: uuid.New(), FileType: models.FileTypeJobDescription}
	app, screeningRepo, queue := newScreenApp(newFakeDocumentRepo(resume, jd))

	body := `{
		"job_description": "Looking for Python and SQL experience.",
		"document_ids": ["` + resume.ID.String() + `", "` + jd.ID.String() + `"]
	}`
	status := postScreenings(t, app, body)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Empty(t, screeningRepo.created)
	assert.Empty(t, queue.enqueued)
}

func TestHandleScreenUnknownDocument(t *testing.T) {
	app, _, queue := newScreenApp(newFakeDocumentRepo())

	body := `{
		"job_description": "Looking for Python and SQL experience.",
		"document_ids": ["` + uuid.New().String() + `"]
	}`
	status := postScreenings(t, app, body)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Empty(t, queue.enqueued)
}
