package handlers

import (
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenerpro/engine/internal/models"
	"screenerpro/engine/internal/repositories"
)

type fakeDocumentRepo struct {
	docs map[uuid.UUID]models.Document
}

func newFakeDocumentRepo(docs ...models.Document) *fakeDocumentRepo {
	repo := &fakeDocumentRepo{docs: make(map[uuid.UUID]models.Document)}
	for _, d := range docs {
		repo.docs[d.ID] = d
	}
	return repo
}

func (f *fakeDocumentRepo) Create(doc *models.Document) error {
	f.docs[doc.ID] = *doc
	return nil
}

func (f *fakeDocumentRepo) FindByID(id uuid.UUID) (*models.Document, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("document not found")
	}
	return &doc, nil
}

func (f *fakeDocumentRepo) FindResumesByIDs(ids []uuid.UUID) ([]models.Document, error) {
	var out []models.Document
	for _, id := range ids {
		if doc, ok := f.docs[id]; ok && doc.FileType == models.FileTypeResume {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (f *fakeDocumentRepo) Delete(id uuid.UUID) error {
	if _, ok := f.docs[id]; !ok {
		return fmt.Errorf("document not found")
	}
	delete(f.docs, id)
	return nil
}

type fakeStorage struct {
	deleted []string
}

func (f *fakeStorage) SaveFile(file *multipart.FileHeader, fileType string) (string, string, error) {
	name := fileType + "_" + file.Filename
	return name, "/tmp/" + name, nil
}

func (f *fakeStorage) GetFilePath(filename string) string { return "/tmp/" + filename }

func (f *fakeStorage) DeleteFile(filename string) error {
	f.deleted = append(f.deleted, filename)
	return nil
}

func (f *fakeStorage) EnsureUploadDir() error { return nil }

func newDeleteApp(repo repositories.DocumentRepository, storage *fakeStorage) *fiber.App {
	app := fiber.New()
	handler := NewUploadHandler(repo, storage, 1024*1024)
	app.Delete("/api/v1/documents/:id", handler.HandleDeleteDocument)
	return app
}

func TestHandleDeleteDocument(t *testing.T) {
	doc := models.Document{
		ID:               uuid.New(),
		Filename:         "resume_abc_cv.pdf",
		OriginalFileName: "cv.pdf",
		FileType:         models.FileTypeResume,
		MediaType:        "application/pdf",
	}
	repo := newFakeDocumentRepo(doc)
	storage := &fakeStorage{}
	app := newDeleteApp(repo, storage)

	req := httptest.NewRequest("DELETE", "/api/v1/documents/"+doc.ID.String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err = repo.FindByID(doc.ID)
	assert.Error(t, err, "row should be gone after delete")
	assert.Equal(t, []string{doc.Filename}, storage.deleted, "stored file should be removed too")
}

func TestHandleDeleteDocumentNotFound(t *testing.T) {
	app := newDeleteApp(newFakeDocumentRepo(), &fakeStorage{})

	req := httptest.NewRequest("DELETE", "/api/v1/documents/"+uuid.New().String(), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleDeleteDocumentBadID(t *testing.T) {
	app := newDeleteApp(newFakeDocumentRepo(), &fakeStorage{})

	req := httptest.NewRequest("DELETE", "/api/v1/documents/not-a-uuid", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
