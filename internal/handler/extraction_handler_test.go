package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"

	"legal-ocr-server/internal/domain"
	"legal-ocr-server/pkg/errors"
)

// ---------------------------------------------------------------------------
// Shared mocks for handler tests
// ---------------------------------------------------------------------------

type mockExtractionService struct {
	result *domain.ExtractionResult
	err    error
}

func (m *mockExtractionService) Extract(ctx context.Context, file []byte, fileName, userID string) (*domain.ExtractionResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

type mockStructureService struct {
	publication *domain.StructuredPublication
}

func (m *mockStructureService) Structure(text string) *domain.StructuredPublication {
	return m.publication
}

type mockExtractionRepo struct {
	stored  map[string]*domain.ExtractionResult
	created []*domain.ExtractionResult
	err     error
}

func newMockExtractionRepo() *mockExtractionRepo {
	return &mockExtractionRepo{stored: make(map[string]*domain.ExtractionResult)}
}

func (m *mockExtractionRepo) Create(e *domain.ExtractionResult, token string) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, e)
	m.stored[e.ID] = e
	return nil
}

func (m *mockExtractionRepo) GetByID(id string, token string) (*domain.ExtractionResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.stored[id]
	if !ok {
		return nil, domain.ErrExtractionNotFound
	}
	return e, nil
}

func (m *mockExtractionRepo) GetByUserID(userID string, token string) ([]*domain.ExtractionResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.ExtractionResult
	for _, e := range m.stored {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockExtractionRepo) Delete(id string, token string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.stored, id)
	return nil
}

// authedRequest builds a request carrying an authenticated user and token,
// as the middleware would.
func authedRequest(t *testing.T, method, target string, body *bytes.Buffer, userID string) *http.Request {
	t.Helper()
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), userContextKey, &domain.SupabaseUser{ID: userID})
	ctx = context.WithValue(ctx, tokenContextKey, "test-token")
	return req.WithContext(ctx)
}

func multipartFile(t *testing.T, fieldName, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func sampleExtraction(id, userID string) *domain.ExtractionResult {
	return &domain.ExtractionResult{
		ID:            id,
		UserID:        userID,
		FileName:      "doc.pdf",
		FileType:      "application/pdf",
		PageCount:     1,
		ExtractedText: "Décret exécutif n° 15-247",
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestExtractDocument_Success(t *testing.T) {
	repo := newMockExtractionRepo()
	h := NewExtractionHandler(
		&mockExtractionService{result: sampleExtraction("ext-1", "user-1")},
		&mockStructureService{publication: &domain.StructuredPublication{Type: domain.DocumentTypeDecree}},
		repo,
		0,
		NewMockHandlerLogger(),
	)

	body, contentType := multipartFile(t, "file", "doc.pdf", []byte("%PDF-1.4 fake"))
	req := authedRequest(t, http.MethodPost, "/api/v1/documents/extract", body, "user-1")
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.ExtractDocument(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected extraction persisted, got %d", len(repo.created))
	}

	var resp extractResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Extraction == nil || resp.Extraction.ID != "ext-1" {
		t.Fatalf("expected extraction in response, got %+v", resp.Extraction)
	}
	if resp.Publication == nil || resp.Publication.Type != domain.DocumentTypeDecree {
		t.Fatalf("expected publication in response, got %+v", resp.Publication)
	}
}

func TestExtractDocument_MissingFile(t *testing.T) {
	h := NewExtractionHandler(
		&mockExtractionService{},
		&mockStructureService{},
		newMockExtractionRepo(),
		0,
		NewMockHandlerLogger(),
	)

	req := authedRequest(t, http.MethodPost, "/api/v1/documents/extract", nil, "user-1")
	rec := httptest.NewRecorder()
	h.ExtractDocument(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExtractDocument_UnsupportedType(t *testing.T) {
	h := NewExtractionHandler(
		&mockExtractionService{err: errors.NewUnsupportedFileError("file must be a PDF or an image")},
		&mockStructureService{},
		newMockExtractionRepo(),
		0,
		NewMockHandlerLogger(),
	)

	body, contentType := multipartFile(t, "file", "notes.txt", []byte("plain text"))
	req := authedRequest(t, http.MethodPost, "/api/v1/documents/extract", body, "user-1")
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	h.ExtractDocument(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d", rec.Code)
	}
}

func TestGetExtraction_OwnershipEnforced(t *testing.T) {
	repo := newMockExtractionRepo()
	repo.stored["ext-1"] = sampleExtraction("ext-1", "someone-else")

	h := NewExtractionHandler(&mockExtractionService{}, &mockStructureService{}, repo, 0, NewMockHandlerLogger())

	req := authedRequest(t, http.MethodGet, "/api/v1/extractions/ext-1", nil, "user-1")
	req = mux.SetURLVars(req, map[string]string{"id": "ext-1"})
	rec := httptest.NewRecorder()
	h.GetExtraction(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestGetExtraction_NotFound(t *testing.T) {
	h := NewExtractionHandler(&mockExtractionService{}, &mockStructureService{}, newMockExtractionRepo(), 0, NewMockHandlerLogger())

	req := authedRequest(t, http.MethodGet, "/api/v1/extractions/missing", nil, "user-1")
	req = mux.SetURLVars(req, map[string]string{"id": "missing"})
	rec := httptest.NewRecorder()
	h.GetExtraction(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetExtractions_EmptyListIsJSONArray(t *testing.T) {
	h := NewExtractionHandler(&mockExtractionService{}, &mockStructureService{}, newMockExtractionRepo(), 0, NewMockHandlerLogger())

	req := authedRequest(t, http.MethodGet, "/api/v1/extractions", nil, "user-1")
	rec := httptest.NewRecorder()
	h.GetExtractions(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != "[]\n" {
		t.Fatalf("expected empty JSON array, got %q", got)
	}
}

func TestDeleteExtraction_Success(t *testing.T) {
	repo := newMockExtractionRepo()
	repo.stored["ext-1"] = sampleExtraction("ext-1", "user-1")

	h := NewExtractionHandler(&mockExtractionService{}, &mockStructureService{}, repo, 0, NewMockHandlerLogger())

	req := authedRequest(t, http.MethodDelete, "/api/v1/extractions/ext-1", nil, "user-1")
	req = mux.SetURLVars(req, map[string]string{"id": "ext-1"})
	rec := httptest.NewRecorder()
	h.DeleteExtraction(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if _, ok := repo.stored["ext-1"]; ok {
		t.Fatal("expected extraction removed")
	}
}
