// Package handler provides HTTP handlers for the API.
package handler

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"

	"legal-ocr-server/internal/domain"
)

// extractResponse pairs the stored extraction with its structured view.
type extractResponse struct {
	Extraction  *domain.ExtractionResult      `json:"extraction"`
	Publication *domain.StructuredPublication `json:"publication"`
}

// ExtractionHandler handles document extraction HTTP requests
type ExtractionHandler struct {
	extractionService domain.ExtractionService
	structureService  domain.StructureService
	extractionRepo    domain.ExtractionRepository
	maxFileSize       int64
	logger            domain.Logger
}

// NewExtractionHandler creates a new extraction handler
func NewExtractionHandler(
	extractionService domain.ExtractionService,
	structureService domain.StructureService,
	extractionRepo domain.ExtractionRepository,
	maxFileSize int64,
	logger domain.Logger,
) *ExtractionHandler {
	return &ExtractionHandler{
		extractionService: extractionService,
		structureService:  structureService,
		extractionRepo:    extractionRepo,
		maxFileSize:       maxFileSize,
		logger:            logger,
	}
}

// ExtractDocument runs the OCR pipeline on an uploaded file, stores the
// result and returns it together with the structured publication.
func (h *ExtractionHandler) ExtractDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}
	token, ok := GetTokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token not found in context")
		return
	}

	if h.maxFileSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	if h.maxFileSize > 0 && header.Size > h.maxFileSize {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	fileName := strings.TrimSpace(filepath.Base(header.Filename))
	if fileName == "" || fileName == "." || fileName == string(filepath.Separator) {
		fileName = "document"
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	extraction, err := h.extractionService.Extract(r.Context(), data, fileName, user.ID)
	if err != nil {
		h.logger.Error("Extraction failed", err, "file", fileName, "user_id", user.ID)
		writeError(w, statusForError(err), err.Error())
		return
	}

	publication := h.structureService.Structure(extraction.ExtractedText)

	if err := h.extractionRepo.Create(extraction, token); err != nil {
		h.logger.Error("Failed to persist extraction", err, "extraction_id", extraction.ID)
		writeError(w, http.StatusInternalServerError, "Failed to store extraction")
		return
	}

	writeJSON(w, http.StatusCreated, extractResponse{
		Extraction:  extraction,
		Publication: publication,
	})
}

// GetExtractions lists the authenticated user's extractions
func (h *ExtractionHandler) GetExtractions(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}
	token, ok := GetTokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token not found in context")
		return
	}

	extractions, err := h.extractionRepo.GetByUserID(user.ID, token)
	if err != nil {
		h.logger.Error("Failed to list extractions", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve extractions")
		return
	}

	// Ensure JSON is [] not null when empty.
	if extractions == nil {
		extractions = make([]*domain.ExtractionResult, 0)
	}
	writeJSON(w, http.StatusOK, extractions)
}

// GetExtraction returns one extraction owned by the authenticated user
func (h *ExtractionHandler) GetExtraction(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}
	token, ok := GetTokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token not found in context")
		return
	}

	extractionID := mux.Vars(r)["id"]
	if extractionID == "" {
		writeError(w, http.StatusBadRequest, "Extraction ID is required")
		return
	}

	extraction, err := h.extractionRepo.GetByID(extractionID, token)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	if extraction.UserID != user.ID {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	writeJSON(w, http.StatusOK, extraction)
}

// DeleteExtraction removes one extraction owned by the authenticated user
func (h *ExtractionHandler) DeleteExtraction(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}
	token, ok := GetTokenFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Token not found in context")
		return
	}

	extractionID := mux.Vars(r)["id"]
	if extractionID == "" {
		writeError(w, http.StatusBadRequest, "Extraction ID is required")
		return
	}

	extraction, err := h.extractionRepo.GetByID(extractionID, token)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	if extraction.UserID != user.ID {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	if err := h.extractionRepo.Delete(extractionID, token); err != nil {
		h.logger.Error("Failed to delete extraction", err, "extraction_id", extractionID)
		writeError(w, http.StatusInternalServerError, "Failed to delete extraction")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Extraction deleted successfully"})
}
