package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"legal-ocr-server/internal/domain"
)

type createMappingRequest struct {
	ExtractionID string `json:"extraction_id"`
	SchemaName   string `json:"schema_name"`
}

// MappingHandler handles form-mapping HTTP requests
type MappingHandler struct {
	structureService domain.StructureService
	mappingService   domain.MappingService
	extractionRepo   domain.ExtractionRepository
	mappingRepo      domain.MappingRepository
	logger           domain.Logger
}

// NewMappingHandler creates a new mapping handler
func NewMappingHandler(
	structureService domain.StructureService,
	mappingService domain.MappingService,
	extractionRepo domain.ExtractionRepository,
	mappingRepo domain.MappingRepository,
	logger domain.Logger,
) *MappingHandler {
	return &MappingHandler{
		structureService: structureService,
		mappingService:   mappingService,
		extractionRepo:   extractionRepo,
		mappingRepo:      mappingRepo,
		logger:           logger,
	}
}

// CreateMapping maps a stored extraction onto a named form schema, stores
// the result and returns it.
func (h *MappingHandler) CreateMapping(w http.ResponseWriter, r *http.Request) {
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

	var req createMappingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ExtractionID == "" {
		writeError(w, http.StatusBadRequest, "extraction_id is required")
		return
	}
	if req.SchemaName == "" {
		writeError(w, http.StatusBadRequest, "schema_name is required")
		return
	}

	extraction, err := h.extractionRepo.GetByID(req.ExtractionID, token)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	if extraction.UserID != user.ID {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	publication := h.structureService.Structure(extraction.ExtractedText)

	mapping, err := h.mappingService.MapToForm(extraction, publication, req.SchemaName)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	if err := h.mappingRepo.Create(mapping, token); err != nil {
		h.logger.Error("Failed to persist mapping", err, "mapping_id", mapping.ID)
		writeError(w, http.StatusInternalServerError, "Failed to store mapping")
		return
	}

	writeJSON(w, http.StatusCreated, mapping)
}

// GetMapping returns one mapping owned by the authenticated user
func (h *MappingHandler) GetMapping(w http.ResponseWriter, r *http.Request) {
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

	mappingID := mux.Vars(r)["id"]
	if mappingID == "" {
		writeError(w, http.StatusBadRequest, "Mapping ID is required")
		return
	}

	mapping, err := h.mappingRepo.GetByID(mappingID, token)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	if mapping.UserID != user.ID {
		writeError(w, http.StatusForbidden, "Access denied")
		return
	}

	writeJSON(w, http.StatusOK, mapping)
}

// GetMappingsForExtraction lists the mappings derived from one extraction
func (h *MappingHandler) GetMappingsForExtraction(w http.ResponseWriter, r *http.Request) {
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

	mappings, err := h.mappingRepo.GetByExtractionID(extractionID, token)
	if err != nil {
		h.logger.Error("Failed to list mappings", err, "extraction_id", extractionID)
		writeError(w, http.StatusInternalServerError, "Failed to retrieve mappings")
		return
	}

	if mappings == nil {
		mappings = make([]*domain.MappingResult, 0)
	}
	writeJSON(w, http.StatusOK, mappings)
}
