package handler

import (
	"net/http"

	"legal-ocr-server/internal/domain"
)

// SchemaHandler serves the registered form schemas
type SchemaHandler struct {
	registry domain.SchemaRegistry
	logger   domain.Logger
}

// NewSchemaHandler creates a new schema handler
func NewSchemaHandler(registry domain.SchemaRegistry, logger domain.Logger) *SchemaHandler {
	return &SchemaHandler{registry: registry, logger: logger}
}

// ListSchemas returns every registered form schema
func (h *SchemaHandler) ListSchemas(w http.ResponseWriter, r *http.Request) {
	schemas := h.registry.List()
	if schemas == nil {
		schemas = make([]domain.FormSchema, 0)
	}
	writeJSON(w, http.StatusOK, schemas)
}

// GetSchema returns one schema by name
func (h *SchemaHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "Schema name is required")
		return
	}
	schema, err := h.registry.Get(name)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, schema)
}
