package repository

import (
	"encoding/json"
	"fmt"

	"legal-ocr-server/internal/domain"
)

// SupabaseMappingRepository implements domain.MappingRepository on the
// mappings table.
type SupabaseMappingRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseMappingRepository creates a new Supabase mapping repository
func NewSupabaseMappingRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.MappingRepository {
	return &SupabaseMappingRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Create stores a new mapping result
func (r *SupabaseMappingRepository) Create(mapping *domain.MappingResult, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	row := map[string]interface{}{
		"id":                 mapping.ID,
		"extraction_id":      mapping.ExtractionID,
		"user_id":            mapping.UserID,
		"schema_name":        mapping.SchemaName,
		"mapped_fields":      toJSONBValue(mapping.MappedFields, "[]"),
		"unmapped_fields":    toJSONBValue(mapping.UnmappedFields, "[]"),
		"validation_errors":  toJSONBValue(mapping.ValidationErrors, "[]"),
		"overall_confidence": mapping.OverallConfidence,
		"created_at":         mapping.CreatedAt,
	}

	_, _, err = client.From("mappings").Insert(row, false, "", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to insert mapping in Supabase", err,
			"mapping_id", mapping.ID,
			"extraction_id", mapping.ExtractionID,
		)
		return fmt.Errorf("failed to create mapping: %w", err)
	}

	r.logger.Info("Mapping created",
		"id", mapping.ID,
		"extraction_id", mapping.ExtractionID,
		"schema", mapping.SchemaName,
	)
	return nil
}

// GetByID retrieves a mapping by ID
func (r *SupabaseMappingRepository) GetByID(id string, token string) (*domain.MappingResult, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("mappings").
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get mapping: %w", err)
	}

	var mappings []*domain.MappingResult
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(mappings) == 0 {
		return nil, domain.ErrMappingNotFound
	}
	return mappings[0], nil
}

// GetByExtractionID retrieves every mapping derived from one extraction
func (r *SupabaseMappingRepository) GetByExtractionID(extractionID string, token string) ([]*domain.MappingResult, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("mappings").
		Select("*", "", false).
		Eq("extraction_id", extractionID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get mappings: %w", err)
	}

	var mappings []*domain.MappingResult
	if err := json.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return mappings, nil
}
