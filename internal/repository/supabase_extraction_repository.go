package repository

import (
	"encoding/json"
	"fmt"

	"legal-ocr-server/internal/domain"
)

// SupabaseExtractionRepository implements domain.ExtractionRepository on the
// extractions table. Every call runs through a token-scoped client so
// row-level security decides visibility.
type SupabaseExtractionRepository struct {
	supabaseClient domain.SupabaseClient
	logger         domain.Logger
}

// NewSupabaseExtractionRepository creates a new Supabase extraction repository
func NewSupabaseExtractionRepository(supabaseClient domain.SupabaseClient, logger domain.Logger) domain.ExtractionRepository {
	return &SupabaseExtractionRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Create stores a new extraction result
func (r *SupabaseExtractionRepository) Create(extraction *domain.ExtractionResult, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	row := map[string]interface{}{
		"id":             extraction.ID,
		"user_id":        extraction.UserID,
		"file_name":      sanitizeText(extraction.FileName),
		"file_type":      extraction.FileType,
		"page_count":     extraction.PageCount,
		"extracted_text": sanitizeText(extraction.ExtractedText),
		"text_regions":   toJSONBValue(extraction.TextRegions, "[]"),
		"metadata":       toJSONBValue(extraction.Metadata, "{}"),
		"created_at":     extraction.CreatedAt,
	}

	_, _, err = client.From("extractions").Insert(row, false, "", "", "").Execute()
	if err != nil {
		r.logger.Error("Failed to insert extraction in Supabase", err,
			"extraction_id", extraction.ID,
			"text_length", len(extraction.ExtractedText),
		)
		return fmt.Errorf("failed to create extraction: %w", err)
	}

	r.logger.Info("Extraction created",
		"id", extraction.ID,
		"user_id", extraction.UserID,
		"pages", extraction.PageCount,
	)
	return nil
}

// GetByID retrieves an extraction by ID
func (r *SupabaseExtractionRepository) GetByID(id string, token string) (*domain.ExtractionResult, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("extractions").
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get extraction: %w", err)
	}

	var extractions []*domain.ExtractionResult
	if err := json.Unmarshal(data, &extractions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(extractions) == 0 {
		return nil, domain.ErrExtractionNotFound
	}
	return extractions[0], nil
}

// GetByUserID retrieves all extractions for a user
func (r *SupabaseExtractionRepository) GetByUserID(userID string, token string) ([]*domain.ExtractionResult, error) {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to get client with token: %w", err)
	}

	data, _, err := client.From("extractions").
		Select("*", "", false).
		Eq("user_id", userID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get extractions: %w", err)
	}

	var extractions []*domain.ExtractionResult
	if err := json.Unmarshal(data, &extractions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return extractions, nil
}

// Delete removes an extraction
func (r *SupabaseExtractionRepository) Delete(id string, token string) error {
	client, err := r.supabaseClient.GetClientWithToken(token)
	if err != nil {
		return fmt.Errorf("failed to get client with token: %w", err)
	}

	_, _, err = client.From("extractions").
		Delete("", "").
		Eq("id", id).
		Execute()
	if err != nil {
		return fmt.Errorf("failed to delete extraction: %w", err)
	}

	r.logger.Info("Extraction deleted", "id", id)
	return nil
}
