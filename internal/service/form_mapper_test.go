package service

import (
	"math"
	"testing"
	"time"

	"legal-ocr-server/internal/domain"
	"legal-ocr-server/pkg/errors"
)

func newTestMapper(t *testing.T) *FormMapper {
	t.Helper()
	registry, err := NewFileSchemaRegistry("", NewMockServiceLogger())
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}
	return NewFormMapper(registry, NewMockServiceLogger())
}

func fullPublication() *domain.StructuredPublication {
	return &domain.StructuredPublication{
		Title:       "Décret exécutif n° 15-247 portant création d'un comité",
		Number:      "15-247",
		Date:        "2015-09-10",
		Type:        domain.DocumentTypeDecree,
		Institution: "Ministère de la justice",
		Wilaya:      "Alger",
		Sector:      "Justice",
		Articles: []domain.Article{
			{Number: "1", Body: "Il est créé un comité de suivi."},
		},
		Metadata: domain.PublicationMetadata{
			Language: domain.ScriptFrench,
		},
	}
}

func testExtraction() *domain.ExtractionResult {
	return &domain.ExtractionResult{
		ID:            "ext-1",
		UserID:        "user-1",
		ExtractedText: "Décret exécutif n° 15-247 du 10 septembre 2015",
		CreatedAt:     time.Now(),
	}
}

func TestMapToForm_FullDocument(t *testing.T) {
	result, err := newTestMapper(t).MapToForm(testExtraction(), fullPublication(), "legal_text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ExtractionID != "ext-1" || result.UserID != "user-1" {
		t.Fatalf("expected extraction ownership carried over, got %+v", result)
	}
	if len(result.UnmappedFields) != 0 {
		t.Fatalf("expected every field mapped, unmapped: %v", result.UnmappedFields)
	}
	if len(result.ValidationErrors) != 0 {
		t.Fatalf("expected no validation errors, got %+v", result.ValidationErrors)
	}
	if result.OverallConfidence <= 0 || result.OverallConfidence > 1 {
		t.Fatalf("confidence out of range: %f", result.OverallConfidence)
	}

	byName := make(map[string]domain.MappedField)
	for _, f := range result.MappedFields {
		byName[f.FieldName] = f
	}
	if byName["number"].MappedValue != "15-247" {
		t.Fatalf("expected number 15-247, got %+v", byName["number"])
	}
	if byName["type"].MappedValue != "decree" {
		t.Fatalf("expected type decree, got %+v", byName["type"])
	}
	if byName["date"].Provenance != domain.ProvenanceRegex {
		t.Fatalf("expected regex provenance for date, got %+v", byName["date"])
	}
}

func TestMapToForm_RequiredFieldMissing(t *testing.T) {
	pub := fullPublication()
	pub.Title = domain.DefaultTitle
	pub.Number = ""

	result, err := newTestMapper(t).MapToForm(testExtraction(), pub, "legal_text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := map[string]int{}
	for _, ve := range result.ValidationErrors {
		if ve.Severity == domain.SeverityHigh {
			missing[ve.Field]++
		}
	}
	if missing["title"] != 1 {
		t.Fatalf("expected exactly one high error for title, got %+v", result.ValidationErrors)
	}
	if missing["number"] != 1 {
		t.Fatalf("expected exactly one high error for number, got %+v", result.ValidationErrors)
	}

	for _, unmapped := range result.UnmappedFields {
		for _, mapped := range result.MappedFields {
			if mapped.FieldName == unmapped {
				t.Fatalf("field %s is both mapped and unmapped", unmapped)
			}
		}
	}
}

func TestMapToForm_InvalidDateGetsMediumError(t *testing.T) {
	pub := fullPublication()
	pub.Date = "10 septembre 2015"

	result, err := newTestMapper(t).MapToForm(testExtraction(), pub, "legal_text")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, ve := range result.ValidationErrors {
		if ve.Field == "date" && ve.Severity == domain.SeverityMedium {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a medium error for the malformed date, got %+v", result.ValidationErrors)
	}
}

func TestMapToForm_UnknownSchema(t *testing.T) {
	_, err := newTestMapper(t).MapToForm(testExtraction(), fullPublication(), "nope")
	if err == nil {
		t.Fatal("expected an error for an unknown schema")
	}
	if !errors.IsType(err, errors.ErrorTypeUnknownSchema) {
		t.Fatalf("expected unknown_schema error, got %v", err)
	}
}

func TestOverallConfidence(t *testing.T) {
	got := OverallConfidence([]float64{0.9, 0.8, 0.7}, 1)
	if math.Abs(got-0.785) > 1e-9 {
		t.Fatalf("expected 0.785, got %f", got)
	}

	if OverallConfidence(nil, 5) != 0 {
		t.Fatal("expected 0 when nothing mapped")
	}

	full := OverallConfidence([]float64{1, 1}, 0)
	if full != 1 {
		t.Fatalf("expected 1.0 for perfect mapping, got %f", full)
	}
}
