package domain

import "time"

// Provenance records which pipeline stage supplied a mapped field's value.
type Provenance string

const (
	ProvenanceExtraction Provenance = "extraction"
	ProvenanceRegex      Provenance = "regex"
	ProvenanceInference  Provenance = "inference"
	ProvenanceManual     Provenance = "manual"
)

// Severity grades a field-level validation error so callers can decide
// whether to block or warn.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// FieldType is the declared type of a form schema field.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeDate   FieldType = "date"
	FieldTypeEnum   FieldType = "enum"
	FieldTypeText   FieldType = "text"
	FieldTypeArray  FieldType = "array"
)

// FieldDefinition declares one field of a form schema.
type FieldDefinition struct {
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	Values   []string  `json:"values,omitempty" yaml:"values,omitempty"` // enum fields only
}

// FormSchema is a named, ordered set of field definitions.
type FormSchema struct {
	Name   string            `json:"name" yaml:"name"`
	Fields []FieldDefinition `json:"fields" yaml:"fields"`
}

// MappedField binds one schema field to an extracted value.
type MappedField struct {
	FieldName    string     `json:"field_name"`
	SourceText   string     `json:"source_text"`
	MappedValue  string     `json:"mapped_value"`
	Confidence   float64    `json:"confidence"`
	Provenance   Provenance `json:"provenance"`
	Alternatives []string   `json:"alternatives,omitempty"`
}

// FieldError is a structured, collected diagnostic; it is returned alongside
// a partially-successful mapping, never thrown.
type FieldError struct {
	Field      string   `json:"field"`
	Message    string   `json:"message"`
	Severity   Severity `json:"severity"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// MappingResult binds an extraction/publication pair to a form schema.
// Not mutated after creation; re-mapping produces a new result.
type MappingResult struct {
	ID           string `json:"id"`
	ExtractionID string `json:"extraction_id"`
	UserID       string `json:"user_id"`
	SchemaName   string `json:"schema_name"`

	MappedFields     []MappedField `json:"mapped_fields"`
	UnmappedFields   []string      `json:"unmapped_fields"`
	ValidationErrors []FieldError  `json:"validation_errors"`

	// OverallConfidence = 0.7*mean(field confidences) + 0.3*coverage.
	OverallConfidence float64 `json:"overall_confidence"`

	CreatedAt time.Time `json:"created_at"`
}
