package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"legal-ocr-server/internal/domain"
)

// mappedValue is one field mapper's output before assembly into a
// domain.MappedField.
type mappedValue struct {
	value        string
	source       string
	confidence   float64
	provenance   domain.Provenance
	alternatives []string
}

// fieldMapperFunc tries to fill one schema field from the extraction and its
// structured publication. ok=false means the field stays unmapped.
type fieldMapperFunc func(ext *domain.ExtractionResult, pub *domain.StructuredPublication) (mappedValue, bool)

// Dispatch table from schema field name to its mapper. Fields without an
// entry fall back to the generic entity scan.
var fieldMappers = map[string]fieldMapperFunc{
	"title": func(_ *domain.ExtractionResult, pub *domain.StructuredPublication) (mappedValue, bool) {
		if pub.Title == "" || pub.Title == domain.DefaultTitle {
			return mappedValue{}, false
		}
		return mappedValue{pub.Title, pub.Title, 0.85, domain.ProvenanceExtraction, nil}, true
	},
	"number": func(_ *domain.ExtractionResult, pub *domain.StructuredPublication) (mappedValue, bool) {
		if pub.Number == "" {
			return mappedValue{}, false
		}
		return mappedValue{pub.Number, pub.Number, 0.9, domain.ProvenanceRegex, nil}, true
	},
	"date": func(_ *domain.ExtractionResult, pub *domain.StructuredPublication) (mappedValue, bool) {
		if pub.Date == "" {
			return mappedValue{}, false
		}
		return mappedValue{pub.Date, pub.Date, 0.8, domain.ProvenanceRegex, nil}, true
	},
	"type": func(_ *domain.ExtractionResult, pub *domain.StructuredPublication) (mappedValue, bool) {
		if pub.Type == "" {
			return mappedValue{}, false
		}
		return mappedValue{string(pub.Type), string(pub.Type), 0.8, domain.ProvenanceRegex, nil}, true
	},
	"institution": func(_ *domain.ExtractionResult, pub *domain.StructuredPublication) (mappedValue, bool) {
		if pub.Institution == "" || pub.Institution == domain.DefaultInstitution {
			return mappedValue{}, false
		}
		return mappedValue{pub.Institution, pub.Institution, 0.8, domain.ProvenanceRegex, nil}, true
	},
	"wilaya": func(_ *domain.ExtractionResult, pub *domain.StructuredPublication) (mappedValue, bool) {
		if pub.Wilaya == "" {
			return mappedValue{}, false
		}
		return mappedValue{pub.Wilaya, pub.Wilaya, 0.75, domain.ProvenanceRegex, nil}, true
	},
	"sector": func(_ *domain.ExtractionResult, pub *domain.StructuredPublication) (mappedValue, bool) {
		if pub.Sector == "" {
			return mappedValue{}, false
		}
		return mappedValue{pub.Sector, pub.Sector, 0.7, domain.ProvenanceInference, nil}, true
	},
	"language": func(_ *domain.ExtractionResult, pub *domain.StructuredPublication) (mappedValue, bool) {
		if pub.Metadata.Language == "" {
			return mappedValue{}, false
		}
		lang := string(pub.Metadata.Language)
		return mappedValue{lang, lang, 0.9, domain.ProvenanceInference, nil}, true
	},
	"content": func(ext *domain.ExtractionResult, _ *domain.StructuredPublication) (mappedValue, bool) {
		if ext.ExtractedText == "" {
			return mappedValue{}, false
		}
		return mappedValue{ext.ExtractedText, ext.ExtractedText, 0.95, domain.ProvenanceExtraction, nil}, true
	},
	"description": func(_ *domain.ExtractionResult, pub *domain.StructuredPublication) (mappedValue, bool) {
		if len(pub.Articles) > 0 && pub.Articles[0].Body != "" {
			body := pub.Articles[0].Body
			return mappedValue{body, body, 0.6, domain.ProvenanceInference, nil}, true
		}
		if pub.Title != "" && pub.Title != domain.DefaultTitle {
			return mappedValue{pub.Title, pub.Title, 0.5, domain.ProvenanceInference, nil}, true
		}
		return mappedValue{}, false
	},
}

// genericEntityMapper fills a field that has no dedicated mapper by scanning
// the detected entities for a type matching the field name. The best hit
// wins; the others become alternatives.
func genericEntityMapper(fieldName string, pub *domain.StructuredPublication) (mappedValue, bool) {
	var best *domain.DetectedEntity
	var alternatives []string
	for i := range pub.Metadata.Entities {
		e := &pub.Metadata.Entities[i]
		if string(e.Type) != fieldName && !strings.Contains(fieldName, string(e.Type)) {
			continue
		}
		if best == nil || e.Confidence > best.Confidence {
			if best != nil {
				alternatives = append(alternatives, best.Value)
			}
			best = e
		} else {
			alternatives = append(alternatives, e.Value)
		}
	}
	if best == nil {
		return mappedValue{}, false
	}
	return mappedValue{best.Value, best.Context, best.Confidence, domain.ProvenanceInference, alternatives}, true
}

var reISODate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// OverallConfidence combines mapped-field confidence and schema coverage:
// 0.7*mean(confidences) + 0.3*(mapped / (mapped + unmapped)). Zero when
// nothing mapped.
func OverallConfidence(confidences []float64, unmapped int) float64 {
	if len(confidences) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range confidences {
		sum += c
	}
	mean := sum / float64(len(confidences))
	coverage := float64(len(confidences)) / float64(len(confidences)+unmapped)
	return 0.7*mean + 0.3*coverage
}

// FormMapper maps structured publications onto named form schemas.
type FormMapper struct {
	registry domain.SchemaRegistry
	logger   domain.Logger
}

// NewFormMapper creates a form mapper backed by the given schema registry.
func NewFormMapper(registry domain.SchemaRegistry, logger domain.Logger) *FormMapper {
	return &FormMapper{registry: registry, logger: logger}
}

// MapToForm fills the named schema from the extraction/publication pair.
// Field-level problems are collected as diagnostics on the result; the only
// error returned is an unknown schema name.
func (m *FormMapper) MapToForm(extraction *domain.ExtractionResult, publication *domain.StructuredPublication, schemaName string) (*domain.MappingResult, error) {
	schema, err := m.registry.Get(schemaName)
	if err != nil {
		return nil, err
	}

	result := &domain.MappingResult{
		ID:           uuid.New().String(),
		ExtractionID: extraction.ID,
		UserID:       extraction.UserID,
		SchemaName:   schema.Name,
		CreatedAt:    time.Now(),
	}

	var confidences []float64
	mapped := make(map[string]*domain.MappedField)

	for _, field := range schema.Fields {
		var mv mappedValue
		var ok bool
		if mapper, exists := fieldMappers[field.Name]; exists {
			mv, ok = mapper(extraction, publication)
		} else {
			mv, ok = genericEntityMapper(field.Name, publication)
		}
		if !ok {
			result.UnmappedFields = append(result.UnmappedFields, field.Name)
			continue
		}
		result.MappedFields = append(result.MappedFields, domain.MappedField{
			FieldName:    field.Name,
			SourceText:   mv.source,
			MappedValue:  mv.value,
			Confidence:   mv.confidence,
			Provenance:   mv.provenance,
			Alternatives: mv.alternatives,
		})
		mapped[field.Name] = &result.MappedFields[len(result.MappedFields)-1]
		confidences = append(confidences, mv.confidence)
	}

	// Validation pass over the assembled result. Diagnostics, not failures.
	for _, field := range schema.Fields {
		mf, isMapped := mapped[field.Name]
		if !isMapped {
			if field.Required {
				result.ValidationErrors = append(result.ValidationErrors, domain.FieldError{
					Field:      field.Name,
					Message:    "required field could not be mapped from the document",
					Severity:   domain.SeverityHigh,
					Suggestion: "fill this field manually",
				})
			}
			continue
		}
		switch field.Type {
		case domain.FieldTypeDate:
			if !reISODate.MatchString(mf.MappedValue) {
				result.ValidationErrors = append(result.ValidationErrors, domain.FieldError{
					Field:      field.Name,
					Message:    fmt.Sprintf("value %q is not a valid YYYY-MM-DD date", mf.MappedValue),
					Severity:   domain.SeverityMedium,
					Suggestion: "verify the date against the source document",
				})
			}
		case domain.FieldTypeEnum:
			if !containsString(field.Values, mf.MappedValue) {
				result.ValidationErrors = append(result.ValidationErrors, domain.FieldError{
					Field:      field.Name,
					Message:    fmt.Sprintf("value %q is not one of the allowed values", mf.MappedValue),
					Severity:   domain.SeverityMedium,
					Suggestion: "expected one of: " + strings.Join(field.Values, ", "),
				})
			}
		}
	}

	result.OverallConfidence = OverallConfidence(confidences, len(result.UnmappedFields))

	m.logger.Debug("mapped publication to schema",
		"schema", schema.Name,
		"mapped", len(result.MappedFields),
		"unmapped", len(result.UnmappedFields),
		"confidence", result.OverallConfidence)

	return result, nil
}

func containsString(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
