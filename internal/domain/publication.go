package domain

import "time"

// DocumentType classifies an Algerian legal instrument.
type DocumentType string

const (
	DocumentTypeLaw         DocumentType = "law"
	DocumentTypeDecree      DocumentType = "decree"
	DocumentTypeOrder       DocumentType = "order"
	DocumentTypeOrdinance   DocumentType = "ordinance"
	DocumentTypeInstruction DocumentType = "instruction"
	DocumentTypeCircular    DocumentType = "circular"
	DocumentTypeDecision    DocumentType = "decision"
	DocumentTypeOther       DocumentType = "other"
)

// EntityType tags a detected entity inside the document text.
type EntityType string

const (
	EntityDate        EntityType = "date"
	EntityNumber      EntityType = "number"
	EntityInstitution EntityType = "institution"
	EntityReference   EntityType = "reference"
	EntityPerson      EntityType = "person"
	EntityPlace       EntityType = "place"
	EntityAmount      EntityType = "amount"
)

// DetectedEntity is a single pattern hit with its character-offset span.
type DetectedEntity struct {
	Type       EntityType `json:"type"`
	Value      string     `json:"value"`
	Context    string     `json:"context"`
	Confidence float64    `json:"confidence"`
	Start      int        `json:"start"`
	End        int        `json:"end"`
}

// LegalReference is a citation of another legal instrument.
type LegalReference struct {
	Type       DocumentType `json:"type"`
	Number     string       `json:"number"`
	Date       string       `json:"date,omitempty"`
	Context    string       `json:"context"`
	Confidence float64      `json:"confidence"`
}

// Article is one numbered article of a legal text.
type Article struct {
	Number string `json:"number"`
	Title  string `json:"title,omitempty"`
	Body   string `json:"body"`
}

// PublicationMetadata carries document-level statistics of the structuring pass.
type PublicationMetadata struct {
	Language    Script           `json:"language"`
	WordCount   int              `json:"word_count"`
	ProcessedAt time.Time        `json:"processed_at"`
	Confidence  float64          `json:"confidence"` // 0.0-1.0
	Entities    []DetectedEntity `json:"entities"`
}

// StructuredPublication is the legally-structured view of one extraction.
// Derived once from the final extracted text; immutable after creation.
type StructuredPublication struct {
	Title       string       `json:"title"`
	Number      string       `json:"number"`
	Date        string       `json:"date"` // YYYY-MM-DD
	Type        DocumentType `json:"type"`
	Institution string       `json:"institution"`
	Wilaya      string       `json:"wilaya,omitempty"`
	Sector      string       `json:"sector,omitempty"`

	References []LegalReference `json:"references"`
	Articles   []Article        `json:"articles"`

	Metadata PublicationMetadata `json:"metadata"`
}

// Documented defaults for signals the extractor could not find. Callers must
// treat a Date equal to the processing day with suspicion: it is
// indistinguishable from a genuine same-day document.
const (
	DefaultTitle       = "Document sans titre"
	DefaultInstitution = "Institution non identifiée"
)
