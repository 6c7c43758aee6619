package domain

import "time"

// Script identifies the writing system detected in a piece of text.
type Script string

const (
	ScriptArabic Script = "arabic"
	ScriptFrench Script = "french"
	ScriptMixed  Script = "mixed"
)

// RawPage is one page's OCR output, immutable once produced.
type RawPage struct {
	PageNumber int     `json:"page_number"` // 1-indexed
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"` // 0.0-1.0
}

// BoundingBox is a placeholder region location. The recognition engine reports
// text line by line; precise glyph geometry is not tracked.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// TextRegion is a per-line fragment of the extracted text, tagged with the
// script detected for that line.
type TextRegion struct {
	Text        string      `json:"text"`
	Script      Script      `json:"script"`
	Confidence  float64     `json:"confidence"`
	BoundingBox BoundingBox `json:"bounding_box"`
}

// ExtractionMetadata carries the measured processing statistics for one document.
type ExtractionMetadata struct {
	ProcessingTimeMs  int64        `json:"processing_time_ms"`
	AverageConfidence float64      `json:"average_confidence"`
	ArabicCharCount   int          `json:"arabic_char_count"`
	LatinCharCount    int          `json:"latin_char_count"`
	ArabicRatio       float64      `json:"arabic_ratio"`
	IsMixedLanguage   bool         `json:"is_mixed_language"`
	DocumentType      DocumentType `json:"document_type"`
	ProcessedAt       time.Time    `json:"processed_at"`
}

// ExtractionResult is the per-document artifact threaded through the pipeline.
// It is created by text acquisition, enriched by the later stages, and
// read-only once handed to the form mapper.
type ExtractionResult struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	FileName  string `json:"file_name"`
	FileType  string `json:"file_type"`
	PageCount int    `json:"page_count"`

	// ExtractedText is the corrected text of all pages joined with
	// page-boundary markers.
	ExtractedText string             `json:"extracted_text"`
	TextRegions   []TextRegion       `json:"text_regions"`
	Metadata      ExtractionMetadata `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}

// AverageRegionConfidence returns the arithmetic mean of the region
// confidences, 0 when there are no regions. Metadata.AverageConfidence must
// always equal this value.
func (e *ExtractionResult) AverageRegionConfidence() float64 {
	if len(e.TextRegions) == 0 {
		return 0
	}
	sum := 0.0
	for _, r := range e.TextRegions {
		sum += r.Confidence
	}
	return sum / float64(len(e.TextRegions))
}
