package service

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"legal-ocr-server/internal/domain"
	"legal-ocr-server/pkg/errors"
)

// pageMarker separates pages in the joined extracted text.
const pageMarker = "\n\n--- Page %d ---\n\n"

// Upload types the pipeline accepts. Extensions back up the content sniff
// for formats http.DetectContentType cannot identify.
var supportedMIMETypes = map[string]string{
	"application/pdf": "pdf",
	"image/png":       "image",
	"image/jpeg":      "image",
	"image/webp":      "image",
	"image/bmp":       "image",
}

var supportedExtensions = map[string]string{
	".pdf":  "pdf",
	".png":  "image",
	".jpg":  "image",
	".jpeg": "image",
	".webp": "image",
	".bmp":  "image",
	".tif":  "image",
	".tiff": "image",
}

// OCRExtractionService runs the full text-acquisition pipeline: file type
// detection, PDF rasterization, profile selection via a sample pass,
// per-page recognition and script correction.
type OCRExtractionService struct {
	engine    domain.OCREngine
	renderer  domain.PageRenderer
	renderDPI float64
	logger    domain.Logger
}

// NewOCRExtractionService creates the extraction service.
func NewOCRExtractionService(engine domain.OCREngine, renderer domain.PageRenderer, renderDPI float64, logger domain.Logger) *OCRExtractionService {
	if renderDPI <= 0 {
		renderDPI = DefaultRenderDPI
	}
	return &OCRExtractionService{
		engine:    engine,
		renderer:  renderer,
		renderDPI: renderDPI,
		logger:    logger,
	}
}

// detectFileType resolves the upload to "pdf" or "image", preferring the
// content sniff and falling back to the file extension when the sniff is
// inconclusive.
func detectFileType(file []byte, fileName string) (kind, mimeType string, err error) {
	sniffed := http.DetectContentType(file)
	if base, _, found := strings.Cut(sniffed, ";"); found {
		sniffed = base
	}
	if kind, ok := supportedMIMETypes[sniffed]; ok {
		return kind, sniffed, nil
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if kind, ok := supportedExtensions[ext]; ok {
		return kind, sniffed, nil
	}

	return "", "", errors.NewUnsupportedFileError(
		"file must be a PDF or an image",
		fmt.Sprintf("detected %s for %s", sniffed, fileName))
}

// Extract runs the whole acquisition pipeline for one uploaded document.
func (s *OCRExtractionService) Extract(ctx context.Context, file []byte, fileName, userID string) (*domain.ExtractionResult, error) {
	start := time.Now()

	if len(file) == 0 {
		return nil, errors.NewValidationError("uploaded file is empty")
	}
	kind, mimeType, err := detectFileType(file, fileName)
	if err != nil {
		return nil, err
	}

	pages := [][]byte{file}
	if kind == "pdf" {
		pages, err = s.renderer.RenderPages(file, s.renderDPI)
		if err != nil {
			return nil, err
		}
	}

	profile, err := s.selectProfile(pages[0])
	if err != nil {
		return nil, err
	}
	s.logger.Info("selected recognition profile",
		"profile", profile.Name, "file", fileName, "pages", len(pages))

	rawPages := make([]domain.RawPage, 0, len(pages))
	for i, image := range pages {
		if err := ctx.Err(); err != nil {
			return nil, errors.NewProcessingError("extraction cancelled", err)
		}
		recognized, err := s.engine.Recognize(image)
		if err != nil {
			return nil, err
		}
		rawPages = append(rawPages, domain.RawPage{
			PageNumber: i + 1,
			Text:       CorrectText(recognized.Text),
			Confidence: recognized.Confidence,
		})
	}

	result := assembleExtraction(rawPages, fileName, mimeType, userID)
	result.Metadata.ProcessingTimeMs = time.Since(start).Milliseconds()

	s.logger.Info("extraction complete",
		"id", result.ID,
		"pages", result.PageCount,
		"confidence", result.Metadata.AverageConfidence,
		"duration_ms", result.Metadata.ProcessingTimeMs)

	return result, nil
}

// selectProfile runs the cheap sample pass on the first page and picks the
// full-run profile from the detected script.
func (s *OCRExtractionService) selectProfile(firstPage []byte) (domain.OCRProfile, error) {
	if err := s.engine.Configure(ProfileSample); err != nil {
		return domain.OCRProfile{}, err
	}
	sample, err := s.engine.Recognize(firstPage)
	if err != nil {
		return domain.OCRProfile{}, err
	}

	profile := ProfileArabic
	if ClassifyScript(sample.Text).Dominant == domain.ScriptFrench {
		profile = ProfileLatin
	}
	if err := s.engine.Configure(profile); err != nil {
		return domain.OCRProfile{}, err
	}
	return profile, nil
}

// assembleExtraction joins the corrected pages and derives the per-line
// regions and document-level metadata.
func assembleExtraction(pages []domain.RawPage, fileName, mimeType, userID string) *domain.ExtractionResult {
	var sb strings.Builder
	var regions []domain.TextRegion

	for _, page := range pages {
		if page.PageNumber > 1 {
			sb.WriteString(fmt.Sprintf(pageMarker, page.PageNumber))
		}
		sb.WriteString(page.Text)

		for lineNo, line := range strings.Split(page.Text, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			regions = append(regions, domain.TextRegion{
				Text:       trimmed,
				Script:     ClassifyScript(trimmed).Dominant,
				Confidence: page.Confidence,
				BoundingBox: domain.BoundingBox{
					Y:      lineNo,
					Width:  len(trimmed),
					Height: 1,
				},
			})
		}
	}

	text := sb.String()
	classification := ClassifyScript(text)
	now := time.Now()

	result := &domain.ExtractionResult{
		ID:            uuid.New().String(),
		UserID:        userID,
		FileName:      fileName,
		FileType:      mimeType,
		PageCount:     len(pages),
		ExtractedText: text,
		TextRegions:   regions,
		Metadata: domain.ExtractionMetadata{
			ArabicCharCount: classification.ArabicCount,
			LatinCharCount:  classification.LatinCount,
			ArabicRatio:     classification.ArabicRatio,
			IsMixedLanguage: IsMixedRatio(classification.ArabicRatio),
			DocumentType:    DetectDocumentType(text),
			ProcessedAt:     now,
		},
		CreatedAt: now,
	}
	result.Metadata.AverageConfidence = result.AverageRegionConfidence()
	return result
}
