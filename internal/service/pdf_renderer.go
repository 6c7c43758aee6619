package service

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"legal-ocr-server/internal/domain"
	"legal-ocr-server/pkg/errors"
)

// Rasterization at twice the nominal 72 dpi is the floor for usable Arabic
// recognition; the default leaves headroom above it.
const (
	MinRenderDPI     = 144.0
	DefaultRenderDPI = 220.0
)

// FitzRenderer rasterizes PDF pages to PNG via MuPDF. Stateless; safe for
// concurrent use.
type FitzRenderer struct {
	logger domain.Logger
}

// NewFitzRenderer creates a PDF page renderer.
func NewFitzRenderer(logger domain.Logger) *FitzRenderer {
	return &FitzRenderer{logger: logger}
}

// RenderPages rasterizes every page of the document at the given dpi. A
// failure on any page fails the whole document; no partial results.
func (r *FitzRenderer) RenderPages(pdf []byte, dpi float64) ([][]byte, error) {
	if dpi < MinRenderDPI {
		dpi = MinRenderDPI
	}

	doc, err := fitz.NewFromMemory(pdf)
	if err != nil {
		return nil, errors.NewRenderFailureError("failed to open PDF document", err)
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	if pageCount == 0 {
		return nil, errors.NewRenderFailureError("PDF document has no pages", nil)
	}

	pages := make([][]byte, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		img, err := doc.ImagePNG(i, dpi)
		if err != nil {
			return nil, errors.NewRenderFailureError(fmt.Sprintf("failed to rasterize page %d", i+1), err)
		}
		pages = append(pages, img)
	}

	r.logger.Debug("rendered PDF pages", "pages", pageCount, "dpi", dpi)
	return pages, nil
}
