package service

import (
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"legal-ocr-server/internal/domain"
	"legal-ocr-server/pkg/errors"
)

// Arabic recognition is restricted to the glyph inventory of Algerian
// official documents: Arabic letters, both digit systems and the punctuation
// that appears in legal headers.
const arabicWhitelist = "ءآأؤإئابةتثجحخدذرزسشصضطظعغفقكلمنهوىيًٌٍَُِّْ" +
	"0123456789٠١٢٣٤٥٦٧٨٩" +
	"()[]-–/.,:;؟!؛،° "

// Recognition profiles. Sample is the cheap first pass used to pick between
// the Arabic and Latin profiles for the full run.
var (
	ProfileArabic = domain.OCRProfile{
		Name:               "arabic",
		Languages:          "ara",
		PageSegMode:        int(gosseract.PSM_SINGLE_BLOCK),
		CharWhitelist:      arabicWhitelist,
		PreserveWordSpaces: true,
		DictionaryAssist:   false,
	}
	ProfileLatin = domain.OCRProfile{
		Name:             "latin",
		Languages:        "fra+eng",
		PageSegMode:      int(gosseract.PSM_SINGLE_COLUMN),
		DictionaryAssist: true,
	}
	ProfileSample = domain.OCRProfile{
		Name:             "sample",
		Languages:        "ara+fra",
		PageSegMode:      int(gosseract.PSM_AUTO),
		DictionaryAssist: true,
	}
)

// TesseractEngine is the single recognition worker of the process. The
// external engine keeps mutable per-call state, so every call is serialized
// behind one mutex; initialization is memoized so concurrent first callers
// observe a single outcome.
type TesseractEngine struct {
	mu             sync.Mutex
	client         *gosseract.Client
	initialized    bool
	initErr        error
	tessdataPrefix string
	profile        domain.OCRProfile
	logger         domain.Logger
}

// NewTesseractEngine creates an engine; the underlying client is not
// initialized until the first call that needs it.
func NewTesseractEngine(tessdataPrefix string, logger domain.Logger) *TesseractEngine {
	return &TesseractEngine{
		tessdataPrefix: tessdataPrefix,
		profile:        ProfileSample,
		logger:         logger,
	}
}

// ensureInitialized creates the client once. A failed attempt is remembered
// and returned to every subsequent caller until Reset. Caller holds e.mu.
func (e *TesseractEngine) ensureInitialized() error {
	if e.initialized {
		return e.initErr
	}
	e.initialized = true

	client := gosseract.NewClient()
	if e.tessdataPrefix != "" {
		if err := client.SetTessdataPrefix(e.tessdataPrefix); err != nil {
			client.Close()
			e.initErr = errors.NewEngineUnavailableError("failed to set tessdata prefix", err)
			return e.initErr
		}
	}
	e.client = client
	if err := e.applyProfile(e.profile); err != nil {
		client.Close()
		e.client = nil
		e.initErr = err
		return e.initErr
	}

	e.logger.Info("OCR engine initialized", "tessdata_prefix", e.tessdataPrefix)
	return nil
}

// applyProfile pushes a profile's parameters into the client. Caller holds
// e.mu and guarantees e.client is non-nil.
func (e *TesseractEngine) applyProfile(profile domain.OCRProfile) error {
	langs := strings.Split(profile.Languages, "+")
	if err := e.client.SetLanguage(langs...); err != nil {
		return errors.NewEngineUnavailableError("failed to set languages "+profile.Languages, err)
	}
	if err := e.client.SetPageSegMode(gosseract.PageSegMode(profile.PageSegMode)); err != nil {
		return errors.NewEngineUnavailableError("failed to set page segmentation mode", err)
	}
	if err := e.client.SetVariable("tessedit_char_whitelist", profile.CharWhitelist); err != nil {
		return errors.NewEngineUnavailableError("failed to set character whitelist", err)
	}
	preserve := "0"
	if profile.PreserveWordSpaces {
		preserve = "1"
	}
	if err := e.client.SetVariable("preserve_interword_spaces", preserve); err != nil {
		return errors.NewEngineUnavailableError("failed to set interword spacing", err)
	}
	dawg := "F"
	if profile.DictionaryAssist {
		dawg = "T"
	}
	if err := e.client.SetVariable("load_system_dawg", dawg); err != nil {
		return errors.NewEngineUnavailableError("failed to set system dictionary", err)
	}
	if err := e.client.SetVariable("load_freq_dawg", dawg); err != nil {
		return errors.NewEngineUnavailableError("failed to set frequency dictionary", err)
	}
	return nil
}

// Configure switches the engine to a profile; it applies immediately when the
// client exists and is remembered for initialization otherwise.
func (e *TesseractEngine) Configure(profile domain.OCRProfile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.profile = profile
	if !e.initialized || e.client == nil {
		return nil
	}
	return e.applyProfile(profile)
}

// Recognize runs one image through the engine under the current profile.
func (e *TesseractEngine) Recognize(image []byte) (*domain.RecognitionResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureInitialized(); err != nil {
		return nil, err
	}
	if err := e.client.SetImageFromBytes(image); err != nil {
		return nil, errors.NewEngineUnavailableError("failed to load image into engine", err)
	}
	text, err := e.client.Text()
	if err != nil {
		return nil, errors.NewEngineUnavailableError("recognition failed", err)
	}
	confidence, err := e.client.GetMeanConfidence()
	if err != nil {
		// Text came back fine; a missing confidence score is not fatal.
		e.logger.Warn("failed to read mean confidence", "error", err.Error())
		confidence = 0
	}
	confidence /= 100.0
	if confidence < 0 {
		confidence = 0
	}
	return &domain.RecognitionResult{
		Text:       text,
		Confidence: confidence,
	}, nil
}

// Reset discards a terminally-failed engine so the next call retries
// initialization from scratch.
func (e *TesseractEngine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client != nil {
		e.client.Close()
		e.client = nil
	}
	e.initialized = false
	e.initErr = nil
	e.logger.Warn("OCR engine reset")
}

// Close releases the underlying client.
func (e *TesseractEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	e.initialized = false
	e.initErr = nil
	return err
}
