package domain

import "context"

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetJWTSecret() string
	GetTessdataPrefix() string
	GetOCRLanguages() string
	GetRenderDPI() float64
	GetSchemaConfigPath() string
}

// OCRProfile is a parameter set applied to the recognition engine between
// calls. Two profiles exist: one tuned for Arabic-dominant documents and one
// for Latin-dominant documents.
type OCRProfile struct {
	Name               string
	Languages          string // tesseract language codes, e.g. "ara" or "fra+eng"
	PageSegMode        int
	CharWhitelist      string // empty = unrestricted
	PreserveWordSpaces bool
	DictionaryAssist   bool
}

// RecognitionResult is the raw output of one engine invocation.
type RecognitionResult struct {
	Text       string
	Confidence float64 // 0.0-1.0
}

// OCREngine wraps the external text-from-pixels capability. Exactly one
// engine worker exists per process; implementations must memoize
// initialization so concurrent callers observe a single outcome.
type OCREngine interface {
	Recognize(image []byte) (*RecognitionResult, error)
	Configure(profile OCRProfile) error
	// Reset discards a terminally-failed engine so the next call can retry
	// initialization.
	Reset()
	Close() error
}

// PageRenderer rasterizes PDF pages. A failure on any page fails the whole
// document; no partial results are returned.
type PageRenderer interface {
	RenderPages(pdf []byte, dpi float64) ([][]byte, error)
}

// ExtractionService runs the acquisition/correction stages of the pipeline.
type ExtractionService interface {
	Extract(ctx context.Context, file []byte, fileName, userID string) (*ExtractionResult, error)
}

// StructureService derives a StructuredPublication from extracted text.
// Pure function of the text; absence of a signal yields a documented
// default, never an error.
type StructureService interface {
	Structure(text string) *StructuredPublication
}

// MappingService maps a structured publication onto a named form schema.
type MappingService interface {
	MapToForm(extraction *ExtractionResult, publication *StructuredPublication, schemaName string) (*MappingResult, error)
}

// SchemaRegistry resolves form schemas by name. The mapper consumes this but
// does not own its lifecycle.
type SchemaRegistry interface {
	Get(name string) (*FormSchema, error)
	List() []FormSchema
}

// ExtractionRepository defines persistence operations for extraction results.
type ExtractionRepository interface {
	Create(extraction *ExtractionResult, token string) error
	GetByID(id string, token string) (*ExtractionResult, error)
	GetByUserID(userID string, token string) ([]*ExtractionResult, error)
	Delete(id string, token string) error
}

// MappingRepository defines persistence operations for mapping results.
type MappingRepository interface {
	Create(mapping *MappingResult, token string) error
	GetByID(id string, token string) (*MappingResult, error)
	GetByExtractionID(extractionID string, token string) ([]*MappingResult, error)
}

// AuthService validates caller identity.
type AuthService interface {
	ValidateToken(token string) (*SupabaseUser, error)
}
