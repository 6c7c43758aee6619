package domain

import "errors"

// Domain errors
var (
	ErrExtractionNotFound  = errors.New("extraction not found")
	ErrMappingNotFound     = errors.New("mapping not found")
	ErrAccessDenied        = errors.New("access denied")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidFile         = errors.New("invalid file")
	ErrUnsupportedFileType = errors.New("unsupported file type: expected an image or a PDF")
	ErrEngineUnavailable   = errors.New("ocr engine unavailable")
	ErrRenderFailure       = errors.New("pdf page rendering failed")
	ErrUnknownSchema       = errors.New("unknown form schema")
)
