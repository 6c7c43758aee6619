package config

import (
	"legal-ocr-server/internal/domain"
	"legal-ocr-server/internal/repository"
	"legal-ocr-server/internal/service"
	"legal-ocr-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config         domain.Config
	Logger         domain.Logger
	SupabaseClient domain.SupabaseClient

	ExtractionRepository domain.ExtractionRepository
	MappingRepository    domain.MappingRepository

	OCREngine      domain.OCREngine
	PageRenderer   domain.PageRenderer
	SchemaRegistry domain.SchemaRegistry

	ExtractionService domain.ExtractionService
	StructureService  domain.StructureService
	MappingService    domain.MappingService
	AuthService       domain.AuthService
}

// NewContainer creates a new dependency injection container
func NewContainer() (*Container, error) {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Initialize Supabase client
	supabaseClient := repository.NewSupabaseClient(config, appLogger)

	// Initialize repositories
	extractionRepo := repository.NewSupabaseExtractionRepository(supabaseClient, appLogger)
	mappingRepo := repository.NewSupabaseMappingRepository(supabaseClient, appLogger)

	// Initialize pipeline components
	engine := service.NewTesseractEngine(config.GetTessdataPrefix(), logger.WithComponent(appLogger, "ocr"))
	renderer := service.NewFitzRenderer(logger.WithComponent(appLogger, "renderer"))
	registry, err := service.NewFileSchemaRegistry(config.GetSchemaConfigPath(), logger.WithComponent(appLogger, "schemas"))
	if err != nil {
		return nil, err
	}

	// Initialize services
	extractionService := service.NewOCRExtractionService(engine, renderer, config.GetRenderDPI(), logger.WithComponent(appLogger, "extraction"))
	structureService := service.NewStructureExtractor(logger.WithComponent(appLogger, "structure"))
	mappingService := service.NewFormMapper(registry, logger.WithComponent(appLogger, "mapping"))
	authService := service.NewSupabaseAuthService(supabaseClient, logger.WithComponent(appLogger, "auth"))

	return &Container{
		Config:               config,
		Logger:               appLogger,
		SupabaseClient:       supabaseClient,
		ExtractionRepository: extractionRepo,
		MappingRepository:    mappingRepo,
		OCREngine:            engine,
		PageRenderer:         renderer,
		SchemaRegistry:       registry,
		ExtractionService:    extractionService,
		StructureService:     structureService,
		MappingService:       mappingService,
		AuthService:          authService,
	}, nil
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetSupabaseClient returns the Supabase client instance
func (c *Container) GetSupabaseClient() domain.SupabaseClient {
	return c.SupabaseClient
}
