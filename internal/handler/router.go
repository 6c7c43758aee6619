package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"legal-ocr-server/internal/config"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(container *config.Container) http.Handler {
	router := mux.NewRouter()

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Health check endpoint (no auth required)
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"legal-ocr-server"}`))
	}).Methods("GET")

	// Initialize handlers
	authHandler := NewAuthHandler(container.Logger)
	extractionHandler := NewExtractionHandler(
		container.ExtractionService,
		container.StructureService,
		container.ExtractionRepository,
		container.Config.GetMaxFileSize(),
		container.Logger,
	)
	mappingHandler := NewMappingHandler(
		container.StructureService,
		container.MappingService,
		container.ExtractionRepository,
		container.MappingRepository,
		container.Logger,
	)
	schemaHandler := NewSchemaHandler(container.SchemaRegistry, container.Logger)

	// Auth middleware for protected routes
	authMiddleware := AuthMiddleware(container.AuthService, container.Logger)

	// Protected routes (require authentication)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(authMiddleware)

	// Auth routes (protected)
	protected.HandleFunc("/auth/validate", authHandler.ValidateToken).Methods("GET")

	// Extraction routes (protected)
	protected.HandleFunc("/documents/extract", extractionHandler.ExtractDocument).Methods("POST")
	protected.HandleFunc("/extractions", extractionHandler.GetExtractions).Methods("GET")
	protected.HandleFunc("/extractions/{id}", extractionHandler.GetExtraction).Methods("GET")
	protected.HandleFunc("/extractions/{id}", extractionHandler.DeleteExtraction).Methods("DELETE")
	protected.HandleFunc("/extractions/{id}/mappings", mappingHandler.GetMappingsForExtraction).Methods("GET")

	// Mapping routes (protected)
	protected.HandleFunc("/mappings", mappingHandler.CreateMapping).Methods("POST")
	protected.HandleFunc("/mappings/{id}", mappingHandler.GetMapping).Methods("GET")

	// Schema routes (protected)
	protected.HandleFunc("/schemas", schemaHandler.ListSchemas).Methods("GET")
	protected.HandleFunc("/schemas/lookup", schemaHandler.GetSchema).Methods("GET")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // Vite dev server
			"http://localhost:4173", // Vite preview
			"http://localhost:3000", // Alternative dev port
		},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders: []string{
			"Link",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
