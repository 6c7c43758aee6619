package service

import (
	"os"

	"gopkg.in/yaml.v3"

	"legal-ocr-server/internal/domain"
	"legal-ocr-server/pkg/errors"
)

var documentTypeValues = []string{
	string(domain.DocumentTypeLaw),
	string(domain.DocumentTypeDecree),
	string(domain.DocumentTypeOrder),
	string(domain.DocumentTypeOrdinance),
	string(domain.DocumentTypeInstruction),
	string(domain.DocumentTypeCircular),
	string(domain.DocumentTypeDecision),
	string(domain.DocumentTypeOther),
}

var languageValues = []string{
	string(domain.ScriptArabic),
	string(domain.ScriptFrench),
	string(domain.ScriptMixed),
}

// Built-in schemas. A YAML schema file may override these or add new ones;
// the built-ins guarantee the service works with no configuration at all.
func builtinSchemas() []domain.FormSchema {
	return []domain.FormSchema{
		{
			Name: "legal_text",
			Fields: []domain.FieldDefinition{
				{Name: "title", Type: domain.FieldTypeString, Required: true},
				{Name: "number", Type: domain.FieldTypeString, Required: true},
				{Name: "date", Type: domain.FieldTypeDate, Required: true},
				{Name: "type", Type: domain.FieldTypeEnum, Required: true, Values: documentTypeValues},
				{Name: "institution", Type: domain.FieldTypeString},
				{Name: "wilaya", Type: domain.FieldTypeString},
				{Name: "sector", Type: domain.FieldTypeString},
				{Name: "language", Type: domain.FieldTypeEnum, Values: languageValues},
				{Name: "content", Type: domain.FieldTypeText},
				{Name: "description", Type: domain.FieldTypeText},
			},
		},
		{
			Name: "administrative_procedure",
			Fields: []domain.FieldDefinition{
				{Name: "title", Type: domain.FieldTypeString, Required: true},
				{Name: "type", Type: domain.FieldTypeEnum, Required: true, Values: documentTypeValues},
				{Name: "institution", Type: domain.FieldTypeString, Required: true},
				{Name: "date", Type: domain.FieldTypeDate},
				{Name: "wilaya", Type: domain.FieldTypeString},
				{Name: "language", Type: domain.FieldTypeEnum, Values: languageValues},
				{Name: "description", Type: domain.FieldTypeText},
			},
		},
	}
}

// schemaFile is the on-disk YAML layout.
type schemaFile struct {
	Schemas []domain.FormSchema `yaml:"schemas"`
}

// FileSchemaRegistry resolves form schemas by name. Schemas are loaded once
// at construction; the registry is read-only afterwards and safe for
// concurrent use.
type FileSchemaRegistry struct {
	schemas map[string]domain.FormSchema
	order   []string
	logger  domain.Logger
}

// NewFileSchemaRegistry builds a registry from the built-in schemas plus the
// optional YAML file at configPath. File entries override built-ins of the
// same name.
func NewFileSchemaRegistry(configPath string, logger domain.Logger) (*FileSchemaRegistry, error) {
	r := &FileSchemaRegistry{
		schemas: make(map[string]domain.FormSchema),
		logger:  logger,
	}
	for _, s := range builtinSchemas() {
		r.add(s)
	}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, errors.NewInternalError("failed to read schema config file", err)
		}
		var file schemaFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, errors.NewInternalError("failed to parse schema config file", err)
		}
		for _, s := range file.Schemas {
			if s.Name == "" {
				return nil, errors.NewValidationError("schema config contains a schema without a name")
			}
			r.add(s)
		}
		logger.Info("loaded schema config", "path", configPath, "schemas", len(file.Schemas))
	}

	return r, nil
}

func (r *FileSchemaRegistry) add(s domain.FormSchema) {
	if _, exists := r.schemas[s.Name]; !exists {
		r.order = append(r.order, s.Name)
	}
	r.schemas[s.Name] = s
}

// Get resolves a schema by name. Unknown names fail loudly; there is no
// fallback schema.
func (r *FileSchemaRegistry) Get(name string) (*domain.FormSchema, error) {
	s, ok := r.schemas[name]
	if !ok {
		return nil, errors.NewUnknownSchemaError(name)
	}
	return &s, nil
}

// List returns every registered schema in registration order.
func (r *FileSchemaRegistry) List() []domain.FormSchema {
	out := make([]domain.FormSchema, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.schemas[name])
	}
	return out
}
