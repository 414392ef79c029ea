// Package schemas provides JSON Schema validation for the site's data documents.
package schemas

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/nextlevelcleaning/cards/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

var (
	profileOnce   sync.Once
	profileSchema *gojsonschema.Schema
	profileErr    error
)

// ValidateProfile validates a profile record document against the embedded profile schema.
// Unknown content item types are reported as field errors.
func ValidateProfile(doc []byte) error {
	profileOnce.Do(func() {
		profileSchema, profileErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemas.Profile))
	})
	if profileErr != nil {
		return &SchemaLoadError{
			Path:    schemas.ProfileSchemaFile,
			Message: "embedded schema does not compile",
			Cause:   profileErr,
		}
	}

	result, err := profileSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to read profile document: %w", err)
	}
	return toValidationError(result)
}

// ValidateProfileFile validates the profile record stored at path.
func ValidateProfileFile(path string) error {
	doc, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", path)
		}
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ValidateProfile(doc)
}

// toValidationError returns nil for a valid result, otherwise a *ValidationError.
func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
