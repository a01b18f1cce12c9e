// Package export writes machine-readable assessment summaries.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/spiderweb/internal/fileio"
	"github.com/jonathan/spiderweb/internal/schemas"
	"github.com/jonathan/spiderweb/internal/types"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// AssessmentSchemaPath is the repository-relative location of the summary schema
const AssessmentSchemaPath = "schemas/assessment.schema.json"

// Format is a summary encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Error reports a summary that could not be encoded or written
type Error struct {
	Path    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("summary %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("summary %s: %s", e.Path, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// FormatFor picks the encoding from the file extension
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported summary extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
	}
}

// Encode serializes an assessment
func Encode(a *types.Assessment, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(a, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(a)
	default:
		return nil, fmt.Errorf("unknown summary format %q", format)
	}
}

// Validate checks the JSON encoding of an assessment against the summary
// schema. It is a no-op when the schema file cannot be located.
func Validate(a *types.Assessment) error {
	schemaPath := schemas.ResolveSchemaPath(AssessmentSchemaPath)
	if schemaPath == "" {
		return nil
	}
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return schemas.ValidateBytes(schemaPath, data)
}

// ValidateFile checks a summary on disk against the summary schema. JSON files
// are validated as they are; YAML files are decoded and checked in their JSON form.
func ValidateFile(path string) error {
	format, err := FormatFor(path)
	if err != nil {
		return &Error{Path: path, Message: "unsupported format", Cause: err}
	}
	schemaPath := schemas.ResolveSchemaPath(AssessmentSchemaPath)
	if schemaPath == "" {
		return &Error{Path: path, Message: "assessment schema not found"}
	}

	if format == FormatJSON {
		return schemas.ValidateJSON(schemaPath, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return &Error{Path: path, Message: "failed to read file", Cause: err}
	}
	var doc any
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return &Error{Path: path, Message: "failed to parse YAML", Cause: err}
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return &Error{Path: path, Message: "failed to convert YAML to JSON", Cause: err}
	}
	return schemas.ValidateBytes(schemaPath, data)
}

// WriteSummary encodes an assessment by file extension and writes it to path.
// A schema mismatch is logged and does not block the write.
func WriteSummary(path string, a *types.Assessment, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	format, err := FormatFor(path)
	if err != nil {
		return &Error{Path: path, Message: "unsupported format", Cause: err}
	}

	if err := Validate(a); err != nil {
		logger.Warn("assessment summary does not match schema",
			zap.String("report_id", a.ID),
			zap.Error(err))
	}

	data, err := Encode(a, format)
	if err != nil {
		return &Error{Path: path, Message: "failed to encode", Cause: err}
	}

	if err := fileio.WriteFileAtomic(path, data); err != nil {
		return &Error{Path: path, Message: "failed to write file", Cause: err}
	}

	logger.Debug("summary written", zap.String("path", path), zap.String("format", string(format)))
	return nil
}
