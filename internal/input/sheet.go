package input

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/spiderweb/internal/categories"
	"github.com/jonathan/spiderweb/internal/schemas"
	"github.com/jonathan/spiderweb/internal/types"
	"gopkg.in/yaml.v3"
)

// AnswerSchemaPath is the repository-relative location of the answer sheet schema
const AnswerSchemaPath = "schemas/answers.schema.json"

var validate = validator.New()

// SheetError reports an answer sheet that could not be loaded or is invalid
type SheetError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SheetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("answer sheet %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("answer sheet %s: %s", e.Path, e.Message)
}

func (e *SheetError) Unwrap() error {
	return e.Cause
}

// LoadSheet reads a JSON or YAML answer sheet and validates it against the
// schema (when it can be located), struct tags and the category table
func LoadSheet(path string, table *categories.Table) (*types.AnswerSheet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &SheetError{Path: path, Message: "failed to read file", Cause: err}
	}

	doc, err := toJSON(path, content)
	if err != nil {
		return nil, &SheetError{Path: path, Message: "failed to parse", Cause: err}
	}

	if schemaPath := schemas.ResolveSchemaPath(AnswerSchemaPath); schemaPath != "" {
		if err := schemas.ValidateBytes(schemaPath, doc); err != nil {
			return nil, &SheetError{Path: path, Message: "does not match schema", Cause: err}
		}
	}

	var sheet types.AnswerSheet
	if err := json.Unmarshal(doc, &sheet); err != nil {
		return nil, &SheetError{Path: path, Message: "failed to decode", Cause: err}
	}
	sheet.Name = strings.TrimSpace(sheet.Name)

	if err := CheckSheet(&sheet, table); err != nil {
		return nil, &SheetError{Path: path, Message: "invalid answers", Cause: err}
	}

	return &sheet, nil
}

// CheckSheet validates struct constraints and every count against its section
func CheckSheet(sheet *types.AnswerSheet, table *categories.Table) error {
	if err := validate.Struct(sheet); err != nil {
		return err
	}
	for id, count := range sheet.YesCounts {
		section, ok := table.Lookup(id)
		if !ok {
			return fmt.Errorf("unknown section %q", id)
		}
		if _, err := ParseCount(fmt.Sprint(count), section.QuestionCount); err != nil {
			return fmt.Errorf("section %s: %w", id, err)
		}
	}
	return nil
}

// toJSON normalizes YAML input into JSON so both formats share one schema
func toJSON(path string, content []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var generic map[string]any
		if err := yaml.Unmarshal(content, &generic); err != nil {
			return nil, err
		}
		return json.Marshal(generic)
	default:
		if !json.Valid(content) {
			return nil, fmt.Errorf("invalid JSON")
		}
		return content, nil
	}
}
