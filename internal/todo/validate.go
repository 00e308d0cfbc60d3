package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/task-cli/internal/utils"
)

// ValidationOptions controls validation behavior.
type ValidationOptions struct {
	// SchemaPath is the path to a JSON Schema file.
	// If empty, or if the file cannot be compiled, the bundled schema is used.
	SchemaPath string
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid      bool
	Errors     []error
	Warnings   []string
	UsedSchema string // path of the schema that was applied, or SchemaURL
	Tasks      int
}

func newValidationResult() *ValidationResult {
	return &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}
}

func (r *ValidationResult) fail(path string, err error) {
	r.Valid = false
	r.Errors = append(r.Errors, &ValidationError{Path: path, Err: err})
}

// ValidateFile reads and validates the task file at path. A missing file is
// valid (it loads as an empty list) and is reported as a warning.
func ValidateFile(path string, opts ValidationOptions) (*ValidationResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			result := newValidationResult()
			result.Warnings = append(result.Warnings, "task file not found (will be created on first add)")
			return result, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return Validate(data, opts), nil
}

// Validate checks raw task file content against the schema and the list
// invariants: IDs are 1..N in order, descriptions are non-blank, and
// updatedAt is not before createdAt.
func Validate(data []byte, opts ValidationOptions) *ValidationResult {
	result := newValidationResult()

	if len(bytes.TrimSpace(data)) == 0 {
		result.Warnings = append(result.Warnings, "task file is blank (loads as an empty list)")
		return result
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		result.fail("", fmt.Errorf("%w: %v", ErrUnreadableStore, err))
		return result
	}
	if _, ok := doc.([]any); !ok {
		result.fail("", fmt.Errorf("top-level value must be an array, found %s (resets to an empty list on next save)", jsonKind(doc)))
		return result
	}

	schema, schemaName, warnings := compileSchema(opts.SchemaPath)
	result.Warnings = append(result.Warnings, warnings...)
	result.UsedSchema = schemaName
	if err := schema.Validate(doc); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		result.fail("", fmt.Errorf("%w: %v", ErrUnreadableStore, err))
		return result
	}
	result.Tasks = len(tasks)
	NewList(tasks...).checkInvariants(result)

	return result
}

// checkInvariants reports what the schema cannot express.
func (l *List) checkInvariants(result *ValidationResult) {
	for i, task := range l.Tasks {
		path := fmt.Sprintf("[%d]", i)
		if task.ID != i+1 {
			result.fail(path+".id", fmt.Errorf("expected %d, got %d (ids must be contiguous from 1)", i+1, task.ID))
		}
		if strings.TrimSpace(task.Description) == "" {
			result.fail(path+".description", fmt.Errorf("must not be blank"))
		}
		if task.CreatedAt.IsZero() {
			result.fail(path+".createdAt", fmt.Errorf("missing required field"))
			continue
		}
		if task.UpdatedAt != nil && !task.UpdatedAt.IsZero() && task.UpdatedAt.Before(task.CreatedAt.Time) {
			result.fail(path+".updatedAt", fmt.Errorf("%s is before createdAt %s", task.UpdatedAt, task.CreatedAt))
		}
	}
}

// compileSchema compiles the schema at schemaPath, falling back to the
// bundled schema with a warning when that is not possible.
func compileSchema(schemaPath string) (*jsonschema.Schema, string, []string) {
	var warnings []string
	if schemaPath != "" {
		absPath, err := filepath.Abs(schemaPath)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("invalid schema path: %v", err))
		} else if _, err := os.Stat(absPath); err != nil {
			if os.IsNotExist(err) {
				warnings = append(warnings, fmt.Sprintf("schema file not found: %s", absPath))
			} else {
				warnings = append(warnings, fmt.Sprintf("failed to read schema file: %v", err))
			}
		} else {
			compiler := jsonschema.NewCompiler()
			schema, err := compiler.Compile(absPath)
			if err == nil {
				return schema, absPath, warnings
			}
			warnings = append(warnings, fmt.Sprintf("invalid schema file: %v", err))
		}
		warnings = append(warnings, "using bundled schema")
	}
	return jsonschema.MustCompileString(SchemaURL, bundledSchema), SchemaURL, warnings
}

func appendSchemaErrors(result *ValidationResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *ValidationResult, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}
