// Package seed provides the tasks a session starts with: the built-in sample
// set, or a task list file in the export format.
package seed

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tgienger/taskhub/internal/models"
)

//go:embed tasks.schema.json
var schemaSource string

const schemaURL = "taskhub://tasks.schema.json"

// Sample returns the demo tasks with due dates relative to today
func Sample(today models.Date) []models.Task {
	return []models.Task{
		{ID: 1, Text: "Complete Calculus Assignment 3", Priority: models.PriorityHigh, Subject: "Math", DueDate: today.AddDays(2)},
		{ID: 2, Text: `Read Chapter 4 of "The Modern Mind"`, Priority: models.PriorityMedium, Subject: "Literature", DueDate: today.AddDays(5)},
		{ID: 3, Text: "Prepare for Chemistry Lab", Completed: true, Priority: models.PriorityHigh, Subject: "Science", DueDate: today.AddDays(-1)},
		{ID: 4, Text: "Start drafting History essay outline", Priority: models.PriorityLow, Subject: "History", DueDate: today.AddDays(7)},
	}
}

// ValidationError is a schema violation at a location in the document
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SchemaError collects every violation found in a document
type SchemaError struct {
	Errors []*ValidationError
}

func (e *SchemaError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, ve := range e.Errors {
		msgs[i] = ve.Error()
	}
	return "task list does not match schema: " + strings.Join(msgs, "; ")
}

func compileSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaSource)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(schemaURL)
}

// Validate checks a JSON document against the task list schema
func Validate(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse task list: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		ve, ok := err.(*jsonschema.ValidationError)
		if !ok {
			return err
		}
		result := &SchemaError{}
		collectSchemaErrors(result, ve)
		return result
	}
	return nil
}

func collectSchemaErrors(result *SchemaError, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// jsonPointerToPath turns "/0/text" into "[0].text"
func jsonPointerToPath(pointer string) string {
	if pointer == "" || pointer == "/" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(strings.TrimPrefix(pointer, "/"), "/") {
		part = strings.ReplaceAll(strings.ReplaceAll(part, "~1", "/"), "~0", "~")
		if isIndex(part) {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(part)
	}
	return b.String()
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Parse validates data and decodes it into tasks. Priorities are
// normalised, missing ones become Medium, and text is trimmed.
func Parse(data []byte) ([]models.Task, error) {
	if err := Validate(data); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode task list: %w", err)
	}
	for i := range tasks {
		tasks[i].Text = strings.TrimSpace(tasks[i].Text)
		tasks[i].Subject = strings.TrimSpace(tasks[i].Subject)
		p, err := models.ParsePriority(string(tasks[i].Priority))
		if err != nil {
			return nil, &SchemaError{Errors: []*ValidationError{{Path: fmt.Sprintf("[%d].priority", i), Err: err}}}
		}
		tasks[i].Priority = p
	}
	return tasks, nil
}

// LoadFile reads and parses a task list file
func LoadFile(path string) ([]models.Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	tasks, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return tasks, nil
}
