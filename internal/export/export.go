// Package export writes a task list to a file the user can keep.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/tgienger/taskhub/internal/models"
)

// BaseName is the file name, without extension, of every export
const BaseName = "student_tasks"

// Source supplies the serialized task list and the tasks themselves.
// *store.TaskStore satisfies it.
type Source interface {
	Export() ([]byte, error)
	Tasks() []models.Task
}

// Snapshot is a frozen copy of a task list, safe to hand to another goroutine
type Snapshot struct {
	data  []byte
	tasks []models.Task
}

// Take copies everything an export needs out of src
func Take(src Source) (*Snapshot, error) {
	data, err := src.Export()
	if err != nil {
		return nil, err
	}
	return &Snapshot{data: data, tasks: src.Tasks()}, nil
}

func (s *Snapshot) Export() ([]byte, error) { return s.data, nil }
func (s *Snapshot) Tasks() []models.Task     { return s.tasks }

// Exporter renders task lists into Dir using Format
type Exporter struct {
	Dir    string
	Format string
}

// New creates an exporter
func New(dir, format string) *Exporter {
	return &Exporter{Dir: dir, Format: strings.ToLower(format)}
}

// Path is the file the exporter writes to
func (e *Exporter) Path() string {
	return filepath.Join(e.Dir, BaseName+"."+e.Format)
}

// Render encodes the task list in the exporter's format
func (e *Exporter) Render(src Source) ([]byte, error) {
	switch e.Format {
	case "json":
		return src.Export()
	case "csv":
		return renderCSV(src.Tasks())
	case "pdf":
		return renderPDF(src.Tasks())
	default:
		return nil, fmt.Errorf("unknown format %s", e.Format)
	}
}

// Write renders the task list and saves it, returning the file path
func (e *Exporter) Write(src Source) (string, error) {
	data, err := e.Render(src)
	if err != nil {
		return "", fmt.Errorf("render %s export: %w", e.Format, err)
	}
	if err := os.MkdirAll(e.Dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := e.Path()
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}

func renderCSV(tasks []models.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "text", "completed", "priority", "subject", "due_date"}); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Text,
			strconv.FormatBool(t.Completed),
			string(t.Priority),
			t.Subject,
			t.DueDate.String(),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderPDF(tasks []models.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Student Task List")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.Cell(40, 6, "No tasks.")
	}
	for _, t := range tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s (%s)", mark, t.Text, t.Priority)
		if t.Subject != "" {
			line += " - " + t.Subject
		}
		if t.HasDueDate() {
			line += " - due " + t.DueDate.String()
		}
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
