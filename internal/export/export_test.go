package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tgienger/taskhub/internal/models"
	"github.com/tgienger/taskhub/internal/store"
)

func testStore(t *testing.T) *store.TaskStore {
	t.Helper()
	s, err := store.New(store.WithTasks([]models.Task{
		{ID: 1, Text: "Calculus, part 3", Priority: models.PriorityHigh, Subject: "Math", DueDate: models.Date{Year: 2026, Month: time.March, Day: 12}},
		{ID: 2, Text: "Lab", Priority: models.PriorityLow, Completed: true},
	}))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestWriteJSON(t *testing.T) {
	s := testStore(t)
	dir := filepath.Join(t.TempDir(), "out")

	path, err := New(dir, "JSON").Write(s)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if want := filepath.Join(dir, "student_tasks.json"); path != want {
		t.Errorf("path: got %q, want %q", path, want)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := s.Export()
	if !bytes.Equal(got, want) {
		t.Errorf("file content differs from store export:\n%s\n---\n%s", got, want)
	}
}

func TestRenderCSV(t *testing.T) {
	data, err := New(".", "csv").Render(testStore(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2", len(records))
	}
	want := []string{"1", "Calculus, part 3", "false", "High", "Math", "2026-03-12"}
	for i, field := range want {
		if records[1][i] != field {
			t.Errorf("record 1 field %d: got %q, want %q", i, records[1][i], field)
		}
	}
	if records[2][2] != "true" || records[2][5] != "" {
		t.Errorf("record 2: got %v", records[2])
	}
}

func TestRenderPDF(t *testing.T) {
	data, err := New(".", "pdf").Render(testStore(t))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 16)])
	}
}

func TestUnknownFormat(t *testing.T) {
	if _, err := New(t.TempDir(), "xml").Write(testStore(t)); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestSnapshotIsFrozen(t *testing.T) {
	s := testStore(t)
	snap, err := Take(s)
	if err != nil {
		t.Fatalf("Take: %v", err)
	}
	s.Delete(1)
	s.ClearCompleted()

	if len(snap.Tasks()) != 2 {
		t.Errorf("snapshot changed with store: %d tasks", len(snap.Tasks()))
	}
	data, _ := snap.Export()
	if !bytes.Contains(data, []byte("Calculus")) {
		t.Errorf("snapshot export lost tasks: %s", data)
	}
}
