package seed

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tgienger/taskhub/internal/models"
	"github.com/tgienger/taskhub/internal/store"
)

func TestSample(t *testing.T) {
	today := models.Date{Year: 2026, Month: time.March, Day: 10}
	tasks := Sample(today)

	if len(tasks) != 4 {
		t.Fatalf("got %d tasks, want 4", len(tasks))
	}
	s, err := store.New(
		store.WithTasks(tasks),
		store.WithClock(func() time.Time { return today.Time().Add(9 * time.Hour) }),
	)
	if err != nil {
		t.Fatalf("sample tasks rejected by store: %v", err)
	}

	// The completed lab task is due yesterday and must not count as overdue.
	want := models.Stats{Total: 4, Completed: 1, Active: 3, Overdue: 0, Progress: 25}
	if got := s.Stats(); got != want {
		t.Errorf("Stats: got %+v, want %+v", got, want)
	}
}

func TestParseValid(t *testing.T) {
	data := []byte(`[
  {"id": 1718000000000, "text": "  Read ch. 4 ", "completed": false, "priority": "High", "subject": "Literature", "dueDate": "2026-10-20"},
  {"id": 2, "text": "Lab", "completed": true, "dueDate": ""}
]`)

	tasks, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].Text != "Read ch. 4" {
		t.Errorf("Text: got %q", tasks[0].Text)
	}
	if tasks[0].DueDate != (models.Date{Year: 2026, Month: time.October, Day: 20}) {
		t.Errorf("DueDate: got %v", tasks[0].DueDate)
	}
	if tasks[1].Priority != models.PriorityMedium {
		t.Errorf("missing priority: got %q, want Medium", tasks[1].Priority)
	}
	if tasks[1].HasDueDate() {
		t.Errorf("empty due date: got %v", tasks[1].DueDate)
	}
}

func TestParseNormalisesPriority(t *testing.T) {
	tests := []struct {
		in   string
		want models.Priority
	}{
		{`"high"`, models.PriorityHigh},
		{`"Low"`, models.PriorityLow},
		{`"medium"`, models.PriorityMedium},
		{`""`, models.PriorityMedium},
	}
	for _, tt := range tests {
		tasks, err := Parse([]byte(`[{"id": 1, "text": "a", "priority": ` + tt.in + `}]`))
		if err != nil {
			t.Fatalf("priority %s: %v", tt.in, err)
		}
		if tasks[0].Priority != tt.want {
			t.Errorf("priority %s: got %q, want %q", tt.in, tasks[0].Priority, tt.want)
		}
	}
}

func TestParseRoundTripsExport(t *testing.T) {
	today := models.Date{Year: 2026, Month: time.March, Day: 10}
	s, err := store.New(store.WithTasks(Sample(today)))
	if err != nil {
		t.Fatal(err)
	}
	data, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	tasks, err := Parse(data)
	if err != nil {
		t.Fatalf("export does not validate: %v", err)
	}
	for i, task := range Sample(today) {
		if tasks[i] != task {
			t.Errorf("task %d: got %+v, want %+v", i, tasks[i], task)
		}
	}
}

func TestParseSchemaViolations(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantPath string
	}{
		{"not an array", `{"id": 1}`, ""},
		{"missing text", `[{"id": 1}]`, "[0]"},
		{"blank text", `[{"id": 1, "text": "   "}]`, "[0].text"},
		{"bad priority", `[{"id": 1, "text": "a", "priority": "Urgent"}]`, "[0].priority"},
		{"bad date", `[{"id": 1, "text": "a"}, {"id": 2, "text": "b", "dueDate": "next week"}]`, "[1].dueDate"},
		{"unknown field", `[{"id": 1, "text": "a", "owner": "me"}]`, "[0]"},
		{"fractional id", `[{"id": 1.5, "text": "a"}]`, "[0].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			var se *SchemaError
			if !errors.As(err, &se) {
				t.Fatalf("got %v, want *SchemaError", err)
			}
			found := false
			for _, ve := range se.Errors {
				if ve.Path == tt.wantPath {
					found = true
				}
			}
			if !found {
				t.Errorf("no violation at %q in %v", tt.wantPath, se)
			}
		})
	}
}

func TestParseMalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`[{"id": 1,`))
	if err == nil || !strings.Contains(err.Error(), "parse task list") {
		t.Errorf("got %v, want parse error", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	if err := os.WriteFile(path, []byte(`[{"id": 5, "text": "Essay", "subject": "History"}]`), 0644); err != nil {
		t.Fatal(err)
	}

	tasks, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Subject != "History" {
		t.Errorf("got %+v", tasks)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestJSONPointerToPath(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"/":           "",
		"/0":          "[0]",
		"/0/text":     "[0].text",
		"/12/dueDate": "[12].dueDate",
		"/a~1b":       "a/b",
	}
	for in, want := range tests {
		if got := jsonPointerToPath(in); got != want {
			t.Errorf("jsonPointerToPath(%q): got %q, want %q", in, got, want)
		}
	}
}
