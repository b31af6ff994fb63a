package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"", Date{}, false},
		{"2026-02-28", Date{2026, time.February, 28}, false},
		{" 2026-10-01 ", Date{2026, time.October, 1}, false},
		{"2026-02-30", Date{}, true},
		{"10/01/2026", Date{}, true},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseDate(%q): err %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDateBefore(t *testing.T) {
	d := Date{2026, time.March, 10}
	tests := []struct {
		other Date
		want  bool
	}{
		{Date{2026, time.March, 11}, true},
		{Date{2026, time.April, 1}, true},
		{Date{2027, time.January, 1}, true},
		{Date{2026, time.March, 10}, false},
		{Date{2026, time.March, 9}, false},
		{Date{2025, time.December, 31}, false},
	}
	for _, tt := range tests {
		if got := d.Before(tt.other); got != tt.want {
			t.Errorf("%v.Before(%v): got %v, want %v", d, tt.other, got, tt.want)
		}
	}
}

func TestDateRelative(t *testing.T) {
	today := Date{2026, time.March, 10}
	tests := []struct {
		name  string
		d     Date
		today Date
		want  string
	}{
		{"none", Date{}, today, "No due date"},
		{"today", today, today, "Today"},
		{"tomorrow", today.AddDays(1), today, "Tomorrow"},
		{"yesterday", today.AddDays(-1), today, "Yesterday"},
		{"in five", today.AddDays(5), today, "In 5 days"},
		{"a week", today.AddDays(7), today, "In 7 days"},
		{"past", today.AddDays(-4), today, "4 days ago"},
		{"far", today.AddDays(30), today, "Apr 9"},
		{"month boundary", Date{2026, time.March, 1}, Date{2026, time.March, 2}, "Yesterday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.d.Relative(tt.today); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTaskJSON(t *testing.T) {
	task := Task{ID: 3, Text: "Lab", Priority: PriorityHigh, Subject: "Science", DueDate: Date{2026, time.March, 9}}
	data, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"id":3,"text":"Lab","completed":false,"priority":"High","subject":"Science","dueDate":"2026-03-09"}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}

	var back Task
	if err := json.Unmarshal([]byte(`{"id":4,"text":"x","priority":"Low","dueDate":""}`), &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.HasDueDate() {
		t.Errorf("empty dueDate should decode to no date, got %v", back.DueDate)
	}
}

func TestTaskIsOverdue(t *testing.T) {
	today := Date{2026, time.March, 10}
	yesterday := today.AddDays(-1)

	if !(Task{DueDate: yesterday}).IsOverdue(today) {
		t.Error("incomplete task due yesterday should be overdue")
	}
	if (Task{DueDate: yesterday, Completed: true}).IsOverdue(today) {
		t.Error("completed task is never overdue")
	}
	if (Task{DueDate: today}).IsOverdue(today) {
		t.Error("task due today is not overdue")
	}
	if (Task{}).IsOverdue(today) {
		t.Error("task without due date is not overdue")
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in      string
		want    Priority
		wantErr bool
	}{
		{"", PriorityMedium, false},
		{"high", PriorityHigh, false},
		{"Low", PriorityLow, false},
		{"MEDIUM", PriorityMedium, false},
		{"urgent", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePriority(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePriority(%q): got %q, %v", tt.in, got, err)
		}
	}
}

func TestCycling(t *testing.T) {
	if got := PriorityHigh.Next(); got != PriorityLow {
		t.Errorf("High.Next: got %q", got)
	}
	if got := ViewCompleted.Next(); got != ViewAll {
		t.Errorf("Completed.Next: got %v", got)
	}
	if v, err := ParseView("Active"); err != nil || v != ViewActive {
		t.Errorf("ParseView(Active): got %v, %v", v, err)
	}
}
