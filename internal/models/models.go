package models

import (
	"fmt"
	"strings"
)

// Priority is the importance of a task
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every priority in ascending order
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority parses a priority name case-insensitively.
// An empty string yields the default, Medium.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	case "medium":
		return PriorityMedium, nil
	case "high":
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// Valid reports whether p is one of the known priorities
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Next returns the following priority, wrapping from High to Low
func (p Priority) Next() Priority {
	for i, q := range Priorities {
		if q == p {
			return Priorities[(i+1)%len(Priorities)]
		}
	}
	return PriorityMedium
}

// Task represents a single to-do item
type Task struct {
	ID        int64    `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
	Subject   string   `json:"subject"`
	DueDate   Date     `json:"dueDate"`
}

// HasDueDate reports whether the task carries a due date
func (t Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// IsOverdue reports whether the task is incomplete and due strictly before today
func (t Task) IsOverdue(today Date) bool {
	return !t.Completed && t.HasDueDate() && t.DueDate.Before(today)
}

// Draft holds the user input for a task that has not been created yet
type Draft struct {
	Text     string
	Priority Priority // empty means Medium
	Subject  string
	DueDate  Date // zero means no due date
}

// View selects which tasks are displayed
type View int

const (
	ViewAll View = iota
	ViewActive
	ViewCompleted
)

// Views lists every view in display order
var Views = []View{ViewAll, ViewActive, ViewCompleted}

func (v View) String() string {
	switch v {
	case ViewActive:
		return "Active"
	case ViewCompleted:
		return "Completed"
	default:
		return "All"
	}
}

// Next cycles to the following view
func (v View) Next() View {
	return Views[(int(v)+1)%len(Views)]
}

// Matches reports whether the task belongs in the view
func (v View) Matches(t Task) bool {
	switch v {
	case ViewActive:
		return !t.Completed
	case ViewCompleted:
		return t.Completed
	default:
		return true
	}
}

// ParseView parses a view name case-insensitively
func ParseView(s string) (View, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return ViewAll, nil
	case "active":
		return ViewActive, nil
	case "completed":
		return ViewCompleted, nil
	}
	return ViewAll, fmt.Errorf("unknown view %q", s)
}

// Stats aggregates counts over the whole task list
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Active    int `json:"active"`
	Overdue   int `json:"overdue"`
	Progress  int `json:"progress"` // percent, 0-100
}
