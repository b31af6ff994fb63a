package views

import (
	"errors"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskhub/internal/models"
	"github.com/tgienger/taskhub/internal/store"
	"github.com/tgienger/taskhub/internal/ui/keys"
	"github.com/tgienger/taskhub/internal/ui/styles"
)

// Form fields in tab order
const (
	fieldText = iota
	fieldSubject
	fieldPriority
	fieldDue
	fieldSave
	fieldCount
)

type formAction int

const (
	formNone formAction = iota
	formCancel
	formSubmit
)

// TaskForm collects a new task
type TaskForm struct {
	styles *styles.Styles
	keys   keys.KeyMap

	text     textinput.Model
	subject  textinput.Model
	due      textinput.Model
	priority models.Priority

	focus int
	err   string
}

// NewTaskForm creates an empty form
func NewTaskForm() *TaskForm {
	text := textinput.New()
	text.Placeholder = "Add a new task, e.g. 'Finish Physics homework'"
	text.CharLimit = maxTextLength

	subject := textinput.New()
	subject.Placeholder = "Subject (e.g. Math)"
	subject.CharLimit = 50

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = len(models.DateLayout)

	f := &TaskForm{
		styles:  styles.NewStyles(),
		keys:    keys.DefaultKeyMap(),
		text:    text,
		subject: subject,
		due:     due,
	}
	f.Reset()
	return f
}

// Reset clears every field and focuses the description
func (f *TaskForm) Reset() {
	f.text.Reset()
	f.subject.Reset()
	f.due.Reset()
	f.priority = models.PriorityMedium
	f.err = ""
	f.focus = fieldText
	f.updateFocus()
}

// Draft reads the fields. Only the due date is checked here; the store
// validates the rest.
func (f *TaskForm) Draft() (models.Draft, error) {
	due, err := models.ParseDate(strings.TrimSpace(f.due.Value()))
	if err != nil {
		return models.Draft{}, &store.ValidationError{Field: "dueDate", Reason: "due date must look like YYYY-MM-DD"}
	}
	return models.Draft{
		Text:     f.text.Value(),
		Priority: f.priority,
		Subject:  f.subject.Value(),
		DueDate:  due,
	}, nil
}

// SetError shows err under the form
func (f *TaskForm) SetError(err error) {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		f.err = sentence(ve.Reason)
		if ve.Field == "text" {
			f.focus = fieldText
			f.updateFocus()
		}
		return
	}
	f.err = err.Error()
}

// Err is the message currently shown, if any
func (f *TaskForm) Err() string {
	return f.err
}

func sentence(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	if !strings.HasSuffix(s, ".") {
		r = append(r, '.')
	}
	return string(r)
}

// Update handles a key press and reports what the caller should do
func (f *TaskForm) Update(msg tea.KeyMsg) (formAction, tea.Cmd) {
	switch {
	case key.Matches(msg, f.keys.Back):
		return formCancel, nil

	case key.Matches(msg, f.keys.Save):
		return formSubmit, nil

	case key.Matches(msg, f.keys.Tab), msg.Type == tea.KeyDown && f.focus >= fieldPriority:
		f.focus = (f.focus + 1) % fieldCount
		f.updateFocus()
		return formNone, nil

	case msg.String() == "shift+tab", msg.Type == tea.KeyUp && f.focus >= fieldPriority:
		f.focus = (f.focus + fieldCount - 1) % fieldCount
		f.updateFocus()
		return formNone, nil

	case key.Matches(msg, f.keys.Enter):
		// Enter submits from any field
		return formSubmit, nil
	}

	if f.focus == fieldPriority {
		if key.Matches(msg, f.keys.Priority) {
			if msg.String() == "left" {
				f.priority = f.priority.Next().Next()
			} else {
				f.priority = f.priority.Next()
			}
		}
		return formNone, nil
	}

	var cmd tea.Cmd
	switch f.focus {
	case fieldText:
		before := f.text.Value()
		f.text, cmd = f.text.Update(msg)
		if f.err != "" && f.text.Value() != before && strings.TrimSpace(f.text.Value()) != "" {
			f.err = ""
		}
	case fieldSubject:
		f.subject, cmd = f.subject.Update(msg)
	case fieldDue:
		f.due, cmd = f.due.Update(msg)
	}
	return formNone, cmd
}

func (f *TaskForm) updateFocus() {
	f.text.Blur()
	f.subject.Blur()
	f.due.Blur()

	switch f.focus {
	case fieldText:
		f.text.Focus()
	case fieldSubject:
		f.subject.Focus()
	case fieldDue:
		f.due.Focus()
	}
}

// View renders the form within width columns
func (f *TaskForm) View(width int) string {
	s := f.styles
	inputWidth := clamp(width-6, 20, 60)

	fieldStyle := func(i int) lipgloss.Style {
		if f.focus == i {
			return s.InputFocused
		}
		return s.Input
	}

	var priorities []string
	for _, p := range models.Priorities {
		label := "○ " + string(p)
		if p == f.priority {
			label = s.Priority(p).Bold(true).Render("● " + string(p))
		}
		priorities = append(priorities, label)
	}

	btnStyle := s.Button
	if f.focus == fieldSave {
		btnStyle = s.ButtonFocused
	}

	errLine := ""
	if f.err != "" {
		errLine = s.Error.Render(f.err)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("New Task"),
		"",
		"Task:",
		fieldStyle(fieldText).Width(inputWidth).Render(f.text.View()),
		errLine,
		"Subject:",
		fieldStyle(fieldSubject).Width(inputWidth).Render(f.subject.View()),
		"",
		"Priority:",
		fieldStyle(fieldPriority).Width(inputWidth).Render(strings.Join(priorities, "   ")),
		"",
		"Due date:",
		fieldStyle(fieldDue).Width(16).Render(f.due.View()),
		"",
		btnStyle.Render(" Add Task "),
		"",
		s.TitleMuted.Render("Tab: next • ←/→: priority • ↵/Ctrl+S: add • Esc: cancel"),
	)
}
