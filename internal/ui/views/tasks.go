package views

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/taskhub/internal/models"
	"github.com/tgienger/taskhub/internal/store"
	"github.com/tgienger/taskhub/internal/ui/keys"
	"github.com/tgienger/taskhub/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusSearchInput FocusArea = iota
	FocusTaskList
)

type confirmKind int

const (
	confirmNone confirmKind = iota
	confirmDelete
	confirmClear
)

// Lines taken by everything except the task rows
const chromeHeight = 18

// maxTextLength caps what can be typed into a task description
const maxTextLength = 200

// DefaultToastDuration is how long the completion banner stays up
const DefaultToastDuration = 2 * time.Second

// ViewChanged is emitted when the user picks another view filter
type ViewChanged struct {
	View models.View
}

// ExportRequested asks the application to write the task list out
type ExportRequested struct{}

// ExportFinished reports the outcome of an export
type ExportFinished struct {
	Path string
	Err  error
}

type toastExpiredMsg struct {
	seq int
}

// TaskListView shows the task list with its filters and stats
type TaskListView struct {
	store  *store.TaskStore
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	// UI state
	focus       FocusArea
	cursor      int
	scrollY     int
	view        models.View
	searchInput textinput.Model
	visible     []models.Task

	// Adding
	adding bool
	form   *TaskForm

	// Inline text edit
	editing   bool
	editID    int64
	editInput textinput.Model

	// Confirmation popups
	confirming    confirmKind
	confirmTarget models.Task

	// Grab-and-drop reordering
	grabbing bool
	grabFrom int

	// Completion banner
	toast         string
	toastSeq      int
	toastDuration time.Duration

	// Status line
	status    string
	statusErr bool

	showHelpPopup bool
}

// NewTaskListView creates a task list view over st
func NewTaskListView(st *store.TaskStore, toastDuration time.Duration) *TaskListView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	edit := textinput.New()
	edit.CharLimit = maxTextLength

	if toastDuration <= 0 {
		toastDuration = DefaultToastDuration
	}

	v := &TaskListView{
		store:         st,
		styles:        styles.NewStyles(),
		keys:          keys.DefaultKeyMap(),
		focus:         FocusTaskList,
		searchInput:   search,
		editInput:     edit,
		form:          NewTaskForm(),
		toastDuration: toastDuration,
	}
	v.refresh()
	return v
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return nil
}

// SetView switches the view filter without emitting ViewChanged
func (v *TaskListView) SetView(view models.View) {
	v.view = view
	v.cursor = 0
	v.scrollY = 0
	v.refresh()
}

// CurrentView returns the active view filter
func (v *TaskListView) CurrentView() models.View {
	return v.view
}

// Visible returns the tasks currently on screen, in order
func (v *TaskListView) Visible() []models.Task {
	return v.visible
}

// refresh recomputes the displayed list from the store
func (v *TaskListView) refresh() {
	v.visible = v.store.Visible(v.view, v.searchInput.Value())
	if v.cursor >= len(v.visible) {
		v.cursor = max(0, len(v.visible)-1)
	}
	v.ensureVisible()
}

// canReorder reports whether displayed positions match store positions
func (v *TaskListView) canReorder() bool {
	return v.view == models.ViewAll && v.searchInput.Value() == ""
}

func (v *TaskListView) selected() (models.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.visible) {
		return models.Task{}, false
	}
	return v.visible[v.cursor], true
}

// selectID moves the cursor onto the task with the given id if it is shown
func (v *TaskListView) selectID(id int64) {
	for i, t := range v.visible {
		if t.ID == id {
			v.cursor = i
			v.ensureVisible()
			return
		}
	}
}

func (v *TaskListView) setStatus(msg string, isErr bool) {
	v.status = msg
	v.statusErr = isErr
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.searchInput.Width = clamp(contentWidth-40, 10, 30)
		v.editInput.Width = clamp(contentWidth-12, 10, 60)
		v.ensureVisible()
		return v, nil

	case toastExpiredMsg:
		if msg.seq == v.toastSeq {
			v.toast = ""
		}
		return v, nil

	case ExportFinished:
		if msg.Err != nil {
			v.setStatus("Export failed: "+msg.Err.Error(), true)
		} else {
			v.setStatus("Exported to "+msg.Path, false)
		}
		return v, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return v, tea.Quit
		}

		// Any key closes the help popup
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirming != confirmNone {
			return v.updateConfirm(msg)
		}

		if v.adding {
			return v.updateAdding(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		if v.grabbing {
			return v.updateGrabbing(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Don't process hotkeys while typing a search
	if v.focus == FocusSearchInput {
		switch {
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Enter), key.Matches(msg, v.keys.Tab):
			v.searchInput.Blur()
			v.focus = FocusTaskList
			return v, nil
		default:
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(msg)
			v.cursor = 0
			v.scrollY = 0
			v.refresh()
			return v, cmd
		}
	}

	v.status = ""

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		if v.searchInput.Value() != "" {
			v.searchInput.Reset()
			v.refresh()
		}
		return v, nil

	case key.Matches(msg, v.keys.Tab), key.Matches(msg, v.keys.Search):
		v.focus = FocusSearchInput
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.visible)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.adding = true
		v.form.Reset()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Edit):
		if task, ok := v.selected(); ok {
			v.editing = true
			v.editID = task.ID
			// SetValue truncates to CharLimit, so longer seeded text lifts the cap
			v.editInput.CharLimit = maxTextLength
			if utf8.RuneCountInString(task.Text) >= maxTextLength {
				v.editInput.CharLimit = 0
			}
			v.editInput.SetValue(task.Text)
			v.editInput.CursorEnd()
			v.editInput.Focus()
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if task, ok := v.selected(); ok {
			completed := v.store.ToggleComplete(task.ID)
			v.refresh()
			if completed {
				return v, v.showToast("🎉 Task completed! Great work.")
			}
		}
		return v, nil

	case key.Matches(msg, v.keys.Delete):
		if task, ok := v.selected(); ok {
			v.confirming = confirmDelete
			v.confirmTarget = task
		}
		return v, nil

	case key.Matches(msg, v.keys.ClearCompleted):
		if v.store.Stats().Completed == 0 {
			v.setStatus("No completed tasks to clear", false)
			return v, nil
		}
		v.confirming = confirmClear
		return v, nil

	case key.Matches(msg, v.keys.Export):
		if v.store.Len() == 0 {
			v.setStatus("Nothing to export", false)
			return v, nil
		}
		v.setStatus("Exporting...", false)
		return v, func() tea.Msg { return ExportRequested{} }

	case key.Matches(msg, v.keys.Filter):
		return v, v.changeView(v.view.Next())

	case key.Matches(msg, v.keys.ViewAll):
		return v, v.changeView(models.ViewAll)

	case key.Matches(msg, v.keys.ViewActive):
		return v, v.changeView(models.ViewActive)

	case key.Matches(msg, v.keys.ViewCompleted):
		return v, v.changeView(models.ViewCompleted)

	case key.Matches(msg, v.keys.MoveUp):
		if v.cursor > 0 {
			v.move(v.cursor, v.cursor-1)
		}
		return v, nil

	case key.Matches(msg, v.keys.MoveDown):
		if v.cursor < len(v.visible)-1 {
			v.move(v.cursor, v.cursor+1)
		}
		return v, nil

	case key.Matches(msg, v.keys.Grab):
		if !v.canReorder() {
			v.setStatus("Reordering works in the All view without a search", true)
			return v, nil
		}
		if len(v.visible) > 1 {
			v.grabbing = true
			v.grabFrom = v.cursor
		}
		return v, nil

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) changeView(view models.View) tea.Cmd {
	if view == v.view {
		return nil
	}
	v.SetView(view)
	return func() tea.Msg { return ViewChanged{View: view} }
}

// move reorders the store and keeps the cursor on the moved task
func (v *TaskListView) move(from, to int) {
	if !v.canReorder() {
		v.setStatus("Reordering works in the All view without a search", true)
		return
	}
	if err := v.store.Reorder(from, to); err != nil {
		v.setStatus(err.Error(), true)
		return
	}
	v.cursor = to
	v.refresh()
}

func (v *TaskListView) updateGrabbing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.grabbing = false
		v.cursor = v.grabFrom
		v.ensureVisible()

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.visible)-1 {
			v.cursor++
			v.ensureVisible()
		}

	case key.Matches(msg, v.keys.Grab), key.Matches(msg, v.keys.Enter):
		v.grabbing = false
		v.move(v.grabFrom, v.cursor)

	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit
	}
	return v, nil
}

func (v *TaskListView) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := v.form.Update(msg)
	switch action {
	case formCancel:
		v.adding = false
		return v, nil
	case formSubmit:
		draft, err := v.form.Draft()
		if err != nil {
			v.form.SetError(err)
			return v, nil
		}
		task, err := v.store.Add(draft)
		if err != nil {
			v.form.SetError(err)
			return v, nil
		}
		v.adding = false
		v.refresh()
		v.selectID(task.ID)
		v.setStatus("Task added", false)
		return v, nil
	}
	return v, cmd
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.stopEditing()
		return v, nil

	case key.Matches(msg, v.keys.Enter):
		id := v.editID
		v.store.EditText(id, v.editInput.Value())
		v.stopEditing()
		if _, ok := v.store.Get(id); !ok {
			v.setStatus("Task deleted", false)
		}
		v.refresh()
		return v, nil
	}

	var cmd tea.Cmd
	v.editInput, cmd = v.editInput.Update(msg)
	return v, cmd
}

func (v *TaskListView) stopEditing() {
	v.editing = false
	v.editID = 0
	v.editInput.Blur()
	v.editInput.Reset()
}

func (v *TaskListView) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch v.confirming {
		case confirmDelete:
			v.store.Delete(v.confirmTarget.ID)
			v.setStatus("Task deleted", false)
		case confirmClear:
			n := v.store.ClearCompleted()
			v.setStatus(fmt.Sprintf("Cleared %d completed %s", n, plural(n, "task")), false)
		}
		v.confirming = confirmNone
		v.refresh()
		return v, nil
	case "n", "N", "esc":
		v.confirming = confirmNone
		return v, nil
	}
	return v, nil
}

// showToast raises the banner and schedules its removal. A newer toast
// keeps the banner up for its own full duration.
func (v *TaskListView) showToast(text string) tea.Cmd {
	v.toast = text
	v.toastSeq++
	seq := v.toastSeq
	return tea.Tick(v.toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

func (v *TaskListView) visibleItems() int {
	// Each task item is 2 lines
	return max((v.height-chromeHeight)/2, 1)
}

func (v *TaskListView) ensureVisible() {
	visibleItems := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
	v.scrollY = clamp(v.scrollY, 0, max(len(v.visible)-visibleItems, 0))
}

// View renders the task list
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirming != confirmNone {
		return v.renderConfirm()
	}

	if v.adding {
		contentWidth := styles.ContentWidth(v.width)
		centered := lipgloss.Place(contentWidth, v.height,
			lipgloss.Center, lipgloss.Center,
			v.form.View(contentWidth),
		)
		return styles.CenterView(centered, v.width, v.height)
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(v.renderTaskList())
	b.WriteString("\n\n")

	b.WriteString(renderStats(v.styles, v.store.Stats(), styles.ContentWidth(v.width)))
	b.WriteString("\n")

	b.WriteString(v.renderStatus())
	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles

	title := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Student Task Hub"),
		s.TitleMuted.Render("Organize your academic life, one task at a time."),
	)

	var tabs []string
	for _, view := range models.Views {
		style := s.Tab
		if view == v.view {
			style = s.TabActive
		}
		tabs = append(tabs, style.Render(view.String()))
	}

	searchStyle := s.Input
	if v.focus == FocusSearchInput {
		searchStyle = s.InputFocused
	}
	searchBox := searchStyle.Render(v.searchInput.View())

	bar := lipgloss.JoinHorizontal(lipgloss.Center,
		lipgloss.JoinHorizontal(lipgloss.Center, tabs...), "  ", searchBox,
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, "", bar)
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles

	if len(v.visible) == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			s.Title.Render("All Clear!"),
			s.TitleMuted.Render("You have no tasks here. Time for a break?"),
		)
	}

	tasks := v.visible
	if v.grabbing {
		tasks = previewMove(tasks, v.grabFrom, v.cursor)
	}

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(tasks))
	for i := v.scrollY; i < endIdx; i++ {
		items = append(items, v.renderTaskItem(tasks[i], i == v.cursor && v.focus == FocusTaskList))
	}

	if v.scrollY > 0 || endIdx < len(tasks) {
		items = append(items, s.TitleMuted.Render(fmt.Sprintf("  %d-%d of %d", v.scrollY+1, endIdx, len(tasks))))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// previewMove shows where a grabbed task would land
func previewMove(tasks []models.Task, from, to int) []models.Task {
	if from == to || from < 0 || from >= len(tasks) || to < 0 || to >= len(tasks) {
		return tasks
	}
	out := make([]models.Task, 0, len(tasks))
	out = append(out, tasks[:from]...)
	out = append(out, tasks[from+1:]...)
	moved := tasks[from]
	out = append(out[:to], append([]models.Task{moved}, out[to:]...)...)
	return out
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	width := max(styles.ContentWidth(v.width)-4, 20)
	today := v.store.Today()

	check := "○"
	if task.Completed {
		check = s.StatCompleted.Render("✓")
	}

	var text string
	switch {
	case v.editing && task.ID == v.editID:
		text = v.editInput.View()
	case task.Completed:
		text = s.TaskDone.Render(task.Text)
	default:
		text = task.Text
	}
	titleLine := check + " " + text

	var meta []string
	if task.Subject != "" {
		meta = append(meta, s.TaskSubject.Render(task.Subject))
	}
	meta = append(meta, s.Priority(task.Priority).Render("★ "+string(task.Priority)))
	if task.HasDueDate() {
		dueStyle := s.TaskDue
		if task.IsOverdue(today) {
			dueStyle = s.TaskOverdue
		}
		meta = append(meta, dueStyle.Render("◷ "+task.DueDate.Relative(today)))
	}
	metaLine := "  " + strings.Join(meta, "  ")

	var style lipgloss.Style
	switch {
	case selected && v.grabbing:
		style = s.Grabbed.Width(width)
	case selected:
		style = s.ListSelected.Width(width)
	default:
		style = s.ListItem.Width(width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		style.Render(titleLine),
		style.Render(metaLine),
	)
}

func (v *TaskListView) renderStatus() string {
	s := v.styles
	switch {
	case v.toast != "":
		return s.Toast.Render(v.toast)
	case v.grabbing:
		return s.StatusBar.Render("Moving task: ↑/↓ pick a slot • m/↵ drop • esc cancel")
	case v.editing:
		return s.StatusBar.Render("Editing: ↵ save (empty deletes) • esc cancel")
	case v.status != "" && v.statusErr:
		return s.Error.Padding(0, 1).Render(v.status)
	case v.status != "":
		return s.StatusBar.Render(v.status)
	}
	return ""
}

func (v *TaskListView) renderHelp() string {
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 60 {
		return v.styles.Help.Render(v.styles.HelpKey.Render("?") + " help")
	}

	return v.styles.Help.Render(
		fmt.Sprintf("%s new • %s edit • %s done • %s del • %s filter • %s search • %s move • %s export • %s help • %s quit",
			v.styles.HelpKey.Render("n"),
			v.styles.HelpKey.Render("e"),
			v.styles.HelpKey.Render("space"),
			v.styles.HelpKey.Render("d"),
			v.styles.HelpKey.Render("f"),
			v.styles.HelpKey.Render("/"),
			v.styles.HelpKey.Render("m"),
			v.styles.HelpKey.Render("E"),
			v.styles.HelpKey.Render("?"),
			v.styles.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("n") + "        new task",
		s.HelpKey.Render("e") + "        edit text",
		s.HelpKey.Render("space/x") + "  toggle done",
		s.HelpKey.Render("d") + "        delete task",
		s.HelpKey.Render("C") + "        clear completed",
		s.HelpKey.Render("f/1/2/3") + "  filter view",
		s.HelpKey.Render("/") + "        search",
		s.HelpKey.Render("K/J") + "      move up/down",
		s.HelpKey.Render("m") + "        grab and drop",
		s.HelpKey.Render("E") + "        export",
		s.HelpKey.Render("q") + "        quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.Popup.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderConfirm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	title, detail := "Delete Task?", fmt.Sprintf("%q will be removed.", v.confirmTarget.Text)
	if v.confirming == confirmClear {
		n := v.store.Stats().Completed
		title = "Clear Completed?"
		detail = fmt.Sprintf("%d completed %s will be removed.", n, plural(n, "task"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(title),
		"",
		s.TitleMuted.Render(detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
