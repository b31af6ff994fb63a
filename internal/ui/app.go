package ui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/tgienger/taskhub/internal/db"
	"github.com/tgienger/taskhub/internal/export"
	"github.com/tgienger/taskhub/internal/models"
	"github.com/tgienger/taskhub/internal/store"
	"github.com/tgienger/taskhub/internal/ui/views"
)

// Options wires the collaborators of the application
type Options struct {
	// Settings remembers the last view filter. Nil disables it.
	Settings *db.DB
	Exporter *export.Exporter
	Logger   *log.Logger

	ToastDuration time.Duration
}

type App struct {
	store    *store.TaskStore
	settings *db.DB
	exporter *export.Exporter
	logger   *log.Logger
	taskList *views.TaskListView
	width    int
	height   int
}

// Creates a new application over st
func NewApp(st *store.TaskStore, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	exporter := opts.Exporter
	if exporter == nil {
		exporter = export.New(".", "json")
	}
	return &App{
		store:    st,
		settings: opts.Settings,
		exporter: exporter,
		logger:   logger,
		taskList: views.NewTaskListView(st, opts.ToastDuration),
	}
}

func (a *App) Init() tea.Cmd {
	// Restore the last view filter
	if a.settings != nil {
		value, err := a.settings.GetSetting(db.KeyLastView)
		if err != nil {
			a.logger.Warn("could not read last view", "err", err)
		} else if value != "" {
			view, err := models.ParseView(value)
			if err != nil {
				a.logger.Warn("ignoring stored view", "value", value, "err", err)
			} else {
				a.taskList.SetView(view)
			}
		}
	}

	return a.taskList.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case views.ViewChanged:
		a.logger.Debug("view changed", "view", msg.View)
		if a.settings != nil {
			if err := a.settings.SetSetting(db.KeyLastView, msg.View.String()); err != nil {
				a.logger.Warn("could not save last view", "err", err)
			}
		}
		return a, nil

	case views.ExportRequested:
		return a, a.export()

	case views.ExportFinished:
		if msg.Err != nil {
			a.logger.Error("export failed", "err", msg.Err)
		} else {
			a.logger.Info("tasks exported", "path", msg.Path)
		}
	}

	_, cmd := a.taskList.Update(msg)
	return a, cmd
}

// export snapshots the list now and writes it off the event loop
func (a *App) export() tea.Cmd {
	snap, err := export.Take(a.store)
	if err != nil {
		return func() tea.Msg { return views.ExportFinished{Err: err} }
	}
	exporter := a.exporter
	return func() tea.Msg {
		path, err := exporter.Write(snap)
		return views.ExportFinished{Path: path, Err: err}
	}
}

func (a *App) View() string {
	return a.taskList.View()
}
