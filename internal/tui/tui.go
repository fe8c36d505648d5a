// Package tui provides a Bubble Tea terminal user interface for rawimport.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/handiism/rawimport/internal/batch"
	"github.com/handiism/rawimport/internal/config"
	"github.com/handiism/rawimport/internal/convert"
	"github.com/handiism/rawimport/internal/format"
	"github.com/handiism/rawimport/internal/ingest"
	"github.com/handiism/rawimport/internal/metadata"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	fileStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateConverting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   batch.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	// Conversion context
	ctx    context.Context
	cancel context.CancelFunc

	// Batch runner reference
	runner  *batch.Runner
	sources []ingest.Source
	summary *batch.Summary

	// Conversion progress
	completedJobs int64
	totalJobs     int64

	// Options
	recurse bool
	force   bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "/photos/card/DCIM"
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		recurse:   settings.Recurse,
		force:     settings.Force,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent when conversion progress updates.
	ProgressMsg struct {
		Event batch.ProgressEvent
	}

	// ScanDoneMsg is sent when input enumeration completes.
	ScanDoneMsg struct {
		Sources []ingest.Source
		Runner  *batch.Runner
		Err     error
	}

	// ConvertDoneMsg is sent when the whole batch has resolved.
	ConvertDoneMsg struct {
		Summary *batch.Summary
		Err     error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateConverting || m.state == StateScanning {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && m.textInput.Value() != "" {
				m.state = StateScanning
				return m, tea.Batch(m.scanSources(), m.spinner.Tick)
			}

		case "r":
			if m.state == StateInput {
				m.recurse = !m.recurse
			}

		case "f":
			if m.state == StateInput {
				m.force = !m.force
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "n":
			if m.state == StateComplete || m.state == StateError {
				// Reset for a new batch
				m.state = StateInput
				m.logs = nil
				m.err = nil
				m.runner = nil
				m.sources = nil
				m.summary = nil
				m.completedJobs = 0
				m.totalJobs = 0
				m.ctx, m.cancel = context.WithCancel(context.Background())
				m.textInput.SetValue("")
				m.textInput.Focus()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level == batch.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{
			Message: msg.Event.Message,
			Level:   msg.Event.Level,
		})
		// Keep only last 10 logs
		if len(m.logs) > 10 {
			m.logs = m.logs[len(m.logs)-10:]
		}

	case ScanDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.sources = msg.Sources
			m.runner = msg.Runner
			m.state = StateConverting
			cmds = append(cmds, m.startConversion(), m.tickProgress())
		}

	case ConvertDoneMsg:
		m.summary = msg.Summary
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.runner != nil && m.state == StateConverting {
			completed, total := m.runner.GetProgress()
			m.completedJobs = completed
			m.totalJobs = total

			var percent float64
			if total > 0 {
				percent = float64(completed) / float64(total)
			}
			progressCmd := m.progress.SetPercent(percent)
			cmds = append(cmds, progressCmd, m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📷 rawimport"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Convert camera RAW files to DNG"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateConverting:
		b.WriteString(m.viewConverting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Enter source directory:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	// Options
	recurseCheck := "[ ]"
	if m.recurse {
		recurseCheck = "[×]"
	}
	forceCheck := "[ ]"
	if m.force {
		forceCheck = "[×]"
	}
	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s Recurse into subdirectories (r)\n", recurseCheck))
	b.WriteString(fmt.Sprintf("  %s Overwrite existing files (f)\n", forceCheck))
	b.WriteString(fmt.Sprintf("  %s Verbose/debug output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output dir: %s", m.settings.OutputDir)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Filename format: %s", m.settings.FileNameFormat)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Scanning for RAW files..."))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewConverting() string {
	var b strings.Builder

	if len(m.sources) > 0 {
		b.WriteString(successStyle.Render(fmt.Sprintf("Found %d RAW file(s)", len(m.sources))))
		b.WriteString("\n")
		for _, src := range previewSources(m.sources, 5) {
			b.WriteString(fileStyle.Render(fmt.Sprintf("  • %s", src.Path)))
			b.WriteString("\n")
		}
		if len(m.sources) > 5 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  … and %d more", len(m.sources)-5)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	// Progress bar
	var percent float64
	if m.totalJobs > 0 {
		percent = float64(m.completedJobs) / float64(m.totalJobs)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf("Files: %d/%d", m.completedJobs, m.totalJobs)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	converted, skipped, failed := 0, 0, 0
	var written int64
	if m.summary != nil {
		converted = m.summary.Converted
		skipped = m.summary.Skipped
		failed = m.summary.Failed
		for _, out := range m.summary.Outcomes {
			written += out.Bytes
		}
	}

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Conversion Complete!\n\n"+
			"Converted: %d\n"+
			"Skipped: %d\n"+
			"Failed: %d\n"+
			"Size: %.2f MB",
		converted,
		skipped,
		failed,
		float64(written)/1024/1024,
	))
	b.WriteString(box)

	if m.summary != nil && len(m.summary.Failures) > 0 {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render("Failures:"))
		b.WriteString("\n")
		for _, failure := range m.summary.Failures {
			b.WriteString(fmt.Sprintf("  ✗ %s\n", failure))
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case batch.LevelError:
			style = errorStyle
			prefix = "✗"
		case batch.LevelWarning:
			style = warningStyle
			prefix = "!"
		case batch.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case batch.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateInput:
		return "enter: start • r: recurse • f: force • v: verbose • esc: quit"
	case StateScanning, StateConverting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "n: new batch • q: quit"
	}
	return ""
}

func previewSources(sources []ingest.Source, n int) []ingest.Source {
	if len(sources) <= n {
		return sources
	}
	return sources[:n]
}

// scanSources enumerates the input directory and builds the runner.
func (m *Model) scanSources() tea.Cmd {
	return func() tea.Msg {
		root := m.textInput.Value()

		settings := *m.settings
		settings.Recurse = m.recurse
		settings.Force = m.force

		tmpl, err := format.Compile(settings.FileNameFormat)
		if err != nil {
			return ScanDoneMsg{Err: err}
		}

		sources, _, err := ingest.Dir(root, settings.Recurse)
		if err != nil {
			return ScanDoneMsg{Err: err}
		}
		if len(sources) == 0 {
			return ScanDoneMsg{Err: fmt.Errorf("no RAW files found in %s", root)}
		}

		runner := batch.NewRunner(&settings, tmpl,
			metadata.NewExifExtractor(),
			convert.NewDNGLabConverter(settings.ConverterBinary),
			func(event batch.ProgressEvent) {
				// Progress events are collected but not sent directly
				// The TUI polls for progress via TickMsg
			})

		return ScanDoneMsg{Sources: sources, Runner: runner}
	}
}

// startConversion runs the batch in the background.
func (m *Model) startConversion() tea.Cmd {
	return func() tea.Msg {
		if m.runner == nil {
			return ConvertDoneMsg{Err: fmt.Errorf("no runner")}
		}

		summary, err := m.runner.Run(m.ctx, m.sources)
		return ConvertDoneMsg{Summary: summary, Err: err}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
