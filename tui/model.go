package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/phanxgames/reveal"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"}).MarginTop(1)
)

// KeyMap holds the bindings Model reacts to.
type KeyMap struct {
	Toggle key.Binding
	Quit   key.Binding
}

// DefaultKeyMap toggles with space or enter and quits with q, esc or ctrl+c.
var DefaultKeyMap = KeyMap{
	Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ModelConfig configures NewModel.
type ModelConfig struct {
	Title   string
	Content string
	// Cols and Rows size the panel. Zero derives them from Content.
	Cols, Rows int
	// Active opens the panel on start.
	Active   bool
	Interval time.Duration
	Binding  reveal.BindingOptions
	Keys     *KeyMap
}

// Model is a ready-made bubbletea model showing one panel whose reveal is
// toggled from the keyboard.
type Model struct {
	title   string
	content string
	keys    KeyMap

	sched   *Scheduler
	panel   *Panel
	binding *reveal.Binding
}

// NewModel builds the model and binds its panel. The binding's scheduler is
// always the model's own.
func NewModel(cfg ModelConfig) (*Model, error) {
	cols, rows := cfg.Cols, cfg.Rows
	if cols == 0 || rows == 0 {
		w, h := contentSize(cfg.Content)
		if cols == 0 {
			cols = w
		}
		if rows == 0 {
			rows = h
		}
	}
	keys := DefaultKeyMap
	if cfg.Keys != nil {
		keys = *cfg.Keys
	}

	sched := NewScheduler(cfg.Interval)
	opts := cfg.Binding
	opts.Engine.Scheduler = sched
	b, err := reveal.NewBinding(cfg.Active, opts)
	if err != nil {
		return nil, err
	}
	panel := NewPanel(cols, rows)
	b.Attach(panel)

	return &Model{
		title:   cfg.Title,
		content: cfg.Content,
		keys:    keys,
		sched:   sched,
		panel:   panel,
		binding: b,
	}, nil
}

// Init starts ticking if the panel opens immediately.
func (m *Model) Init() tea.Cmd {
	return m.sched.Cmd()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FrameMsg:
		return m, m.sched.Update(msg)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.binding.Detach()
			m.sched.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			m.binding.SetActive(!m.binding.Active())
			return m, m.sched.Cmd()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	if m.title != "" {
		b.WriteString(titleStyle.Render(m.title))
		b.WriteByte('\n')
	}
	b.WriteString(m.panel.Render(m.content))
	b.WriteByte('\n')
	b.WriteString(helpStyle.Render(m.keys.Toggle.Help().Key + " " + m.keys.Toggle.Help().Desc +
		"  " + m.keys.Quit.Help().Key + " " + m.keys.Quit.Help().Desc))
	return b.String()
}

// Active reports the binding's active flag.
func (m *Model) Active() bool { return m.binding.Active() }

// Panel returns the model's panel.
func (m *Model) Panel() *Panel { return m.panel }

// contentSize returns the widest line in runes and the line count.
func contentSize(content string) (int, int) {
	lines := strings.Split(content, "\n")
	w := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > w {
			w = n
		}
	}
	return w, len(lines)
}
