package menu

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#8E4EC6")). // Purple
			Padding(0, 1)

	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8E4EC6")).Bold(true)
	itemStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	outputBorder  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	statusRunning = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E8B57"))
)

const defaultViewportHeight = 16

type routineDoneMsg struct {
	label  string
	output string
	err    error
}

type model struct {
	ctx    context.Context
	cancel context.CancelFunc
	menu   Menu

	cursor   int
	running  bool
	current  string
	spinner  spinner.Model
	viewport viewport.Model
	width    int
	quitting bool
}

func newModel(ctx context.Context, m Menu) model {
	ctx, cancel := context.WithCancel(ctx)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	vp := viewport.New(80, defaultViewportHeight)
	content := "Select a routine to run."
	if intro := strings.TrimRight(m.Intro, "\n"); intro != "" {
		content = intro + "\n\n" + content
	}
	vp.SetContent(content)
	return model{
		ctx:      ctx,
		cancel:   cancel,
		menu:     m,
		spinner:  sp,
		viewport: vp,
		width:    80,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = max(msg.Width-4, 20)
		m.viewport.Height = max(msg.Height-len(m.menu.Items)-10, 5)
		return m, nil

	case routineDoneMsg:
		m.running = false
		m.current = ""
		content := msg.output
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			content += fmt.Sprintf("\nError: %v\n", msg.err)
		}
		m.viewport.SetContent(strings.TrimRight(content, "\n"))
		m.viewport.GotoTop()
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc", "q":
		return m.quit()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.menu.Items) {
			m.cursor++
		}
		return m, nil
	case "enter":
		return m.choose(m.cursor + 1)
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	if choice, err := m.menu.Parse(msg.String()); err == nil {
		m.cursor = choice - 1
		return m.choose(choice)
	}
	return m, nil
}

func (m model) choose(choice int) (tea.Model, tea.Cmd) {
	if choice == m.menu.ExitChoice() {
		return m.quit()
	}
	if m.running || choice < 1 || choice > len(m.menu.Items) {
		return m, nil
	}

	item := m.menu.Items[choice-1]
	m.running = true
	m.current = item.Label
	return m, tea.Batch(m.spinner.Tick, runItem(m.ctx, item))
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.cancel()
	return m, tea.Quit
}

func runItem(ctx context.Context, item Item) tea.Cmd {
	return func() tea.Msg {
		var buf bytes.Buffer
		err := item.Run(ctx, &buf)
		return routineDoneMsg{label: item.Label, output: buf.String(), err: err}
	}
}

func (m model) View() string {
	if m.quitting {
		if m.menu.Goodbye != "" {
			return m.menu.Goodbye + "\n"
		}
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.menu.Title))
	b.WriteString("\n\n")

	labels := make([]string, 0, len(m.menu.Items)+1)
	for _, item := range m.menu.Items {
		labels = append(labels, item.Label)
	}
	exit := m.menu.ExitLabel
	if exit == "" {
		exit = "Exit"
	}
	labels = append(labels, exit)

	for i, label := range labels {
		line := fmt.Sprintf("%d. %s", i+1, label)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString(itemStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.running {
		b.WriteString(m.spinner.View() + " " + statusRunning.Render("Running "+m.current+"..."))
		b.WriteString("\n")
	}

	b.WriteString(outputBorder.Render(m.viewport.View()))
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("Enter Run • 1-%d Select • ↑/↓ Move • PgUp/PgDn Scroll • Esc Quit", m.menu.ExitChoice())))
	return b.String()
}

// RunTUI drives the menu as a full-screen terminal program.
func RunTUI(ctx context.Context, m Menu, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		newModel(ctx, m),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
