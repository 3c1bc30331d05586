// Package tui is an interactive terminal converter: Latin text typed on the
// left is converted into Cyrillic on the right as you type.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jusunglee/kirill/internal/transliteration"
	"github.com/samber/lo"
)

const (
	title       = "Латин - Кирилл хөрвүүлэгч"
	placeholder = "Латин текстээ энд оруулна уу..."
	copiedText  = "Хөрвүүлэгдсэн текст амжилттай хуулагдлаа!"

	noticeDuration = 2 * time.Second
	maxInputChars  = 10_000
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// CopyFunc writes text to the system clipboard.
type CopyFunc func(text string) error

type notice struct {
	text  string
	isErr bool
}

type copiedMsg struct{ err error }

type clearNoticeMsg struct{ id int }

type Model struct {
	engine    *transliteration.Engine
	clipboard CopyFunc
	input     textarea.Model
	output    string
	notice    notice
	noticeID  int
	width     int
}

func New(engine *transliteration.Engine, clipboard CopyFunc) Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.CharLimit = maxInputChars
	ta.SetWidth(40)
	ta.SetHeight(10)
	ta.Focus()

	return Model{
		engine:    engine,
		clipboard: clipboard,
		input:     ta,
	}
}

func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlY:
			return m, m.copyOutput()
		case tea.KeyCtrlR:
			m.input.Reset()
			m.output = ""
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.SetWidth(m.paneWidth())
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.notice = notice{text: fmt.Sprintf("Хуулж чадсангүй: %v", msg.err), isErr: true}
		} else {
			m.notice = notice{text: copiedText}
		}
		m.noticeID++
		id := m.noticeID
		return m, tea.Tick(noticeDuration, func(time.Time) tea.Msg {
			return clearNoticeMsg{id: id}
		})

	case clearNoticeMsg:
		// A newer notice owns the screen until its own timer fires.
		if msg.id == m.noticeID {
			m.notice = notice{}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.output = convertLines(m.engine, m.input.Value())
	return m, cmd
}

func (m Model) copyOutput() tea.Cmd {
	if m.output == "" {
		return nil
	}
	text := m.output
	return func() tea.Msg {
		return copiedMsg{err: m.clipboard(text)}
	}
}

func (m Model) paneWidth() int {
	if m.width == 0 {
		return 40
	}
	return max((m.width-8)/2, 20)
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n")

	width := m.paneWidth()
	left := paneStyle.Width(width + 2).Render(labelStyle.Render("Латин") + "\n" + m.input.View())
	right := paneStyle.Width(width + 2).Render(labelStyle.Render("Кирилл") + "\n" +
		lipgloss.NewStyle().Width(width).Height(m.input.Height()).Render(m.output))
	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
	s.WriteString("\n")

	switch {
	case m.notice.text == "":
		s.WriteString("\n")
	case m.notice.isErr:
		s.WriteString(errorStyle.Render(m.notice.text) + "\n")
	default:
		s.WriteString(successStyle.Render(m.notice.text) + "\n")
	}

	s.WriteString(subtleStyle.Render("ctrl+y=хуулах • ctrl+r=цэвэрлэх • esc/ctrl+c=гарах"))
	return s.String()
}

// Output returns the current Cyrillic text.
func (m Model) Output() string {
	return m.output
}

// convertLines keeps the line structure of the textarea in the output.
func convertLines(engine *transliteration.Engine, text string) string {
	lines := strings.Split(text, "\n")
	return strings.Join(lo.Map(lines, func(line string, _ int) string {
		return engine.Convert(line)
	}), "\n")
}
