// Package envsetup is a first-run wizard that writes the .env file the bot
// reads its Discord credentials from.
package envsetup

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DefaultPath is where the commands look for their .env file.
const DefaultPath = ".env"

type step int

const (
	stepWelcome step = iota
	stepDiscord
	stepGuild
	stepConfirm
	stepDone
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))
)

var errTokenRequired = errors.New("Discord token is required")

type model struct {
	path         string
	step         step
	discordToken string
	guildID      string
	input        string
	err          error
}

func newModel(path string) model {
	return model{path: path, step: stepWelcome}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeyEnter:
		return m.handleEnter()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyRunes:
		m.input += string(key.Runes)
	case tea.KeySpace:
		m.input += " "
	}
	return m, nil
}

func (m model) handleEnter() (tea.Model, tea.Cmd) {
	m.err = nil
	value := strings.TrimSpace(m.input)
	m.input = ""

	switch m.step {
	case stepWelcome:
		m.step = stepDiscord

	case stepDiscord:
		if value == "" {
			m.err = errTokenRequired
			return m, nil
		}
		m.discordToken = value
		m.step = stepGuild

	case stepGuild:
		m.guildID = value
		m.step = stepConfirm

	case stepConfirm:
		switch strings.ToLower(value) {
		case "", "y", "yes":
			if err := writeEnvFile(m.path, m.discordToken, m.guildID); err != nil {
				m.err = err
				return m, nil
			}
			m.step = stepDone
			return m, tea.Quit
		case "n", "no":
			return newModel(m.path), nil
		}
	}

	return m, nil
}

func writeEnvFile(path, discordToken, guildID string) error {
	content := fmt.Sprintf(`DATABASE_URL=sqlite://kirill.db
DISCORD_TOKEN=%s
GUILD_ID=%s
`, discordToken, guildID)

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func (m model) View() string {
	var s strings.Builder

	switch m.step {
	case stepWelcome:
		s.WriteString(titleStyle.Render("kirill - Bot Setup"))
		s.WriteString("\n\n")
		s.WriteString("No .env file was found. This wizard writes one for the Discord bot.\n")
		s.WriteString("You'll need a Discord bot token.\n\n")
		s.WriteString(labelStyle.Render("Press Enter to continue, Ctrl+C to exit"))

	case stepDiscord:
		s.WriteString(titleStyle.Render("Step 1: Discord Bot Token"))
		s.WriteString("\n\n")
		s.WriteString("  1. Go to " + linkStyle.Render("https://discord.com/developers/applications") + "\n")
		s.WriteString("  2. Create a new application (or select existing)\n")
		s.WriteString("  3. Open the Bot section and click 'Reset Token'\n")
		s.WriteString("  4. Invite it with the bot and applications.commands scopes\n\n")
		s.WriteString(labelStyle.Render("Paste your Discord token here:"))
		s.WriteString("\n> " + inputStyle.Render(maskToken(m.input)))

	case stepGuild:
		s.WriteString(titleStyle.Render("Step 2: Discord Server ID (optional)"))
		s.WriteString("\n\n")
		s.WriteString("Commands registered to one server show up instantly.\n")
		s.WriteString("Enable Developer Mode, then right-click your server and Copy Server ID.\n\n")
		s.WriteString(labelStyle.Render("Paste the server ID, or press Enter to register globally:"))
		s.WriteString("\n> " + inputStyle.Render(m.input))

	case stepConfirm, stepDone:
		guild := m.guildID
		if guild == "" {
			guild = "(global)"
		}
		s.WriteString(titleStyle.Render("Configuration Complete"))
		s.WriteString("\n\n")
		s.WriteString("  Database: " + successStyle.Render("sqlite://kirill.db") + "\n")
		s.WriteString("  Discord:  " + successStyle.Render(maskToken(m.discordToken)) + "\n")
		s.WriteString("  Server:   " + successStyle.Render(guild) + "\n\n")
		s.WriteString(labelStyle.Render("Save this configuration to " + m.path + "? [Y/n]:"))
		s.WriteString("\n> " + inputStyle.Render(m.input))
	}

	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()))
	}
	s.WriteString("\n")
	return s.String()
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

// Run starts the wizard and reports whether a .env file was written to path.
func Run(path string) (bool, error) {
	finalModel, err := tea.NewProgram(newModel(path)).Run()
	if err != nil {
		return false, err
	}
	m := finalModel.(model)
	return m.step == stepDone, nil
}

// NeedsSetup reports whether path does not exist yet.
func NeedsSetup(path string) bool {
	_, err := os.Stat(path)
	return errors.Is(err, os.ErrNotExist)
}
