package envsetup

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func send(m model, msgs ...tea.Msg) (model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func runes(s string) tea.Msg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func TestWizardWritesEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.True(t, NeedsSetup(path))

	m, cmd := send(newModel(path),
		enter,
		runes("token-abcdef-123456"), enter,
		runes("1234567890"), enter,
		enter,
	)
	require.NotNil(t, cmd)
	assert.Equal(t, stepDone, m.step)
	assert.False(t, NeedsSetup(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DISCORD_TOKEN=token-abcdef-123456\n")
	assert.Contains(t, string(data), "GUILD_ID=1234567890\n")
	assert.Contains(t, string(data), "DATABASE_URL=sqlite://kirill.db\n")
}

func TestWizardRequiresToken(t *testing.T) {
	m, _ := send(newModel(filepath.Join(t.TempDir(), ".env")), enter, enter)

	assert.Equal(t, stepDiscord, m.step)
	assert.ErrorIs(t, m.err, errTokenRequired)
	assert.Contains(t, m.View(), errTokenRequired.Error())
}

func TestWizardGuildIsOptional(t *testing.T) {
	m, _ := send(newModel(filepath.Join(t.TempDir(), ".env")),
		enter,
		runes("token"), enter,
		enter,
	)
	assert.Equal(t, stepConfirm, m.step)
	assert.Empty(t, m.guildID)
	assert.Contains(t, m.View(), "(global)")
}

func TestWizardDeclineRestarts(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	m, _ := send(newModel(path),
		enter,
		runes("token"), enter,
		enter,
		runes("n"), enter,
	)
	assert.Equal(t, stepWelcome, m.step)
	assert.Empty(t, m.discordToken)
	assert.True(t, NeedsSetup(path))
}

func TestBackspaceRemovesWholeRune(t *testing.T) {
	m, _ := send(newModel("unused"), enter, runes("тө"), tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "т", m.input)
}

func TestMaskToken(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"short", "*****"},
		{"abcd1234wxyz", "abcd****wxyz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, maskToken(tt.in))
	}
}
