package widget

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netshield/internal/models"
	"netshield/internal/shell"
)

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestStatusMessageUpdatesView(t *testing.T) {
	m := New(shell.NewForPlatform("linux", nil))

	m, _ = update(t, m, StatusMsg{
		Devices: []models.DeviceStatus{
			{DeviceID: "d1", SSID: "esperance", SignalPercent: 88, AvgPingMs: 20, ExperienceScore: 91},
		},
		At: time.Now(),
	})

	view := m.View()
	assert.Contains(t, view, "d1")
	assert.Contains(t, view, "esperance")
	assert.Contains(t, view, "1 device(s)")
}

func TestFailedPollKeepsLastDevices(t *testing.T) {
	m := New(shell.NewForPlatform("linux", nil))
	m, _ = update(t, m, StatusMsg{Devices: []models.DeviceStatus{{DeviceID: "d1"}}, At: time.Now()})
	m, _ = update(t, m, StatusMsg{Err: errors.New("Status fetch failed: 502"), At: time.Now()})

	view := m.View()
	assert.Contains(t, view, "Status fetch failed: 502")
	assert.Contains(t, view, "d1")
}

func TestTrayKeysToggleVisibility(t *testing.T) {
	sh := shell.NewForPlatform("linux", nil)
	m := New(sh)

	m, _ = update(t, m, key("h"))
	assert.False(t, sh.Visible())
	assert.Contains(t, m.View(), "(hidden)")
	assert.NotContains(t, m.View(), "no devices reported")

	m, _ = update(t, m, key(" "))
	assert.True(t, sh.Visible())

	m, _ = update(t, m, key("t"))
	assert.False(t, sh.Visible())

	_, _ = update(t, m, key("s"))
	assert.True(t, sh.Visible())
}

func TestQuitSetsIntentionalFlag(t *testing.T) {
	quits := 0
	sh := shell.NewForPlatform("linux", func() { quits++ })

	_, cmd := update(t, New(sh), key("q"))

	assert.True(t, isQuit(cmd))
	assert.True(t, sh.Quitting())
	assert.Equal(t, 1, quits)
}

func TestCloseWindowPerPlatform(t *testing.T) {
	linux := shell.NewForPlatform("linux", nil)
	_, cmd := update(t, New(linux), key("w"))
	assert.True(t, isQuit(cmd))
	assert.False(t, linux.Quitting())

	mac := shell.NewForPlatform(shell.PrimaryPlatform, nil)
	m, cmd := update(t, New(mac), key("w"))
	assert.False(t, isQuit(cmd))
	assert.Contains(t, m.View(), "(closed)")

	m, _ = update(t, m, key("a"))
	assert.True(t, mac.Visible())
	assert.Contains(t, m.View(), "no devices reported")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 16))
	assert.Equal(t, "abcd…", truncate("abcdefgh", 5))
}
