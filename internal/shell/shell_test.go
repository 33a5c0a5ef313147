package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrayClickToggles(t *testing.T) {
	s := NewForPlatform("linux", nil)
	assert.True(t, s.Visible())

	s.TrayClick()
	assert.False(t, s.Visible())

	s.TrayClick()
	assert.True(t, s.Visible())
}

func TestMenuActions(t *testing.T) {
	quits := 0
	s := NewForPlatform("windows", func() { quits++ })

	assert.Equal(t, []Action{ActionShow, ActionHide, ActionQuit}, Menu())

	s.Trigger(ActionHide)
	assert.False(t, s.Visible())
	s.Trigger(ActionShow)
	assert.True(t, s.Visible())

	assert.False(t, s.Quitting())
	s.Trigger(ActionQuit)
	assert.True(t, s.Quitting())
	assert.Equal(t, 1, quits)

	s.Quit()
	assert.Equal(t, 1, quits)
}

func TestCloseWindowTerminatesOffPrimaryPlatform(t *testing.T) {
	quits := 0
	s := NewForPlatform("linux", func() { quits++ })

	assert.True(t, s.CloseWindow())
	assert.Equal(t, 1, quits)
	assert.False(t, s.Quitting(), "window close is not an intentional quit")
	assert.False(t, s.HasWindow())
}

func TestCloseWindowStaysResidentOnPrimaryPlatform(t *testing.T) {
	quits := 0
	s := NewForPlatform(PrimaryPlatform, func() { quits++ })

	assert.False(t, s.CloseWindow())
	assert.Zero(t, quits)
	assert.False(t, s.HasWindow())

	s.Show()
	assert.False(t, s.Visible(), "show without a window is a no-op")

	s.Activate()
	assert.True(t, s.HasWindow())
	assert.True(t, s.Visible())
}

func TestCloseWindowAfterQuit(t *testing.T) {
	quits := 0
	s := NewForPlatform(PrimaryPlatform, func() { quits++ })

	s.Quit()
	assert.True(t, s.CloseWindow())
	assert.Equal(t, 1, quits)

	s.Activate()
	assert.False(t, s.HasWindow())
}
