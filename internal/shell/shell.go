// Package shell models the widget's window and tray lifecycle.
package shell

import (
	"runtime"
	"sync"
)

// PrimaryPlatform keeps the process resident after its last window closes.
const PrimaryPlatform = "darwin"

// Tooltip is shown next to the tray icon.
const Tooltip = "NetShield – Wi-Fi Guardian"

// Action is a tray menu entry.
type Action string

const (
	ActionShow Action = "Show"
	ActionHide Action = "Hide"
	ActionQuit Action = "Quit"
)

// Menu lists the tray actions in display order.
func Menu() []Action {
	return []Action{ActionShow, ActionHide, ActionQuit}
}

// Shell owns one window and one tray icon. Tray callbacks may arrive from a
// different goroutine than the UI loop.
type Shell struct {
	platform string
	onQuit   func()

	mu         sync.Mutex
	hasWindow  bool
	visible    bool
	quitting   bool
	terminated bool
}

// New creates a shell for the current platform with its window open.
func New(onQuit func()) *Shell {
	return NewForPlatform(runtime.GOOS, onQuit)
}

// NewForPlatform creates a shell that applies platform's close policy.
func NewForPlatform(platform string, onQuit func()) *Shell {
	if onQuit == nil {
		onQuit = func() {}
	}
	return &Shell{
		platform:  platform,
		onQuit:    onQuit,
		hasWindow: true,
		visible:   true,
	}
}

// Visible reports whether the window is currently shown.
func (s *Shell) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasWindow && s.visible
}

// HasWindow reports whether the window exists.
func (s *Shell) HasWindow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasWindow
}

// Quitting reports whether the user asked to quit.
func (s *Shell) Quitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.quitting
}

// Show makes the window visible. Without a window it does nothing.
func (s *Shell) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasWindow {
		s.visible = true
	}
}

// Hide hides the window without closing it.
func (s *Shell) Hide() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasWindow {
		s.visible = false
	}
}

// TrayClick toggles window visibility.
func (s *Shell) TrayClick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasWindow {
		s.visible = !s.visible
	}
}

// Trigger runs a tray menu action.
func (s *Shell) Trigger(a Action) {
	switch a {
	case ActionShow:
		s.Show()
	case ActionHide:
		s.Hide()
	case ActionQuit:
		s.Quit()
	}
}

// Quit marks the exit as intentional and then terminates through onQuit.
func (s *Shell) Quit() {
	s.mu.Lock()
	s.quitting = true
	s.mu.Unlock()

	s.terminate()
}

// terminate runs onQuit at most once.
func (s *Shell) terminate() {
	s.mu.Lock()
	if s.terminated {
		s.mu.Unlock()
		return
	}
	s.terminated = true
	s.mu.Unlock()

	s.onQuit()
}

// CloseWindow handles the window being closed and reports whether the
// process should terminate. On the primary platform the process stays
// resident in the tray unless a quit is already in progress.
func (s *Shell) CloseWindow() bool {
	s.mu.Lock()
	s.hasWindow = false
	s.visible = false
	terminate := s.quitting || s.platform != PrimaryPlatform
	s.mu.Unlock()

	if terminate {
		s.terminate()
	}
	return terminate
}

// Activate recreates the window if none exists, as on dock activation.
func (s *Shell) Activate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.quitting {
		return
	}
	if !s.hasWindow {
		s.hasWindow = true
		s.visible = true
	}
}
