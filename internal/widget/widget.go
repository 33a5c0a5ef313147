// Package widget renders the tray widget as a terminal program.
package widget

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"netshield/internal/metrics"
	"netshield/internal/models"
	"netshield/internal/poller"
	"netshield/internal/shell"
)

// StatusFetcher returns the current device list.
type StatusFetcher interface {
	FetchStatus(ctx context.Context) ([]models.DeviceStatus, error)
}

// StatusMsg carries the outcome of one poll.
type StatusMsg struct {
	Devices []models.DeviceStatus
	Err     error
	At      time.Time
}

type styles struct {
	app, title, muted, good, warn, bad lipgloss.Style
}

func newStyles() styles {
	return styles{
		app: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#8be9fd")),
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50fa7b")),
		muted: lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
		good:  lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b")),
		warn:  lipgloss.NewStyle().Foreground(lipgloss.Color("#f1fa8c")),
		bad:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")),
	}
}

// Model is the bubbletea model of the widget window and tray line.
type Model struct {
	shell   *shell.Shell
	devices []models.DeviceStatus
	summary models.Summary
	err     error
	updated time.Time
	styles  styles
}

// New creates a widget model bound to sh.
func New(sh *shell.Shell) Model {
	return Model{
		shell:   sh,
		devices: []models.DeviceStatus{},
		styles:  newStyles(),
	}
}

// Init implements tea.Model.
func (Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case StatusMsg:
		m.updated = msg.At
		m.err = msg.Err
		if msg.Err == nil {
			m.devices = msg.Devices
			m.summary = metrics.Summarize(msg.Devices)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "t", " ":
		m.shell.TrayClick()
	case "s":
		m.shell.Trigger(shell.ActionShow)
	case "h":
		m.shell.Trigger(shell.ActionHide)
	case "a":
		m.shell.Activate()
	case "w":
		if m.shell.CloseWindow() {
			return m, tea.Quit
		}
	case "q", "ctrl+c":
		m.shell.Trigger(shell.ActionQuit)
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	tray := m.trayLine()
	if !m.shell.Visible() {
		return tray + "\n"
	}

	var b strings.Builder
	b.WriteString(m.styles.title.Render("NetShield"))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(m.styles.bad.Render("⚠ " + m.err.Error()))
		b.WriteString("\n")
	}

	if len(m.devices) == 0 {
		b.WriteString(m.styles.muted.Render("no devices reported"))
		b.WriteString("\n")
	} else {
		b.WriteString(fmt.Sprintf("%-16s %-18s %7s %8s %6s\n", "DEVICE", "SSID", "SIGNAL", "PING", "SCORE"))
		for _, d := range m.devices {
			b.WriteString(fmt.Sprintf("%-16s %-18s %6.0f%% %6.0fms %s\n",
				truncate(d.DeviceID, 16),
				truncate(d.SSID, 18),
				d.SignalPercent,
				d.AvgPingMs,
				m.scoreStyle(d.ExperienceScore).Render(fmt.Sprintf("%6.0f", d.ExperienceScore)),
			))
		}
		b.WriteString(m.styles.muted.Render(fmt.Sprintf(
			"%d device(s) · avg signal %.0f%% · avg ping %.0fms · avg score %.0f",
			m.summary.Devices, m.summary.AvgSignalPercent, m.summary.AvgPingMs, m.summary.AvgExperienceScore,
		)))
		b.WriteString("\n")
	}

	if !m.updated.IsZero() {
		b.WriteString(m.styles.muted.Render("updated " + m.updated.Local().Format(time.TimeOnly)))
		b.WriteString("\n")
	}

	return m.styles.app.Render(strings.TrimRight(b.String(), "\n")) + "\n" + tray + "\n"
}

func (m Model) trayLine() string {
	state := "shown"
	if !m.shell.HasWindow() {
		state = "closed"
	} else if !m.shell.Visible() {
		state = "hidden"
	}
	actions := make([]string, 0, len(shell.Menu()))
	for _, a := range shell.Menu() {
		actions = append(actions, fmt.Sprintf("[%s]%s", strings.ToLower(string(a[:1])), a[1:]))
	}
	return m.styles.muted.Render(fmt.Sprintf("%s (%s)  %s  [t]oggle [w] close", shell.Tooltip, state, strings.Join(actions, " ")))
}

func (m Model) scoreStyle(score float64) lipgloss.Style {
	switch {
	case score >= 70:
		return m.styles.good
	case score >= 40:
		return m.styles.warn
	default:
		return m.styles.bad
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// Run starts the widget and blocks until the user quits or ctx ends. The
// status poller is stopped before Run returns.
func Run(ctx context.Context, client StatusFetcher, interval time.Duration, log zerolog.Logger, opts ...tea.ProgramOption) error {
	pollCtx, stopPolling := context.WithCancel(ctx)
	defer stopPolling()

	sh := shell.New(stopPolling)
	program := tea.NewProgram(New(sh), append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	statusPoller := poller.New(interval, func(ctx context.Context) {
		devices, err := client.FetchStatus(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Warn().Err(err).Msg("status poll failed")
		}
		program.Send(StatusMsg{Devices: devices, Err: err, At: time.Now()})
	})
	statusPoller.Start(pollCtx)
	defer statusPoller.Stop()

	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
