// Package console is the operator console for browsing devices by network.
package console

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"netshield/internal/admin"
	"netshield/internal/filter"
	"netshield/internal/models"
	"netshield/internal/poller"
)

type focusArea int

const (
	focusNetwork focusArea = iota
	focusQuery
	focusTable
)

const focusCount = 3

type clockMsg time.Time

var columns = []table.Column{
	{Title: "Device", Width: 16},
	{Title: "User", Width: 12},
	{Title: "Domain", Width: 8},
	{Title: "SSID", Width: 16},
	{Title: "Signal", Width: 7},
	{Title: "Ping", Width: 7},
	{Title: "Score", Width: 6},
	{Title: "Last seen", Width: 20},
}

// Model is the bubbletea model of the operator console.
type Model struct {
	ctx     context.Context
	fetcher admin.DeviceFetcher
	state   admin.State
	domains []string

	network textinput.Model
	query   textinput.Model
	devices table.Model
	focus   focusArea
	clock   time.Time

	title, muted, bad lipgloss.Style
}

// New creates a console model. domains are offered by the filter in addition
// to the domains seen in each batch.
func New(ctx context.Context, fetcher admin.DeviceFetcher, domains []string) Model {
	network := textinput.New()
	network.Placeholder = "e.g. esperance"
	network.Prompt = "Network ID › "
	network.CharLimit = 64
	network.Focus()

	query := textinput.New()
	query.Placeholder = "Search device, user or SSID"
	query.Prompt = "Search › "
	query.CharLimit = 64

	devices := table.New(
		table.WithColumns(columns),
		table.WithHeight(12),
	)

	return Model{
		ctx:     ctx,
		fetcher: fetcher,
		state:   admin.NewState(),
		domains: domains,
		network: network,
		query:   query,
		devices: devices,
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#50fa7b")),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4")),
		bad:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")),
	}
}

// State exposes the current console state.
func (m Model) State() admin.State {
	return m.state
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case admin.DevicesLoaded:
		return m.dispatch(msg)
	case clockMsg:
		m.clock = time.Time(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Cursor blinks and other input messages go to the focused field.
	var cmd tea.Cmd
	switch m.focus {
	case focusNetwork:
		m.network, cmd = m.network.Update(msg)
	case focusQuery:
		m.query, cmd = m.query.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab":
		return m.setFocus((m.focus + 1) % focusCount), nil
	case "shift+tab":
		return m.setFocus((m.focus + focusCount - 1) % focusCount), nil
	case "ctrl+f":
		return m.dispatch(admin.SetFilter{Filter: m.nextFilter()})
	case "ctrl+x":
		return m.dispatch(admin.ClearNetwork{})
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusNetwork:
		if msg.Type == tea.KeyEnter {
			return m.dispatch(admin.SetNetwork{NetworkID: m.network.Value()})
		}
		m.network, cmd = m.network.Update(msg)
	case focusQuery:
		m.query, cmd = m.query.Update(msg)
		next, fetchCmd := m.dispatch(admin.SetQuery{Query: m.query.Value()})
		return next, tea.Batch(cmd, fetchCmd)
	case focusTable:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "f":
			return m.dispatch(admin.SetFilter{Filter: m.nextFilter()})
		case "x":
			return m.dispatch(admin.ClearNetwork{})
		}
		m.devices, cmd = m.devices.Update(msg)
	}
	return m, cmd
}

func (m Model) setFocus(f focusArea) Model {
	m.focus = f
	m.network.Blur()
	m.query.Blur()
	m.devices.Blur()
	switch f {
	case focusNetwork:
		m.network.Focus()
	case focusQuery:
		m.query.Focus()
	case focusTable:
		m.devices.Focus()
	}
	return m
}

// dispatch reduces a and turns a requested fetch into a command.
func (m Model) dispatch(a admin.Action) (Model, tea.Cmd) {
	next, fetch := admin.Reduce(m.state, a)
	m.state = next
	if _, ok := a.(admin.ClearNetwork); ok {
		m.network.SetValue("")
	}
	m.devices.SetRows(Rows(m.state.Visible()))

	if fetch == nil {
		return m, nil
	}
	ctx, fetcher, req := m.ctx, m.fetcher, *fetch
	return m, func() tea.Msg {
		return admin.Run(ctx, fetcher, req)
	}
}

func (m Model) nextFilter() string {
	options := filter.Domains(m.state.Devices, m.domains...)
	for i, o := range options {
		if o == m.state.Filter {
			return options[(i+1)%len(options)]
		}
	}
	return filter.AllDomains
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	header := m.title.Render("WifiShield Network Intelligence Console")
	if !m.clock.IsZero() {
		header += "  " + m.muted.Render(m.clock.Format(time.TimeOnly))
	}
	b.WriteString(header + "\n\n")

	b.WriteString(m.network.View() + "\n")
	if m.state.NetworkID != "" {
		status := "Network: " + m.state.NetworkID
		if m.state.Loading {
			status += " (loading…)"
		}
		b.WriteString(m.muted.Render(status+"  [ctrl+x] clear") + "\n")
	}
	b.WriteString(m.query.View() + "\n")
	b.WriteString(m.muted.Render("Domain: "+m.state.Filter+"  [ctrl+f] next") + "\n")

	if m.state.Err != nil {
		b.WriteString(m.bad.Render("⚠ "+errorText(m.state.Err)) + "\n")
	}

	b.WriteString("\n" + m.devices.View() + "\n")
	b.WriteString(m.muted.Render(fmt.Sprintf("%d of %d device(s)  ·  tab focus  ·  esc quit",
		len(m.state.Visible()), len(m.state.Devices))))
	return b.String()
}

func errorText(err error) string {
	if errors.Is(err, context.Canceled) {
		return "request cancelled"
	}
	return err.Error()
}

// Rows formats devices as table rows.
func Rows(devices []models.DeviceStatus) []table.Row {
	rows := make([]table.Row, 0, len(devices))
	for _, d := range devices {
		rows = append(rows, table.Row(Cells(d)))
	}
	return rows
}

// Cells formats one device in column order.
func Cells(d models.DeviceStatus) []string {
	return []string{
		d.DeviceID,
		d.UserID,
		d.Domain,
		d.SSID,
		fmt.Sprintf("%.0f%%", d.SignalPercent),
		fmt.Sprintf("%.0fms", d.AvgPingMs),
		fmt.Sprintf("%.0f", d.ExperienceScore),
		d.LastSeen,
	}
}

// Run starts the console and blocks until the operator quits or ctx ends.
// The clock ticker is stopped before Run returns.
func Run(ctx context.Context, fetcher admin.DeviceFetcher, domains []string, log zerolog.Logger, opts ...tea.ProgramOption) error {
	program := tea.NewProgram(New(ctx, fetcher, domains), append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)

	clock := poller.New(time.Second, func(ctx context.Context) {
		program.Send(clockMsg(time.Now()))
	})
	clock.Start(ctx)
	defer clock.Stop()

	log.Debug().Msg("admin console started")
	_, err := program.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
