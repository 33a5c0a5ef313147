package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"netshield/internal/admin"
)

// Render prints the state as a static report, used by the one-shot mode.
func Render(s admin.State) string {
	var b strings.Builder

	network := s.NetworkID
	if network == "" {
		network = "(none)"
	}
	fmt.Fprintf(&b, "Network: %s  Domain: %s", network, s.Filter)
	if s.Query != "" {
		fmt.Fprintf(&b, "  Search: %q", s.Query)
	}
	b.WriteString("\n")

	if s.Err != nil {
		fmt.Fprintf(&b, "error: %s\n", s.Err)
	}

	visible := s.Visible()
	if len(visible) == 0 {
		b.WriteString("no devices\n")
		return b.String()
	}

	headers := make([]string, 0, len(columns))
	for _, c := range columns {
		headers = append(headers, c.Title)
	}
	rows := make([][]string, 0, len(visible))
	for _, d := range visible {
		rows = append(rows, Cells(d))
	}

	t := ltable.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...)
	b.WriteString(t.String())
	fmt.Fprintf(&b, "\n%d of %d device(s)\n", len(visible), len(s.Devices))
	return b.String()
}
