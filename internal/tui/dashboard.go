// Package tui implements the live firm dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/meridianfirm/firmdesk/internal/api"
	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/stats"
)

const refreshInterval = 30 * time.Second

// DashboardModel is the top-level bubbletea model for `firmdesk dashboard
// --watch`. It periodically refetches the firm collections and rerenders the
// summary figures.
type DashboardModel struct {
	client    *api.Client
	spinner   spinner.Model
	summary   stats.FirmSummary
	lastError error
	updatedAt time.Time
	width     int
	loading   bool
	ready     bool
	quitting  bool
}

// NewDashboard creates a dashboard backed by the given API client.
func NewDashboard(client *api.Client) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cli.PrimaryColor)

	return DashboardModel{
		client:  client,
		spinner: s,
		loading: true,
	}
}

type summaryLoadedMsg struct {
	summary   stats.FirmSummary
	updatedAt time.Time
}

type summaryErrMsg struct {
	err error
}

type tickMsg struct{}

// Init starts the spinner and the first fetch.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchSummary())
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "r":
			if !m.loading {
				m.loading = true
				return m, m.fetchSummary()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case summaryLoadedMsg:
		m.summary = msg.summary
		m.updatedAt = msg.updatedAt
		m.lastError = nil
		m.loading = false
		m.ready = true
		return m, scheduleRefresh()

	case summaryErrMsg:
		m.lastError = msg.err
		m.loading = false
		m.ready = true
		return m, scheduleRefresh()

	case tickMsg:
		if !m.loading {
			m.loading = true
			return m, m.fetchSummary()
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return fmt.Sprintf("\n  %s Loading firm overview...\n", m.spinner.View())
	}

	var b strings.Builder
	b.WriteString(cli.FormatTitle("Firm Overview"))
	b.WriteString("\n\n")

	boxes := []string{
		renderStat("Clients", fmt.Sprintf("%d", m.summary.TotalClients)),
		renderStat("High Risk", fmt.Sprintf("%d", m.summary.HighRisk)),
		renderStat("Active Engagements", fmt.Sprintf("%d", m.summary.Engagements.Active)),
		renderStat("Avg Completion", fmt.Sprintf("%d%%", m.summary.Engagements.AverageCompletion)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))
	b.WriteString("\n")

	money := []string{
		renderStat("Receivables", "$"+m.summary.Receivables.StringFixed(2)),
		renderStat("Payables", "$"+m.summary.Payables.StringFixed(2)),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, money...))
	b.WriteString("\n\n")

	if m.lastError != nil {
		b.WriteString(cli.FormatWarning("refresh failed: " + m.lastError.Error()))
		b.WriteString("\n")
	}

	status := fmt.Sprintf("updated %s", m.updatedAt.Format("15:04:05"))
	if m.loading {
		status = m.spinner.View() + " refreshing..."
	}
	b.WriteString(cli.SubtleStyle.Render(status + "  •  r refresh  •  q quit"))
	b.WriteString("\n")

	return b.String()
}

func renderStat(label, value string) string {
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		cli.SubtleStyle.Render(label),
		cli.BoldStyle.Render(value),
	)
	return cli.BoxStyle.Render(content)
}

// fetchSummary loads all four collections and folds them into a summary. A
// failed fetch surfaces as a warning; the previous figures stay on screen.
func (m DashboardModel) fetchSummary() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		clients, err := client.ListClients(ctx, "")
		if err != nil {
			return summaryErrMsg{err: err}
		}
		engagements, err := client.ListEngagements(ctx, 0)
		if err != nil {
			return summaryErrMsg{err: err}
		}
		invoices, err := client.ListInvoices(ctx)
		if err != nil {
			return summaryErrMsg{err: err}
		}
		bills, err := client.ListBills(ctx)
		if err != nil {
			return summaryErrMsg{err: err}
		}

		return summaryLoadedMsg{
			summary:   stats.Summarize(clients, engagements, invoices, bills),
			updatedAt: time.Now(),
		}
	}
}

func scheduleRefresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// Run starts the dashboard program on the alternate screen.
func Run(client *api.Client) error {
	p := tea.NewProgram(NewDashboard(client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
