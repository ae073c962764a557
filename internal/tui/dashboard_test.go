package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridianfirm/firmdesk/internal/stats"
)

func loadedModel(t *testing.T) DashboardModel {
	t.Helper()

	m := NewDashboard(nil)
	updated, _ := m.Update(summaryLoadedMsg{
		summary: stats.FirmSummary{
			TotalClients: 12,
			HighRisk:     3,
			Engagements:  stats.EngagementStats{Active: 5, Completed: 2, AverageCompletion: 64},
			Receivables:  decimal.RequireFromString("1250.50"),
			Payables:     decimal.RequireFromString("300.00"),
		},
		updatedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	})

	model, ok := updated.(DashboardModel)
	require.True(t, ok)
	return model
}

func TestDashboard_ViewShowsSummary(t *testing.T) {
	m := loadedModel(t)

	view := m.View()
	assert.Contains(t, view, "Firm Overview")
	assert.Contains(t, view, "12")
	assert.Contains(t, view, "64%")
	assert.Contains(t, view, "$1250.50")
	assert.Contains(t, view, "$300.00")
}

func TestDashboard_LoadingBeforeFirstFetch(t *testing.T) {
	m := NewDashboard(nil)
	assert.Contains(t, m.View(), "Loading firm overview")
}

func TestDashboard_ErrorKeepsPreviousFigures(t *testing.T) {
	m := loadedModel(t)

	updated, _ := m.Update(summaryErrMsg{err: errors.New("connection refused")})
	model := updated.(DashboardModel)

	view := model.View()
	assert.Contains(t, view, "refresh failed")
	assert.Contains(t, view, "12")
}

func TestDashboard_QuitKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	}
	for _, key := range keys {
		m := loadedModel(t)
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, "key %q should quit", key.String())
		assert.Equal(t, tea.Quit(), cmd())
	}
}

func TestDashboard_RefreshKeySchedulesFetch(t *testing.T) {
	m := loadedModel(t)

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	model := updated.(DashboardModel)

	assert.True(t, model.loading)
	assert.NotNil(t, cmd)
}
