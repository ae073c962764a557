package stats

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/meridianfirm/firmdesk/internal/model"
)

func TestComputeEngagementStats(t *testing.T) {
	tests := []struct {
		name        string
		engagements []model.Engagement
		want        EngagementStats
	}{
		{
			name:        "zero engagements gives zero average, not NaN",
			engagements: nil,
			want:        EngagementStats{},
		},
		{
			name: "mixed statuses",
			engagements: []model.Engagement{
				{Status: model.EngagementPlanning, CompletionPercentage: 10},
				{Status: model.EngagementFieldwork, CompletionPercentage: 50},
				{Status: model.EngagementCompleted, CompletionPercentage: 100},
			},
			want: EngagementStats{Active: 2, Completed: 1, AverageCompletion: 53},
		},
		{
			name: "archived counts as active work remaining",
			engagements: []model.Engagement{
				{Status: model.EngagementArchived, CompletionPercentage: 0},
			},
			want: EngagementStats{Active: 1, AverageCompletion: 0},
		},
		{
			name: "all complete",
			engagements: []model.Engagement{
				{Status: model.EngagementCompleted, CompletionPercentage: 100},
				{Status: model.EngagementCompleted, CompletionPercentage: 100},
			},
			want: EngagementStats{Completed: 2, AverageCompletion: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeEngagementStats(tt.engagements))
		})
	}
}

func TestCountHighRisk(t *testing.T) {
	clients := []model.Client{
		{Name: "Acme Holdings", RiskRating: model.RiskHigh},
		{Name: "Beta LLC", RiskRating: model.RiskLow},
	}

	assert.Equal(t, 1, CountHighRisk(clients))
	assert.Equal(t, 0, CountHighRisk(nil))
}

func TestReceivables(t *testing.T) {
	invoices := []model.Invoice{
		{Status: model.InvoiceSent, Total: decimal.RequireFromString("100.50")},
		{Status: model.InvoiceOverdue, Total: decimal.RequireFromString("200")},
		{Status: model.InvoiceDraft, Total: decimal.RequireFromString("75")},
		{Status: model.InvoicePaid, Total: decimal.RequireFromString("999")},
		{Status: model.InvoiceVoid, Total: decimal.RequireFromString("999")},
	}

	// Paid and void invoices are excluded; drafts still count as owed.
	got := Receivables(invoices)
	assert.True(t, got.Equal(decimal.RequireFromString("375.50")), "got %s", got)
}

func TestPayables(t *testing.T) {
	bills := []model.Bill{
		{Status: model.BillApproved, TotalAmount: decimal.RequireFromString("40")},
		{Status: model.BillDraft, TotalAmount: decimal.RequireFromString("10")},
		{Status: model.BillPaid, TotalAmount: decimal.RequireFromString("999")},
		{Status: model.BillVoid, TotalAmount: decimal.RequireFromString("999")},
	}

	got := Payables(bills)
	assert.True(t, got.Equal(decimal.RequireFromString("50")), "got %s", got)
}

func TestSummarize(t *testing.T) {
	clients := []model.Client{
		{RiskRating: model.RiskHigh},
		{RiskRating: model.RiskMedium},
		{RiskRating: model.RiskLow},
	}
	engagements := []model.Engagement{
		{Status: model.EngagementFieldwork, CompletionPercentage: 40},
	}

	got := Summarize(clients, engagements, nil, nil)

	assert.Equal(t, 3, got.TotalClients)
	assert.Equal(t, 1, got.HighRisk)
	assert.Equal(t, EngagementStats{Active: 1, AverageCompletion: 40}, got.Engagements)
	assert.True(t, got.Receivables.IsZero())
	assert.True(t, got.Payables.IsZero())
}
