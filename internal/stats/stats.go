// Package stats derives dashboard summary figures from full resource
// collections fetched client-side. There is no dedicated aggregation API;
// every figure here is recomputed from scratch on each screen load, which is
// acceptable at single-firm scale.
package stats

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// EngagementStats summarizes the engagement list.
type EngagementStats struct {
	Active            int
	Completed         int
	AverageCompletion int
}

// ComputeEngagementStats counts active vs. completed engagements and averages
// their server-computed completion percentages. The average is 0 when there
// are no engagements.
func ComputeEngagementStats(engagements []model.Engagement) EngagementStats {
	var s EngagementStats
	if len(engagements) == 0 {
		return s
	}

	total := 0
	for _, e := range engagements {
		if e.IsActive() {
			s.Active++
		} else {
			s.Completed++
		}
		total += e.CompletionPercentage
	}
	s.AverageCompletion = int(math.Round(float64(total) / float64(len(engagements))))

	return s
}

// CountHighRisk counts clients rated HIGH.
func CountHighRisk(clients []model.Client) int {
	n := 0
	for _, c := range clients {
		if c.RiskRating == model.RiskHigh {
			n++
		}
	}
	return n
}

// Receivables sums the totals of outstanding invoices (not PAID, not VOID).
func Receivables(invoices []model.Invoice) decimal.Decimal {
	sum := decimal.Zero
	for _, inv := range invoices {
		if inv.IsOutstanding() {
			sum = sum.Add(inv.Total)
		}
	}
	return sum
}

// Payables sums the totals of outstanding bills (not PAID, not VOID).
func Payables(bills []model.Bill) decimal.Decimal {
	sum := decimal.Zero
	for _, b := range bills {
		if b.IsOutstanding() {
			sum = sum.Add(b.TotalAmount)
		}
	}
	return sum
}

// FirmSummary is the full dashboard record.
type FirmSummary struct {
	TotalClients int
	HighRisk     int
	Engagements  EngagementStats
	Receivables  decimal.Decimal
	Payables     decimal.Decimal
}

// Summarize builds the dashboard summary from immutable collections.
func Summarize(clients []model.Client, engagements []model.Engagement, invoices []model.Invoice, bills []model.Bill) FirmSummary {
	return FirmSummary{
		TotalClients: len(clients),
		HighRisk:     CountHighRisk(clients),
		Engagements:  ComputeEngagementStats(engagements),
		Receivables:  Receivables(invoices),
		Payables:     Payables(bills),
	}
}
