package model

import "github.com/shopspring/decimal"

// Engagement statuses. COMPLETED and ARCHIVED engagements no longer count as
// active work in dashboard aggregates.
const (
	EngagementPlanning  = "PLANNING"
	EngagementFieldwork = "FIELDWORK"
	EngagementReview    = "REVIEW"
	EngagementCompleted = "COMPLETED"
	EngagementArchived  = "ARCHIVED"
)

// Engagement types.
const (
	EngagementAudit    = "AUDIT"
	EngagementTax      = "TAX"
	EngagementAdvisory = "ADVISORY"
)

// Engagement is a bounded audit/tax/advisory project for one client in one
// fiscal year. CompletionPercentage is computed server-side from task states
// and must never be submitted.
type Engagement struct {
	ID                   int              `json:"id"`
	Client               int              `json:"client"`
	ClientName           string           `json:"client_name,omitempty"`
	Name                 string           `json:"name"`
	EngagementType       string           `json:"engagement_type"`
	Status               string           `json:"status"`
	Year                 int              `json:"year"`
	Fee                  *decimal.Decimal `json:"fee,omitempty"`
	StartDate            string           `json:"start_date,omitempty"`
	Deadline             string           `json:"deadline,omitempty"`
	LeadAuditorName      string           `json:"lead_auditor_name,omitempty"`
	Methodology          string           `json:"methodology,omitempty"`
	CompletionPercentage int              `json:"completion_percentage"`
}

// IsActive reports whether the engagement still counts as open work.
func (e Engagement) IsActive() bool {
	return e.Status != EngagementCompleted
}

// HistoryEvent is one entry in an engagement's unified history feed, merging
// engagement, task, and workpaper changes server-side.
type HistoryEvent struct {
	Date   string `json:"date"`
	Actor  string `json:"actor"`
	Action string `json:"action"`
	Detail string `json:"detail,omitempty"`
	Source string `json:"source,omitempty"`
}
