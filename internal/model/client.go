// Package model defines the backend-owned records the application displays.
// Every struct here is a transient, non-authoritative copy of a server record;
// derived numeric fields (completion percentages, balances, totals) are
// read-only and only ever redisplayed as the server returned them.
package model

// Client entity types accepted by the backend.
const (
	EntityIndividual  = "INDIVIDUAL"
	EntityLLC         = "LLC"
	EntityCorporation = "CORP"
	EntityPartnership = "PARTNERSHIP"
	EntityNonProfit   = "NGO"
)

// Client risk ratings.
const (
	RiskLow    = "LOW"
	RiskMedium = "MED"
	RiskHigh   = "HIGH"
)

// Client is a firm client with its compliance metadata.
type Client struct {
	ID                 int             `json:"id"`
	Name               string          `json:"name"`
	TaxIDNumber        string          `json:"tax_id_number"`
	EntityType         string          `json:"entity_type"`
	Industry           string          `json:"industry,omitempty"`
	RiskRating         string          `json:"risk_rating"`
	Partner            *PartnerRef     `json:"partner,omitempty"`
	FiscalYearEnd      string          `json:"fiscal_year_end,omitempty"`
	BillingAddress     string          `json:"billing_address,omitempty"`
	PrimaryCurrency    string          `json:"primary_currency,omitempty"`
	Website            string          `json:"website,omitempty"`
	LastAuditDate      string          `json:"last_audit_date,omitempty"`
	PartnerRotationDue string          `json:"partner_rotation_due,omitempty"`
	IsActive           bool            `json:"is_active"`
	Contacts           []ClientContact `json:"contacts,omitempty"`
}

// PartnerRef is the nested assigned-partner representation on client records.
type PartnerRef struct {
	ID       int    `json:"id,omitempty"`
	Username string `json:"username"`
}

// ClientContact is a named contact person at a client.
type ClientContact struct {
	ID        int    `json:"id,omitempty"`
	Client    int    `json:"client,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// ClientNote is a threaded note on a client file.
type ClientNote struct {
	ID         int    `json:"id"`
	Client     int    `json:"client"`
	Parent     *int   `json:"parent,omitempty"`
	AuthorName string `json:"author_name,omitempty"`
	Content    string `json:"content"`
	IsResolved bool   `json:"is_resolved"`
	CreatedAt  string `json:"created_at,omitempty"`
}
