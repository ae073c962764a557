package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// CreateEngagementRequest is the payload for opening an engagement. Note the
// absence of completion_percentage: derived fields are never submitted.
type CreateEngagementRequest struct {
	Client         int              `json:"client" validate:"required"`
	Name           string           `json:"name" validate:"required"`
	EngagementType string           `json:"engagement_type" validate:"required,oneof=AUDIT TAX ADVISORY"`
	Year           int              `json:"year" validate:"required,min=2000"`
	Fee            *decimal.Decimal `json:"fee,omitempty"`
	StartDate      string           `json:"start_date,omitempty"`
	Deadline       string           `json:"deadline,omitempty"`
	Methodology    string           `json:"methodology,omitempty"`
	LeadAuditor    *int             `json:"lead_auditor,omitempty"`
}

// CreateFromTemplateRequest opens an engagement pre-populated with the
// standard audit program for its type.
type CreateFromTemplateRequest struct {
	Client         int    `json:"client" validate:"required"`
	Name           string `json:"name" validate:"required"`
	EngagementType string `json:"engagement_type" validate:"required,oneof=AUDIT TAX ADVISORY"`
	Year           int    `json:"year" validate:"required,min=2000"`
}

// ListEngagements fetches engagements, optionally for one client.
func (c *Client) ListEngagements(ctx context.Context, clientID int) ([]model.Engagement, error) {
	var query url.Values
	if clientID > 0 {
		query = url.Values{"client": {strconv.Itoa(clientID)}}
	}

	var engagements []model.Engagement
	if err := c.get(ctx, "engagements/", query, &engagements); err != nil {
		return nil, fmt.Errorf("failed to list engagements: %w", err)
	}
	return engagements, nil
}

// GetEngagement fetches one engagement, including its server-computed
// completion percentage.
func (c *Client) GetEngagement(ctx context.Context, id int) (*model.Engagement, error) {
	var engagement model.Engagement
	if err := c.get(ctx, "engagements/"+strconv.Itoa(id)+"/", nil, &engagement); err != nil {
		return nil, fmt.Errorf("failed to get engagement %d: %w", id, err)
	}
	return &engagement, nil
}

// CreateEngagement opens a new engagement.
func (c *Client) CreateEngagement(ctx context.Context, req CreateEngagementRequest) (*model.Engagement, error) {
	var engagement model.Engagement
	if err := c.post(ctx, "engagements/", req, &engagement); err != nil {
		return nil, fmt.Errorf("failed to create engagement: %w", err)
	}
	return &engagement, nil
}

// CreateEngagementFromTemplate opens an engagement with a templated task list.
func (c *Client) CreateEngagementFromTemplate(ctx context.Context, req CreateFromTemplateRequest) (*model.Engagement, error) {
	var engagement model.Engagement
	if err := c.post(ctx, "engagements/create_from_template/", req, &engagement); err != nil {
		return nil, fmt.Errorf("failed to create engagement from template: %w", err)
	}
	return &engagement, nil
}

// UpdateEngagement patches the given fields on an engagement.
func (c *Client) UpdateEngagement(ctx context.Context, id int, fields map[string]any) (*model.Engagement, error) {
	var engagement model.Engagement
	if err := c.patch(ctx, "engagements/"+strconv.Itoa(id)+"/", fields, &engagement); err != nil {
		return nil, fmt.Errorf("failed to update engagement %d: %w", id, err)
	}
	return &engagement, nil
}

// DeleteEngagement removes an engagement.
func (c *Client) DeleteEngagement(ctx context.Context, id int) error {
	if err := c.delete(ctx, "engagements/"+strconv.Itoa(id)+"/"); err != nil {
		return fmt.Errorf("failed to delete engagement %d: %w", id, err)
	}
	return nil
}

// UnifiedHistory fetches the merged engagement/task/workpaper change feed.
func (c *Client) UnifiedHistory(ctx context.Context, id int) ([]model.HistoryEvent, error) {
	var events []model.HistoryEvent
	if err := c.get(ctx, "engagements/"+strconv.Itoa(id)+"/unified_history/", nil, &events); err != nil {
		return nil, fmt.Errorf("failed to get engagement history: %w", err)
	}
	return events, nil
}
