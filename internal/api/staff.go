package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// CreateStaffRequest is the payload for adding a staff member.
type CreateStaffRequest struct {
	Username  string `json:"username" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Role      string `json:"role" validate:"required,oneof=PARTNER MANAGER ASSOCIATE"`
}

// ListStaff fetches all firm staff (client-portal users are excluded
// server-side).
func (c *Client) ListStaff(ctx context.Context) ([]model.StaffMember, error) {
	var staff []model.StaffMember
	if err := c.get(ctx, "staff/", nil, &staff); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

// GetStaff fetches one staff member.
func (c *Client) GetStaff(ctx context.Context, id int) (*model.StaffMember, error) {
	var member model.StaffMember
	if err := c.get(ctx, "staff/"+strconv.Itoa(id)+"/", nil, &member); err != nil {
		return nil, fmt.Errorf("failed to get staff member %d: %w", id, err)
	}
	return &member, nil
}

// Me fetches the authenticated user's own profile.
func (c *Client) Me(ctx context.Context) (*model.StaffMember, error) {
	var member model.StaffMember
	if err := c.get(ctx, "staff/me/", nil, &member); err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}
	return &member, nil
}

// CreateStaff adds a staff member.
func (c *Client) CreateStaff(ctx context.Context, req CreateStaffRequest) (*model.StaffMember, error) {
	var member model.StaffMember
	if err := c.post(ctx, "staff/", req, &member); err != nil {
		return nil, fmt.Errorf("failed to create staff member: %w", err)
	}
	return &member, nil
}

// UpdateStaff patches the given fields on a staff member.
func (c *Client) UpdateStaff(ctx context.Context, id int, fields map[string]any) (*model.StaffMember, error) {
	var member model.StaffMember
	if err := c.patch(ctx, "staff/"+strconv.Itoa(id)+"/", fields, &member); err != nil {
		return nil, fmt.Errorf("failed to update staff member %d: %w", id, err)
	}
	return &member, nil
}

// DeactivateStaff soft-deletes a staff member; the backend flips is_active
// rather than removing the record.
func (c *Client) DeactivateStaff(ctx context.Context, id int) error {
	if err := c.delete(ctx, "staff/"+strconv.Itoa(id)+"/"); err != nil {
		return fmt.Errorf("failed to deactivate staff member %d: %w", id, err)
	}
	return nil
}
