package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// CreateClientRequest is the payload for creating a client record.
type CreateClientRequest struct {
	Name            string `json:"name" validate:"required"`
	TaxIDNumber     string `json:"tax_id_number" validate:"required"`
	EntityType      string `json:"entity_type" validate:"required,oneof=INDIVIDUAL LLC CORP PARTNERSHIP NGO"`
	Industry        string `json:"industry,omitempty"`
	RiskRating      string `json:"risk_rating,omitempty" validate:"omitempty,oneof=LOW MED HIGH"`
	FiscalYearEnd   string `json:"fiscal_year_end,omitempty"`
	BillingAddress  string `json:"billing_address,omitempty"`
	PrimaryCurrency string `json:"primary_currency,omitempty" validate:"omitempty,len=3"`
	Website         string `json:"website,omitempty" validate:"omitempty,url"`
	AssignedPartner *int   `json:"assigned_partner,omitempty"`
}

// ListClients fetches all clients, optionally filtered server-side by the
// search term.
func (c *Client) ListClients(ctx context.Context, search string) ([]model.Client, error) {
	var query url.Values
	if search != "" {
		query = url.Values{"search": {search}}
	}

	var clients []model.Client
	if err := c.get(ctx, "clients/", query, &clients); err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}

// GetClient fetches one client by id.
func (c *Client) GetClient(ctx context.Context, id int) (*model.Client, error) {
	var client model.Client
	if err := c.get(ctx, "clients/"+strconv.Itoa(id)+"/", nil, &client); err != nil {
		return nil, fmt.Errorf("failed to get client %d: %w", id, err)
	}
	return &client, nil
}

// CreateClient creates a client record.
func (c *Client) CreateClient(ctx context.Context, req CreateClientRequest) (*model.Client, error) {
	var client model.Client
	if err := c.post(ctx, "clients/", req, &client); err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &client, nil
}

// UpdateClient patches the given fields on a client record.
func (c *Client) UpdateClient(ctx context.Context, id int, fields map[string]any) (*model.Client, error) {
	var client model.Client
	if err := c.patch(ctx, "clients/"+strconv.Itoa(id)+"/", fields, &client); err != nil {
		return nil, fmt.Errorf("failed to update client %d: %w", id, err)
	}
	return &client, nil
}

// DeleteClient removes a client record.
func (c *Client) DeleteClient(ctx context.Context, id int) error {
	if err := c.delete(ctx, "clients/"+strconv.Itoa(id)+"/"); err != nil {
		return fmt.Errorf("failed to delete client %d: %w", id, err)
	}
	return nil
}

// ListPartners fetches the staff eligible for client assignment.
func (c *Client) ListPartners(ctx context.Context) ([]model.StaffMember, error) {
	var partners []model.StaffMember
	if err := c.get(ctx, "clients/partners/", nil, &partners); err != nil {
		return nil, fmt.Errorf("failed to list partners: %w", err)
	}
	return partners, nil
}

// CreateContactRequest is the payload for adding a client contact.
type CreateContactRequest struct {
	Client    int    `json:"client" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// ListContacts fetches the contacts for one client.
func (c *Client) ListContacts(ctx context.Context, clientID int) ([]model.ClientContact, error) {
	query := url.Values{"client": {strconv.Itoa(clientID)}}

	var contacts []model.ClientContact
	if err := c.get(ctx, "client-contacts/", query, &contacts); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return contacts, nil
}

// CreateContact adds a contact to a client.
func (c *Client) CreateContact(ctx context.Context, req CreateContactRequest) (*model.ClientContact, error) {
	var contact model.ClientContact
	if err := c.post(ctx, "client-contacts/", req, &contact); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return &contact, nil
}

// DeleteContact removes a contact.
func (c *Client) DeleteContact(ctx context.Context, id int) error {
	if err := c.delete(ctx, "client-contacts/"+strconv.Itoa(id)+"/"); err != nil {
		return fmt.Errorf("failed to delete contact %d: %w", id, err)
	}
	return nil
}

// CreateNoteRequest is the payload for adding a client note or a reply.
type CreateNoteRequest struct {
	Client  int    `json:"client" validate:"required"`
	Content string `json:"content" validate:"required"`
	Parent  *int   `json:"parent,omitempty"`
}

// ListNotes fetches the note thread for one client.
func (c *Client) ListNotes(ctx context.Context, clientID int) ([]model.ClientNote, error) {
	query := url.Values{"client": {strconv.Itoa(clientID)}}

	var notes []model.ClientNote
	if err := c.get(ctx, "notes/", query, &notes); err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// CreateNote adds a note (or reply, when Parent is set) to a client file.
func (c *Client) CreateNote(ctx context.Context, req CreateNoteRequest) (*model.ClientNote, error) {
	var note model.ClientNote
	if err := c.post(ctx, "notes/", req, &note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}
	return &note, nil
}

// ResolveNote marks a note thread resolved.
func (c *Client) ResolveNote(ctx context.Context, id int) error {
	body := map[string]any{"is_resolved": true}
	if err := c.patch(ctx, "notes/"+strconv.Itoa(id)+"/", body, nil); err != nil {
		return fmt.Errorf("failed to resolve note %d: %w", id, err)
	}
	return nil
}
