package model

// PBC ("Prepared By Client") request statuses.
const (
	PBCOpen      = "OPEN"
	PBCSubmitted = "SUBMITTED"
	PBCAccepted  = "ACCEPTED"
	PBCRejected  = "REJECTED"
)

// PBCRequest is a document the client must supply to the audit team,
// tracked and fulfilled through the client portal. Uploading an attachment
// moves the request to SUBMITTED server-side.
type PBCRequest struct {
	ID          int    `json:"id"`
	Engagement  int    `json:"engagement"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	Attachment  string `json:"attachment,omitempty"`
	RequestedAt string `json:"requested_at,omitempty"`
}
