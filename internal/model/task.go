package model

// Task statuses. Status advances monotonically through sign-offs:
// PENDING → REVIEW (preparer) → DONE (reviewer). DONE is terminal.
const (
	TaskPending    = "PENDING"
	TaskInProgress = "IN_PROGRESS"
	TaskReview     = "REVIEW"
	TaskDone       = "DONE"
)

// Task is a single audit procedure on an engagement's checklist. The client
// never sets status directly except PENDING at creation; transitions happen
// through the sign_off action and are validated server-side.
type Task struct {
	ID           int    `json:"id"`
	Engagement   int    `json:"engagement"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Status       string `json:"status"`
	DueDate      string `json:"due_date,omitempty"`
	AssigneeName string `json:"assignee_name,omitempty"`
	IsMilestone  bool   `json:"is_milestone"`
	PreparedBy   *int   `json:"prepared_by,omitempty"`
	PreparedAt   string `json:"prepared_at,omitempty"`
	ReviewedBy   *int   `json:"reviewed_by,omitempty"`
	ReviewedAt   string `json:"reviewed_at,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// CanSignOff reports whether the sign-off action is still available. A DONE
// task is fully reviewed; the control is disabled for it.
func (t Task) CanSignOff() bool {
	return t.Status != TaskDone
}
