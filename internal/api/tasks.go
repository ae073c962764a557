package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/meridianfirm/firmdesk/internal/model"
)

// CreateTaskRequest is the payload for adding an audit procedure. Status is
// pinned to PENDING: new procedures always start at the beginning of the
// sign-off chain.
type CreateTaskRequest struct {
	Engagement  int    `json:"engagement" validate:"required"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"due_date,omitempty"`
	IsMilestone bool   `json:"is_milestone"`
	Status      string `json:"status" validate:"eq=PENDING"`
}

// ListTasks fetches the ordered procedure list for one engagement, optionally
// narrowed by a title/description search.
func (c *Client) ListTasks(ctx context.Context, engagementID int, search string) ([]model.Task, error) {
	query := url.Values{"engagement": {strconv.Itoa(engagementID)}}
	if search != "" {
		query.Set("search", search)
	}

	var tasks []model.Task
	if err := c.get(ctx, "engagement-tasks/", query, &tasks); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// GetTask fetches one task.
func (c *Client) GetTask(ctx context.Context, id int) (*model.Task, error) {
	var task model.Task
	if err := c.get(ctx, "engagement-tasks/"+strconv.Itoa(id)+"/", nil, &task); err != nil {
		return nil, fmt.Errorf("failed to get task %d: %w", id, err)
	}
	return &task, nil
}

// CreateTask adds a procedure to an engagement's checklist.
func (c *Client) CreateTask(ctx context.Context, req CreateTaskRequest) (*model.Task, error) {
	req.Status = model.TaskPending

	var task model.Task
	if err := c.post(ctx, "engagement-tasks/", req, &task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}
	return &task, nil
}

// SignOffTask advances a task through the sign-off chain. The server decides
// whether the caller acts as preparer or reviewer and rejects invalid
// transitions (self-review, already DONE); those rejections surface the
// server's message untouched.
func (c *Client) SignOffTask(ctx context.Context, id int) (*ActionResult, error) {
	var result ActionResult
	if err := c.post(ctx, "engagement-tasks/"+strconv.Itoa(id)+"/sign_off/", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SetTaskStatus force-sets a task's status via the backend's escape-hatch
// endpoint. Sign-off remains the normal transition path.
func (c *Client) SetTaskStatus(ctx context.Context, id int, status string) error {
	body := map[string]string{"status": status}
	if err := c.patch(ctx, "engagement-tasks/"+strconv.Itoa(id)+"/update_status/", body, nil); err != nil {
		return fmt.Errorf("failed to set task %d status: %w", id, err)
	}
	return nil
}

// DeleteTask hard-deletes a procedure. Callers are responsible for user
// confirmation before invoking this.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	if err := c.delete(ctx, "engagement-tasks/"+strconv.Itoa(id)+"/"); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	return nil
}
