package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meridianfirm/firmdesk/internal/cli"
	"github.com/meridianfirm/firmdesk/internal/model"
)

func TestTaskStatusIcon(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{status: model.TaskPending, want: cli.PendingIcon},
		{status: model.TaskReview, want: cli.ReviewIcon},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, taskStatusIcon(tt.status))
		})
	}

	// DONE renders the check mark regardless of styling.
	assert.Contains(t, taskStatusIcon(model.TaskDone), cli.SuccessIcon)
}

func TestSignOffHint(t *testing.T) {
	tests := []struct {
		name string
		task model.Task
		want string
	}{
		{name: "pending task awaits preparer", task: model.Task{Status: model.TaskPending}, want: "prepare"},
		{name: "in-progress task awaits preparer", task: model.Task{Status: model.TaskInProgress}, want: "prepare"},
		{name: "review task awaits reviewer", task: model.Task{Status: model.TaskReview}, want: "review"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, signOffHint(tt.task))
		})
	}
}

func TestSignOffHint_DoneIsDisabled(t *testing.T) {
	done := model.Task{Status: model.TaskDone}
	assert.False(t, done.CanSignOff())
	assert.Contains(t, signOffHint(done), "signed off")
}
