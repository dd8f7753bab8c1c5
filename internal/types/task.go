package types

import (
	"fmt"
	"time"
)

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

const (
	TaskTitleMaxLength       = 120
	TaskDescriptionMaxLength = 3000
)

// ParseTaskStatus returns ErrInvalidArgument for anything outside the enum.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("%w: invalid task status %q", ErrInvalidArgument, s)
	}
	return status, nil
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// IsDone is the only place the done flag is derived from.
func (s TaskStatus) IsDone() bool {
	return s == TaskStatusCompleted
}

type Task struct {
	ID          int64      `json:"id" example:"42"`
	OwnerID     int64      `json:"owner_id" example:"7"`
	Title       string     `json:"title" example:"Buy milk"`
	Description string     `json:"description" example:"2 litres"`
	Status      TaskStatus `json:"status" example:"pending"`
	Done        bool       `json:"done" example:"false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// SetStatus keeps Done in step with Status.
func (t *Task) SetStatus(status TaskStatus) {
	t.Status = status
	t.Done = status.IsDone()
}

// TaskFilter narrows List. Nil pointers and an empty Search mean "no constraint".
type TaskFilter struct {
	Done   *bool
	Status *TaskStatus
	Search string
}

type CreateTaskParams struct {
	Title       string      `json:"title" example:"Buy milk"`
	Description *string     `json:"description,omitempty" example:"2 litres"`
	Status      *TaskStatus `json:"status,omitempty" example:"pending"`
}

// UpdateTaskParams uses pointers so absent fields are left untouched.
type UpdateTaskParams struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
	Done        *bool       `json:"done,omitempty"`
}

func (p UpdateTaskParams) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Done == nil
}

type ChangeStatusParams struct {
	Status TaskStatus `json:"status" example:"completed"`
}
