package domain

import "time"

type TaskState string

const (
	TaskPending   TaskState = "pending"
	TaskCompleted TaskState = "completed"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func ValidTaskPriority(p TaskPriority) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task is maintenance work assigned by an admin to an auxiliary.
type Task struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	LaboratoryID uint         `json:"laboratory_id"`
	AuxiliaryID  uint         `json:"auxiliary_id"`
	Priority     TaskPriority `json:"priority"`
	DueDate      string       `json:"due_date,omitempty"`
	Tags         []string     `json:"tags"`
	Evidence     []string     `json:"evidence"`
	State        TaskState    `json:"state"`
	CreatedBy    uint         `json:"created_by"`
	CompletedAt  *time.Time   `json:"completed_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
