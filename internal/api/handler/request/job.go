package request

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateJob struct {
	Title          string           `json:"title" validate:"required"`
	Type           string           `json:"type" validate:"required,oneof=photo_session video_editing design"`
	ClientID       uint             `json:"clientId" validate:"required"`
	AssignedTo     *uint            `json:"assignedTo"`
	DueDate        *time.Time       `json:"dueDate"`
	Price          *decimal.Decimal `json:"price"`
	DependsOnJobID *uint            `json:"dependsOnJobId"`
	WorkflowStage  string           `json:"workflowStage"`
	WorkflowOrder  int              `json:"workflowOrder"`
}

// UpdateJob patches job fields. Status is deliberately absent: status only
// ever changes through the transition endpoint.
type UpdateJob struct {
	Title      *string          `json:"title"`
	AssignedTo *uint            `json:"assignedTo"`
	DueDate    *time.Time       `json:"dueDate"`
	Price      *decimal.Decimal `json:"price"`
}

type TransitionJob struct {
	Status string `json:"status" validate:"required,oneof=pending in_progress review completed delivered"`
}
