package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JobType identifies the kind of work a job represents.
type JobType string

const (
	JobTypePhotoSession JobType = "photo_session"
	JobTypeVideoEditing JobType = "video_editing"
	JobTypeDesign       JobType = "design"
)

// JobStatus is one stage of the fixed job pipeline.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusInProgress JobStatus = "in_progress"
	JobStatusReview     JobStatus = "review"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusDelivered  JobStatus = "delivered"
)

// WorkflowEntry is one line of a job's transition log.
type WorkflowEntry struct {
	PreviousStage  JobStatus `json:"previousStage"`
	NewStage       JobStatus `json:"newStage"`
	TransitionedAt time.Time `json:"transitionedAt"`
	TransitionedBy uint      `json:"transitionedBy"`
}

// WorkflowHistory is stored as a jsonb column.
type WorkflowHistory []WorkflowEntry

func (h WorkflowHistory) Value() (driver.Value, error) {
	if h == nil {
		return nil, nil
	}
	return json.Marshal(h)
}

func (h *WorkflowHistory) Scan(value interface{}) error {
	if value == nil {
		*h = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("workflow history: expected []byte")
	}
	return json.Unmarshal(bytes, h)
}

// Job is one unit of billable work moving through the status pipeline.
// Jobs start pending and are archived, never deleted, once delivered.
type Job struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"not null" json:"title"`
	Type       JobType   `gorm:"not null;type:varchar(20)" json:"type"`
	Status     JobStatus `gorm:"not null;type:varchar(20);default:pending" json:"status"`
	ClientID   uint      `gorm:"not null;index" json:"clientId"`
	Client     Client    `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	AssignedTo *uint     `gorm:"index" json:"assignedTo,omitempty"`
	Assignee   *User     `gorm:"foreignKey:AssignedTo" json:"assignee,omitempty"`

	DueDate *time.Time       `json:"dueDate,omitempty"`
	Price   *decimal.Decimal `gorm:"type:numeric(12,2)" json:"price,omitempty"`

	// A job may declare another job as its prerequisite. Completing the
	// prerequisite notifies this job's assignee that it is ready to start.
	DependsOnJobID *uint `gorm:"index" json:"dependsOnJobId,omitempty"`

	WorkflowStage   string          `json:"workflowStage,omitempty"`
	WorkflowOrder   int             `json:"workflowOrder,omitempty"`
	WorkflowHistory WorkflowHistory `gorm:"type:jsonb" json:"workflowHistory,omitempty"`

	Archived  bool           `gorm:"default:false" json:"archived"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Job) TableName() string {
	return "jobs"
}
