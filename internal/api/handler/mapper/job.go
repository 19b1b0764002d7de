package mapper

import (
	"studio/internal/api/handler/request"
	"studio/internal/api/models"
)

// JobMapper handles job-related mappings
type JobMapper struct{}

func NewJobMapper() JobMapper {
	return JobMapper{}
}

func (JobMapper) CreateJob(req request.CreateJob) models.Job {
	return models.Job{
		Title:          req.Title,
		Type:           models.JobType(req.Type),
		Status:         models.JobStatusPending,
		ClientID:       req.ClientID,
		AssignedTo:     req.AssignedTo,
		DueDate:        req.DueDate,
		Price:          req.Price,
		DependsOnJobID: req.DependsOnJobID,
		WorkflowStage:  req.WorkflowStage,
		WorkflowOrder:  req.WorkflowOrder,
	}
}

// PatchJob builds a column patch from the optional update fields.
func (JobMapper) PatchJob(req request.UpdateJob) map[string]any {
	patch := map[string]any{}
	if req.Title != nil {
		patch["title"] = *req.Title
	}
	if req.AssignedTo != nil {
		patch["assigned_to"] = *req.AssignedTo
	}
	if req.DueDate != nil {
		patch["due_date"] = *req.DueDate
	}
	if req.Price != nil {
		patch["price"] = *req.Price
	}
	return patch
}
