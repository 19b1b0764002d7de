package service

import (
	"errors"
	"fmt"

	"studio"
	"studio/internal/api/models"
	"studio/internal/api/policy"
	"studio/internal/api/repo"
	"studio/internal/api/workflow"
	"studio/internal/realtime"
	"studio/pkg"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// ErrTransitionForbidden is returned when the actor is neither the job's
// assignee nor a role holding manage_jobs.
var ErrTransitionForbidden = errors.New("job can only be transitioned by its assignee or a job manager")

// TransitionOutcome is what one applied transition produced: the persisted
// job and the notifications that were stored for dispatch.
type TransitionOutcome struct {
	Job           models.Job
	Notifications []models.Notification
}

type JobService struct {
	jobRepo          *repo.JobRepository
	userRepo         *repo.UserRepository
	notificationRepo *repo.NotificationRepository
	engine           workflow.Engine
	publisher        *realtime.Publisher
	mailService      *MailService
	logger           zerolog.Logger
}

// NewJobService builds a job service. The publisher may be nil when NATS is
// not configured; transitions then skip the realtime push.
func NewJobService(publisher *realtime.Publisher) *JobService {
	return &JobService{
		jobRepo:          repo.NewJobRepository(),
		userRepo:         repo.NewUserRepository(),
		notificationRepo: repo.NewNotificationRepository(),
		engine:           workflow.Engine{},
		publisher:        publisher,
		mailService:      NewMailService(),
		logger:           studio.Logger,
	}
}

func (slf *JobService) FindByID(id uint) (*models.Job, error) {
	job, err := slf.jobRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			slf.logger.Error().Uint("jobId", id).Msg("Job not found")
			return nil, errors.New("job not found")
		}
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error getting job")
		return nil, err
	}
	return &job, nil
}

func (slf *JobService) GetAll() ([]models.Job, error) {
	jobs, err := slf.jobRepo.GetAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing jobs")
		return nil, err
	}
	return jobs, nil
}

// FindAllForUser returns the jobs a user may see. Production roles only see
// their assigned jobs; client-role users see the jobs of the client record
// matching their email; everyone else with view_jobs sees all of them.
func (slf *JobService) FindAllForUser(userID uint, role models.AppRole, email string) ([]models.Job, error) {
	switch role {
	case models.RolePhotographer, models.RoleDesigner, models.RoleEditor, models.RoleAdsManager:
		return slf.jobRepo.FindByAssignee(userID)
	case models.RoleClient:
		return slf.jobRepo.FindByClientEmail(email)
	default:
		return slf.GetAll()
	}
}

func (slf *JobService) FindByClientEmail(email string) ([]models.Job, error) {
	jobs, err := slf.jobRepo.FindByClientEmail(email)
	if err != nil {
		slf.logger.Error().Err(err).Str("email", email).Msg("Error getting jobs for client")
		return nil, err
	}
	return jobs, nil
}

// Create inserts a new job. Jobs always start pending, whatever the caller
// put in the request.
func (slf *JobService) Create(job models.Job) (*models.Job, error) {
	job.Status = models.JobStatusPending
	job.Archived = false
	job.WorkflowHistory = nil

	if job.DependsOnJobID != nil {
		if _, err := slf.jobRepo.FindByID(*job.DependsOnJobID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("prerequisite job not found")
			}
			return nil, err
		}
	}

	if err := slf.jobRepo.Create(&job); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating job")
		return nil, err
	}
	return &job, nil
}

// Update patches non-status job fields. Status is only ever changed through
// Transition.
func (slf *JobService) Update(id uint, patch map[string]any) (*models.Job, error) {
	if len(patch) > 0 {
		if err := slf.jobRepo.UpdateFields(id, patch); err != nil {
			slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error updating job")
			return nil, err
		}
	}
	return slf.FindByID(id)
}

// Dependents returns the jobs directly depending on the given job, for the
// "what happens next" preview.
func (slf *JobService) Dependents(id uint) ([]models.Job, error) {
	jobs, err := slf.jobRepo.FindDependents(id)
	if err != nil {
		slf.logger.Error().Err(err).Uint("jobId", id).Msg("Error getting dependent jobs")
		return nil, err
	}
	return workflow.UnlockDependents(id, jobs), nil
}

// Transition runs one validated status change end to end: re-fetch the job,
// run the engine, persist the updated job together with the notification
// rows in one transaction, then push the realtime event and delivery emails.
// There is no admin bypass path around this method. Production staff may
// transition the jobs assigned to them; anyone else needs manage_jobs.
func (slf *JobService) Transition(jobID uint, requested models.JobStatus, actorID uint, actorRole models.AppRole) (*TransitionOutcome, error) {
	job, err := slf.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("job not found")
		}
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Error getting job")
		return nil, err
	}

	if !policy.Check(actorRole, policy.ManageJobs) {
		if job.AssignedTo == nil || *job.AssignedTo != actorID {
			slf.logger.Warn().
				Uint("jobId", jobID).
				Uint("actorId", actorID).
				Str("role", string(actorRole)).
				Msg("Transition refused: actor is not the assignee")
			return nil, ErrTransitionForbidden
		}
	}

	dependents, err := slf.jobRepo.FindDependents(jobID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Error getting dependent jobs")
		return nil, err
	}

	staff, err := slf.userRepo.FindActiveByRoles(models.RoleAdmin, models.RoleReceptionist)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error getting staff recipients")
		return nil, err
	}

	previous := job.Status
	result, err := slf.engine.Transition(job, requested, actorID, workflow.Environment{
		Dependents: dependents,
		Staff:      staff,
	})
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, len(result.Intents))
	for i, intent := range result.Intents {
		notifications[i] = models.Notification{
			UserID:       intent.UserID,
			Title:        intent.Title,
			Message:      intent.Message,
			RelatedJobID: intent.RelatedJobID,
			Type:         intent.Type,
		}
	}

	tx := slf.jobRepo.Db.Begin()
	patch := map[string]any{
		"status":           result.Job.Status,
		"updated_at":       result.Job.UpdatedAt,
		"archived":         result.Job.Archived,
		"workflow_history": result.Job.WorkflowHistory,
	}
	if err := tx.Model(&models.Job{}).Where("id = ?", jobID).Updates(patch).Error; err != nil {
		tx.Rollback()
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Error persisting transition")
		return nil, err
	}
	if len(notifications) > 0 {
		if err := tx.Create(&notifications).Error; err != nil {
			tx.Rollback()
			slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Error persisting notifications")
			return nil, err
		}
	}
	if err := tx.Commit().Error; err != nil {
		slf.logger.Error().Err(err).Uint("jobId", jobID).Msg("Error committing transition")
		return nil, err
	}

	slf.logger.Info().
		Uint("jobId", jobID).
		Str("from", string(previous)).
		Str("to", string(result.Job.Status)).
		Uint("actorId", actorID).
		Int("notifications", len(notifications)).
		Msg("Job transitioned")

	slf.afterTransition(result, previous, actorID, staff)

	return &TransitionOutcome{Job: result.Job, Notifications: notifications}, nil
}

// afterTransition runs the best-effort side channels: realtime push, unread
// counter invalidation and delivery emails. Failures are logged, never
// surfaced — the transition itself is already committed.
func (slf *JobService) afterTransition(result workflow.Result, previous models.JobStatus, actorID uint, staff []models.User) {
	if previous == result.Job.Status {
		return
	}

	if slf.publisher != nil {
		event := realtime.StatusEvent{
			JobID:    result.Job.ID,
			Previous: previous,
			Status:   result.Job.Status,
			ActorID:  actorID,
			At:       result.Job.UpdatedAt,
		}
		if err := slf.publisher.PublishJobStatus(event); err != nil {
			slf.logger.Error().Err(err).Uint("jobId", result.Job.ID).Msg("Error publishing status event")
		}
	}

	for _, intent := range result.Intents {
		key := fmt.Sprintf("notifications:unread:%d", intent.UserID)
		if err := pkg.RedisDelete(key); err != nil {
			slf.logger.Warn().Err(err).Str("key", key).Msg("Error invalidating unread counter")
		}
	}

	if result.Job.Status == models.JobStatusDelivered && slf.mailService.IsConfigured() {
		emailByID := make(map[uint]string, len(staff))
		for _, u := range staff {
			emailByID[u.ID] = u.Email
		}
		var recipients []string
		for _, intent := range result.Intents {
			if email, ok := emailByID[intent.UserID]; ok {
				recipients = append(recipients, email)
			}
		}
		if len(recipients) > 0 {
			msg := EmailMessage{
				To:      recipients,
				Subject: workflow.TitleJobDelivered,
				Body:    fmt.Sprintf("Job %q has been delivered to the client.", result.Job.Title),
			}
			if err := slf.mailService.Send(msg); err != nil {
				slf.logger.Error().Err(err).Uint("jobId", result.Job.ID).Msg("Error sending delivery email")
			}
		}
	}
}
