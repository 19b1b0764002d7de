// Package workflow owns the job status state machine. The engine is pure: it
// validates one transition over an already-fetched snapshot and returns the
// updated job plus the notification intents the transition causes. Callers
// persist both and dispatch the intents; nothing here touches the database.
package workflow

import (
	"fmt"
	"time"

	"studio/internal/api/models"
)

// NotificationIntent describes one undispatched message to one user. It is a
// value produced as engine output; storage and delivery are the caller's job.
type NotificationIntent struct {
	UserID       uint
	Title        string
	Message      string
	RelatedJobID *uint
	Type         models.NotificationType
}

// Environment carries the pre-fetched records a transition needs: the jobs
// depending on the one being transitioned, and the staff users who observe
// every status change.
type Environment struct {
	Dependents []models.Job
	Staff      []models.User
}

// Result is the outcome of a successful transition.
type Result struct {
	Job     models.Job
	Intents []NotificationIntent
}

const (
	TitleJobDelivered    = "Job Completed and Accepted"
	TitleJobReadyToStart = "Job Ready to Start"
	TitleJobStatusUpdate = "Job Status Updated"
)

// forward holds the single legal outgoing edge of each non-terminal status.
var forward = map[models.JobStatus]models.JobStatus{
	models.JobStatusPending:    models.JobStatusInProgress,
	models.JobStatusInProgress: models.JobStatusReview,
	models.JobStatusReview:     models.JobStatusCompleted,
	models.JobStatusCompleted:  models.JobStatusDelivered,
}

type Engine struct {
	// Now is swappable for tests; zero value falls back to time.Now.
	Now func() time.Time
}

func (e Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// Transition validates and applies one status change. Requesting the current
// status is an allowed no-op that refreshes UpdatedAt and emits nothing.
// Admins get no bypass: every caller, whatever the role, goes through here.
func (e Engine) Transition(job models.Job, requested models.JobStatus, actorID uint, env Environment) (Result, error) {
	if requested == job.Status {
		job.UpdatedAt = e.now()
		return Result{Job: job}, nil
	}

	if forward[job.Status] != requested {
		return Result{}, &InvalidTransitionError{From: job.Status, To: requested}
	}

	now := e.now()
	previous := job.Status
	job.Status = requested
	job.UpdatedAt = now
	job.WorkflowHistory = append(job.WorkflowHistory, models.WorkflowEntry{
		PreviousStage:  previous,
		NewStage:       requested,
		TransitionedAt: now,
		TransitionedBy: actorID,
	})
	if requested == models.JobStatusDelivered {
		job.Archived = true
	}

	return Result{Job: job, Intents: e.intentsFor(job, previous, actorID, env)}, nil
}

// intentsFor computes the notification fan-out of an applied transition.
// The actor never receives an intent, and no user receives two for the same
// transition.
func (e Engine) intentsFor(job models.Job, previous models.JobStatus, actorID uint, env Environment) []NotificationIntent {
	var intents []NotificationIntent
	notified := map[uint]bool{actorID: true}

	jobID := job.ID
	add := func(userID uint, title, message string, typ models.NotificationType) {
		if notified[userID] {
			return
		}
		notified[userID] = true
		intents = append(intents, NotificationIntent{
			UserID:       userID,
			Title:        title,
			Message:      message,
			RelatedJobID: &jobID,
			Type:         typ,
		})
	}

	if job.Status == models.JobStatusCompleted {
		for _, dep := range UnlockDependents(job.ID, env.Dependents) {
			if dep.AssignedTo == nil {
				continue
			}
			add(*dep.AssignedTo, TitleJobReadyToStart,
				fmt.Sprintf("%q is done, so %q is ready to start.", job.Title, dep.Title),
				models.NotificationInfo)
		}
	}

	staffTitle := TitleJobStatusUpdate
	staffType := models.NotificationInfo
	if job.Status == models.JobStatusDelivered {
		staffTitle = TitleJobDelivered
		staffType = models.NotificationSuccess
	}
	staffMessage := fmt.Sprintf("%q moved from %s to %s.", job.Title, previous, job.Status)

	for _, u := range env.Staff {
		if !u.Active || (u.Role != models.RoleAdmin && u.Role != models.RoleReceptionist) {
			continue
		}
		add(u.ID, staffTitle, staffMessage, staffType)
	}

	// The assignee stays in the loop on changes they did not make themselves.
	if job.AssignedTo != nil {
		add(*job.AssignedTo, staffTitle, staffMessage, staffType)
	}

	return intents
}

// UnlockDependents returns the jobs directly depending on the given job.
// Single-hop only: a cycle in stored data can never make this loop, and the
// job itself is excluded.
func UnlockDependents(completedJobID uint, jobs []models.Job) []models.Job {
	var dependents []models.Job
	for _, j := range jobs {
		if j.ID == completedJobID {
			continue
		}
		if j.DependsOnJobID != nil && *j.DependsOnJobID == completedJobID {
			dependents = append(dependents, j)
		}
	}
	return dependents
}
