package workflow

import (
	"testing"
	"time"

	"studio/internal/api/models"
	"studio/pkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func newTestEngine() Engine {
	return Engine{Now: func() time.Time { return testClock }}
}

func staffUser(id uint, role models.AppRole, active bool) models.User {
	return models.User{ID: id, Role: role, Active: active}
}

func TestTransition_LegalForwardEdges(t *testing.T) {
	engine := newTestEngine()

	edges := []struct {
		from models.JobStatus
		to   models.JobStatus
	}{
		{models.JobStatusPending, models.JobStatusInProgress},
		{models.JobStatusInProgress, models.JobStatusReview},
		{models.JobStatusReview, models.JobStatusCompleted},
		{models.JobStatusCompleted, models.JobStatusDelivered},
	}

	for _, edge := range edges {
		job := models.Job{ID: 1, Title: "Wedding shoot", Status: edge.from}
		res, err := engine.Transition(job, edge.to, 99, Environment{})
		require.NoError(t, err, "%s -> %s should be legal", edge.from, edge.to)
		assert.Equal(t, edge.to, res.Job.Status)
		assert.Equal(t, testClock, res.Job.UpdatedAt)

		require.Len(t, res.Job.WorkflowHistory, 1)
		entry := res.Job.WorkflowHistory[0]
		assert.Equal(t, edge.from, entry.PreviousStage)
		assert.Equal(t, edge.to, entry.NewStage)
		assert.Equal(t, uint(99), entry.TransitionedBy)
		assert.Equal(t, testClock, entry.TransitionedAt)
	}
}

func TestTransition_IllegalEdgesRejected(t *testing.T) {
	engine := newTestEngine()
	statuses := []models.JobStatus{
		models.JobStatusPending, models.JobStatusInProgress,
		models.JobStatusReview, models.JobStatusCompleted,
		models.JobStatusDelivered,
	}

	for _, from := range statuses {
		for _, to := range statuses {
			if from == to || forward[from] == to {
				continue
			}
			job := models.Job{ID: 1, Status: from}
			_, err := engine.Transition(job, to, 1, Environment{})
			require.Error(t, err, "%s -> %s must be rejected", from, to)

			var invalid *InvalidTransitionError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, from, invalid.From)
			assert.Equal(t, to, invalid.To)
			// input snapshot untouched
			assert.Equal(t, from, job.Status)
			assert.Empty(t, job.WorkflowHistory)
		}
	}
}

func TestTransition_FailureIsIdempotent(t *testing.T) {
	engine := newTestEngine()
	job := models.Job{ID: 4, Status: models.JobStatusPending}

	_, err1 := engine.Transition(job, models.JobStatusCompleted, 1, Environment{})
	_, err2 := engine.Transition(job, models.JobStatusCompleted, 1, Environment{})

	require.Error(t, err1)
	require.Error(t, err2)
	assert.Equal(t, err1.Error(), err2.Error())
	assert.Equal(t, models.JobStatusPending, job.Status)
}

func TestTransition_UnknownStatusRejected(t *testing.T) {
	engine := newTestEngine()
	job := models.Job{ID: 1, Status: models.JobStatusPending}

	_, err := engine.Transition(job, "cancelled", 1, Environment{})
	var invalid *InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
}

func TestTransition_SameStatusIsNoop(t *testing.T) {
	engine := newTestEngine()
	job := models.Job{ID: 2, Title: "Album design", Status: models.JobStatusReview}

	res, err := engine.Transition(job, models.JobStatusReview, 7, Environment{
		Staff: []models.User{staffUser(1, models.RoleAdmin, true)},
	})
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusReview, res.Job.Status)
	assert.Equal(t, testClock, res.Job.UpdatedAt)
	assert.Empty(t, res.Job.WorkflowHistory, "no-op must not grow the history")
	assert.Empty(t, res.Intents, "no-op must not notify anyone")
}

func TestTransition_MonotonicWalkReachesDeliveredInFourSteps(t *testing.T) {
	engine := newTestEngine()
	job := models.Job{ID: 3, Title: "Corporate video", Status: models.JobStatusPending}

	steps := 0
	for job.Status != models.JobStatusDelivered {
		next := forward[job.Status]
		res, err := engine.Transition(job, next, 1, Environment{})
		require.NoError(t, err)
		job = res.Job
		steps++
		require.LessOrEqual(t, steps, 4, "pipeline must not exceed four transitions")
	}

	assert.Equal(t, 4, steps)
	assert.Len(t, job.WorkflowHistory, 4)
	assert.True(t, job.Archived, "delivered jobs are archived")
}

func TestTransition_CompletedNotifiesDependentAssignee(t *testing.T) {
	engine := newTestEngine()
	job := models.Job{ID: 10, Title: "Photo session", Status: models.JobStatusReview}

	env := Environment{
		Dependents: []models.Job{
			{ID: 11, Title: "Retouching", DependsOnJobID: pkg.ToPtr(uint(10)), AssignedTo: pkg.ToPtr(uint(42))},
			{ID: 12, Title: "Unassigned design", DependsOnJobID: pkg.ToPtr(uint(10))},
		},
		Staff: []models.User{
			staffUser(1, models.RoleAdmin, true),
			staffUser(2, models.RoleReceptionist, true),
		},
	}

	res, err := engine.Transition(job, models.JobStatusCompleted, 5, env)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, res.Job.Status)

	var ready, statusUpdates []NotificationIntent
	for _, in := range res.Intents {
		switch in.Title {
		case TitleJobReadyToStart:
			ready = append(ready, in)
		case TitleJobStatusUpdate:
			statusUpdates = append(statusUpdates, in)
		}
	}

	require.Len(t, ready, 1, "only the assigned dependent gets a ready intent")
	assert.Equal(t, uint(42), ready[0].UserID)
	require.NotNil(t, ready[0].RelatedJobID)
	assert.Equal(t, uint(10), *ready[0].RelatedJobID)

	require.Len(t, statusUpdates, 2)
	recipients := map[uint]bool{}
	for _, in := range statusUpdates {
		recipients[in.UserID] = true
	}
	assert.True(t, recipients[1])
	assert.True(t, recipients[2])
}

func TestTransition_DeliveredNotifiesEveryActiveStaffOnce(t *testing.T) {
	engine := newTestEngine()
	job := models.Job{ID: 20, Title: "Brand kit", Status: models.JobStatusCompleted}

	env := Environment{
		Staff: []models.User{
			staffUser(1, models.RoleAdmin, true),
			staffUser(2, models.RoleAdmin, true),
			staffUser(3, models.RoleReceptionist, true),
			staffUser(4, models.RoleReceptionist, false), // inactive, skipped
			staffUser(5, models.RolePhotographer, true),  // not an observer role
		},
	}

	res, err := engine.Transition(job, models.JobStatusDelivered, 99, env)
	require.NoError(t, err)

	require.Len(t, res.Intents, 3)
	seen := map[uint]bool{}
	for _, in := range res.Intents {
		assert.Equal(t, TitleJobDelivered, in.Title)
		assert.Equal(t, models.NotificationSuccess, in.Type)
		assert.False(t, seen[in.UserID], "duplicate intent for user %d", in.UserID)
		seen[in.UserID] = true
	}
}

func TestTransition_ActorNeverNotified(t *testing.T) {
	engine := newTestEngine()
	job := models.Job{ID: 21, Title: "Brand kit", Status: models.JobStatusCompleted, AssignedTo: pkg.ToPtr(uint(2))}

	env := Environment{
		Staff: []models.User{
			staffUser(1, models.RoleAdmin, true),
			staffUser(2, models.RoleAdmin, true),
		},
	}

	// Actor is admin 2, who is also the assignee.
	res, err := engine.Transition(job, models.JobStatusDelivered, 2, env)
	require.NoError(t, err)

	require.Len(t, res.Intents, 1)
	assert.Equal(t, uint(1), res.Intents[0].UserID)
}

func TestTransition_AssigneeNotifiedOnIntermediateSteps(t *testing.T) {
	engine := newTestEngine()
	job := models.Job{ID: 30, Title: "Studio shoot", Status: models.JobStatusPending, AssignedTo: pkg.ToPtr(uint(8))}

	res, err := engine.Transition(job, models.JobStatusInProgress, 1, Environment{})
	require.NoError(t, err)

	require.Len(t, res.Intents, 1)
	assert.Equal(t, uint(8), res.Intents[0].UserID)
	assert.Equal(t, TitleJobStatusUpdate, res.Intents[0].Title)
}

func TestUnlockDependents(t *testing.T) {
	jobs := []models.Job{
		{ID: 1},
		{ID: 2, DependsOnJobID: pkg.ToPtr(uint(1))},
		{ID: 3, DependsOnJobID: pkg.ToPtr(uint(1))},
		{ID: 4, DependsOnJobID: pkg.ToPtr(uint(2))},
		// self-reference in stored data must not surface
		{ID: 1, DependsOnJobID: pkg.ToPtr(uint(1))},
	}

	deps := UnlockDependents(1, jobs)
	require.Len(t, deps, 2)
	assert.Equal(t, uint(2), deps[0].ID)
	assert.Equal(t, uint(3), deps[1].ID)

	assert.Empty(t, UnlockDependents(99, jobs))
	assert.Empty(t, UnlockDependents(1, nil))
}
