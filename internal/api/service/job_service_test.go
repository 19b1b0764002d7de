package service

import (
	"fmt"
	"testing"
	"time"

	"studio"
	"studio/internal/api/models"
	"studio/internal/api/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupJobTestDB(t *testing.T) {
	studio.InitConfig("../../../.env.test")

	err := studio.DB.AutoMigrate(
		&models.User{},
		&models.Client{},
		&models.Job{},
		&models.Notification{},
	)
	require.NoError(t, err, "Failed to migrate job tables")
}

func createTestClient(t *testing.T) models.Client {
	client := models.Client{
		Name:  "Test Client",
		Email: fmt.Sprintf("client-%d@example.com", time.Now().UnixNano()),
	}
	require.NoError(t, studio.DB.Create(&client).Error)
	return client
}

func createTestUser(t *testing.T, role models.AppRole) models.User {
	user := models.User{
		Email:     fmt.Sprintf("staff-%d@example.com", time.Now().UnixNano()),
		Password:  "irrelevant",
		FirstName: "Test",
		LastName:  "Staff",
		Role:      role,
		Active:    true,
	}
	require.NoError(t, studio.DB.Create(&user).Error)
	return user
}

func cleanupJob(t *testing.T, jobID uint) {
	studio.DB.Unscoped().Where("related_job_id = ?", jobID).Delete(&models.Notification{})
	studio.DB.Unscoped().Delete(&models.Job{}, jobID)
}

func cleanupClient(t *testing.T, id uint) {
	studio.DB.Unscoped().Delete(&models.Client{}, id)
}

func TestJob_Create_AlwaysPending(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)

	job := models.Job{
		Title:    "Wedding shoot",
		Type:     models.JobTypePhotoSession,
		Status:   models.JobStatusDelivered, // must be ignored
		ClientID: client.ID,
	}

	created, err := service.Create(job)
	require.NoError(t, err, "Failed to create job")
	defer cleanupJob(t, created.ID)

	assert.Equal(t, models.JobStatusPending, created.Status)
	assert.False(t, created.Archived)
	assert.Empty(t, created.WorkflowHistory)
}

func TestJob_Create_MissingPrerequisite(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)

	missing := uint(99999999)
	job := models.Job{
		Title:          "Album design",
		Type:           models.JobTypeDesign,
		ClientID:       client.ID,
		DependsOnJobID: &missing,
	}

	_, err := service.Create(job)
	require.Error(t, err, "Should reject unknown prerequisite")
	assert.Equal(t, "prerequisite job not found", err.Error())
}

func TestJob_Transition_PersistsStatusAndHistory(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)
	actor := createTestUser(t, models.RoleManager)
	defer cleanupUser(t, actor.ID)

	created, err := service.Create(models.Job{
		Title:    "Product shoot",
		Type:     models.JobTypePhotoSession,
		ClientID: client.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	outcome, err := service.Transition(created.ID, models.JobStatusInProgress, actor.ID, actor.Role)
	require.NoError(t, err, "Failed to transition job")
	assert.Equal(t, models.JobStatusInProgress, outcome.Job.Status)

	// Re-read from the database: the transition must be persisted, not just
	// returned.
	stored, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInProgress, stored.Status)
	require.Len(t, stored.WorkflowHistory, 1)
	assert.Equal(t, models.JobStatusPending, stored.WorkflowHistory[0].PreviousStage)
	assert.Equal(t, models.JobStatusInProgress, stored.WorkflowHistory[0].NewStage)
	assert.Equal(t, actor.ID, stored.WorkflowHistory[0].TransitionedBy)
}

func TestJob_Transition_IllegalLeavesJobUntouched(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)
	actor := createTestUser(t, models.RoleManager)
	defer cleanupUser(t, actor.ID)

	created, err := service.Create(models.Job{
		Title:    "Promo video",
		Type:     models.JobTypeVideoEditing,
		ClientID: client.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	_, err = service.Transition(created.ID, models.JobStatusReview, actor.ID, actor.Role)
	require.Error(t, err, "Skipping in_progress should be rejected")
	assert.ErrorAs(t, err, new(*workflow.InvalidTransitionError))

	stored, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, stored.Status)
	assert.Empty(t, stored.WorkflowHistory)

	var count int64
	studio.DB.Model(&models.Notification{}).Where("related_job_id = ?", created.ID).Count(&count)
	assert.Zero(t, count, "Failed transition must not store notifications")
}

func TestJob_Transition_NotifiesAssignee(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)
	actor := createTestUser(t, models.RoleManager)
	defer cleanupUser(t, actor.ID)
	assignee := createTestUser(t, models.RolePhotographer)
	defer cleanupUser(t, assignee.ID)

	created, err := service.Create(models.Job{
		Title:      "Portrait session",
		Type:       models.JobTypePhotoSession,
		ClientID:   client.ID,
		AssignedTo: &assignee.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	outcome, err := service.Transition(created.ID, models.JobStatusInProgress, actor.ID, actor.Role)
	require.NoError(t, err)
	assert.NotEmpty(t, outcome.Notifications)

	var stored []models.Notification
	err = studio.DB.Where("related_job_id = ? AND user_id = ?", created.ID, assignee.ID).Find(&stored).Error
	require.NoError(t, err)
	require.Len(t, stored, 1, "Assignee should get exactly one notification")
	assert.Equal(t, workflow.TitleJobStatusUpdate, stored[0].Title)
	assert.False(t, stored[0].Read)
}

func TestJob_Transition_CompletedUnlocksDependent(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)
	actor := createTestUser(t, models.RoleManager)
	defer cleanupUser(t, actor.ID)
	editor := createTestUser(t, models.RoleEditor)
	defer cleanupUser(t, editor.ID)

	shoot, err := service.Create(models.Job{
		Title:    "Event shoot",
		Type:     models.JobTypePhotoSession,
		ClientID: client.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, shoot.ID)

	edit, err := service.Create(models.Job{
		Title:          "Event edit",
		Type:           models.JobTypeVideoEditing,
		ClientID:       client.ID,
		AssignedTo:     &editor.ID,
		DependsOnJobID: &shoot.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, edit.ID)

	// Walk the shoot to completed.
	for _, next := range []models.JobStatus{
		models.JobStatusInProgress,
		models.JobStatusReview,
		models.JobStatusCompleted,
	} {
		_, err = service.Transition(shoot.ID, next, actor.ID, actor.Role)
		require.NoError(t, err)
	}

	var stored []models.Notification
	err = studio.DB.Where("related_job_id = ? AND user_id = ? AND title = ?",
		shoot.ID, editor.ID, workflow.TitleJobReadyToStart).Find(&stored).Error
	require.NoError(t, err)
	require.Len(t, stored, 1, "Dependent assignee should get one ready-to-start notification")
	assert.Contains(t, stored[0].Message, "Event edit")
}

func TestJob_Transition_DeliveredArchives(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)
	actor := createTestUser(t, models.RoleManager)
	defer cleanupUser(t, actor.ID)

	created, err := service.Create(models.Job{
		Title:    "Brand design",
		Type:     models.JobTypeDesign,
		ClientID: client.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	for _, next := range []models.JobStatus{
		models.JobStatusInProgress,
		models.JobStatusReview,
		models.JobStatusCompleted,
		models.JobStatusDelivered,
	} {
		_, err = service.Transition(created.ID, next, actor.ID, actor.Role)
		require.NoError(t, err)
	}

	stored, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusDelivered, stored.Status)
	assert.True(t, stored.Archived)
	assert.Len(t, stored.WorkflowHistory, 4)
}

func TestJob_Transition_NoOpKeepsHistoryEmpty(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)
	actor := createTestUser(t, models.RoleManager)
	defer cleanupUser(t, actor.ID)

	created, err := service.Create(models.Job{
		Title:    "Retainer shoot",
		Type:     models.JobTypePhotoSession,
		ClientID: client.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	outcome, err := service.Transition(created.ID, models.JobStatusPending, actor.ID, actor.Role)
	require.NoError(t, err, "Re-requesting the current status is a no-op")
	assert.Empty(t, outcome.Notifications)

	stored, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, stored.Status)
	assert.Empty(t, stored.WorkflowHistory)
}

func TestJob_Transition_AssigneeCanAdvanceOwnJob(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)
	photographer := createTestUser(t, models.RolePhotographer)
	defer cleanupUser(t, photographer.ID)

	created, err := service.Create(models.Job{
		Title:      "Family shoot",
		Type:       models.JobTypePhotoSession,
		ClientID:   client.ID,
		AssignedTo: &photographer.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	// The assignee holds no manage_jobs but can still advance their own job.
	outcome, err := service.Transition(created.ID, models.JobStatusInProgress, photographer.ID, photographer.Role)
	require.NoError(t, err, "Assignee should be able to transition their own job")
	assert.Equal(t, models.JobStatusInProgress, outcome.Job.Status)

	stored, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusInProgress, stored.Status)
	require.Len(t, stored.WorkflowHistory, 1)
	assert.Equal(t, photographer.ID, stored.WorkflowHistory[0].TransitionedBy)
}

func TestJob_Transition_NonAssigneeProductionForbidden(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)
	assignee := createTestUser(t, models.RolePhotographer)
	defer cleanupUser(t, assignee.ID)
	other := createTestUser(t, models.RoleDesigner)
	defer cleanupUser(t, other.ID)

	created, err := service.Create(models.Job{
		Title:      "Studio shoot",
		Type:       models.JobTypePhotoSession,
		ClientID:   client.ID,
		AssignedTo: &assignee.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	_, err = service.Transition(created.ID, models.JobStatusInProgress, other.ID, other.Role)
	require.Error(t, err, "Production staff must not transition jobs of others")
	assert.ErrorIs(t, err, ErrTransitionForbidden)

	stored, err := service.FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, stored.Status)
	assert.Empty(t, stored.WorkflowHistory)
}

func TestJob_Transition_UnassignedJobNeedsManager(t *testing.T) {
	setupJobTestDB(t)

	service := NewJobService(nil)
	client := createTestClient(t)
	defer cleanupClient(t, client.ID)
	editor := createTestUser(t, models.RoleEditor)
	defer cleanupUser(t, editor.ID)

	created, err := service.Create(models.Job{
		Title:    "Unassigned edit",
		Type:     models.JobTypeVideoEditing,
		ClientID: client.ID,
	})
	require.NoError(t, err)
	defer cleanupJob(t, created.ID)

	_, err = service.Transition(created.ID, models.JobStatusInProgress, editor.ID, editor.Role)
	require.Error(t, err, "Unassigned jobs are manager-only")
	assert.ErrorIs(t, err, ErrTransitionForbidden)
}
