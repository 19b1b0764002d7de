package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"studio"
	"studio/internal/api/handler/mapper"
	"studio/internal/api/handler/middleware"
	"studio/internal/api/handler/request"
	"studio/internal/api/handler/response"
	"studio/internal/api/models"
	"studio/internal/api/policy"
	"studio/internal/api/service"
	"studio/internal/api/workflow"
	"studio/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type jobHandler struct {
	jobService *service.JobService
	jobMapper  mapper.JobMapper
	config     studio.AppConfig
	logger     zerolog.Logger
}

func newJobHandler(jobService *service.JobService) *jobHandler {
	return &jobHandler{
		jobService: jobService,
		jobMapper:  mapper.NewJobMapper(),
		config:     studio.GetConfig(),
		logger:     studio.Logger,
	}
}

func JobHandler(router *graceful.Graceful, jobService *service.JobService) {
	h := newJobHandler(jobService)

	view := router.Group("/api/v1/jobs")
	view.Use(middleware.AuthMiddleware(h.config))
	view.Use(middleware.RequireCapability(policy.ViewJobs))
	{
		view.GET("", h.getAll)
		view.GET("/:id", h.getByID)
		view.GET("/:id/dependents", h.dependents)
		// Transitions are gated on view_jobs so production staff can advance
		// their own jobs; the service checks the actor is the assignee or a
		// job manager.
		view.POST("/:id/transition", h.transition)
	}

	manage := router.Group("/api/v1/jobs")
	manage.Use(middleware.AuthMiddleware(h.config))
	manage.Use(middleware.RequireCapability(policy.ManageJobs))
	{
		manage.POST("", h.create)
		manage.PATCH("/:id", h.update)
	}
}

// getAll lists the jobs the caller may see. Production roles only get their
// assigned jobs; everyone else with view_jobs gets all of them.
func (slf *jobHandler) getAll(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	role, ok := pkg.GetUserRole(c)
	if !ok {
		return
	}
	email, ok := pkg.GetUserEmail(c)
	if !ok {
		return
	}

	jobs, err := slf.jobService.FindAllForUser(userID, models.AppRole(role), email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (slf *jobHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	job, err := slf.jobService.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

// dependents previews which jobs a completion of this one would unlock.
func (slf *jobHandler) dependents(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	jobs, err := slf.jobService.Dependents(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve dependent jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (slf *jobHandler) create(c *gin.Context) {
	var req request.CreateJob
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing create job request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	job := slf.jobMapper.CreateJob(req)
	created, err := slf.jobService.Create(job)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (slf *jobHandler) update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	var req request.UpdateJob
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing update job request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	job, err := slf.jobService.Update(uint(id), slf.jobMapper.PatchJob(req))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, job)
}

// transition applies one status change. Illegal moves come back as 409 with
// the offending pair; the job is left untouched in that case. Actors who are
// neither the assignee nor job managers get 403.
func (slf *jobHandler) transition(c *gin.Context) {
	userID, ok := pkg.GetUserID(c)
	if !ok {
		return
	}
	role, ok := pkg.GetUserRole(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	var req request.TransitionJob
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing transition request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	outcome, err := slf.jobService.Transition(uint(id), models.JobStatus(req.Status), userID, models.AppRole(role))
	if err != nil {
		var invalid *workflow.InvalidTransitionError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusConflict, response.APIError{Message: invalid.Error()})
			return
		}
		if errors.Is(err, service.ErrTransitionForbidden) {
			c.JSON(http.StatusForbidden, response.APIError{Message: err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	c.JSON(http.StatusOK, response.TransitionResult{
		Job:           outcome.Job,
		Notifications: len(outcome.Notifications),
	})
}
