package endpoints

import (
	"net/http"
	"strconv"

	"studio"
	"studio/internal/api/handler/middleware"
	"studio/internal/api/handler/request"
	"studio/internal/api/handler/response"
	"studio/internal/api/policy"
	"studio/internal/api/service"
	"studio/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type packageHandler struct {
	packageService *service.PackageService
	config         studio.AppConfig
	logger         zerolog.Logger
}

func newPackageHandler() *packageHandler {
	return &packageHandler{
		packageService: service.NewPackageService(),
		config:         studio.GetConfig(),
		logger:         studio.Logger,
	}
}

func PackageHandler(router *graceful.Graceful) {
	h := newPackageHandler()

	routes := router.Group("/api/v1/packages")
	routes.Use(middleware.AuthMiddleware(h.config))
	routes.Use(middleware.RequireCapability(policy.ManageJobs))
	{
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.POST("", h.create)
		routes.PATCH("/:id", h.update)
		routes.DELETE("/:id", h.delete)
	}
}

func (slf *packageHandler) getAll(c *gin.Context) {
	activeOnly := c.Query("active") == "true"
	packs, err := slf.packageService.GetAll(activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve packages"})
		return
	}
	c.JSON(http.StatusOK, packs)
}

func (slf *packageHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	pack, err := slf.packageService.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, pack)
}

func (slf *packageHandler) create(c *gin.Context) {
	var req request.CreatePackage
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing create package request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	pack, err := slf.packageService.Create(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pack)
}

func (slf *packageHandler) update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	var req request.UpdatePackage
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing update package request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	pack, err := slf.packageService.Update(uint(id), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, pack)
}

func (slf *packageHandler) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	if err := slf.packageService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to delete package"})
		return
	}
	c.Status(http.StatusNoContent)
}
