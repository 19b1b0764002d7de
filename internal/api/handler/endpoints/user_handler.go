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

type userHandler struct {
	userService *service.UserService
	config      studio.AppConfig
	logger      zerolog.Logger
}

func newUserHandler() *userHandler {
	return &userHandler{
		userService: service.NewUserService(),
		config:      studio.GetConfig(),
		logger:      studio.Logger,
	}
}

func UserHandler(router *graceful.Graceful) {
	h := newUserHandler()

	routes := router.Group("/api/v1/users")
	routes.Use(middleware.AuthMiddleware(h.config))
	routes.Use(middleware.RequireCapability(policy.ManageUsers))
	{
		routes.GET("", h.getAll)
		routes.GET("/search", h.search)
		routes.GET("/:id", h.getByID)
		routes.POST("", h.create)
		routes.PATCH("/:id", h.update)
		routes.DELETE("/:id", h.delete)
	}
}

func (slf *userHandler) getAll(c *gin.Context) {
	users, err := slf.userService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (slf *userHandler) search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Query parameter 'q' is required"})
		return
	}

	users, err := slf.userService.SearchUsers(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to search users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (slf *userHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	user, err := slf.userService.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (slf *userHandler) create(c *gin.Context) {
	var req request.CreateUser
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing create user request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	user, err := slf.userService.Create(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (slf *userHandler) update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	var req request.UpdateUser
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing update user request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	user, err := slf.userService.Update(uint(id), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (slf *userHandler) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	if err := slf.userService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to delete user"})
		return
	}
	c.Status(http.StatusNoContent)
}
