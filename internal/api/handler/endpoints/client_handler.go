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

type clientHandler struct {
	clientService *service.ClientService
	config        studio.AppConfig
	logger        zerolog.Logger
}

func newClientHandler() *clientHandler {
	return &clientHandler{
		clientService: service.NewClientService(),
		config:        studio.GetConfig(),
		logger:        studio.Logger,
	}
}

func ClientHandler(router *graceful.Graceful) {
	h := newClientHandler()

	routes := router.Group("/api/v1/clients")
	routes.Use(middleware.AuthMiddleware(h.config))
	routes.Use(middleware.RequireCapability(policy.ManageClients))
	{
		routes.GET("", h.getAll)
		routes.GET("/search", h.search)
		routes.GET("/:id", h.getByID)
		routes.POST("", h.create)
		routes.PATCH("/:id", h.update)
		routes.DELETE("/:id", h.delete)
	}
}

func (slf *clientHandler) getAll(c *gin.Context) {
	clients, err := slf.clientService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (slf *clientHandler) search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Query parameter 'q' is required"})
		return
	}

	clients, err := slf.clientService.SearchClients(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to search clients"})
		return
	}
	c.JSON(http.StatusOK, clients)
}

func (slf *clientHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	client, err := slf.clientService.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (slf *clientHandler) create(c *gin.Context) {
	var req request.CreateClient
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing create client request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	client, err := slf.clientService.Create(req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create client"})
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (slf *clientHandler) update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	var req request.UpdateClient
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing update client request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	client, err := slf.clientService.Update(uint(id), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, client)
}

func (slf *clientHandler) delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	if err := slf.clientService.Delete(uint(id)); err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to delete client"})
		return
	}
	c.Status(http.StatusNoContent)
}
