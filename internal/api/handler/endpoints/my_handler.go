package endpoints

import (
	"net/http"

	"studio"
	"studio/internal/api/handler/middleware"
	"studio/internal/api/handler/response"
	"studio/internal/api/service"
	"studio/pkg"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type myHandler struct {
	jobService      *service.JobService
	paymentService  *service.PaymentService
	clientService   *service.ClientService
	contractService *service.ContractService
	config          studio.AppConfig
	logger          zerolog.Logger
}

func newMyHandler(jobService *service.JobService) *myHandler {
	return &myHandler{
		jobService:      jobService,
		paymentService:  service.NewPaymentService(),
		clientService:   service.NewClientService(),
		contractService: service.NewContractService(),
		config:          studio.GetConfig(),
		logger:          studio.Logger,
	}
}

// MyHandler registers the client portal. Client-role users have no staff
// capabilities; everything here is scoped to the client record whose email
// matches the session email.
func MyHandler(router *graceful.Graceful, jobService *service.JobService) {
	h := newMyHandler(jobService)

	routes := router.Group("/api/v1/my")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("/jobs", h.jobs)
		routes.GET("/payments", h.payments)
		routes.GET("/contracts", h.contracts)
	}
}

func (slf *myHandler) jobs(c *gin.Context) {
	email, ok := pkg.GetUserEmail(c)
	if !ok {
		return
	}

	jobs, err := slf.jobService.FindByClientEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve jobs"})
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (slf *myHandler) payments(c *gin.Context) {
	email, ok := pkg.GetUserEmail(c)
	if !ok {
		return
	}

	payments, err := slf.paymentService.FindByClientEmail(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (slf *myHandler) contracts(c *gin.Context) {
	email, ok := pkg.GetUserEmail(c)
	if !ok {
		return
	}

	client, err := slf.clientService.FindForEmail(email)
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	contracts, err := slf.contractService.FindByClient(client.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve contracts"})
		return
	}
	c.JSON(http.StatusOK, contracts)
}
