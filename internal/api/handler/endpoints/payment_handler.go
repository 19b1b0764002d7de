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

type paymentHandler struct {
	paymentService *service.PaymentService
	config         studio.AppConfig
	logger         zerolog.Logger
}

func newPaymentHandler() *paymentHandler {
	return &paymentHandler{
		paymentService: service.NewPaymentService(),
		config:         studio.GetConfig(),
		logger:         studio.Logger,
	}
}

func PaymentHandler(router *graceful.Graceful) {
	h := newPaymentHandler()

	routes := router.Group("/api/v1/payments")
	routes.Use(middleware.AuthMiddleware(h.config))
	routes.Use(middleware.RequireCapability(policy.ManagePayments))
	{
		routes.GET("", h.getAll)
		routes.GET("/:id", h.getByID)
		routes.GET("/client/:id", h.getByClient)
		routes.GET("/client/:id/total", h.totalByClient)
		routes.POST("", h.create)
		routes.POST("/:id/pay", h.markPaid)
		routes.POST("/:id/refund", h.refund)
	}
}

func (slf *paymentHandler) getAll(c *gin.Context) {
	payments, err := slf.paymentService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (slf *paymentHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	payment, err := slf.paymentService.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (slf *paymentHandler) getByClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	payments, err := slf.paymentService.FindByClient(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve payments"})
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (slf *paymentHandler) totalByClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	total, err := slf.paymentService.TotalPaidByClient(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to total payments"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientId": uint(id), "totalPaid": total})
}

func (slf *paymentHandler) create(c *gin.Context) {
	var req request.CreatePayment
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing create payment request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	payment, err := slf.paymentService.Create(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (slf *paymentHandler) markPaid(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	payment, err := slf.paymentService.MarkPaid(uint(id))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (slf *paymentHandler) refund(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	payment, err := slf.paymentService.Refund(uint(id))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, payment)
}
