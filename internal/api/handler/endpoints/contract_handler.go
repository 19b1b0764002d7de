package endpoints

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
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

// 20 MiB, enough for signed PDF scans.
const maxContractUpload = 20 << 20

type contractHandler struct {
	contractService *service.ContractService
	config          studio.AppConfig
	logger          zerolog.Logger
}

func newContractHandler() *contractHandler {
	return &contractHandler{
		contractService: service.NewContractService(),
		config:          studio.GetConfig(),
		logger:          studio.Logger,
	}
}

func ContractHandler(router *graceful.Graceful) {
	h := newContractHandler()

	manage := router.Group("/api/v1/contracts")
	manage.Use(middleware.AuthMiddleware(h.config))
	manage.Use(middleware.RequireCapability(policy.ManageClients))
	{
		manage.GET("", h.getAll)
		manage.GET("/:id", h.getByID)
		manage.GET("/client/:id", h.getByClient)
		manage.POST("", h.create)
		manage.POST("/:id/document", h.uploadDocument)
		manage.POST("/:id/sign", h.markSigned)
	}

	files := router.Group("/api/v1/contracts")
	files.Use(middleware.AuthMiddleware(h.config))
	files.Use(middleware.RequireCapability(policy.ViewFiles))
	{
		files.GET("/:id/document", h.downloadDocument)
	}
}

func (slf *contractHandler) getAll(c *gin.Context) {
	contracts, err := slf.contractService.GetAll()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve contracts"})
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (slf *contractHandler) getByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	contract, err := slf.contractService.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (slf *contractHandler) getByClient(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	contracts, err := slf.contractService.FindByClient(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve contracts"})
		return
	}
	c.JSON(http.StatusOK, contracts)
}

func (slf *contractHandler) create(c *gin.Context) {
	var req request.CreateContract
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Error parsing create contract request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	contract, err := slf.contractService.Create(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusCreated, contract)
}

func (slf *contractHandler) uploadDocument(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Multipart field 'file' is required"})
		return
	}
	if fileHeader.Size > maxContractUpload {
		c.JSON(http.StatusRequestEntityTooLarge, response.APIError{Message: "File too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Failed to read uploaded file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Failed to read uploaded file"})
		return
	}

	contract, err := slf.contractService.UploadDocument(uint(id), fileHeader.Filename, data)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, contract)
}

func (slf *contractHandler) downloadDocument(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	contract, err := slf.contractService.FindByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	data, err := slf.contractService.Document(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
		return
	}

	filename := filepath.Base(contract.FilePath)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/octet-stream", data)
}

func (slf *contractHandler) markSigned(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: "Invalid ID"})
		return
	}

	contract, err := slf.contractService.MarkSigned(uint(id))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, contract)
}
