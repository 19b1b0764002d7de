package mapper

import (
	"studio/internal/api/handler/request"
	"studio/internal/api/models"
)

// ClientMapper handles client-related mappings
type ClientMapper struct{}

func (ClientMapper) CreateClient(req request.CreateClient) models.Client {
	return models.Client{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		Notes:   req.Notes,
	}
}

func (ClientMapper) DtoToUpdate(req request.UpdateClient, client *models.Client) {
	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Email != nil {
		client.Email = *req.Email
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Company != nil {
		client.Company = *req.Company
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
}
