package mapper

import (
	"studio/internal/api/handler/request"
	"studio/internal/api/handler/response"
	"studio/internal/api/models"
)

// UserMapper handles user-related mappings
type UserMapper struct{}

func (UserMapper) EntityToUserResponse(user models.User) response.UserResponseDTO {
	return response.UserResponseDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		Active:    user.Active,
	}
}

func (m UserMapper) EntitiesToUserResponses(users []models.User) []response.UserResponseDTO {
	out := make([]response.UserResponseDTO, len(users))
	for i, u := range users {
		out[i] = m.EntityToUserResponse(u)
	}
	return out
}

func (UserMapper) DtoToUpdate(req request.UpdateUser, user *models.User) {
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Role != nil {
		user.Role = models.AppRole(*req.Role)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
}
