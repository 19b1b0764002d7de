package service

import (
	"errors"

	"studio"
	"studio/internal/api/handler/mapper"
	"studio/internal/api/handler/request"
	"studio/internal/api/models"
	"studio/internal/api/repo"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ClientService struct {
	clientRepo   *repo.ClientRepository
	logger       zerolog.Logger
	clientMapper mapper.ClientMapper
}

func NewClientService() *ClientService {
	return &ClientService{
		clientRepo: repo.NewClientRepository(),
		logger:     studio.Logger,
	}
}

func (slf *ClientService) FindByID(id uint) (*models.Client, error) {
	client, err := slf.clientRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		slf.logger.Error().Err(err).Uint("clientId", id).Msg("Error getting client")
		return nil, err
	}
	return &client, nil
}

// FindForEmail resolves the client record of an authenticated client-role
// user: the record whose email equals the session email.
func (slf *ClientService) FindForEmail(email string) (*models.Client, error) {
	client, err := slf.clientRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		slf.logger.Error().Err(err).Str("email", email).Msg("Error getting client by email")
		return nil, err
	}
	return &client, nil
}

func (slf *ClientService) GetAll() ([]models.Client, error) {
	clients, err := slf.clientRepo.GetAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing clients")
		return nil, err
	}
	return clients, nil
}

func (slf *ClientService) Create(dto request.CreateClient) (*models.Client, error) {
	client := slf.clientMapper.CreateClient(dto)
	if err := slf.clientRepo.Create(&client); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating client")
		return nil, err
	}
	return &client, nil
}

func (slf *ClientService) Update(id uint, dto request.UpdateClient) (*models.Client, error) {
	client, err := slf.clientRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, err
	}

	slf.clientMapper.DtoToUpdate(dto, &client)
	if err := slf.clientRepo.Update(&client); err != nil {
		slf.logger.Error().Err(err).Uint("clientId", id).Msg("Error updating client")
		return nil, err
	}
	return &client, nil
}

func (slf *ClientService) Delete(id uint) error {
	if err := slf.clientRepo.Delete(id); err != nil {
		slf.logger.Error().Err(err).Uint("clientId", id).Msg("Error deleting client")
		return err
	}
	return nil
}

func (slf *ClientService) SearchClients(query string) ([]models.Client, error) {
	clients, err := slf.clientRepo.SearchByQuery(query)
	if err != nil {
		slf.logger.Error().Err(err).Str("query", query).Msg("Error searching clients")
		return nil, err
	}
	return clients, nil
}
