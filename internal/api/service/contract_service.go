package service

import (
	"errors"
	"time"

	"studio"
	"studio/internal/api/handler/request"
	"studio/internal/api/models"
	"studio/internal/api/repo"
	"studio/pkg"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ContractService struct {
	contractRepo *repo.ContractRepository
	clientRepo   *repo.ClientRepository
	config       studio.AppConfig
	logger       zerolog.Logger
}

func NewContractService() *ContractService {
	return &ContractService{
		contractRepo: repo.NewContractRepository(),
		clientRepo:   repo.NewClientRepository(),
		config:       studio.GetConfig(),
		logger:       studio.Logger,
	}
}

func (slf *ContractService) FindByID(id uint) (*models.Contract, error) {
	contract, err := slf.contractRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contract not found")
		}
		slf.logger.Error().Err(err).Uint("contractId", id).Msg("Error getting contract")
		return nil, err
	}
	return &contract, nil
}

func (slf *ContractService) GetAll() ([]models.Contract, error) {
	contracts, err := slf.contractRepo.GetAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing contracts")
		return nil, err
	}
	return contracts, nil
}

func (slf *ContractService) FindByClient(clientID uint) ([]models.Contract, error) {
	contracts, err := slf.contractRepo.FindByClient(clientID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("clientId", clientID).Msg("Error listing client contracts")
		return nil, err
	}
	return contracts, nil
}

func (slf *ContractService) Create(dto request.CreateContract) (*models.Contract, error) {
	if _, err := slf.clientRepo.FindByID(dto.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, err
	}

	contract := models.Contract{
		ClientID:  dto.ClientID,
		PackageID: dto.PackageID,
		Title:     dto.Title,
	}
	if err := slf.contractRepo.Create(&contract); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating contract")
		return nil, err
	}
	return &contract, nil
}

// UploadDocument stores the contract file in the blob store and records its
// path on the contract.
func (slf *ContractService) UploadDocument(id uint, originalName string, data []byte) (*models.Contract, error) {
	contract, err := slf.contractRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contract not found")
		}
		return nil, err
	}

	path, err := pkg.StoreFile(slf.config.StorageRoot, originalName, data)
	if err != nil {
		slf.logger.Error().Err(err).Uint("contractId", id).Msg("Error storing contract document")
		return nil, err
	}

	contract.FilePath = path
	if err := slf.contractRepo.Update(&contract); err != nil {
		slf.logger.Error().Err(err).Uint("contractId", id).Msg("Error updating contract")
		return nil, err
	}

	slf.logger.Info().Uint("contractId", id).Str("path", path).Msg("Contract document uploaded")
	return &contract, nil
}

// Document returns the stored contract file contents.
func (slf *ContractService) Document(id uint) ([]byte, error) {
	contract, err := slf.contractRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contract not found")
		}
		return nil, err
	}
	if contract.FilePath == "" {
		return nil, errors.New("contract has no document")
	}

	data, err := pkg.ReadFile(slf.config.StorageRoot, contract.FilePath)
	if err != nil {
		slf.logger.Error().Err(err).Uint("contractId", id).Msg("Error reading contract document")
		return nil, err
	}
	return data, nil
}

func (slf *ContractService) MarkSigned(id uint) (*models.Contract, error) {
	contract, err := slf.contractRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("contract not found")
		}
		return nil, err
	}
	if contract.Signed {
		return &contract, nil
	}

	now := time.Now()
	contract.Signed = true
	contract.SignedAt = &now
	if err := slf.contractRepo.Update(&contract); err != nil {
		slf.logger.Error().Err(err).Uint("contractId", id).Msg("Error marking contract signed")
		return nil, err
	}
	return &contract, nil
}
