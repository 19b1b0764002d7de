package service

import (
	"errors"

	"studio"
	"studio/internal/api/handler/request"
	"studio/internal/api/models"
	"studio/internal/api/repo"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PackageService struct {
	packageRepo *repo.PackageRepository
	logger      zerolog.Logger
}

func NewPackageService() *PackageService {
	return &PackageService{
		packageRepo: repo.NewPackageRepository(),
		logger:      studio.Logger,
	}
}

func (slf *PackageService) FindByID(id uint) (*models.Package, error) {
	pack, err := slf.packageRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("package not found")
		}
		slf.logger.Error().Err(err).Uint("packageId", id).Msg("Error getting package")
		return nil, err
	}
	return &pack, nil
}

func (slf *PackageService) GetAll(activeOnly bool) ([]models.Package, error) {
	packs, err := slf.packageRepo.GetAll(activeOnly)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing packages")
		return nil, err
	}
	return packs, nil
}

func (slf *PackageService) Create(dto request.CreatePackage) (*models.Package, error) {
	if dto.Price.LessThan(decimal.Zero) {
		return nil, errors.New("price cannot be negative")
	}

	pack := models.Package{
		Name:        dto.Name,
		Description: dto.Description,
		Price:       dto.Price,
		Services:    dto.Services,
		Active:      true,
	}
	if err := slf.packageRepo.Create(&pack); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating package")
		return nil, err
	}
	return &pack, nil
}

func (slf *PackageService) Update(id uint, dto request.UpdatePackage) (*models.Package, error) {
	pack, err := slf.packageRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("package not found")
		}
		return nil, err
	}

	if dto.Name != nil {
		pack.Name = *dto.Name
	}
	if dto.Description != nil {
		pack.Description = *dto.Description
	}
	if dto.Price != nil {
		if dto.Price.LessThan(decimal.Zero) {
			return nil, errors.New("price cannot be negative")
		}
		pack.Price = *dto.Price
	}
	if dto.Services != nil {
		pack.Services = *dto.Services
	}
	if dto.Active != nil {
		pack.Active = *dto.Active
	}

	if err := slf.packageRepo.Update(&pack); err != nil {
		slf.logger.Error().Err(err).Uint("packageId", id).Msg("Error updating package")
		return nil, err
	}
	return &pack, nil
}

func (slf *PackageService) Delete(id uint) error {
	if err := slf.packageRepo.Delete(id); err != nil {
		slf.logger.Error().Err(err).Uint("packageId", id).Msg("Error deleting package")
		return err
	}
	return nil
}
