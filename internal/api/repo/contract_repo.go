package repo

import (
	"studio"
	"studio/internal/api/models"

	"gorm.io/gorm"
)

type ContractRepository struct {
	Db *gorm.DB
}

func NewContractRepository() *ContractRepository {
	return &ContractRepository{Db: studio.DB}
}

func (slf *ContractRepository) FindByID(id uint) (models.Contract, error) {
	var contract models.Contract
	err := slf.Db.Preload("Client").First(&contract, id).Error
	return contract, err
}

func (slf *ContractRepository) GetAll() ([]models.Contract, error) {
	var contracts []models.Contract
	err := slf.Db.Preload("Client").Order("created_at DESC").Find(&contracts).Error
	return contracts, err
}

func (slf *ContractRepository) FindByClient(clientID uint) ([]models.Contract, error) {
	var contracts []models.Contract
	err := slf.Db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&contracts).Error
	return contracts, err
}

func (slf *ContractRepository) Create(contract *models.Contract) error {
	return slf.Db.Create(contract).Error
}

func (slf *ContractRepository) Update(contract *models.Contract) error {
	return slf.Db.Save(contract).Error
}
