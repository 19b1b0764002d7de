package repo

import (
	"studio"
	"studio/internal/api/models"

	"gorm.io/gorm"
)

type ClientRepository struct {
	Db *gorm.DB
}

func NewClientRepository() *ClientRepository {
	return &ClientRepository{Db: studio.DB}
}

func (slf *ClientRepository) FindByID(id uint) (models.Client, error) {
	var client models.Client
	err := slf.Db.First(&client, id).Error
	return client, err
}

func (slf *ClientRepository) FindByEmail(email string) (models.Client, error) {
	var client models.Client
	err := slf.Db.Where("email = ?", email).First(&client).Error
	return client, err
}

func (slf *ClientRepository) GetAll() ([]models.Client, error) {
	var clients []models.Client
	err := slf.Db.Order("name").Find(&clients).Error
	return clients, err
}

func (slf *ClientRepository) Create(client *models.Client) error {
	return slf.Db.Create(client).Error
}

func (slf *ClientRepository) Update(client *models.Client) error {
	return slf.Db.Save(client).Error
}

func (slf *ClientRepository) Delete(id uint) error {
	return slf.Db.Delete(&models.Client{}, id).Error
}

func (slf *ClientRepository) SearchByQuery(query string) ([]models.Client, error) {
	var clients []models.Client
	pattern := "%" + query + "%"
	err := slf.Db.Where("name ILIKE ? OR email ILIKE ? OR company ILIKE ?", pattern, pattern, pattern).
		Limit(20).
		Find(&clients).Error
	return clients, err
}
