package repo

import (
	"studio"
	"studio/internal/api/models"

	"gorm.io/gorm"
)

type PackageRepository struct {
	Db *gorm.DB
}

func NewPackageRepository() *PackageRepository {
	return &PackageRepository{Db: studio.DB}
}

func (slf *PackageRepository) FindByID(id uint) (models.Package, error) {
	var pack models.Package
	err := slf.Db.First(&pack, id).Error
	return pack, err
}

func (slf *PackageRepository) GetAll(activeOnly bool) ([]models.Package, error) {
	var packs []models.Package
	q := slf.Db.Order("name")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	err := q.Find(&packs).Error
	return packs, err
}

func (slf *PackageRepository) Create(pack *models.Package) error {
	return slf.Db.Create(pack).Error
}

func (slf *PackageRepository) Update(pack *models.Package) error {
	return slf.Db.Save(pack).Error
}

func (slf *PackageRepository) Delete(id uint) error {
	return slf.Db.Delete(&models.Package{}, id).Error
}
