package repo

import (
	"studio"
	"studio/internal/api/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	Db *gorm.DB
}

func NewPaymentRepository() *PaymentRepository {
	return &PaymentRepository{Db: studio.DB}
}

func (slf *PaymentRepository) FindByID(id uint) (models.Payment, error) {
	var payment models.Payment
	err := slf.Db.Preload("Client").First(&payment, id).Error
	return payment, err
}

func (slf *PaymentRepository) GetAll() ([]models.Payment, error) {
	var payments []models.Payment
	err := slf.Db.Preload("Client").Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (slf *PaymentRepository) FindByClient(clientID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := slf.Db.Where("client_id = ?", clientID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (slf *PaymentRepository) FindByClientEmail(email string) ([]models.Payment, error) {
	var payments []models.Payment
	err := slf.Db.Joins("JOIN clients ON clients.id = payments.client_id").
		Where("clients.email = ?", email).
		Order("payments.created_at DESC").
		Find(&payments).Error
	return payments, err
}

func (slf *PaymentRepository) Create(payment *models.Payment) error {
	return slf.Db.Create(payment).Error
}

func (slf *PaymentRepository) Update(payment *models.Payment) error {
	return slf.Db.Save(payment).Error
}

// SumPaidByClient totals the paid payments of one client.
func (slf *PaymentRepository) SumPaidByClient(clientID uint) (decimal.Decimal, error) {
	var raw struct {
		Total decimal.Decimal
	}
	err := slf.Db.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("client_id = ? AND status = ?", clientID, models.PaymentStatusPaid).
		Scan(&raw).Error
	return raw.Total, err
}
