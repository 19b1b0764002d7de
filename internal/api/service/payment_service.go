package service

import (
	"errors"
	"fmt"
	"time"

	"studio"
	"studio/internal/api/handler/request"
	"studio/internal/api/models"
	"studio/internal/api/repo"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentService struct {
	paymentRepo *repo.PaymentRepository
	logger      zerolog.Logger
}

func NewPaymentService() *PaymentService {
	return &PaymentService{
		paymentRepo: repo.NewPaymentRepository(),
		logger:      studio.Logger,
	}
}

func (slf *PaymentService) FindByID(id uint) (*models.Payment, error) {
	payment, err := slf.paymentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment not found")
		}
		slf.logger.Error().Err(err).Uint("paymentId", id).Msg("Error getting payment")
		return nil, err
	}
	return &payment, nil
}

func (slf *PaymentService) GetAll() ([]models.Payment, error) {
	payments, err := slf.paymentRepo.GetAll()
	if err != nil {
		slf.logger.Error().Err(err).Msg("Error listing payments")
		return nil, err
	}
	return payments, nil
}

func (slf *PaymentService) FindByClient(clientID uint) ([]models.Payment, error) {
	payments, err := slf.paymentRepo.FindByClient(clientID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("clientId", clientID).Msg("Error listing client payments")
		return nil, err
	}
	return payments, nil
}

func (slf *PaymentService) FindByClientEmail(email string) ([]models.Payment, error) {
	payments, err := slf.paymentRepo.FindByClientEmail(email)
	if err != nil {
		slf.logger.Error().Err(err).Str("email", email).Msg("Error listing payments for client email")
		return nil, err
	}
	return payments, nil
}

func (slf *PaymentService) Create(dto request.CreatePayment) (*models.Payment, error) {
	if dto.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, errors.New("amount must be positive")
	}

	payment := models.Payment{
		ClientID: dto.ClientID,
		JobID:    dto.JobID,
		Amount:   dto.Amount,
		Method:   models.PaymentMethod(dto.Method),
		Status:   models.PaymentStatusPending,
	}
	if err := slf.paymentRepo.Create(&payment); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating payment")
		return nil, err
	}
	return &payment, nil
}

// MarkPaid settles a pending payment, stamping paid_at and a receipt number.
func (slf *PaymentService) MarkPaid(id uint) (*models.Payment, error) {
	payment, err := slf.paymentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment not found")
		}
		return nil, err
	}
	if payment.Status == models.PaymentStatusPaid {
		return &payment, nil
	}
	if payment.Status == models.PaymentStatusRefunded {
		return nil, errors.New("payment was refunded")
	}

	now := time.Now()
	payment.Status = models.PaymentStatusPaid
	payment.PaidAt = &now
	payment.ReceiptNumber = fmt.Sprintf("RCP-%s", uuid.NewString()[:8])

	if err := slf.paymentRepo.Update(&payment); err != nil {
		slf.logger.Error().Err(err).Uint("paymentId", id).Msg("Error marking payment paid")
		return nil, err
	}

	slf.logger.Info().Uint("paymentId", id).Str("receipt", payment.ReceiptNumber).Msg("Payment settled")
	return &payment, nil
}

func (slf *PaymentService) Refund(id uint) (*models.Payment, error) {
	payment, err := slf.paymentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("payment not found")
		}
		return nil, err
	}
	if payment.Status != models.PaymentStatusPaid {
		return nil, errors.New("only paid payments can be refunded")
	}

	payment.Status = models.PaymentStatusRefunded
	if err := slf.paymentRepo.Update(&payment); err != nil {
		slf.logger.Error().Err(err).Uint("paymentId", id).Msg("Error refunding payment")
		return nil, err
	}
	return &payment, nil
}

// TotalPaidByClient totals the settled payments of one client.
func (slf *PaymentService) TotalPaidByClient(clientID uint) (decimal.Decimal, error) {
	total, err := slf.paymentRepo.SumPaidByClient(clientID)
	if err != nil {
		slf.logger.Error().Err(err).Uint("clientId", clientID).Msg("Error totalling payments")
		return decimal.Zero, err
	}
	return total, nil
}
