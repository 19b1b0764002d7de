package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

type Payment struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ClientID      uint            `gorm:"not null;index" json:"clientId"`
	Client        Client          `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	JobID         *uint           `gorm:"index" json:"jobId,omitempty"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method        PaymentMethod   `gorm:"type:varchar(20)" json:"method"`
	Status        PaymentStatus   `gorm:"type:varchar(20);default:pending" json:"status"`
	PaidAt        *time.Time      `json:"paidAt,omitempty"`
	ReceiptNumber string          `gorm:"type:varchar(40)" json:"receiptNumber,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Payment) TableName() string {
	return "payments"
}
