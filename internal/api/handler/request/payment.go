package request

import "github.com/shopspring/decimal"

type CreatePayment struct {
	ClientID uint            `json:"clientId" validate:"required"`
	JobID    *uint           `json:"jobId"`
	Amount   decimal.Decimal `json:"amount" validate:"required"`
	Method   string          `json:"method" validate:"required,oneof=cash card transfer"`
}
