package request

import "github.com/shopspring/decimal"

type CreatePackage struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"required"`
	Services    string          `json:"services"`
}

type UpdatePackage struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Services    *string          `json:"services"`
	Active      *bool            `json:"active"`
}
