package request

type CreateContract struct {
	ClientID  uint   `json:"clientId" validate:"required"`
	PackageID *uint  `json:"packageId"`
	Title     string `json:"title" validate:"required"`
}
