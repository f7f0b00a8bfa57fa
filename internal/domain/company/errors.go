package company

import "errors"

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrInvalidPriceTier = errors.New("invalid price tier")
	ErrNameExists       = errors.New("company name already registered")
)
