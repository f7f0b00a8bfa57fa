package company

import "time"

// PriceTier determines which price column of the catalog a company sees.
type PriceTier string

const (
	TierT1 PriceTier = "T1"
	TierT2 PriceTier = "T2"
	TierT3 PriceTier = "T3"
)

func (t PriceTier) Valid() bool {
	switch t {
	case TierT1, TierT2, TierT3:
		return true
	}
	return false
}

type Company struct {
	ID           string
	Name         string
	PriceTier    PriceTier
	ContactEmail *string
	ContactPhone *string
	Address      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
