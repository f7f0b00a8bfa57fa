package membership

import "github.com/partflow/partflow-backend-go/internal/pkg/validator"

// RevokeRequest - POST /pm/tradies/{id}/revoke
type RevokeRequest struct {
	TradieID         string  `json:"-"` // From Chi URL param
	ProjectManagerID string  `json:"-"` // From JWT
	Reason           *string `json:"reason,omitempty"`
}

func (r *RevokeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.TradieID) {
		errs = append(errs, validator.ValidationError{
			Field:   "tradie_id",
			Message: "tradie_id is required",
		})
	}

	if r.Reason != nil && len(*r.Reason) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be at most 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
