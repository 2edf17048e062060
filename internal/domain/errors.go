package domain

import "errors"

var (
	ErrNotFound             = errors.New("not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrBrandProfileRequired = errors.New("brand profile required")
	ErrContentNotFound      = errors.New("content plan not found")
	ErrNoVisualPlans        = errors.New("no visual plans")
	ErrNoJobAvailable       = errors.New("no job available")
)
