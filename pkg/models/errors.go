package models

import "errors"

// Domain errors shared by the stores and services. The HTTP layer maps
// them onto status codes in one place.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyReviewed    = errors.New("product already reviewed")
	ErrInvalidRating      = errors.New("invalid rating")
	ErrNoOrderItems       = errors.New("no order items")
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
