package domain

import "errors"

var (
	// ErrGameNotFound is returned when a requested game has no record
	ErrGameNotFound = errors.New("game not found")

	// ErrInvalidMentalState marks a state outside the fixed enum
	ErrInvalidMentalState = errors.New("invalid mental health state")
)
