package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// UserErrors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrInvalidRole       = errors.New("invalid role")
)

// Building errors
var (
	ErrBuildingNotFound  = errors.New("building not found")
	ErrApartmentNotFound = errors.New("apartment not found")
	ErrApartmentOccupied = errors.New("apartment already assigned")
)

// Reclamation errors
var (
	ErrReclamationNotFound = errors.New("reclamation not found")
	ErrInvalidStatus       = errors.New("invalid reclamation status")
)

// Caisse errors
var (
	ErrCaisseNotFound     = errors.New("caisse not found")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInvalidTransaction = errors.New("invalid transaction")
)
