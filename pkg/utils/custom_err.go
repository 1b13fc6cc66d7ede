package utils

import "errors"

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrProjectNotFound     = errors.New("project not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidPlan         = errors.New("unknown plan")
	ErrCheckoutFailed      = errors.New("checkout session creation failed")
	ErrUpstreamFailure     = errors.New("upstream provider error")
	ErrInvalidSignature    = errors.New("invalid webhook signature")
	ErrDatabaseError       = errors.New("database error")
)
