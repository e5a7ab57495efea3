package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Content errors
	ErrContentNotFound  = errors.New("page content not found")
	ErrVersionNotFound  = errors.New("content version not found")
	ErrApprovalNotFound = errors.New("content approval not found")
	// Approvals are single-shot: pending -> approved or pending -> rejected
	ErrApprovalResolved = errors.New("approval already resolved")

	// Permission errors
	ErrPermissionDenied = errors.New("user does not have the required permission")

	// Product errors
	ErrProductNotFound = errors.New("product not found")

	// Inquiry errors
	ErrInquiryNotFound = errors.New("inquiry not found")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
)
