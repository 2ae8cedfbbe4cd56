package services

import (
	"errors"

	"github.com/sjperalta/dpa-api/internal/repository"
)

// Common service errors
var (
	ErrNotFound     = repository.ErrNotFound
	ErrDuplicate    = repository.ErrDuplicate
	ErrInvalidState = errors.New("invalid state transition")
	ErrValidation   = errors.New("validation failed")
	ErrForbidden    = errors.New("forbidden")
)
