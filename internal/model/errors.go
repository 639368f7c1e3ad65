package model

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("no access")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)
