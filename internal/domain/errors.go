package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidMode     = errors.New("invalid interaction mode")
	ErrAlreadyExists   = errors.New("already exists")
	ErrNotConfigured   = errors.New("not configured")
	ErrInvalidArgument = errors.New("invalid argument")
)
