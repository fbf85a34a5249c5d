package client

import "errors"

var (
	ErrUnavailable     = errors.New("server unavailable")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotFound        = errors.New("record not found on server")
	ErrInvalidArgument = errors.New("rejected by server")
	ErrAlreadyExists   = errors.New("already exists")
)
