package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrConflict           = errors.New("already exists")
	ErrStorage            = errors.New("storage error")
	ErrInvalidUser        = errors.New("username and password are required")
)
