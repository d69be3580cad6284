package service

import (
	"errors"
)

var (
	ErrMethodNotAllowed     = errors.New("method not allowed")
	ErrCredentialsRequired  = errors.New("email or username and password are required")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUserRecordNotFound   = errors.New("user record not found")
	ErrDirectoryUnavailable = errors.New("could not fetch channel records")
)
