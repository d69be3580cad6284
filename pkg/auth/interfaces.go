package auth

import (
	"errors"
)

var (
	ErrKeysMissing = errors.New("missing API key or secret key")
)

type KeyProvider interface {
	GetSecret(key string) string
	NumKeys() int
}
