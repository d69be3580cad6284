package utils

import (
	"github.com/lithammer/shortuuid/v3"
)

const (
	APIKeyPrefix = "API"
)

func NewGuid(prefix string) string {
	return prefix + shortuuid.New()
}
