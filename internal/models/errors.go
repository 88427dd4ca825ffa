package models

import (
	"errors"
)

var (
	ErrImageDecode      = errors.New("image decode failed")
	ErrProviderDisabled = errors.New("provider is not initialized")
)
