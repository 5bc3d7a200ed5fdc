package account

import "errors"

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrInvalidAttributes = errors.New("invalid account attributes")
)
