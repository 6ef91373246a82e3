package storage

import "errors"

var (
	ErrPaintingNotFound = errors.New("painting not found")
	ErrSessionNotFound  = errors.New("session not found")
)

var (
	ErrUnsupportedDriver = errors.New("unsupported storage driver")
	ErrInvalidDocument   = errors.New("invalid stored document")
)
