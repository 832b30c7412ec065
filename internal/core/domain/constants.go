package domain

import "errors"

var (
	ErrConversionInProgress = errors.New("a conversion is already in progress")
	ErrUnsupportedOutput    = errors.New("unsupported output format")
)
