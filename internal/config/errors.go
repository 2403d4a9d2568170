package config

import "errors"

// ErrInvalidColor indicates a color mode other than auto, always or never.
var ErrInvalidColor = errors.New("invalid color mode")

// ErrNegativePreview indicates a negative preview size.
var ErrNegativePreview = errors.New("preview sizes must not be negative")
