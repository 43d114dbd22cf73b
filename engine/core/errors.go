package core

import (
	"errors"
)

var (
	ErrNotInitialized = errors.New("subsystem used before initialization")
	ErrPlatformClosed = errors.New("platform window closed")
	ErrInvalidGame    = errors.New("game is missing required callbacks")
)
