package domain

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidState      = errors.New("invalid match state")
	ErrInvalidShipLength = errors.New("ship length must be positive")
	ErrConnectionClosed  = errors.New("connection closed")
)
