package placement

import (
	"github.com/pkg/errors"
)

var (
	ErrInvalidFleet    = errors.New("invalid fleet manifest")
	ErrFleetDoesNotFit = errors.New("fleet does not fit on the board")
)
