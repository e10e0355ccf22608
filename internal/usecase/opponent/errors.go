package opponent

import (
	"github.com/pkg/errors"
)

var ErrNoTargets = errors.New("no legal targets left")
