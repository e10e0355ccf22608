package placement

import (
	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/pkg/errors"
)

// DefaultMaxAttempts bounds anchor sampling per hull.
const DefaultMaxAttempts = 10000

var DefaultFleet = []int{4, 3, 3, 2, 2, 2, 1, 1, 1, 1}

type Planner struct {
	fleet       []int
	maxAttempts int
	rnd         domain.Random
}

func New(fleet []int, maxAttempts int, rnd domain.Random) (*Planner, error) {
	if err := Validate(fleet); err != nil {
		return nil, err
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Planner{
		fleet:       append([]int(nil), fleet...),
		maxAttempts: maxAttempts,
		rnd:         rnd,
	}, nil
}

func Validate(fleet []int) error {
	if len(fleet) == 0 {
		return errors.WithMessage(ErrInvalidFleet, "no hulls")
	}
	for i, length := range fleet {
		if length <= 0 || length > domain.BoardSize {
			return errors.WithMessagef(ErrInvalidFleet, "hull #%d has length %d", i, length)
		}
	}
	return nil
}

func (p *Planner) Fleet() []int {
	return append([]int(nil), p.fleet...)
}

// Fill places every hull of the fleet on board at random legal positions.
func (p *Planner) Fill(board *domain.Board) error {
	for i, length := range p.fleet {
		ship, err := domain.NewShip(length)
		if err != nil {
			return errors.WithMessagef(err, "create hull #%d", i)
		}
		if p.rnd.Intn(2) == 0 {
			ship.Rotate()
		}
		if !p.place(board, ship) {
			return errors.WithMessagef(ErrFleetDoesNotFit,
				"hull #%d of length %d not placed after %d attempts", i, length, p.maxAttempts)
		}
	}
	return nil
}

func (p *Planner) place(board *domain.Board, ship *domain.Ship) bool {
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		row := p.rnd.Intn(domain.BoardSize)
		col := p.rnd.Intn(domain.BoardSize)
		if board.PlaceShip(ship, row, col) {
			return true
		}
	}
	return false
}
