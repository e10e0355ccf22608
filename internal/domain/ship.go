package domain

type Orientation byte

const (
	Horizontal = Orientation(iota)
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

type Ship struct {
	length      int
	hitsTaken   int
	orientation Orientation
	sunk        bool
}

func NewShip(length int) (*Ship, error) {
	if length <= 0 {
		return nil, ErrInvalidShipLength
	}
	return &Ship{length: length, orientation: Horizontal}, nil
}

func (s *Ship) Length() int {
	return s.length
}

func (s *Ship) HitsTaken() int {
	return s.hitsTaken
}

func (s *Ship) Orientation() Orientation {
	return s.orientation
}

func (s *Ship) Hit() {
	if s.hitsTaken < s.length {
		s.hitsTaken++
	}
}

// IsSunk latches once every cell has been hit.
func (s *Ship) IsSunk() bool {
	if s.hitsTaken == s.length {
		s.sunk = true
	}
	return s.sunk
}

// Rotate must be called before the ship is placed on a board.
func (s *Ship) Rotate() {
	if s.orientation == Horizontal {
		s.orientation = Vertical
	} else {
		s.orientation = Horizontal
	}
}
