package domain

type CellKind byte

const (
	CellEmpty = CellKind(iota)
	CellOccupied
	CellMiss
)

func (k CellKind) String() string {
	switch k {
	case CellOccupied:
		return "occupied"
	case CellMiss:
		return "miss"
	default:
		return "empty"
	}
}

// Cell is Empty, Occupied{Ship, Hit} or Miss. Ship and Hit are only meaningful for occupied cells.
type Cell struct {
	Kind CellKind
	Ship *Ship
	Hit  bool
}

func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

func (c Cell) IsMiss() bool {
	return c.Kind == CellMiss
}

func (c Cell) IsHit() bool {
	return c.Kind == CellOccupied && c.Hit
}

// IsLegalTarget reports whether attacking the cell can still change the board.
func (c Cell) IsLegalTarget() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellOccupied:
		return !c.Hit
	default:
		return false
	}
}
