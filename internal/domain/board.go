package domain

import (
	"github.com/pkg/errors"
)

type Outcome byte

const (
	OutcomeMiss = Outcome(iota)
	OutcomeHit
	OutcomeSunk
	// OutcomeRepeat is reported for a cell that was already resolved; nothing changed.
	OutcomeRepeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeSunk:
		return "sunk"
	case OutcomeRepeat:
		return "repeat"
	default:
		return "miss"
	}
}

// IsHit reports whether the shot struck a ship part for the first time.
func (o Outcome) IsHit() bool {
	return o == OutcomeHit || o == OutcomeSunk
}

// Shot is the result of a single resolved attack.
type Shot struct {
	Coord   Coord
	Outcome Outcome
	// Sunk is the ship destroyed by this shot, nil otherwise; SunkCells is its footprint.
	Sunk      *Ship
	SunkCells []Coord
	// Revealed lists cells turned into misses by deduction (diagonals of a hit or the perimeter of a sunk ship).
	Revealed []Coord
}

type Placement struct {
	Ship *Ship
	Row  int
	Col  int
}

func (p Placement) Origin() Coord {
	return Coord{Row: p.Row, Col: p.Col}
}

func (p Placement) span() (rows, cols int) {
	if p.Ship.Orientation() == Vertical {
		return p.Ship.Length(), 1
	}
	return 1, p.Ship.Length()
}

// Footprint returns the cells covered by the placed ship, including any that fall off the board.
func (p Placement) Footprint() []Coord {
	rows, cols := p.span()
	result := make([]Coord, 0, rows*cols)
	for r := p.Row; r < p.Row+rows; r++ {
		for c := p.Col; c < p.Col+cols; c++ {
			result = append(result, Coord{Row: r, Col: c})
		}
	}
	return result
}

// Perimeter returns the in-bounds ring around the footprint's bounding box.
func (p Placement) Perimeter() []Coord {
	rows, cols := p.span()
	result := make([]Coord, 0, 2*(rows+cols)+4)
	for r := p.Row - 1; r <= p.Row+rows; r++ {
		for c := p.Col - 1; c <= p.Col+cols; c++ {
			if r >= p.Row && r < p.Row+rows && c >= p.Col && c < p.Col+cols {
				continue
			}
			if n := (Coord{Row: r, Col: c}); n.InBounds() {
				result = append(result, n)
			}
		}
	}
	return result
}

type Board struct {
	cells      [BoardSize][BoardSize]Cell
	placements []Placement
	missed     []Coord
}

func NewBoard() *Board {
	return &Board{}
}

// Cell returns the state of c; off-board coordinates read as empty.
func (b *Board) Cell(c Coord) Cell {
	if !c.InBounds() {
		return Cell{}
	}
	return b.cells[c.Row][c.Col]
}

func (b *Board) Placements() []Placement {
	return append([]Placement(nil), b.placements...)
}

// MissedCoordinates lists distinct coordinates that were fired at and found empty, in order.
func (b *Board) MissedCoordinates() []Coord {
	return append([]Coord(nil), b.missed...)
}

// LegalTargets lists every coordinate that is still empty or holds an unhit ship part.
func (b *Board) LegalTargets() []Coord {
	result := make([]Coord, 0, BoardSize*BoardSize)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b.cells[r][c].IsLegalTarget() {
				result = append(result, Coord{Row: r, Col: c})
			}
		}
	}
	return result
}

// PlaceShip anchors ship at (row, col), extending right or down. Placement fails without touching
// the board if the footprint leaves the board or if the footprint or its perimeter is not empty.
func (b *Board) PlaceShip(ship *Ship, row, col int) bool {
	if ship == nil {
		return false
	}
	p := Placement{Ship: ship, Row: row, Col: col}
	footprint := p.Footprint()
	for _, c := range footprint {
		if !c.InBounds() || !b.cells[c.Row][c.Col].IsEmpty() {
			return false
		}
	}
	for _, c := range p.Perimeter() {
		if !b.cells[c.Row][c.Col].IsEmpty() {
			return false
		}
	}
	for _, c := range footprint {
		b.cells[c.Row][c.Col] = Cell{Kind: CellOccupied, Ship: ship}
	}
	b.placements = append(b.placements, p)
	return true
}

func (b *Board) ReceiveAttack(c Coord) (Shot, error) {
	if !c.InBounds() {
		return Shot{}, errors.WithMessagef(ErrInvalidCoordinate, "attack at %s", c)
	}
	shot := Shot{Coord: c}
	cell := &b.cells[c.Row][c.Col]
	switch {
	case cell.Kind == CellOccupied && !cell.Hit:
		cell.Hit = true
		ship := cell.Ship
		ship.Hit()
		if ship.IsSunk() {
			shot.Outcome = OutcomeSunk
			shot.Sunk = ship
			if p, ok := b.PlacementOf(ship); ok {
				shot.SunkCells = p.Footprint()
				shot.Revealed = b.markMisses(p.Perimeter())
			}
		} else {
			shot.Outcome = OutcomeHit
			shot.Revealed = b.markMisses(c.Diagonals())
		}
	case cell.Kind == CellEmpty:
		cell.Kind = CellMiss
		b.recordMiss(c)
		shot.Outcome = OutcomeMiss
	default:
		shot.Outcome = OutcomeRepeat
	}
	return shot, nil
}

// AllShipsSunk is vacuously true for a board with no fleet.
func (b *Board) AllShipsSunk() bool {
	for _, p := range b.placements {
		if !p.Ship.IsSunk() {
			return false
		}
	}
	return true
}

func (b *Board) PlacementOf(ship *Ship) (Placement, bool) {
	for _, p := range b.placements {
		if p.Ship == ship {
			return p, true
		}
	}
	return Placement{}, false
}

// markMisses turns every still-empty cell of coords into a miss and returns the ones it changed.
func (b *Board) markMisses(coords []Coord) []Coord {
	var marked []Coord
	for _, c := range coords {
		if b.cells[c.Row][c.Col].IsEmpty() {
			b.cells[c.Row][c.Col] = Cell{Kind: CellMiss}
			marked = append(marked, c)
		}
	}
	return marked
}

func (b *Board) recordMiss(c Coord) {
	for _, m := range b.missed {
		if m == c {
			return
		}
	}
	b.missed = append(b.missed, c)
}
