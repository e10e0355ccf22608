package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const BoardSize = 10

type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (c Coord) InBounds() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Diagonals returns the in-bounds corner neighbours of c.
func (c Coord) Diagonals() []Coord {
	return c.neighbours([4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}})
}

// Orthogonals returns the in-bounds neighbours of c in up, down, left, right order.
func (c Coord) Orthogonals() []Coord {
	return c.neighbours([4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}})
}

func (c Coord) neighbours(offsets [4][2]int) []Coord {
	result := make([]Coord, 0, len(offsets))
	for _, o := range offsets {
		n := Coord{Row: c.Row + o[0], Col: c.Col + o[1]}
		if n.InBounds() {
			result = append(result, n)
		}
	}
	return result
}

// String renders c as a column letter followed by a one-based row, e.g. "B7".
func (c Coord) String() string {
	if !c.InBounds() {
		return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("%c%d", 'A'+rune(c.Col), c.Row+1)
}

// ParseCoord accepts either a label like "B7" or a zero-based "row col" pair like "6 1".
func ParseCoord(s string) (Coord, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Coord{}, errors.WithMessage(ErrInvalidCoordinate, "empty input")
	}
	if fields := strings.Fields(s); len(fields) == 2 {
		row, err := strconv.Atoi(fields[0])
		if err != nil {
			return Coord{}, errors.WithMessagef(ErrInvalidCoordinate, "parse row '%s'", fields[0])
		}
		col, err := strconv.Atoi(fields[1])
		if err != nil {
			return Coord{}, errors.WithMessagef(ErrInvalidCoordinate, "parse col '%s'", fields[1])
		}
		return checkCoord(Coord{Row: row, Col: col})
	}
	if s[0] < 'A' || s[0] > 'Z' {
		return Coord{}, errors.WithMessagef(ErrInvalidCoordinate, "unexpected column '%c'", s[0])
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil {
		return Coord{}, errors.WithMessagef(ErrInvalidCoordinate, "parse row '%s'", s[1:])
	}
	return checkCoord(Coord{Row: row - 1, Col: int(s[0] - 'A')})
}

func checkCoord(c Coord) (Coord, error) {
	if !c.InBounds() {
		return Coord{}, errors.WithMessagef(ErrInvalidCoordinate, "%s is outside the board", c)
	}
	return c, nil
}
