package camelot

import (
	"fmt"
	"strconv"

	"github.com/pkg/errors"
)

const (
	Files = 14 // A..N
	Ranks = 16
)

// Square is a square identifier such as "E6": file letter then rank number.
type Square string

type Coord struct {
	File int // A=0
	Rank int // 1-based
}

type Direction struct {
	File int
	Rank int
}

// Directions holds the 8 unit vectors in file/rank space.
var Directions = [8]Direction{
	{0, 1}, {0, -1}, // vertical
	{1, 0}, {-1, 0}, // horizontal
	{1, 1}, {-1, -1},
	{1, -1}, {-1, 1},
}

// ParseSquare splits a square into file index and rank. It does not check
// board membership, only that the notation fits the 14x16 bounding grid.
func ParseSquare(sq Square) (Coord, error) {
	s := string(sq)
	if len(s) < 2 || len(s) > 3 {
		return Coord{}, errors.Wrapf(ErrMalformedSquare, "%q", s)
	}
	letter := s[0]
	if letter < 'A' || letter >= 'A'+Files {
		return Coord{}, errors.Wrapf(ErrMalformedSquare, "%q: file out of range", s)
	}
	digits := s[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Coord{}, errors.Wrapf(ErrMalformedSquare, "%q", s)
		}
	}
	if digits[0] == '0' {
		return Coord{}, errors.Wrapf(ErrMalformedSquare, "%q: leading zero", s)
	}
	rank, err := strconv.Atoi(digits)
	if err != nil || rank < 1 || rank > Ranks {
		return Coord{}, errors.Wrapf(ErrMalformedSquare, "%q: rank out of range", s)
	}
	return Coord{File: int(letter - 'A'), Rank: rank}, nil
}

// ToSquare builds a candidate identifier; the result may lie off the board.
func ToSquare(file, rank int) Square {
	return Square(fmt.Sprintf("%c%d", 'A'+file, rank))
}

func IsValidSquare(sq Square) bool {
	_, ok := squareIndex[sq]
	return ok
}

// AdjacentSquare steps once from sq in direction d. It never wraps or clamps.
func AdjacentSquare(sq Square, d Direction) (Square, bool) {
	if !IsValidSquare(sq) {
		return "", false
	}
	c, err := ParseSquare(sq)
	if err != nil {
		return "", false
	}
	file, rank := c.File+d.File, c.Rank+d.Rank
	if file < 0 || file >= Files || rank < 1 || rank > Ranks {
		return "", false
	}
	next := ToSquare(file, rank)
	if !IsValidSquare(next) {
		return "", false
	}
	return next, true
}

// stepsBetween returns the direction and number of steps (1 or 2) separating
// from and to when they lie on a common line within two squares.
func stepsBetween(from, to Square) (Direction, int, bool) {
	fc, err := ParseSquare(from)
	if err != nil {
		return Direction{}, 0, false
	}
	tc, err := ParseSquare(to)
	if err != nil {
		return Direction{}, 0, false
	}
	df, dr := tc.File-fc.File, tc.Rank-fc.Rank
	dist := max(abs(df), abs(dr))
	if dist == 0 || dist > 2 {
		return Direction{}, 0, false
	}
	if (df != 0 && abs(df) != dist) || (dr != 0 && abs(dr) != dist) {
		return Direction{}, 0, false
	}
	return Direction{File: df / dist, Rank: dr / dist}, dist, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
