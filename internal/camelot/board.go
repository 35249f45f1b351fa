package camelot

import (
	"strings"
)

const NumSquares = 176

// Rank 16 first, files A..N left to right.
// '#' off board, '.' empty, K/M white knight/man, k/m black knight/man.
const initialBoardDiagram = `
######..######
###........###
##..........##
#............#
..............
..kkmmmmmmkk..
..kkmmmmmmkk..
..............
..............
..KKMMMMMMKK..
..KKMMMMMMKK..
..............
#............#
##..........##
###........###
######..######`

var (
	// AllSquares lists every square on the board, rank 1 to 16, file A to N.
	AllSquares []Square

	WhiteCastle = [2]Square{"G1", "H1"}
	BlackCastle = [2]Square{"G16", "H16"}

	squareIndex  map[Square]int
	initialSetup map[Square]Piece
)

var letterToPiece = map[rune]Piece{
	'K': {Type: Knight, Color: White},
	'M': {Type: Man, Color: White},
	'k': {Type: Knight, Color: Black},
	'm': {Type: Man, Color: Black},
}

func init() {
	parseBoardDiagram()
}

func parseBoardDiagram() {
	lines := make([]string, 0, Ranks)
	for _, line := range strings.Split(initialBoardDiagram, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) != Ranks {
		panic("board diagram must have 16 ranks")
	}

	squareIndex = make(map[Square]int, NumSquares)
	initialSetup = make(map[Square]Piece)
	for rank := 1; rank <= Ranks; rank++ {
		line := lines[Ranks-rank]
		if len(line) != Files {
			panic("board diagram rank must have 14 files")
		}
		for file, ch := range line {
			if ch == '#' {
				continue
			}
			sq := ToSquare(file, rank)
			squareIndex[sq] = len(AllSquares)
			AllSquares = append(AllSquares, sq)
			if ch == '.' {
				continue
			}
			pc, ok := letterToPiece[ch]
			if !ok {
				panic("unknown piece letter: " + string(ch))
			}
			initialSetup[sq] = pc
		}
	}
	if len(AllSquares) != NumSquares {
		panic("board diagram must describe 176 squares")
	}
}

func indexOf(sq Square) (int, bool) {
	i, ok := squareIndex[sq]
	return i, ok
}

// CastleOf returns the castle belonging to color.
func CastleOf(color Color) [2]Square {
	if color == Black {
		return BlackCastle
	}
	return WhiteCastle
}

func inCastle(castle [2]Square, sq Square) bool {
	return castle[0] == sq || castle[1] == sq
}

// BoardState maps every valid square to its occupant; nil means empty.
type BoardState map[Square]*Piece

// NewBoardState returns a board with every square present and empty.
func NewBoardState() BoardState {
	b := make(BoardState, NumSquares)
	for _, sq := range AllSquares {
		b[sq] = nil
	}
	return b
}

func InitialBoardState() BoardState {
	b := NewBoardState()
	for sq, pc := range initialSetup {
		pc := pc
		b[sq] = &pc
	}
	return b
}

// Clone copies the mapping. Pieces are shared since they are never mutated.
func (b BoardState) Clone() BoardState {
	nb := make(BoardState, len(b))
	for sq, pc := range b {
		nb[sq] = pc
	}
	return nb
}

func (b BoardState) At(sq Square) *Piece {
	if b == nil {
		return nil
	}
	return b[sq]
}

func (b BoardState) isEmpty(sq Square) bool {
	return b.At(sq) == nil
}

// Count returns how many pieces of color are on the board.
func (b BoardState) Count(color Color) int {
	n := 0
	for _, sq := range AllSquares {
		if pc := b[sq]; pc != nil && pc.Color == color {
			n++
		}
	}
	return n
}

// Pieces returns the squares holding a piece of color, in board order.
func (b BoardState) Pieces(color Color) []Square {
	var out []Square
	for _, sq := range AllSquares {
		if pc := b[sq]; pc != nil && pc.Color == color {
			out = append(out, sq)
		}
	}
	return out
}
