package camelot

var (
	whiteMan    = Piece{Type: Man, Color: White}
	whiteKnight = Piece{Type: Knight, Color: White}
	blackMan    = Piece{Type: Man, Color: Black}
	blackKnight = Piece{Type: Knight, Color: Black}
)

// boardWith returns an otherwise empty board holding the given pieces.
func boardWith(pieces map[Square]Piece) BoardState {
	b := NewBoardState()
	for sq, pc := range pieces {
		pc := pc
		b[sq] = &pc
	}
	return b
}

func moveTargets(moves []LegalMove) []Square {
	out := make([]Square, len(moves))
	for i, m := range moves {
		out[i] = m.To
	}
	return out
}
