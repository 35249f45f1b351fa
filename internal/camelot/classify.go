package camelot

// IsValidPlainMove reports whether to is one step from from and empty.
// Own-castle restrictions are the caller's concern.
func IsValidPlainMove(from, to Square, board BoardState) bool {
	if !IsValidSquare(from) || !IsValidSquare(to) {
		return false
	}
	_, steps, ok := stepsBetween(from, to)
	return ok && steps == 1 && board.isEmpty(to)
}

// IsValidCanter reports whether from can leap over a piece of color into
// the empty square to. It returns the square leapt over.
func IsValidCanter(from, to Square, board BoardState, color Color) (Square, bool) {
	middle, ok := twoStepMiddle(from, to, board)
	if !ok || board[middle].Color != color {
		return "", false
	}
	return middle, true
}

// IsValidJump is IsValidCanter over an enemy piece; the returned square holds the captured piece.
func IsValidJump(from, to Square, board BoardState, color Color) (Square, bool) {
	middle, ok := twoStepMiddle(from, to, board)
	if !ok || board[middle].Color == color {
		return "", false
	}
	return middle, true
}

// twoStepMiddle checks the shape shared by canters and jumps: to lies two
// steps from from along one direction, the middle square is occupied and to is empty.
func twoStepMiddle(from, to Square, board BoardState) (Square, bool) {
	if !IsValidSquare(from) || !IsValidSquare(to) {
		return "", false
	}
	dir, steps, ok := stepsBetween(from, to)
	if !ok || steps != 2 {
		return "", false
	}
	middle, ok := AdjacentSquare(from, dir)
	if !ok || board.isEmpty(middle) || !board.isEmpty(to) {
		return "", false
	}
	return middle, true
}

// CheckFirstMovePossibleJumps returns every landing square reachable by a
// jump from any piece of color. A non-empty result makes capturing mandatory.
func CheckFirstMovePossibleJumps(board BoardState, color Color) []Square {
	var jumps []Square
	for _, sq := range AllSquares {
		pc := board[sq]
		if pc == nil || pc.Color != color {
			continue
		}
		jumps = append(jumps, movesOfType(sq, board, MoveJump, color)...)
	}
	return jumps
}

// movesOfType lists canter or jump landings from sq, in Directions order.
func movesOfType(sq Square, board BoardState, mt MoveType, color Color) []Square {
	var out []Square
	for _, d := range Directions {
		one, ok := AdjacentSquare(sq, d)
		if !ok {
			continue
		}
		two, ok := AdjacentSquare(one, d)
		if !ok {
			continue
		}
		var valid bool
		switch mt {
		case MoveJump:
			_, valid = IsValidJump(sq, two, board, color)
		case MoveCanter:
			_, valid = IsValidCanter(sq, two, board, color)
		}
		if valid {
			out = append(out, two)
		}
	}
	return out
}
