package camelot

// CheckWinCondition evaluates board from the point of view of color, the
// player who just moved. It returns NoWin while the game goes on.
func CheckWinCondition(board BoardState, color Color) WinReason {
	opponent := color.Opponent()

	inCastle := 0
	for _, sq := range CastleOf(opponent) {
		if pc := board.At(sq); pc != nil && pc.Color == color {
			inCastle++
		}
	}
	if inCastle >= 2 {
		return CastleOccupation
	}

	// Annihilation and stalemate both need at least two pieces left to claim.
	mine := board.Count(color)
	if mine < 2 {
		return NoWin
	}
	if board.Count(opponent) == 0 {
		return CaptureAll
	}
	if !HasLegalMove(board, opponent) {
		return Stalemate
	}
	return NoWin
}

// HasLegalMove reports whether any piece of color has a legal first step.
func HasLegalMove(board BoardState, color Color) bool {
	mustJump := len(CheckFirstMovePossibleJumps(board, color)) > 0
	if mustJump {
		return true
	}
	for _, sq := range board.Pieces(color) {
		if len(initialMoves(sq, board, color, false)) > 0 {
			return true
		}
	}
	return false
}
