package camelot

import (
	"strings"

	"github.com/pkg/errors"
)

// ParseTurnNotation splits "E6-F7-G8" or "C6xE8xG10" into its squares and
// reports whether the turn was written as capturing.
func ParseTurnNotation(notation string) ([]Square, bool, error) {
	hasDash := strings.Contains(notation, "-")
	hasX := strings.Contains(notation, "x")
	if hasDash && hasX {
		return nil, false, errors.Wrapf(ErrMalformedSquare, "%q mixes separators", notation)
	}
	sep := "-"
	if hasX {
		sep = "x"
	}
	parts := strings.Split(notation, sep)
	if len(parts) < 2 {
		return nil, false, errors.Wrapf(ErrMalformedSquare, "%q has fewer than two squares", notation)
	}
	squares := make([]Square, len(parts))
	for i, p := range parts {
		sq := Square(p)
		if _, err := ParseSquare(sq); err != nil {
			return nil, false, errors.WithMessagef(err, "turn %q", notation)
		}
		if !IsValidSquare(sq) {
			return nil, false, errors.Wrapf(ErrMalformedSquare, "%s is off the board", sq)
		}
		squares[i] = sq
	}
	return squares, hasX, nil
}

// ReplayTurn plays the visited squares of one turn for color through
// ExecuteStep, offering only the moves the engine would have offered.
func ReplayTurn(board BoardState, color Color, squares []Square) (BoardState, TurnState, error) {
	if len(squares) < 2 {
		return nil, TurnState{}, errors.Wrap(ErrInvalidMove, "turn needs at least two squares")
	}
	turn := NewTurnState(squares[0])
	legal := GetInitialMoves(squares[0], board, color)
	for _, to := range squares[1:] {
		if !containsSquare(legal, to) {
			return nil, TurnState{}, errors.Wrapf(ErrInvalidMove, "%s is not a legal continuation from %s", to, turn.Current())
		}
		res, err := ExecuteStep(to, board, turn, color, legal)
		if err != nil {
			return nil, TurnState{}, err
		}
		board, turn, legal = res.Board, res.Turn, res.LegalNextMoves
	}
	if turn.MustContinue {
		return nil, TurnState{}, errors.Wrapf(ErrIncompleteTurn, "%s", TurnNotation(turn))
	}
	return board, turn, nil
}

// ReplayHistory rebuilds the board from the initial position by replaying
// every turn in history, white first. It also returns the color to move next.
// Turns recorded after a decisive position are rejected.
func ReplayHistory(history []string) (BoardState, Color, error) {
	return replayFrom(InitialBoardState(), White, history)
}

func replayFrom(board BoardState, color Color, history []string) (BoardState, Color, error) {
	for i, notation := range history {
		if i > 0 {
			if reason := CheckWinCondition(board, color.Opponent()); reason != NoWin {
				return nil, "", errors.Wrapf(ErrGameOver, "turn %d (%s) follows a %s win by %s", i+1, notation, reason, color.Opponent())
			}
		}
		squares, captured, err := ParseTurnNotation(notation)
		if err != nil {
			return nil, "", errors.WithMessagef(err, "turn %d", i+1)
		}
		next, turn, err := ReplayTurn(board, color, squares)
		if err != nil {
			return nil, "", errors.WithMessagef(err, "turn %d (%s)", i+1, notation)
		}
		if captured != (len(turn.CapturedSquares) > 0) {
			return nil, "", errors.Wrapf(ErrInvalidMove, "turn %d (%s): separator disagrees with captures", i+1, notation)
		}
		board = next
		color = color.Opponent()
	}
	return board, color, nil
}

func containsSquare(moves []LegalMove, sq Square) bool {
	for _, m := range moves {
		if m.To == sq {
			return true
		}
	}
	return false
}

// TurnMoveType summarises a finished turn: jump if it captured anything,
// plain for a single one-square step, canter otherwise.
func TurnMoveType(turn TurnState) MoveType {
	if len(turn.CapturedSquares) > 0 {
		return MoveJump
	}
	if len(turn.Moves) == 2 {
		if _, steps, ok := stepsBetween(turn.Moves[0], turn.Moves[1]); ok && steps == 1 {
			return MovePlain
		}
	}
	return MoveCanter
}
