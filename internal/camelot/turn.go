package camelot

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	msgOpponentCastle   = "Landing in your opponent's castle ends your turn"
	msgStartSquare      = "Cannot complete turn on starting square"
	msgMustJump         = "You are obligated to jump"
	msgMustJumpOrCharge = "You are obligated to jump or charge"
	msgMustCharge       = "You are obligated to complete the charge"
)

// NewTurnState starts a turn accumulator for the piece on start.
func NewTurnState(start Square) TurnState {
	return TurnState{
		Moves:           []Square{start},
		CapturedSquares: []Square{},
	}
}

// GetInitialMoves lists the legal first steps for the piece on sq. When any
// piece of color can jump, only jumps are returned, possibly none for this piece.
func GetInitialMoves(sq Square, board BoardState, color Color) []LegalMove {
	mustJump := len(CheckFirstMovePossibleJumps(board, color)) > 0
	return initialMoves(sq, board, color, mustJump)
}

func initialMoves(sq Square, board BoardState, color Color, mustJump bool) []LegalMove {
	pc := board.At(sq)
	if pc == nil || pc.Color != color {
		return []LegalMove{}
	}

	moves := []LegalMove{}
	if mustJump {
		for _, to := range movesOfType(sq, board, MoveJump, color) {
			moves = append(moves, LegalMove{Type: MoveJump, To: to})
		}
		return moves
	}

	own := CastleOf(color)
	for _, d := range Directions {
		one, ok := AdjacentSquare(sq, d)
		if !ok {
			continue
		}
		if board.isEmpty(one) && !inCastle(own, one) {
			moves = append(moves, LegalMove{Type: MovePlain, To: one})
		}
		two, ok := AdjacentSquare(one, d)
		if !ok {
			continue
		}
		if _, ok := IsValidCanter(sq, two, board, color); ok && !inCastle(own, two) {
			moves = append(moves, LegalMove{Type: MoveCanter, To: two})
		}
	}
	return moves
}

// ExecuteStep moves the turn's piece from its current square to to.
// otherLegalMoves are the moves that were on offer from the current square;
// cantering while one of them was a jump obliges the turn to charge.
// On a rule violation the error names the rule and board is left untouched.
func ExecuteStep(to Square, board BoardState, turn TurnState, color Color, otherLegalMoves []LegalMove) (StepResult, error) {
	if len(turn.Moves) == 0 {
		return StepResult{}, errors.Wrap(ErrNoPieceAtPosition, "turn has no starting square")
	}
	from := turn.Current()
	piece := board.At(from)
	if piece == nil || piece.Color != color {
		return StepResult{}, errors.Wrapf(ErrNoPieceAtPosition, "%s", from)
	}

	own, opp := CastleOf(color), CastleOf(color.Opponent())
	isKnight := piece.Type == Knight

	isPlain := IsValidPlainMove(from, to, board)
	_, isCanter := IsValidCanter(from, to, board, color)
	captured, isJump := IsValidJump(from, to, board, color)
	if !isPlain && !isCanter && !isJump {
		return StepResult{}, errors.Wrapf(ErrInvalidMove, "%s to %s", from, to)
	}

	if isPlain && len(turn.Moves) > 1 {
		return StepResult{}, errors.Wrapf(ErrInvalidSequence, "%s to %s", from, to)
	}
	if len(turn.CapturedSquares) > 0 && !isJump {
		return StepResult{}, errors.Wrapf(ErrMustContinueJumping, "%s to %s", from, to)
	}
	totalCaptured := len(turn.CapturedSquares)
	if isJump {
		totalCaptured++
	}
	// Fewer captures than steps taken means an earlier step was a canter.
	if isJump && totalCaptured < len(turn.Moves) && !isKnight {
		return StepResult{}, errors.Wrapf(ErrKnightsOnlyCharge, "%s to %s", from, to)
	}
	if !isJump && inCastle(own, to) {
		return StepResult{}, errors.Wrapf(ErrInvalidMove, "%s is your own castle", to)
	}

	mustCharge := turn.MustCharge || (isCanter && hasMoveType(otherLegalMoves, MoveJump))
	if isJump {
		mustCharge = false
	}

	nb := board.Clone()
	nb[to] = piece
	nb[from] = nil
	nt := turn.clone()
	nt.Moves = append(nt.Moves, to)
	nt.MustContinue = false
	nt.MustCharge = mustCharge
	if isJump {
		nb[captured] = nil
		nt.CapturedSquares = append(nt.CapturedSquares, captured)
	}

	if inCastle(opp, to) {
		return StepResult{Board: nb, Turn: nt, LegalNextMoves: []LegalMove{}, Message: msgOpponentCastle}, nil
	}
	if isPlain {
		return StepResult{Board: nb, Turn: nt, LegalNextMoves: []LegalMove{}}, nil
	}

	wouldBeCharge := totalCaptured < len(turn.Moves)
	legal := []LegalMove{}
	for _, d := range Directions {
		one, ok := AdjacentSquare(to, d)
		if !ok {
			continue
		}
		two, ok := AdjacentSquare(one, d)
		if !ok {
			continue
		}
		if _, ok := IsValidJump(to, two, nb, color); ok && (!wouldBeCharge || isKnight) {
			legal = append(legal, LegalMove{Type: MoveJump, To: two})
			continue
		}
		if totalCaptured > 0 {
			continue
		}
		if _, ok := IsValidCanter(to, two, nb, color); ok && !inCastle(own, two) {
			legal = append(legal, LegalMove{Type: MoveCanter, To: two})
		}
	}

	canJump := hasMoveType(legal, MoveJump)
	if mustCharge || canJump {
		jumps := legal[:0:0]
		for _, m := range legal {
			if m.Type == MoveJump {
				jumps = append(jumps, m)
			}
		}
		legal = jumps
		if isKnight && totalCaptured == 0 {
			for _, sq := range PossibleCharges(to, nb, color) {
				legal = append(legal, LegalMove{Type: MoveCanter, To: sq})
			}
		}
	}

	var message string
	switch {
	case to == turn.Start():
		nt.MustContinue = true
		message = msgStartSquare
	case canJump:
		nt.MustContinue = true
		message = msgMustJump
		if isKnight && hasMoveType(legal, MoveCanter) {
			message = msgMustJumpOrCharge
		}
	case mustCharge && len(legal) > 0:
		nt.MustContinue = true
		message = msgMustCharge
	}

	return StepResult{Board: nb, Turn: nt, LegalNextMoves: legal, Message: message}, nil
}

// PossibleCharges returns the canter landings from sq that begin a chain of
// zero or more further canters ending where a jump is available.
func PossibleCharges(sq Square, board BoardState, color Color) []Square {
	if !IsValidSquare(sq) {
		return nil
	}
	own := CastleOf(color)
	starts := cantersAvoiding(sq, board, color, own)
	if len(starts) == 0 {
		return nil
	}

	// The charging piece has left sq by the time it canters on.
	lifted := board.Clone()
	lifted[sq] = nil
	s := &chargeSearch{board: lifted, color: color, own: own, memo: make(map[int]bool)}

	var charges []Square
	for _, c := range starts {
		s.falsified = s.falsified[:0]
		if s.reachesJump(c) {
			// A dead end recorded during a successful search may have been
			// cut short by the path guard, so it is not trusted afterwards.
			for _, i := range s.falsified {
				delete(s.memo, i)
			}
			charges = append(charges, c)
		}
	}
	return charges
}

type chargeSearch struct {
	board     BoardState
	color     Color
	own       [2]Square
	path      [NumSquares]bool
	memo      map[int]bool
	falsified []int
}

func (s *chargeSearch) reachesJump(sq Square) bool {
	i, ok := indexOf(sq)
	if !ok || s.path[i] {
		return false
	}
	if v, ok := s.memo[i]; ok {
		return v
	}
	if len(movesOfType(sq, s.board, MoveJump, s.color)) > 0 {
		s.memo[i] = true
		return true
	}

	s.path[i] = true
	defer func() { s.path[i] = false }()
	for _, next := range cantersAvoiding(sq, s.board, s.color, s.own) {
		if s.reachesJump(next) {
			s.memo[i] = true
			return true
		}
	}
	s.memo[i] = false
	s.falsified = append(s.falsified, i)
	return false
}

func cantersAvoiding(sq Square, board BoardState, color Color, castle [2]Square) []Square {
	var out []Square
	for _, to := range movesOfType(sq, board, MoveCanter, color) {
		if !inCastle(castle, to) {
			out = append(out, to)
		}
	}
	return out
}

// TurnNotation joins the visited squares with "x" if the turn captured, "-" otherwise.
func TurnNotation(turn TurnState) string {
	if len(turn.Moves) < 2 {
		return ""
	}
	sep := "-"
	if len(turn.CapturedSquares) > 0 {
		sep = "x"
	}
	parts := make([]string, len(turn.Moves))
	for i, sq := range turn.Moves {
		parts[i] = string(sq)
	}
	return strings.Join(parts, sep)
}

func hasMoveType(moves []LegalMove, mt MoveType) bool {
	for _, m := range moves {
		if m.Type == mt {
			return true
		}
	}
	return false
}
