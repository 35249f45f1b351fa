package camelot

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opponent() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	}
	return ""
}

func (c Color) Valid() bool {
	return c == White || c == Black
}

type PieceType string

const (
	Man    PieceType = "man"
	Knight PieceType = "knight"
)

// Piece is an immutable value; a piece's identity is the square it sits on.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

type MoveType string

const (
	MovePlain  MoveType = "plain"
	MoveCanter MoveType = "canter"
	MoveJump   MoveType = "jump"
)

// LegalMove is a candidate destination relative to an origin implied by context.
type LegalMove struct {
	Type MoveType `json:"type"`
	To   Square   `json:"to"`
}

// TurnState accumulates one player's turn across chained steps.
type TurnState struct {
	Moves           []Square `json:"moves"` // squares visited this turn, starting square first
	CapturedSquares []Square `json:"capturedSquares"`
	MustContinue    bool     `json:"mustContinue"`
	MustCharge      bool     `json:"mustCharge"`
}

func (t TurnState) Start() Square {
	if len(t.Moves) == 0 {
		return ""
	}
	return t.Moves[0]
}

func (t TurnState) Current() Square {
	if len(t.Moves) == 0 {
		return ""
	}
	return t.Moves[len(t.Moves)-1]
}

func (t TurnState) clone() TurnState {
	nt := t
	nt.Moves = append([]Square(nil), t.Moves...)
	nt.CapturedSquares = append(make([]Square, 0, len(t.CapturedSquares)), t.CapturedSquares...)
	return nt
}

// StepResult is the outcome of a successful ExecuteStep.
type StepResult struct {
	Board          BoardState  `json:"newBoardState"`
	Turn           TurnState   `json:"newTurnState"`
	LegalNextMoves []LegalMove `json:"legalNextMoves"`
	Message        string      `json:"message"`
}

type WinReason string

const (
	NoWin            WinReason = ""
	CastleOccupation WinReason = "castle_occupation"
	CaptureAll       WinReason = "capture_all"
	Stalemate        WinReason = "stalemate"
)
