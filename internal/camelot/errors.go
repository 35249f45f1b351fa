package camelot

import "github.com/pkg/errors"

// Rule violations. Engine functions wrap these with context, so match with errors.Is.
var (
	ErrMalformedSquare     = errors.New("malformed square")
	ErrInvalidMove         = errors.New("invalid move")
	ErrInvalidSequence     = errors.New("plain move only allowed on the first step")
	ErrMustContinueJumping = errors.New("must continue jumping")
	ErrKnightsOnlyCharge   = errors.New("only knights can jump after cantering")
	ErrNoPieceAtPosition   = errors.New("no piece at current position")

	// ErrIncompleteTurn marks a recorded turn that stopped while a further step was mandatory.
	ErrIncompleteTurn = errors.New("turn ended while a continuation was mandatory")
	// ErrGameOver marks a recorded turn played after the game was already won.
	ErrGameOver       = errors.New("game is already decided")
)

var ruleNames = map[error]string{
	ErrMalformedSquare:     "MalformedSquare",
	ErrInvalidMove:         "InvalidMove",
	ErrInvalidSequence:     "InvalidSequence",
	ErrMustContinueJumping: "MustContinueJumping",
	ErrKnightsOnlyCharge:   "KnightsOnlyCharge",
	ErrNoPieceAtPosition:   "NoPieceAtPosition",
	ErrIncompleteTurn:      "IncompleteTurn",
	ErrGameOver:            "GameOver",
}

// RuleName returns the name of the rule err violates, or "" if err is not a rule violation.
func RuleName(err error) string {
	if err == nil {
		return ""
	}
	for sentinel, name := range ruleNames {
		if errors.Is(err, sentinel) {
			return name
		}
	}
	return ""
}

// IsRuleViolation reports whether err is one of the engine's rule violations.
func IsRuleViolation(err error) bool {
	return RuleName(err) != ""
}
