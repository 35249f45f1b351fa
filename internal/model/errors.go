package model

import "github.com/pkg/errors"

var (
	ErrGameFull         = errors.New("game is full")
	ErrGameNotActive    = errors.New("game is not active")
	ErrPlayerNotInGame  = errors.New("player not in game")
	ErrNotAuthorized    = errors.New("not authorized to join this game")
	ErrNotYourTurn      = errors.New("not your turn")
	ErrNotYourPiece     = errors.New("no piece of yours on that square")
	ErrNoLegalMoves     = errors.New("piece has no legal moves")
	ErrTurnInProgress   = errors.New("a step has already been taken this turn")
	ErrNoTurnInProgress = errors.New("no turn in progress")
	ErrTurnIncomplete   = errors.New("turn must continue")
	ErrIllegalStep      = errors.New("step is not among the legal moves")
)
