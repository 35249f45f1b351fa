package service

import (
	"github.com/benbeisheim/camelot-backend/internal/camelot"
	"github.com/pkg/errors"
)

// ErrInvalidBoard marks a board snapshot that failed validation.
var ErrInvalidBoard = errors.New("invalid board")

// EngineService runs the rules engine on caller-supplied snapshots. It holds no state.
type EngineService struct{}

func NewEngineService() *EngineService {
	return &EngineService{}
}

func (es *EngineService) InitialMoves(board camelot.BoardState, color camelot.Color, sq camelot.Square) ([]camelot.LegalMove, error) {
	if err := checkInput(board, color); err != nil {
		return nil, err
	}
	if _, err := camelot.ParseSquare(sq); err != nil {
		return nil, err
	}
	return camelot.GetInitialMoves(sq, board, color), nil
}

func (es *EngineService) Step(to camelot.Square, board camelot.BoardState, turn camelot.TurnState, color camelot.Color, otherLegalMoves []camelot.LegalMove) (camelot.StepResult, error) {
	if err := checkInput(board, color); err != nil {
		return camelot.StepResult{}, err
	}
	if turn.CapturedSquares == nil {
		turn.CapturedSquares = []camelot.Square{}
	}
	return camelot.ExecuteStep(to, board, turn, color, otherLegalMoves)
}

func (es *EngineService) CheckWin(board camelot.BoardState, color camelot.Color) (camelot.WinReason, error) {
	if err := checkInput(board, color); err != nil {
		return camelot.NoWin, err
	}
	return camelot.CheckWinCondition(board, color), nil
}

func (es *EngineService) Replay(history []string) (camelot.BoardState, camelot.Color, error) {
	return camelot.ReplayHistory(history)
}

func checkInput(board camelot.BoardState, color camelot.Color) error {
	if !color.Valid() {
		return errors.Wrapf(ErrInvalidBoard, "unknown color %q", color)
	}
	if err := camelot.ValidateBoard(board); err != nil {
		return errors.Wrap(ErrInvalidBoard, err.Error())
	}
	return nil
}
