package service

import (
	"github.com/benbeisheim/camelot-backend/internal/camelot"
	"github.com/benbeisheim/camelot-backend/internal/model"
	"github.com/benbeisheim/camelot-backend/internal/ws"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, error) {
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID); err != nil {
		return "", errors.WithMessage(err, "failed to create game")
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (camelot.Color, error) {
	color, err := gs.gameManager.AddPlayerToGame(gameID, playerID)
	return color, errors.WithMessage(err, "join")
}

func (gs *GameService) GetGameState(gameID string) (model.GameState, error) {
	return gs.gameManager.GetGameState(gameID)
}

func (gs *GameService) PreviewMoves(gameID string, sq camelot.Square) ([]camelot.LegalMove, error) {
	return gs.gameManager.PreviewMoves(gameID, sq)
}

func (gs *GameService) SelectSquare(gameID, playerID string, sq camelot.Square) error {
	err := gs.gameManager.Do(gameID, func(g *model.Game) error {
		return g.SelectSquare(playerID, sq)
	})
	return errors.WithMessage(err, "select")
}

func (gs *GameService) Step(gameID, playerID string, to camelot.Square) error {
	err := gs.gameManager.Do(gameID, func(g *model.Game) error {
		return g.Step(playerID, to)
	})
	return errors.WithMessage(err, "step")
}

func (gs *GameService) SubmitTurn(gameID, playerID string) error {
	err := gs.gameManager.Do(gameID, func(g *model.Game) error {
		return g.SubmitTurn(playerID)
	})
	return errors.WithMessage(err, "submit")
}

func (gs *GameService) CancelTurn(gameID, playerID string) error {
	err := gs.gameManager.Do(gameID, func(g *model.Game) error {
		return g.CancelTurn(playerID)
	})
	return errors.WithMessage(err, "cancel")
}

func (gs *GameService) Resign(gameID, playerID string) error {
	err := gs.gameManager.Do(gameID, func(g *model.Game) error {
		return g.Resign(playerID)
	})
	return errors.WithMessage(err, "resign")
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}

func (gs *GameService) Send(gameID string, playerID string, msg ws.Message) error {
	return gs.gameManager.Send(gameID, playerID, msg)
}
