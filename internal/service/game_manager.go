// service/game_manager.go
package service

import (
	"sync"

	"github.com/benbeisheim/camelot-backend/internal/camelot"
	"github.com/benbeisheim/camelot-backend/internal/model"
	"github.com/benbeisheim/camelot-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

type GameManager struct {
	games       map[string]*model.Game
	timeControl model.TimeControl
	mu          sync.RWMutex
}

func NewGameManager(tc model.TimeControl) *GameManager {
	return &GameManager{
		games:       make(map[string]*model.Game),
		timeControl: tc,
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}

	gm.games[gameID] = model.NewGame(gameID, gm.timeControl)
	log.Infof("created game %s", gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Game, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	game, exists := gm.games[gameID]
	if !exists {
		return nil, errors.Wrap(ErrGameNotFound, gameID)
	}

	return game, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (camelot.Color, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return game.AddPlayer(playerID)
}

func (gm *GameManager) GetGameState(gameID string) (model.GameState, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return model.GameState{}, err
	}
	return game.GetState(), nil
}

func (gm *GameManager) PreviewMoves(gameID string, sq camelot.Square) ([]camelot.LegalMove, error) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	return game.PreviewMoves(sq)
}

// Do runs one player action against a game. The game serialises actions itself.
func (gm *GameManager) Do(gameID string, action func(*model.Game) error) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return action(game)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn model.Conn) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn model.Conn) {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	game.UnregisterConnection(playerID, conn)
}

func (gm *GameManager) Send(gameID string, playerID string, msg ws.Message) error {
	game, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return game.Send(playerID, msg)
}

// Shutdown closes the observers of every game.
func (gm *GameManager) Shutdown() error {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	var result *multierror.Error
	for id, game := range gm.games {
		if err := game.Close(); err != nil {
			result = multierror.Append(result, errors.WithMessagef(err, "game %s", id))
		}
	}
	return result.ErrorOrNil()
}
