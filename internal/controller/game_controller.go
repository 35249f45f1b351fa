package controller

import (
	"github.com/benbeisheim/camelot-backend/internal/camelot"
	"github.com/benbeisheim/camelot-backend/internal/model"
	"github.com/benbeisheim/camelot-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/pkg/errors"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, err := gc.gameService.CreateGame()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	gameID := c.Params("gameId")
	playerID := c.Locals("playerID").(string)
	log.Debugf("player %s joining game %s", playerID, gameID)

	color, err := gc.gameService.JoinGame(gameID, playerID)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(gameState)
}

// PreviewMoves lists the first steps available from a square without starting a turn.
func (gc *GameController) PreviewMoves(c *fiber.Ctx) error {
	sq := camelot.Square(c.Params("square"))
	moves, err := gc.gameService.PreviewMoves(c.Params("gameId"), sq)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"square":     sq,
		"legalMoves": moves,
	})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidBoard):
		return fiber.StatusBadRequest
	case camelot.IsRuleViolation(err):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrPlayerNotInGame), errors.Is(err, model.ErrNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrGameFull), errors.Is(err, service.ErrGameExists),
		errors.Is(err, model.ErrGameNotActive), errors.Is(err, model.ErrNotYourTurn),
		errors.Is(err, model.ErrTurnInProgress), errors.Is(err, model.ErrNoTurnInProgress):
		return fiber.StatusConflict
	case errors.Is(err, model.ErrNotYourPiece), errors.Is(err, model.ErrNoLegalMoves),
		errors.Is(err, model.ErrTurnIncomplete), errors.Is(err, model.ErrIllegalStep):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// errorResponse writes err as JSON, naming the broken rule when there is one.
func errorResponse(c *fiber.Ctx, err error) error {
	status := errorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}
	body := fiber.Map{"error": err.Error()}
	if rule := camelot.RuleName(err); rule != "" {
		body["rule"] = rule
	}
	return c.Status(status).JSON(body)
}
