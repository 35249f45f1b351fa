package controller

import (
	"github.com/benbeisheim/camelot-backend/internal/camelot"
	"github.com/benbeisheim/camelot-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

// EngineController exposes the rules engine on board snapshots sent by the client.
type EngineController struct {
	engine *service.EngineService
}

func NewEngineController(engine *service.EngineService) *EngineController {
	return &EngineController{engine: engine}
}

type movesRequest struct {
	Board  camelot.BoardState `json:"boardState"`
	Color  camelot.Color      `json:"color"`
	Square camelot.Square     `json:"square"`
}

type stepRequest struct {
	To              camelot.Square      `json:"to"`
	Board           camelot.BoardState  `json:"boardState"`
	Turn            camelot.TurnState   `json:"turnState"`
	Color           camelot.Color       `json:"color"`
	OtherLegalMoves []camelot.LegalMove `json:"otherLegalMoves"`
}

type winRequest struct {
	Board camelot.BoardState `json:"boardState"`
	Color camelot.Color      `json:"color"`
}

type replayRequest struct {
	MoveHistory []string `json:"moveHistory"`
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid request body: " + err.Error(),
	})
}

func (ec *EngineController) Moves(c *fiber.Ctx) error {
	var req movesRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	moves, err := ec.engine.InitialMoves(req.Board, req.Color, req.Square)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{"legalMoves": moves})
}

func (ec *EngineController) Step(c *fiber.Ctx) error {
	var req stepRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	res, err := ec.engine.Step(req.To, req.Board, req.Turn, req.Color, req.OtherLegalMoves)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"newBoardState":  res.Board,
		"newTurnState":   res.Turn,
		"legalNextMoves": res.LegalNextMoves,
		"message":        res.Message,
		"notation":       camelot.TurnNotation(res.Turn),
	})
}

func (ec *EngineController) Win(c *fiber.Ctx) error {
	var req winRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	reason, err := ec.engine.CheckWin(req.Board, req.Color)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"won":       reason != camelot.NoWin,
		"winReason": reason,
	})
}

func (ec *EngineController) Replay(c *fiber.Ctx) error {
	var req replayRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, err)
	}
	board, next, err := ec.engine.Replay(req.MoveHistory)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"boardState": board,
		"toMove":     next,
	})
}
