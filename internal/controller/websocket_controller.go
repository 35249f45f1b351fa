package controller

import (
	"encoding/json"

	"github.com/benbeisheim/camelot-backend/internal/camelot"
	"github.com/benbeisheim/camelot-backend/internal/service"
	"github.com/benbeisheim/camelot-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
	"github.com/pkg/errors"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

func (wsc *WebSocketController) gameExists(gameID string) bool {
	_, err := wsc.gameService.GetGameState(gameID)
	return err == nil
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	// Set by middleware.WebSocketUpgrade before the upgrade
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		log.Warnf("failed to register connection for %s in game %s: %v", playerID, gameID, err)
		c.Close()
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debugf("read error for %s in game %s: %v", playerID, gameID, err)
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.sendError(gameID, playerID, errors.Wrap(err, "parse error"))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugf("game %s: %s rejected: %v", gameID, msg.Type, err)
			wsc.sendError(gameID, playerID, err)
		}
	}
}

// Handle different types of incoming messages
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeSelect:
		sq, err := squareOf(msg)
		if err != nil {
			return err
		}
		return wsc.gameService.SelectSquare(gameID, playerID, sq)

	case ws.MessageTypeStep:
		sq, err := squareOf(msg)
		if err != nil {
			return err
		}
		return wsc.gameService.Step(gameID, playerID, sq)

	case ws.MessageTypeSubmit:
		return wsc.gameService.SubmitTurn(gameID, playerID)

	case ws.MessageTypeCancel:
		return wsc.gameService.CancelTurn(gameID, playerID)

	case ws.MessageTypeResign:
		return wsc.gameService.Resign(gameID, playerID)

	default:
		return errors.Errorf("unknown message type: %s", msg.Type)
	}
}

func squareOf(msg ws.Message) (camelot.Square, error) {
	var p ws.SquarePayload
	if err := json.Unmarshal(msg.Payload, &p); err != nil {
		return "", errors.Wrapf(err, "bad %s payload", msg.Type)
	}
	return p.Square, nil
}

// Helper method to send error messages
func (wsc *WebSocketController) sendError(gameID, playerID string, err error) {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{
		Error: err.Error(),
		Rule:  camelot.RuleName(err),
	})
	if merr != nil {
		log.Errorf("failed to marshal error message: %v", merr)
		return
	}
	if err := wsc.gameService.Send(gameID, playerID, msg); err != nil {
		log.Warnf("failed to send error to %s: %v", playerID, err)
	}
}
