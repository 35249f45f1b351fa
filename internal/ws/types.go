package ws

import (
	"encoding/json"

	"github.com/benbeisheim/camelot-backend/internal/camelot"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// inbound
	MessageTypeSelect MessageType = "select"
	MessageTypeStep   MessageType = "step"
	MessageTypeSubmit MessageType = "submit"
	MessageTypeCancel MessageType = "cancel"
	MessageTypeResign MessageType = "resign"

	// outbound
	MessageTypeGameState MessageType = "gameState"
	MessageTypeError     MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// SquarePayload carries the square of a select or step message.
type SquarePayload struct {
	Square camelot.Square `json:"square"`
}

type ErrorPayload struct {
	Error string `json:"error"`
	Rule  string `json:"rule,omitempty"`
}

// NewMessage marshals payload into an envelope of type t.
func NewMessage(t MessageType, payload interface{}) (Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: t, Payload: raw}, nil
}
