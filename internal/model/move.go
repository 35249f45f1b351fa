package model

import (
	"github.com/benbeisheim/camelot-backend/internal/camelot"
)

// TurnRecord is one submitted turn as shown in the move history.
type TurnRecord struct {
	Number   int              `json:"moveNumber"`
	Color    camelot.Color    `json:"color"`
	Notation string           `json:"notation"`
	From     camelot.Square   `json:"from"`
	To       camelot.Square   `json:"to"`
	Captured []camelot.Square `json:"capturedSquares"`
	Type     camelot.MoveType `json:"moveType"`
}

func newTurnRecord(number int, color camelot.Color, turn camelot.TurnState) TurnRecord {
	return TurnRecord{
		Number:   number,
		Color:    color,
		Notation: camelot.TurnNotation(turn),
		From:     turn.Start(),
		To:       turn.Current(),
		Captured: append([]camelot.Square{}, turn.CapturedSquares...),
		Type:     camelot.TurnMoveType(turn),
	}
}

// CastleMoves counts, per color, the turns that ended inside the opponent's castle.
type CastleMoves struct {
	White int `json:"white"`
	Black int `json:"black"`
}

func (c *CastleMoves) add(color camelot.Color) {
	if color == camelot.White {
		c.White++
	} else {
		c.Black++
	}
}
