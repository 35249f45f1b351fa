package model

import (
	"github.com/benbeisheim/camelot-backend/internal/camelot"
)

type ClientPlayer struct {
	ID       string        `json:"name"`
	Color    camelot.Color `json:"color"`
	TimeLeft int64         `json:"timeLeft"` // milliseconds
}

type Players struct {
	White ClientPlayer `json:"white"`
	Black ClientPlayer `json:"black"`
}

// ColorOf returns the seat held by playerID.
func (p Players) ColorOf(playerID string) (camelot.Color, bool) {
	switch {
	case playerID == "":
		return "", false
	case p.White.ID == playerID:
		return camelot.White, true
	case p.Black.ID == playerID:
		return camelot.Black, true
	}
	return "", false
}

func (p Players) full() bool {
	return p.White.ID != "" && p.Black.ID != ""
}
