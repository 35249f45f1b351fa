package camelot

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTurnNotation(t *testing.T) {
	squares, captured, err := ParseTurnNotation("E6-F7-G8")
	require.NoError(t, err)
	assert.False(t, captured)
	assert.Equal(t, []Square{"E6", "F7", "G8"}, squares)

	squares, captured, err = ParseTurnNotation("C6xE8xG10")
	require.NoError(t, err)
	assert.True(t, captured)
	assert.Equal(t, []Square{"C6", "E8", "G10"}, squares)

	for _, bad := range []string{"", "E6", "E6-F7xG8", "E6-Z9", "A1-B2", "E6--E8"} {
		_, _, err := ParseTurnNotation(bad)
		assert.True(t, errors.Is(err, ErrMalformedSquare), bad)
	}
}

func TestReplayHistory(t *testing.T) {
	t.Run("empty history", func(t *testing.T) {
		board, next, err := ReplayHistory(nil)
		require.NoError(t, err)
		assert.Equal(t, White, next)
		assert.Equal(t, InitialBoardState(), board)
	})

	t.Run("double capture", func(t *testing.T) {
		board, next, err := ReplayHistory([]string{"E7-E8", "E10-E9", "E8xE10xE12"})
		require.NoError(t, err)
		assert.Equal(t, Black, next)
		assert.Equal(t, &whiteMan, board.At("E12"))
		for _, sq := range []Square{"E7", "E8", "E9", "E10", "E11"} {
			assert.Nil(t, board.At(sq), sq)
		}
		assert.Equal(t, 20, board.Count(White))
		assert.Equal(t, 18, board.Count(Black))
	})

	tests := []struct {
		name    string
		history []string
		want    error
	}{
		{name: "illegal step", history: []string{"E7-E9"}, want: ErrInvalidMove},
		{name: "black moves first", history: []string{"E10-E9"}, want: ErrInvalidMove},
		{name: "capture skipped", history: []string{"E7-E8", "E10-E9", "C7-C8"}, want: ErrInvalidMove},
		{name: "stopped mid capture", history: []string{"E7-E8", "E10-E9", "E8xE10"}, want: ErrIncompleteTurn},
		{name: "wrong separator", history: []string{"E7xE8"}, want: ErrInvalidMove},
		{name: "bad square", history: []string{"E7-E8", "E10-Q9"}, want: ErrMalformedSquare},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ReplayHistory(tt.history)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestReplayStopsAtDecisivePosition(t *testing.T) {
	start := boardWith(map[Square]Piece{
		"G16": whiteMan,
		"H15": whiteMan,
		"A5":  blackMan,
	})

	board, next, err := replayFrom(start, White, []string{"H15-H16"})
	require.NoError(t, err)
	assert.Equal(t, Black, next)
	assert.Equal(t, CastleOccupation, CheckWinCondition(board, White))

	_, _, err = replayFrom(start, White, []string{"H15-H16", "A5-A6"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGameOver), "got %v", err)
	assert.Equal(t, "GameOver", RuleName(err))
}

func TestTurnMoveType(t *testing.T) {
	tests := []struct {
		name string
		turn TurnState
		want MoveType
	}{
		{name: "plain", turn: TurnState{Moves: []Square{"E7", "E8"}}, want: MovePlain},
		{name: "single canter", turn: TurnState{Moves: []Square{"E6", "E8"}}, want: MoveCanter},
		{name: "canter chain", turn: TurnState{Moves: []Square{"E6", "E8", "G8"}}, want: MoveCanter},
		{name: "jump", turn: TurnState{Moves: []Square{"E8", "E10"}, CapturedSquares: []Square{"E9"}}, want: MoveJump},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TurnMoveType(tt.turn))
		})
	}
}
