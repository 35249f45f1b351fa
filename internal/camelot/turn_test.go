package camelot

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInitialMoves(t *testing.T) {
	t.Run("opening man", func(t *testing.T) {
		moves := GetInitialMoves("E7", InitialBoardState(), White)
		assert.ElementsMatch(t, []LegalMove{
			{Type: MovePlain, To: "E8"},
			{Type: MovePlain, To: "D8"},
			{Type: MovePlain, To: "F8"},
			{Type: MoveCanter, To: "E5"},
			{Type: MoveCanter, To: "C5"},
			{Type: MoveCanter, To: "G5"},
		}, moves)
	})

	t.Run("opponent piece", func(t *testing.T) {
		assert.Empty(t, GetInitialMoves("E10", InitialBoardState(), White))
		assert.Empty(t, GetInitialMoves("E8", InitialBoardState(), White))
	})

	t.Run("capture is mandatory", func(t *testing.T) {
		b := boardWith(map[Square]Piece{
			"E6": whiteMan,
			"E7": blackMan,
			"K6": whiteKnight,
		})
		assert.Empty(t, GetInitialMoves("K6", b, White))
		assert.Equal(t, []LegalMove{{Type: MoveJump, To: "E8"}}, GetInitialMoves("E6", b, White))
	})

	t.Run("own castle excluded", func(t *testing.T) {
		b := boardWith(map[Square]Piece{"G2": whiteMan})
		targets := moveTargets(GetInitialMoves("G2", b, White))
		assert.Len(t, targets, 5)
		assert.NotContains(t, targets, Square("G1"))
		assert.NotContains(t, targets, Square("H1"))
	})
}

func TestExecuteStepViolations(t *testing.T) {
	tests := []struct {
		name  string
		board BoardState
		turn  TurnState
		color Color
		to    Square
		want  error
	}{
		{
			name:  "empty start",
			board: NewBoardState(),
			turn:  NewTurnState("E6"),
			color: White,
			to:    "E7",
			want:  ErrNoPieceAtPosition,
		},
		{
			name:  "piece of the other color",
			board: boardWith(map[Square]Piece{"E6": blackMan}),
			turn:  NewTurnState("E6"),
			color: White,
			to:    "E7",
			want:  ErrNoPieceAtPosition,
		},
		{
			name:  "too far",
			board: boardWith(map[Square]Piece{"E6": whiteMan}),
			turn:  NewTurnState("E6"),
			color: White,
			to:    "E9",
			want:  ErrInvalidMove,
		},
		{
			name:  "plain move after a canter",
			board: boardWith(map[Square]Piece{"E8": whiteKnight, "E7": whiteMan}),
			turn:  TurnState{Moves: []Square{"E6", "E8"}, CapturedSquares: []Square{}},
			color: White,
			to:    "E9",
			want:  ErrInvalidSequence,
		},
		{
			name:  "canter after a jump",
			board: boardWith(map[Square]Piece{"E10": whiteKnight, "E11": whiteMan}),
			turn:  TurnState{Moves: []Square{"E8", "E10"}, CapturedSquares: []Square{"E9"}},
			color: White,
			to:    "E12",
			want:  ErrMustContinueJumping,
		},
		{
			name:  "man charging",
			board: boardWith(map[Square]Piece{"E8": whiteMan, "E9": blackMan}),
			turn:  TurnState{Moves: []Square{"E6", "E8"}, CapturedSquares: []Square{}},
			color: White,
			to:    "E10",
			want:  ErrKnightsOnlyCharge,
		},
		{
			name:  "into own castle",
			board: boardWith(map[Square]Piece{"G2": whiteMan}),
			turn:  NewTurnState("G2"),
			color: White,
			to:    "G1",
			want:  ErrInvalidMove,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.board.Clone()
			_, err := ExecuteStep(tt.to, tt.board, tt.turn, tt.color, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, IsRuleViolation(err))
			assert.Equal(t, before, tt.board)
		})
	}
}

func TestExecuteStepPlain(t *testing.T) {
	b := InitialBoardState()
	turn := NewTurnState("E7")
	res, err := ExecuteStep("E8", b, turn, White, GetInitialMoves("E7", b, White))
	require.NoError(t, err)

	assert.Nil(t, res.Board.At("E7"))
	assert.Equal(t, &whiteMan, res.Board.At("E8"))
	assert.Equal(t, []Square{"E7", "E8"}, res.Turn.Moves)
	assert.Empty(t, res.LegalNextMoves)
	assert.False(t, res.Turn.MustContinue)
	assert.Equal(t, "E7-E8", TurnNotation(res.Turn))

	// inputs untouched
	assert.Equal(t, &whiteMan, b.At("E7"))
	assert.Equal(t, []Square{"E7"}, turn.Moves)
}

func TestExecuteStepCannotEndOnStart(t *testing.T) {
	b := boardWith(map[Square]Piece{"E6": whiteKnight, "E7": whiteMan})

	res, err := ExecuteStep("E8", b, NewTurnState("E6"), White, GetInitialMoves("E6", b, White))
	require.NoError(t, err)
	assert.False(t, res.Turn.MustContinue)
	assert.Contains(t, res.LegalNextMoves, LegalMove{Type: MoveCanter, To: "E6"})

	res, err = ExecuteStep("E6", res.Board, res.Turn, White, res.LegalNextMoves)
	require.NoError(t, err)
	assert.True(t, res.Turn.MustContinue)
	assert.Equal(t, msgStartSquare, res.Message)
	assert.Equal(t, []Square{"E6", "E8", "E6"}, res.Turn.Moves)
}

func TestExecuteStepMandatoryJumpAfterCanter(t *testing.T) {
	b := boardWith(map[Square]Piece{
		"E6": whiteKnight,
		"E7": whiteMan,
		"E9": blackMan,
	})

	res, err := ExecuteStep("E8", b, NewTurnState("E6"), White, GetInitialMoves("E6", b, White))
	require.NoError(t, err)
	assert.True(t, res.Turn.MustContinue)
	assert.False(t, res.Turn.MustCharge)
	assert.Equal(t, msgMustJumpOrCharge, res.Message)
	assert.Equal(t, []LegalMove{
		{Type: MoveJump, To: "E10"},
		{Type: MoveCanter, To: "E6"},
	}, res.LegalNextMoves)

	res, err = ExecuteStep("E10", res.Board, res.Turn, White, res.LegalNextMoves)
	require.NoError(t, err)
	assert.False(t, res.Turn.MustContinue)
	assert.Equal(t, []Square{"E9"}, res.Turn.CapturedSquares)
	assert.Nil(t, res.Board.At("E9"))
	assert.Equal(t, &whiteKnight, res.Board.At("E10"))
	assert.Equal(t, "E6xE8xE10", TurnNotation(res.Turn))
}

func TestExecuteStepCharge(t *testing.T) {
	pieces := map[Square]Piece{
		"E6":  whiteKnight,
		"E7":  whiteMan,
		"F8":  whiteMan,
		"D10": whiteMan,
		"E9":  blackMan,
		"H9":  blackMan,
	}

	t.Run("knight", func(t *testing.T) {
		b := boardWith(pieces)
		require.Empty(t, CheckFirstMovePossibleJumps(b, White))

		res, err := ExecuteStep("E8", b, NewTurnState("E6"), White, GetInitialMoves("E6", b, White))
		require.NoError(t, err)
		assert.Equal(t, []LegalMove{
			{Type: MoveJump, To: "E10"},
			{Type: MoveCanter, To: "E6"},
			{Type: MoveCanter, To: "G8"},
		}, res.LegalNextMoves)

		// cantering away from an available jump commits the knight to a charge
		res, err = ExecuteStep("G8", res.Board, res.Turn, White, res.LegalNextMoves)
		require.NoError(t, err)
		assert.True(t, res.Turn.MustCharge)
		assert.True(t, res.Turn.MustContinue)
		assert.Equal(t, []LegalMove{
			{Type: MoveJump, To: "I10"},
			{Type: MoveCanter, To: "E8"},
		}, res.LegalNextMoves)

		res, err = ExecuteStep("I10", res.Board, res.Turn, White, res.LegalNextMoves)
		require.NoError(t, err)
		assert.False(t, res.Turn.MustCharge)
		assert.False(t, res.Turn.MustContinue)
		assert.Empty(t, res.LegalNextMoves)
		assert.Equal(t, []Square{"H9"}, res.Turn.CapturedSquares)
		assert.Equal(t, "E6xE8xG8xI10", TurnNotation(res.Turn))
	})

	t.Run("man", func(t *testing.T) {
		manPieces := make(map[Square]Piece, len(pieces))
		for sq, pc := range pieces {
			manPieces[sq] = pc
		}
		manPieces["E6"] = whiteMan
		b := boardWith(manPieces)

		res, err := ExecuteStep("E8", b, NewTurnState("E6"), White, GetInitialMoves("E6", b, White))
		require.NoError(t, err)
		assert.False(t, res.Turn.MustContinue)
		assert.Equal(t, []LegalMove{
			{Type: MoveCanter, To: "E6"},
			{Type: MoveCanter, To: "G8"},
		}, res.LegalNextMoves)

		_, err = ExecuteStep("E10", res.Board, res.Turn, White, res.LegalNextMoves)
		assert.True(t, errors.Is(err, ErrKnightsOnlyCharge))
		assert.Equal(t, "KnightsOnlyCharge", RuleName(err))
	})
}

func TestExecuteStepOpponentCastle(t *testing.T) {
	b := boardWith(map[Square]Piece{
		"G14": whiteKnight,
		"G15": whiteMan,
	})

	res, err := ExecuteStep("G16", b, NewTurnState("G14"), White, GetInitialMoves("G14", b, White))
	require.NoError(t, err)
	assert.Equal(t, msgOpponentCastle, res.Message)
	assert.Empty(t, res.LegalNextMoves)
	assert.False(t, res.Turn.MustContinue)
	assert.Equal(t, &whiteKnight, res.Board.At("G16"))
}

func TestExecuteStepDeterministic(t *testing.T) {
	b := boardWith(map[Square]Piece{
		"E6": whiteKnight,
		"E7": whiteMan,
		"E9": blackMan,
	})
	legal := GetInitialMoves("E6", b, White)

	first, err := ExecuteStep("E8", b, NewTurnState("E6"), White, legal)
	require.NoError(t, err)
	second, err := ExecuteStep("E8", b, NewTurnState("E6"), White, legal)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPossibleCharges(t *testing.T) {
	// A ring of canters E6 -> E8 -> G8 -> G6 -> E6.
	ring := map[Square]Piece{
		"E6": whiteKnight,
		"E7": whiteMan,
		"F8": whiteMan,
		"G7": whiteMan,
		"F6": whiteMan,
	}

	t.Run("cycle without a jump terminates", func(t *testing.T) {
		assert.Empty(t, PossibleCharges("E6", boardWith(ring), White))
	})

	t.Run("every entry to the ring reaches the jump", func(t *testing.T) {
		pieces := map[Square]Piece{"H9": blackMan}
		for sq, pc := range ring {
			pieces[sq] = pc
		}
		assert.Equal(t, []Square{"E8", "G6"}, PossibleCharges("E6", boardWith(pieces), White))
	})

	t.Run("invalid square", func(t *testing.T) {
		assert.Empty(t, PossibleCharges("A1", boardWith(ring), White))
	})
}

func TestTurnNotation(t *testing.T) {
	turn := TurnState{Moves: []Square{"A1", "B2", "C3"}, CapturedSquares: []Square{}}
	assert.Equal(t, "A1-B2-C3", TurnNotation(turn))

	turn.CapturedSquares = []Square{"B2"}
	assert.Equal(t, "A1xB2xC3", TurnNotation(turn))

	assert.Equal(t, "", TurnNotation(NewTurnState("E6")))
}
