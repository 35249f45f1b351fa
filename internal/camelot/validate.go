package camelot

import (
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ValidateBoard checks that board covers every square, holds nothing off the
// board and only known pieces. Every problem found is reported.
func ValidateBoard(board BoardState) error {
	var result *multierror.Error

	for _, sq := range AllSquares {
		if _, ok := board[sq]; !ok {
			result = multierror.Append(result, errors.Errorf("square %s missing", sq))
		}
	}

	keys := make([]Square, 0, len(board))
	for sq := range board {
		keys = append(keys, sq)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, sq := range keys {
		pc := board[sq]
		if !IsValidSquare(sq) {
			result = multierror.Append(result, errors.Errorf("square %q is not on the board", sq))
			continue
		}
		if pc == nil {
			continue
		}
		if !pc.Color.Valid() {
			result = multierror.Append(result, errors.Errorf("piece on %s has unknown color %q", sq, pc.Color))
		}
		if pc.Type != Man && pc.Type != Knight {
			result = multierror.Append(result, errors.Errorf("piece on %s has unknown type %q", sq, pc.Type))
		}
	}

	return result.ErrorOrNil()
}
