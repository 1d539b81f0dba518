package search

import (
	"testing"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"

	"github.com/magichess/game"
)

// mirror swaps the colours of every piece and flips the board top to bottom.
func mirror(b *chess.Board) *chess.Board {
	squares := make(map[chess.Square]chess.Piece)
	for sq, p := range b.SquareMap() {
		flipped := game.SquareOf(sq.File(), chess.Rank8-sq.Rank())
		squares[flipped] = game.PieceOf(p.Type(), p.Color().Other())
	}
	return chess.NewBoard(squares)
}

func TestPieceValue(t *testing.T) {
	cases := map[chess.PieceType]float32{
		chess.King:        0,
		chess.Queen:       9,
		chess.Rook:        5,
		chess.Bishop:      3,
		chess.Knight:      3,
		chess.Pawn:        1,
		chess.NoPieceType: 0,
	}
	for pt, want := range cases {
		assert.Equal(t, want, PieceValue(pt), "%v", pt)
	}
}

func TestEvaluate(t *testing.T) {
	cases := []struct {
		fen  string
		want float32
	}{
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", 0},
		{"4k3/8/8/8/8/8/8/R3K3 w - - 0 1", 5},
		{"4k3/8/8/8/8/8/q7/R3K3 w - - 0 1", -4},
		{"4k3/pppppppp/8/8/8/8/8/4K3 b - - 0 1", -8},
		{"r3k3/8/8/3q4/4N3/8/5PPP/4R1K1 w - - 0 1", -3},
	}
	for _, c := range cases {
		g, err := game.FromFEN(c.fen)
		if !assert.NoError(t, err) {
			continue
		}
		b := g.Board()
		assert.Equal(t, c.want, Evaluate(b), c.fen)
		assert.Equal(t, -c.want, Evaluate(mirror(b)), "mirror of %s", c.fen)
	}
}
