package game

import "github.com/notnil/chess"

type step struct{ df, dr int }

var (
	knightJumps = [...]step{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [...]step{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	straight    = [...]step{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}
	diagonal    = [...]step{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
)

// offset returns the square (df, dr) away from sq, ok is false off the board.
func offset(sq chess.Square, s step) (chess.Square, bool) {
	f, r := int(sq.File())+s.df, int(sq.Rank())+s.dr
	if f < 0 || f >= ColNum || r < 0 || r >= RowNum {
		return chess.NoSquare, false
	}
	return SquareOf(chess.File(f), chess.Rank(r)), true
}

// attacked reports whether any piece of colour by attacks sq, whichever side is to move.
func attacked(b *chess.Board, sq chess.Square, by chess.Color) bool {
	is := func(s step, types ...chess.PieceType) bool {
		to, ok := offset(sq, s)
		if !ok {
			return false
		}
		p := b.Piece(to)
		for _, t := range types {
			if p == PieceOf(t, by) {
				return true
			}
		}
		return false
	}

	// a pawn attacks from one rank behind, seen from its own side
	back := -1
	if by == chess.Black {
		back = 1
	}
	if is(step{-1, back}, chess.Pawn) || is(step{1, back}, chess.Pawn) {
		return true
	}
	for _, s := range knightJumps {
		if is(s, chess.Knight) {
			return true
		}
	}
	for _, s := range kingSteps {
		if is(s, chess.King) {
			return true
		}
	}
	return slides(b, sq, by, straight[:], chess.Rook) || slides(b, sq, by, diagonal[:], chess.Bishop)
}

// slides looks along each ray from sq for the first piece and checks whether it is a slider of colour by.
func slides(b *chess.Board, sq chess.Square, by chess.Color, rays []step, slider chess.PieceType) bool {
	for _, ray := range rays {
		for cur, ok := offset(sq, ray); ok; cur, ok = offset(cur, ray) {
			p := b.Piece(cur)
			if p == chess.NoPiece {
				continue
			}
			if p.Color() == by && (p.Type() == slider || p.Type() == chess.Queen) {
				return true
			}
			break
		}
	}
	return false
}
