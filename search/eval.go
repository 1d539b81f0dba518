package search

import "github.com/notnil/chess"

var pieceValues = [...]float32{
	chess.NoPieceType: 0,
	chess.King:        0,
	chess.Queen:       9,
	chess.Rook:        5,
	chess.Bishop:      3,
	chess.Knight:      3,
	chess.Pawn:        1,
}

// PieceValue returns the material value of a piece type. Kings are worth nothing;
// mates are found by terminal detection, not by the score.
func PieceValue(t chess.PieceType) float32 {
	if int(t) >= len(pieceValues) {
		return 0
	}
	return pieceValues[t]
}

// Evaluate scores a board by material, from White's point of view.
func Evaluate(b *chess.Board) float32 {
	var score float32
	for sq := chess.A1; sq <= chess.H8; sq++ {
		p := b.Piece(sq)
		switch p.Color() {
		case chess.White:
			score += PieceValue(p.Type())
		case chess.Black:
			score -= PieceValue(p.Type())
		}
	}
	return score
}
