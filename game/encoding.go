package game

import (
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// SquareOf returns the square on the given file and rank.
func SquareOf(f chess.File, r chess.Rank) chess.Square {
	return chess.Square(int(r)*ColNum + int(f))
}

// ParseSquare decodes algebraic square names such as "e4".
func ParseSquare(s string) (chess.Square, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return chess.NoSquare, errors.Errorf("bad square %q", s)
	}
	return SquareOf(chess.File(s[0]-'a'), chess.Rank(s[1]-'1')), nil
}

// PieceOf returns the piece of the given type and colour, NoPiece when there is none.
func PieceOf(t chess.PieceType, c chess.Color) chess.Piece {
	for p := chess.WhiteKing; p <= chess.BlackPawn; p++ {
		if p.Type() == t && p.Color() == c {
			return p
		}
	}
	return chess.NoPiece
}

var promotions = map[byte]chess.PieceType{
	'q': chess.Queen,
	'r': chess.Rook,
	'b': chess.Bishop,
	'n': chess.Knight,
}

// FindMove converts a source/destination pair into one of the legal moves of s.
// When promo is NoPieceType and only promotions match, the queen promotion is returned.
func FindMove(s State, from, to chess.Square, promo chess.PieceType) (*chess.Move, error) {
	moves := s.LegalMoves()
	if m := findMove(moves, from, to, promo); m != nil {
		return m, nil
	}
	if promo == chess.NoPieceType {
		if m := findMove(moves, from, to, chess.Queen); m != nil {
			return m, nil
		}
	}
	return nil, errors.Wrapf(ErrIllegalMove, "%v%v", from, to)
}

// ParseUCI decodes a move in UCI notation ("e2e4", "e7e8q") against the legal moves of s.
func ParseUCI(s State, str string) (*chess.Move, error) {
	str = strings.ToLower(strings.TrimSpace(str))
	if len(str) != 4 && len(str) != 5 {
		return nil, errors.Errorf("bad move %q", str)
	}
	from, err := ParseSquare(str[0:2])
	if err != nil {
		return nil, err
	}
	to, err := ParseSquare(str[2:4])
	if err != nil {
		return nil, err
	}
	promo := chess.NoPieceType
	if len(str) == 5 {
		var ok bool
		if promo, ok = promotions[str[4]]; !ok {
			return nil, errors.Errorf("bad promotion in %q", str)
		}
	}
	return FindMove(s, from, to, promo)
}
