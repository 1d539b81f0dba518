package game

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

// frame is one entry of the history. Frames are never mutated once another frame is pushed on top.
type frame struct {
	g    *chess.Game // nil once a magic effect has decided the game by a king
	move *chess.Move // base move that produced this frame, nil at the root

	// only set when g is nil
	board  *chess.Board
	fen    string
	winner chess.Color
}

// Chess is the game.State backed by github.com/notnil/chess.
// The history is a stack: Apply pushes, UndoLastMove pops, Place rewrites the top.
type Chess struct {
	history []frame
}

// NewChess returns a game at the standard starting position.
func NewChess() *Chess {
	return &Chess{history: []frame{{g: chess.NewGame()}}}
}

// FromFEN returns a game starting from the given position. Both kings must be on the board.
func FromFEN(fen string) (*Chess, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, errors.Errorf("FEN %q: expected 6 fields, got %d", fen, len(fields))
	}
	if strings.Count(fields[0], "K") != 1 || strings.Count(fields[0], "k") != 1 {
		return nil, errors.Errorf("FEN %q: each side needs exactly one king", fen)
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding FEN %q", fen)
	}
	return &Chess{history: []frame{{g: chess.NewGame(opt)}}}, nil
}

func (g *Chess) top() *frame { return &g.history[len(g.history)-1] }

func (g *Chess) Board() *chess.Board {
	f := g.top()
	if f.g == nil {
		return f.board
	}
	return f.g.Position().Board()
}

func (g *Chess) PieceAt(sq chess.Square) chess.Piece { return g.Board().Piece(sq) }

func (g *Chess) Turn() chess.Color {
	f := g.top()
	if f.g == nil {
		return colorOf(strings.Fields(f.fen)[1])
	}
	return f.g.Position().Turn()
}

func (g *Chess) MoveNumber() int { return len(g.history) - 1 }

func (g *Chess) LastMove() *chess.Move { return g.top().move }

func (g *Chess) FEN() string {
	f := g.top()
	if f.g == nil {
		return f.fen
	}
	return f.g.Position().String()
}

// Ended reports the outcome as decided by the rules engine. A side that lost its king,
// or left it capturable after a magic effect, has lost.
func (g *Chess) Ended() (ended bool, winner chess.Color) {
	f := g.top()
	if f.g == nil {
		return true, f.winner
	}
	switch f.g.Outcome() {
	case chess.WhiteWon:
		return true, chess.White
	case chess.BlackWon:
		return true, chess.Black
	case chess.Draw:
		return true, chess.NoColor
	}
	return false, chess.NoColor
}

func (g *Chess) LegalMoves() []*chess.Move {
	f := g.top()
	if f.g == nil {
		return nil
	}
	return f.g.ValidMoves()
}

// CanMove reports whether the piece on from has a legal move to to, as if its own side were to move.
// It is false while that side is giving check, since the position would have a capturable king.
func (g *Chess) CanMove(from, to chess.Square) bool {
	f := g.top()
	p := g.PieceAt(from)
	if f.g == nil || p == chess.NoPiece {
		return false
	}
	b := f.g.Position().Board()
	if attacked(b, kingSquare(b, p.Color().Other()), p.Color()) {
		return false
	}
	fields := strings.Fields(f.g.Position().String())
	fields[1] = turnField(p.Color())
	fields[3] = "-"
	opt, err := chess.FEN(strings.Join(fields, " "))
	if err != nil {
		return false
	}
	for _, m := range chess.NewGame(opt).ValidMoves() {
		if m.S1() == from && m.S2() == to {
			return true
		}
	}
	return false
}

// Apply pushes the position after the standard move m. The current position is left untouched on error.
func (g *Chess) Apply(m *chess.Move) error {
	if m == nil {
		return errors.Wrap(ErrIllegalMove, "nil move")
	}
	legal := findMove(g.LegalMoves(), m.S1(), m.S2(), m.Promo())
	if legal == nil {
		return errors.Wrapf(ErrIllegalMove, "%v in %s", m, g.FEN())
	}
	next := g.top().g.Clone()
	if err := next.Move(legal); err != nil {
		return errors.WithStack(err)
	}
	g.history = append(g.history, frame{g: next, move: legal})
	return nil
}

// Place edits the current position directly. Side to move, castling rights and clocks are kept;
// an en passant target whose pawn is gone is dropped.
func (g *Chess) Place(edits ...Edit) {
	f := g.top()
	if len(edits) == 0 || f.g == nil {
		return
	}
	squares := f.g.Position().Board().SquareMap()
	for _, e := range edits {
		if e.Piece == chess.NoPiece {
			delete(squares, e.Square)
			continue
		}
		squares[e.Square] = e.Piece
	}
	fields := strings.Fields(f.g.Position().String())
	*f = settle(chess.NewBoard(squares), fields, f.move)
}

func (g *Chess) UndoLastMove() {
	if len(g.history) > 1 {
		g.history = g.history[:len(g.history)-1]
	}
}

func (g *Chess) Reset() { g.history = g.history[:1] }

func (g *Chess) Eq(other State) bool {
	if other == nil {
		return false
	}
	return g.FEN() == other.FEN()
}

func (g *Chess) Clone() State {
	history := make([]frame, len(g.history))
	copy(history, g.history)
	return &Chess{history: history}
}

func (g *Chess) ShowBoard() { fmt.Println(g.Board().Draw()) }

// settle rebuilds a frame from an edited board and the FEN fields of the position it replaces.
// A side without a king, or whose king can be taken by the side to move, has lost; such frames
// carry no game since the rules engine cannot handle them.
func settle(b *chess.Board, fields []string, move *chess.Move) frame {
	turn := colorOf(fields[1])
	fields[0] = b.String()
	fields[3] = enPassantField(b, fields[3])
	fen := strings.Join(fields, " ")

	wk, bk := kingSquare(b, chess.White), kingSquare(b, chess.Black)
	switch {
	case wk == chess.NoSquare && bk == chess.NoSquare:
		return frame{move: move, board: b, fen: fen, winner: chess.NoColor}
	case wk == chess.NoSquare:
		return frame{move: move, board: b, fen: fen, winner: chess.Black}
	case bk == chess.NoSquare:
		return frame{move: move, board: b, fen: fen, winner: chess.White}
	}

	exposed := wk
	if turn == chess.White {
		exposed = bk
	}
	if attacked(b, exposed, turn) {
		return frame{move: move, board: b, fen: fen, winner: turn}
	}

	opt, err := chess.FEN(fen)
	if err != nil {
		panic(errors.Wrapf(err, "rebuilding %q", fen))
	}
	return frame{g: chess.NewGame(opt), move: move}
}

func findMove(moves []*chess.Move, from, to chess.Square, promo chess.PieceType) *chess.Move {
	for _, m := range moves {
		if m.S1() == from && m.S2() == to && m.Promo() == promo {
			return m
		}
	}
	return nil
}

func kingSquare(b *chess.Board, c chess.Color) chess.Square {
	king := PieceOf(chess.King, c)
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if b.Piece(sq) == king {
			return sq
		}
	}
	return chess.NoSquare
}

// enPassantField keeps the en passant target only while the pawn that skipped over it is still there.
func enPassantField(b *chess.Board, ep string) string {
	if len(ep) != 2 {
		return "-"
	}
	file, rank := int(ep[0]-'a'), int(ep[1]-'1')
	var pawn chess.Piece
	switch rank {
	case 2:
		pawn, rank = chess.WhitePawn, 3
	case 5:
		pawn, rank = chess.BlackPawn, 4
	default:
		return "-"
	}
	if b.Piece(SquareOf(chess.File(file), chess.Rank(rank))) != pawn {
		return "-"
	}
	return ep
}

func colorOf(field string) chess.Color {
	if field == "b" {
		return chess.Black
	}
	return chess.White
}

func turnField(c chess.Color) string {
	if c == chess.Black {
		return "b"
	}
	return "w"
}
