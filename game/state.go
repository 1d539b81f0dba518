package game

import (
	"github.com/notnil/chess"
	"github.com/pkg/errors"
)

const (
	RowNum = 8
	ColNum = 8
)

// ErrIllegalMove is returned when a proposed move is not among the legal moves of the current position.
var ErrIllegalMove = errors.New("illegal move")

// Edit is a single direct placement on the board. A NoPiece edit clears the square.
type Edit struct {
	Square chess.Square
	Piece  chess.Piece
}

// State is any game that implements these and are able to report back
type State interface {
	// These methods represent the game state
	Board() *chess.Board                 // return board state.
	PieceAt(sq chess.Square) chess.Piece // piece on sq, chess.NoPiece when empty.
	Turn() chess.Color                   // Turn returns the color to move next.
	MoveNumber() int                     // returns count of moves so far that led to this point.
	LastMove() *chess.Move               // returns the last base move, nil at the root.
	FEN() string                         // FEN of the current position.

	// Meta-game stuff
	Ended() (ended bool, winner chess.Color) // has the game ended? if yes, then who's the winner?

	// interactions
	LegalMoves() []*chess.Move          // legal base moves of the current position.
	CanMove(from, to chess.Square) bool // could the piece on from legally move to to, were its side to move.
	Apply(m *chess.Move) error          // pushes the position after the standard move.
	Place(edits ...Edit)                // direct placement outside the movement rules.
	Reset()                             // reset state.

	// For search
	UndoLastMove()

	// generics
	Eq(other State) bool
	Clone() State
	ShowBoard()
}
