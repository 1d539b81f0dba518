package magic

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/sampleuv"

	"github.com/magichess/game"
)

// Band is the inclusive range of ranks magic squares are drawn from.
type Band struct {
	Low  chess.Rank `json:"low"`
	High chess.Rank `json:"high"`
}

// DefaultBand is the four central ranks, 3 to 6.
func DefaultBand() Band { return Band{Low: chess.Rank3, High: chess.Rank6} }

// Valid reports whether the band can hold four magic squares without touching the back ranks.
func (b Band) Valid() bool {
	return b.Low >= chess.Rank2 && b.High <= chess.Rank7 && b.Low <= b.High
}

func (b Band) Contains(sq chess.Square) bool {
	r := sq.Rank()
	return r >= b.Low && r <= b.High
}

// Squares lists the band's squares from its lowest rank up, files a to h.
func (b Band) Squares() []chess.Square {
	var retVal []chess.Square
	for r := b.Low; r <= b.High; r++ {
		for f := chess.FileA; f <= chess.FileH; f++ {
			retVal = append(retVal, game.SquareOf(f, r))
		}
	}
	return retVal
}

// Registry holds the magic squares of one session. It is never modified after construction.
type Registry struct {
	teleporters [2]chess.Square
	replicators [2]chess.Square
	band        Band
	seed        uint64
}

// Sample draws two teleporters and two replicators from the band, uniformly and without replacement.
// The same seed always yields the same registry.
func Sample(seed uint64, band Band) *Registry {
	if !band.Valid() {
		panic(fmt.Sprintf("invalid magic band %v", band))
	}
	candidates := band.Squares()
	idxs := make([]int, 4)
	sampleuv.WithoutReplacement(idxs, len(candidates), rand.NewSource(seed))

	return &Registry{
		teleporters: [2]chess.Square{candidates[idxs[0]], candidates[idxs[1]]},
		replicators: [2]chess.Square{candidates[idxs[2]], candidates[idxs[3]]},
		band:        band,
		seed:        seed,
	}
}

// NewRegistry builds a registry from an explicit assignment.
// Every square must lie in the band and all four must be distinct.
func NewRegistry(teleporters, replicators [2]chess.Square, band Band) (*Registry, error) {
	var errs error
	if !band.Valid() {
		errs = multierror.Append(errs, errors.Errorf("invalid band %v", band))
	}
	seen := make(map[chess.Square]bool, 4)
	for _, sq := range append(teleporters[:], replicators[:]...) {
		if sq < chess.A1 || sq > chess.H8 {
			errs = multierror.Append(errs, errors.Errorf("square %d is off the board", sq))
			continue
		}
		if !band.Contains(sq) {
			errs = multierror.Append(errs, errors.Errorf("%v is outside ranks %v-%v", sq, band.Low, band.High))
		}
		if seen[sq] {
			errs = multierror.Append(errs, errors.Errorf("%v is assigned twice", sq))
		}
		seen[sq] = true
	}
	if errs != nil {
		return nil, errs
	}
	return &Registry{teleporters: teleporters, replicators: replicators, band: band}, nil
}

func (r *Registry) IsTeleporter(sq chess.Square) bool {
	return sq == r.teleporters[0] || sq == r.teleporters[1]
}

// TeleportPartner returns the other square of the teleporter pair. ok is false if sq is not a teleporter.
func (r *Registry) TeleportPartner(sq chess.Square) (partner chess.Square, ok bool) {
	switch sq {
	case r.teleporters[0]:
		return r.teleporters[1], true
	case r.teleporters[1]:
		return r.teleporters[0], true
	}
	return chess.NoSquare, false
}

func (r *Registry) IsReplicator(sq chess.Square) bool {
	return sq == r.replicators[0] || sq == r.replicators[1]
}

func (r *Registry) Teleporters() [2]chess.Square { return r.teleporters }

func (r *Registry) Replicators() [2]chess.Square { return r.replicators }

func (r *Registry) Band() Band { return r.band }

// Seed returns the seed the registry was sampled with. It is zero for explicit assignments.
func (r *Registry) Seed() uint64 { return r.seed }

func (r *Registry) String() string {
	return fmt.Sprintf("teleporters %v<->%v, replicators %v %v",
		r.teleporters[0], r.teleporters[1], r.replicators[0], r.replicators[1])
}
