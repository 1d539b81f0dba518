package magichess

import (
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/notnil/chess"
	"github.com/pkg/errors"

	"github.com/magichess/magic"
	"github.com/magichess/search"
)

var (
	ErrGameOver    = errors.New("game is over")
	ErrNotYourTurn = errors.New("not your turn")
	ErrNoMove      = errors.New("no move to take back")
)

// Mode selects who plays the two sides of a session.
type Mode int

const (
	TwoPlayer Mode = iota // two humans share the board
	VsAI                  // a human against the search engine
)

func (m Mode) String() string {
	switch m {
	case TwoPlayer:
		return "two-player"
	case VsAI:
		return "vs-ai"
	}
	return "UNKNOWN MODE"
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "two-player", "pvp", "1":
		*m = TwoPlayer
	case "vs-ai", "ai", "2":
		*m = VsAI
	default:
		return errors.Errorf("unknown mode %q", text)
	}
	return nil
}

// Config for a session.
// It holds the game mode, the magic-square placement and the search settings of the computer player.
type Config struct {
	Name    string        `json:"name"`
	Mode    Mode          `json:"mode"`
	AIColor chess.Color   `json:"ai_color"` // side the computer plays in VsAI mode
	Seed    uint64        `json:"seed"`     // magic-square placement seed
	Band    magic.Band    `json:"band"`
	Search  search.Config `json:"search"`
}

// DefaultConfig plays against the computer as White, with a fresh placement seed.
func DefaultConfig() Config {
	return Config{
		Name:    "Chess with Magic Squares",
		Mode:    VsAI,
		AIColor: chess.Black,
		Seed:    uint64(time.Now().UnixNano()),
		Band:    magic.DefaultBand(),
		Search:  search.DefaultConfig(),
	}
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs error
	if c.Mode != TwoPlayer && c.Mode != VsAI {
		errs = multierror.Append(errs, errors.Errorf("unknown mode %d", c.Mode))
	}
	if c.AIColor != chess.White && c.AIColor != chess.Black {
		errs = multierror.Append(errs, errors.Errorf("computer must play White or Black, not %v", c.AIColor))
	}
	if !c.Band.Valid() {
		errs = multierror.Append(errs, errors.Errorf("magic band %v-%v must lie within ranks 2-7", c.Band.Low, c.Band.High))
	}
	if !c.Search.IsValid() {
		errs = multierror.Append(errs, errors.Errorf("invalid search config %+v", c.Search))
	}
	return errs
}

// Result is the outcome of one computer move.
type Result struct {
	Move   *chess.Move // nil when the position had no legal move
	Score  float32     // from White's point of view
	Effect magic.Effect
	Stats  search.Stats
	Err    error
}

// Ply is one move of the game history with the magic effect it triggered.
type Ply struct {
	Move   *chess.Move
	Effect magic.Effect
}
