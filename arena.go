package magichess

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/notnil/chess"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"

	"github.com/magichess/game"
	"github.com/magichess/magic"
	"github.com/magichess/search"
)

// Arena plays the computer against itself. Every game gets fresh magic squares and the
// agents swap colours between games.
type Arena struct {
	r        *rand.Rand
	conf     Config
	a, b     *Agent
	aConf    search.Config
	bConf    search.Config
	session  *Session
	maxPlies int

	buf    bytes.Buffer
	logger *log.Logger

	name       string
	gameNumber int
}

// NewArena makes an arena for two search configurations. seed drives the magic-square placement of every game.
// Games still running after maxPlies plies are scored as draws.
func NewArena(conf Config, aConf, bConf search.Config, seed uint64, maxPlies int) (*Arena, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	if !aConf.IsValid() || !bConf.IsValid() {
		return nil, errors.New("invalid search config")
	}
	if aConf.Depth == 0 || bConf.Depth == 0 {
		return nil, errors.New("arena agents must search at least one ply")
	}
	if maxPlies <= 0 {
		return nil, errors.Errorf("maxPlies must be positive, got %d", maxPlies)
	}
	name := conf.Name
	if name == "" {
		name = "UNKNOWN GAME"
	}
	a := &Arena{
		r:        rand.New(rand.NewSource(seed)),
		conf:     conf,
		aConf:    aConf,
		bConf:    bConf,
		maxPlies: maxPlies,
		name:     name,
	}
	a.a = &Agent{Player: chess.White, name: "A"}
	a.b = &Agent{Player: chess.Black, name: "B"}
	a.logger = log.New(&a.buf, "", log.Ltime)
	return a, nil
}

// Play plays one game and records who won. If it is a draw, the returned colour is NoColor.
func (a *Arena) Play() (winner chess.Color, err error) {
	conf := a.conf
	conf.Mode = TwoPlayer
	conf.Seed = a.r.Uint64()
	registry := magic.Sample(conf.Seed, conf.Band)
	if a.session, err = NewSessionFrom(conf, game.NewChess(), registry); err != nil {
		return chess.NoColor, err
	}
	a.a.Engine = search.New(a.aConf, a.session.resolver)
	a.b.Engine = search.New(a.bConf, a.session.resolver)
	white := a.a
	if a.b.Player == chess.White {
		white = a.b
	}
	a.logger.Printf("Game %d: %v is White, %v", a.gameNumber, white.name, registry)

	var ended bool
	for ended, winner = a.session.Ended(); !ended; ended, winner = a.session.Ended() {
		if len(a.session.history) >= a.maxPlies {
			a.logger.Printf("Game %d adjudicated a draw after %d plies", a.gameNumber, a.maxPlies)
			winner = chess.NoColor
			break
		}
		current := a.a
		if a.session.state.Turn() != a.a.Player {
			current = a.b
		}
		res := current.Search(a.session.state.Clone())
		if res.Move == nil {
			break
		}
		if _, err = a.session.play(res.Move); err != nil {
			return chess.NoColor, err
		}
	}

	a.a.record(winner)
	a.b.record(winner)
	a.logger.Printf("Game %d over after %d plies, winner %v", a.gameNumber, len(a.session.history), winner)
	a.gameNumber++
	a.switchColours()
	return winner, nil
}

// GameNumber returns how many games have been played.
func (a *Arena) GameNumber() int { return a.gameNumber }

// Name of the game
func (a *Arena) Name() string { return a.name }

// Session returns the last game played, nil before the first.
func (a *Arena) Session() *Session { return a.session }

// Agents returns both players, A first.
func (a *Arena) Agents() (*Agent, *Agent) { return a.a, a.b }

// Log writes the arena log and both agents' search logs into w.
func (a *Arena) Log(w io.Writer) {
	fmt.Fprint(w, a.buf.String())
	for _, agent := range []*Agent{a.a, a.b} {
		if agent.Engine == nil {
			continue
		}
		fmt.Fprintf(w, "\n%s:\n\n", agent.name)
		fmt.Fprintln(w, agent.Engine.Log())
	}
}

func (a *Arena) switchColours() {
	a.a.Player, a.b.Player = a.b.Player, a.a.Player
}
