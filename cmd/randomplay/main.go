// This command plays random games through the magic-square rules and reports how often each
// effect fired. Every game is replayed backwards to check that undo restores the start position.

package main

import (
	"flag"
	"log"

	"golang.org/x/exp/rand"

	"github.com/magichess/game"
	"github.com/magichess/magic"
)

var (
	numGameFlag = flag.Int("num_game", 10, "number of game to play")
	maxPlyFlag  = flag.Int("max_ply", 300, "stop a game after this many plies")
	seedFlag    = flag.Uint64("seed", 1, "random seed")
)

func main() {
	flag.Parse()

	r := rand.New(rand.NewSource(*seedFlag))
	var fired [magic.Replicate + 1]int
	for i := 0; i < *numGameFlag; i++ {
		resolver := magic.NewResolver(magic.Sample(r.Uint64(), magic.DefaultBand()))
		g := game.NewChess()
		start := g.FEN()

		// play random moves until game is over
		plies := 0
		for ended, _ := g.Ended(); !ended && plies < *maxPlyFlag; ended, _ = g.Ended() {
			moves := g.LegalMoves()
			move := moves[r.Intn(len(moves))]
			effect, _, err := resolver.Play(g, move)
			if err != nil {
				log.Fatal(err)
			}
			fired[effect.Kind]++
			plies++
		}
		_, winner := g.Ended()
		log.Printf("game %d (%v): %d plies, winner %v", i, resolver.Registry, plies, winner)

		for ; plies > 0; plies-- {
			g.UndoLastMove()
		}
		if g.FEN() != start {
			log.Fatalf("game %d: undo ended at %s", i, g.FEN())
		}
	}
	for k := magic.None; k <= magic.Replicate; k++ {
		log.Printf("%v: %d", k, fired[k])
	}
}
