package bots

import (
	"math/rand"

	"github.com/jeriks31/wizard-online/internal/engine"
)

// Bot picks bids and card indices for one non-human seat. It reads match
// state only through the engine's oracles and never mutates anything; the
// pacing delay between bot turns belongs to the session room.
type Bot struct {
	rng *rand.Rand
}

func New(seed int64) *Bot {
	return &Bot{rng: rand.New(rand.NewSource(seed))}
}

// ChooseBid targets round/playerCount tricks. When the last-bidder
// constraint forbids the target it tries one higher, then one lower, then
// the lowest bid left.
func (b *Bot) ChooseBid(g *engine.Game, playerID string) int {
	legal := g.LegalBids(playerID)
	want := g.Round / len(g.Players)
	for _, bid := range []int{want, want + 1, want - 1} {
		if containsInt(legal, bid) {
			return bid
		}
	}
	return legal[0]
}

// ChooseCard picks a hand index among the legal plays. If the bot still
// needs at least as many tricks as remain it always plays to win;
// otherwise it plays to win with probability needed/remaining. Winning
// attempts use the strongest winning card (or the weakest card when none
// can win); ducking sheds the strongest card that still loses, or the
// weakest card when leading or when every legal card would win.
func (b *Bot) ChooseCard(g *engine.Game, playerID string) int {
	legal := g.LegalCards(playerID)
	var p *engine.Player
	for i := range g.Players {
		if g.Players[i].ID == playerID {
			p = &g.Players[i]
		}
	}

	needed := 0
	if p.Bid != nil {
		needed = *p.Bid - p.Tricks
	}
	remaining := len(p.Hand)
	tryWin := false
	switch {
	case needed >= remaining:
		tryWin = true
	case needed > 0:
		tryWin = b.rng.Float64() < float64(needed)/float64(remaining)
	}

	trump := g.TrumpSuit()
	var winning, losing []int
	for _, idx := range legal {
		if winsTrick(g.Trick, p.Hand[idx], playerID, trump) {
			winning = append(winning, idx)
		} else {
			losing = append(losing, idx)
		}
	}

	if tryWin {
		if len(winning) > 0 {
			return strongest(p.Hand, winning, trump, g.LeadSuit)
		}
		return weakest(p.Hand, legal, trump, g.LeadSuit)
	}
	leading := len(g.Trick) == 0
	if !leading && len(losing) > 0 {
		return strongest(p.Hand, losing, trump, g.LeadSuit)
	}
	return weakest(p.Hand, legal, trump, g.LeadSuit)
}

// winsTrick reports whether playing card now would take the trick as it
// stands. Cards played later can of course still beat it.
func winsTrick(trick []engine.Card, card engine.Card, playerID string, trump *engine.Suit) bool {
	if len(trick) == 0 {
		return card.Value != engine.ValueJester
	}
	hyp := append(append([]engine.Card(nil), trick...), engine.Card{
		Suit:     card.Suit,
		Value:    card.Value,
		PlayedBy: playerID,
	})
	return engine.TrickWinner(hyp, trump) == playerID
}

// strength orders cards for selection: jester lowest, wizard highest,
// numeric ranks by face value with a large trump-suit bonus and a smaller
// lead-suit bonus, so trump > lead suit > plain at equal rank.
func strength(c engine.Card, trump, lead *engine.Suit) int {
	switch c.Value {
	case engine.ValueJester:
		return 0
	case engine.ValueWizard:
		return 1000
	}
	s := int(c.Value)
	if trump != nil && c.Suit == *trump {
		s += 40
	} else if lead != nil && c.Suit == *lead {
		s += 20
	}
	return s
}

func strongest(hand []engine.Card, indices []int, trump, lead *engine.Suit) int {
	best := indices[0]
	for _, idx := range indices[1:] {
		if strength(hand[idx], trump, lead) > strength(hand[best], trump, lead) {
			best = idx
		}
	}
	return best
}

func weakest(hand []engine.Card, indices []int, trump, lead *engine.Suit) int {
	best := indices[0]
	for _, idx := range indices[1:] {
		if strength(hand[idx], trump, lead) < strength(hand[best], trump, lead) {
			best = idx
		}
	}
	return best
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
