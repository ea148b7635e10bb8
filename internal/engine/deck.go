package engine

import "math/rand"

// BuildDeck returns the full 60-card deck in fixed order: the 13 ranks of
// each suit followed by that suit's wizard and jester.
func BuildDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	suits := []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}
	for _, s := range suits {
		for v := Value(1); v <= 13; v++ {
			deck = append(deck, Card{Suit: s, Value: v})
		}
		deck = append(deck, Card{Suit: s, Value: ValueWizard})
		deck = append(deck, Card{Suit: s, Value: ValueJester})
	}
	return deck
}

// Shuffle returns a uniform permutation of deck without mutating it.
func Shuffle(deck []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// deal clears every player's hand, trick count and bid, then deals
// g.Round cards to each player round-robin in turn order and flips the
// next card as trump. The trump card is nil when the deck is exhausted,
// which the round bound keeps to the final round only.
func (g *Game) deal() {
	for i := range g.Players {
		g.Players[i].Hand = nil
		g.Players[i].Tricks = 0
		g.Players[i].Bid = nil
	}
	g.Trick = nil
	g.LeadSuit = nil

	deck := Shuffle(BuildDeck(), g.rng)
	idx := 0
	for pass := 0; pass < g.Round; pass++ {
		for p := range g.Players {
			g.Players[p].Hand = append(g.Players[p].Hand, deck[idx])
			idx++
		}
	}
	if idx < len(deck) {
		trump := deck[idx]
		g.TrumpCard = &trump
	} else {
		g.TrumpCard = nil
	}
}
