package engine

// TrickWinner resolves a completed trick to the winning player's id.
// The last wizard played wins outright; an all-jester trick goes to the
// trick's leader (the first card's player); otherwise a running best card
// is tracked in play order, with trump beating off-trump and higher value
// beating lower within a suit. Jesters are never candidates.
func TrickWinner(trick []Card, trump *Suit) string {
	if len(trick) == 0 {
		return ""
	}
	for i := len(trick) - 1; i >= 0; i-- {
		if trick[i].Value == ValueWizard {
			return trick[i].PlayedBy
		}
	}
	allJesters := true
	for _, c := range trick {
		if c.Value != ValueJester {
			allJesters = false
			break
		}
	}
	if allJesters {
		return trick[0].PlayedBy
	}
	best := trick[0]
	for _, c := range trick[1:] {
		if c.Value == ValueJester {
			continue
		}
		if best.Value == ValueJester {
			best = c
			continue
		}
		if trump != nil && c.Suit == *trump && best.Suit != *trump {
			best = c
			continue
		}
		if c.Suit == best.Suit && c.Value > best.Value {
			best = c
		}
	}
	return best.PlayedBy
}

// LegalBids returns the bids the player may place right now, in ascending
// order. The last bidder may not bring the total bids to exactly the
// round's trick count.
func (g *Game) LegalBids(playerID string) []int {
	if g.Phase != PhaseBidding || playerID != g.ActiveID {
		return nil
	}
	pending := 0
	sum := 0
	for i := range g.Players {
		if g.Players[i].Bid == nil {
			pending++
		} else {
			sum += *g.Players[i].Bid
		}
	}
	forbidden := -1
	if pending == 1 {
		forbidden = g.Round - sum
	}
	bids := make([]int, 0, g.Round+1)
	for b := 0; b <= g.Round; b++ {
		if b == forbidden {
			continue
		}
		bids = append(bids, b)
	}
	return bids
}

// LegalCards returns the hand indices the player may play right now.
// Special cards are always legal; a non-special off-suit card is legal
// only when the hand holds no non-special card of the lead suit.
func (g *Game) LegalCards(playerID string) []int {
	if g.Phase != PhasePlaying || playerID != g.ActiveID {
		return nil
	}
	p := g.player(playerID)
	if p == nil {
		return nil
	}
	legal := make([]int, 0, len(p.Hand))
	for i := range p.Hand {
		if g.cardLegal(p, i) {
			legal = append(legal, i)
		}
	}
	return legal
}

func (g *Game) cardLegal(p *Player, idx int) bool {
	c := p.Hand[idx]
	if c.Special() || g.LeadSuit == nil || c.Suit == *g.LeadSuit {
		return true
	}
	return !holdsSuit(p.Hand, *g.LeadSuit)
}

func holdsSuit(hand []Card, suit Suit) bool {
	for _, c := range hand {
		if !c.Special() && c.Suit == suit {
			return true
		}
	}
	return false
}
