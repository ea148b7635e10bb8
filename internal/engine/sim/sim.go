package sim

import (
	"fmt"
	"math/rand"

	"github.com/jeriks31/wizard-online/internal/engine"
)

type ActionRecord struct {
	Step  int
	Phase engine.Phase
	P     string
	Desc  string
}

// RunSelfPlay drives a full match with uniformly random legal actions,
// checking state invariants after every step. It returns an error with a
// trailing action log on the first violation.
func RunSelfPlay(seed int64, players int, maxSteps int) error {
	rng := rand.New(rand.NewSource(seed))
	g := engine.NewGame(engine.DefaultRules(), seed)
	for i := 0; i < players; i++ {
		if err := g.AddPlayer(fmt.Sprintf("p%d", i), fmt.Sprintf("Player %d", i), false); err != nil {
			return err
		}
	}
	if err := g.Start(); err != nil {
		return err
	}

	records := []ActionRecord{}
	for step := 0; step < maxSteps; step++ {
		switch g.Phase {
		case engine.PhaseBidding:
			legal := g.LegalBids(g.ActiveID)
			if len(legal) == 0 {
				return failure(seed, step, g, records, "no legal bids")
			}
			bid := legal[rng.Intn(len(legal))]
			actor := g.ActiveID
			if err := g.PlaceBid(actor, bid); err != nil {
				return failure(seed, step, g, records, fmt.Sprintf("bid rejected: %v", err))
			}
			records = append(records, ActionRecord{Step: step, Phase: g.Phase, P: actor, Desc: fmt.Sprintf("bid %d", bid)})
			if g.Phase == engine.PhasePlaying {
				if err := checkBidSum(g); err != nil {
					return failure(seed, step, g, records, err.Error())
				}
			}
		case engine.PhasePlaying:
			legal := g.LegalCards(g.ActiveID)
			if len(legal) == 0 {
				return failure(seed, step, g, records, "no legal cards")
			}
			idx := legal[rng.Intn(len(legal))]
			actor := g.ActiveID
			var card engine.Card
			for _, pv := range g.Projection(actor).Players {
				if pv.ID == actor {
					card = pv.Hand[idx]
				}
			}
			if err := g.PlayCard(actor, idx); err != nil {
				return failure(seed, step, g, records, fmt.Sprintf("play rejected: %v", err))
			}
			records = append(records, ActionRecord{Step: step, Phase: g.Phase, P: actor, Desc: fmt.Sprintf("play %v", card)})
		case engine.PhaseScoring:
			winner, over, err := g.EvaluateTrick()
			if err != nil {
				return failure(seed, step, g, records, fmt.Sprintf("evaluate failed: %v", err))
			}
			records = append(records, ActionRecord{Step: step, Phase: g.Phase, P: winner, Desc: "won trick"})
			if over {
				if _, err := g.EndRound(); err != nil {
					return failure(seed, step, g, records, fmt.Sprintf("end round failed: %v", err))
				}
			}
		case engine.PhaseFinished:
			if g.Round != g.MaxRounds()+1 {
				return failure(seed, step, g, records, fmt.Sprintf("finished at round %d, want %d", g.Round, g.MaxRounds()+1))
			}
			return nil
		default:
			return failure(seed, step, g, records, fmt.Sprintf("unexpected phase %v", g.Phase))
		}
		if err := checkInvariants(g); err != nil {
			return failure(seed, step, g, records, err.Error())
		}
	}
	return fmt.Errorf("seed=%d: match did not finish in %d steps", seed, maxSteps)
}

func checkBidSum(g *engine.Game) error {
	sum := 0
	for i := range g.Players {
		if g.Players[i].Bid == nil {
			return fmt.Errorf("playing phase with missing bid")
		}
		sum += *g.Players[i].Bid
	}
	if sum == g.Round {
		return fmt.Errorf("bid total %d equals round %d", sum, g.Round)
	}
	return nil
}

func checkInvariants(g *engine.Game) error {
	n := len(g.Players)
	if len(g.Trick) > n {
		return fmt.Errorf("trick holds %d cards for %d players", len(g.Trick), n)
	}
	if g.Phase == engine.PhaseBidding || g.Phase == engine.PhasePlaying {
		found := false
		for i := range g.Players {
			if g.Players[i].ID == g.ActiveID {
				found = true
			}
		}
		if !found {
			return fmt.Errorf("active player %q is not seated", g.ActiveID)
		}
	}
	if g.Phase != engine.PhaseWaiting && g.Phase != engine.PhaseFinished {
		inHands := 0
		collected := 0
		for i := range g.Players {
			inHands += len(g.Players[i].Hand)
			collected += g.Players[i].Tricks
		}
		if inHands+collected*n+len(g.Trick) != g.Round*n {
			return fmt.Errorf("card conservation broken: hands=%d collected=%d trick=%d round=%d",
				inHands, collected, len(g.Trick), g.Round)
		}
		if err := checkNoDuplicates(g); err != nil {
			return err
		}
	}
	hasNonSpecial := false
	for _, c := range g.Trick {
		if !c.Special() {
			hasNonSpecial = true
		}
	}
	if hasNonSpecial && g.LeadSuit == nil {
		return fmt.Errorf("lead suit unset with non-special cards in trick")
	}
	if !hasNonSpecial && g.LeadSuit != nil {
		return fmt.Errorf("lead suit set without a non-special card in trick")
	}
	return nil
}

func checkNoDuplicates(g *engine.Game) error {
	type key struct {
		s engine.Suit
		v engine.Value
	}
	seen := map[key]bool{}
	add := func(c engine.Card) error {
		k := key{c.Suit, c.Value}
		if seen[k] {
			return fmt.Errorf("duplicate card %v", c)
		}
		seen[k] = true
		return nil
	}
	for i := range g.Players {
		for _, c := range g.Players[i].Hand {
			if err := add(c); err != nil {
				return err
			}
		}
	}
	for _, c := range g.Trick {
		if err := add(c); err != nil {
			return err
		}
	}
	if g.TrumpCard != nil {
		if err := add(*g.TrumpCard); err != nil {
			return err
		}
	}
	return nil
}

func failure(seed int64, step int, g *engine.Game, records []ActionRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[s%d %v %s] %s\n", r.Step, r.Phase, r.P, r.Desc)
	}
	return fmt.Errorf("seed=%d step=%d phase=%v round=%d reason=%s\nlast actions:\n%s",
		seed, step, g.Phase, g.Round, reason, log)
}
