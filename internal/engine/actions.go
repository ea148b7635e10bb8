package engine

import (
	"errors"
	"fmt"
)

// AddPlayer seats a new player. Only legal before the match starts and
// while a seat is free. Duplicate-id protection is the caller's job: ids
// come from connection identity.
func (g *Game) AddPlayer(id, name string, human bool) error {
	if g.Phase != PhaseWaiting {
		return errors.New("game already started")
	}
	if len(g.Players) >= g.Rules.MaxPlayers {
		return errors.New("game is full")
	}
	g.Players = append(g.Players, Player{
		ID:        id,
		Name:      name,
		Human:     human,
		Connected: true,
	})
	return nil
}

// AddSpectator registers a read-only viewer. Spectators never hold cards
// and never appear in the turn order.
func (g *Game) AddSpectator(id, name string) {
	g.Spectators = append(g.Spectators, Spectator{
		ID:        id,
		Name:      name,
		Connected: true,
	})
}

// Start begins round 1: deals, moves to bidding and hands the lead to the
// first joined player.
func (g *Game) Start() error {
	if g.Phase != PhaseWaiting {
		return errors.New("game already started")
	}
	if len(g.Players) < g.Rules.MinPlayers {
		return fmt.Errorf("need at least %d players", g.Rules.MinPlayers)
	}
	g.Round = 1
	g.deal()
	g.Phase = PhaseBidding
	g.LeaderID = g.Players[0].ID
	g.ActiveID = g.Players[0].ID
	return nil
}

// PlaceBid records the active player's bid. The sum of all bids can never
// exactly equal the round's trick count, so the last bidder's completing
// bid is rejected when it would. Once every bid is in, play begins with
// the active pointer already wrapped back to the leader.
func (g *Game) PlaceBid(playerID string, bid int) error {
	if g.Phase != PhaseBidding {
		return errors.New("not in bidding phase")
	}
	if playerID != g.ActiveID {
		return errors.New("not your turn")
	}
	if bid < 0 || bid > g.Round {
		return fmt.Errorf("bid must be between 0 and %d", g.Round)
	}
	p := g.player(playerID)
	pending := 0
	sum := 0
	for i := range g.Players {
		if g.Players[i].Bid == nil {
			pending++
		} else {
			sum += *g.Players[i].Bid
		}
	}
	if pending == 1 && sum+bid == g.Round {
		return fmt.Errorf("bid of %d not allowed: total bids cannot equal %d", bid, g.Round)
	}
	b := bid
	p.Bid = &b
	g.ActiveID = g.nextSeat(playerID)
	if pending == 1 {
		g.Phase = PhasePlaying
	}
	return nil
}

// PlayCard plays the card at the given hand index. Full tricks move the
// match to scoring; evaluation stays a separate step so the caller can
// show the completed trick before it resolves.
func (g *Game) PlayCard(playerID string, cardIndex int) error {
	if g.Phase != PhasePlaying {
		return errors.New("not in playing phase")
	}
	if playerID != g.ActiveID {
		return errors.New("not your turn")
	}
	p := g.player(playerID)
	if cardIndex < 0 || cardIndex >= len(p.Hand) {
		return errors.New("card index out of range")
	}
	if !g.cardLegal(p, cardIndex) {
		return errors.New("must follow the lead suit")
	}
	card := p.Hand[cardIndex]
	p.Hand = append(p.Hand[:cardIndex], p.Hand[cardIndex+1:]...)
	card.PlayedBy = playerID
	g.Trick = append(g.Trick, card)
	if g.LeadSuit == nil && !card.Special() {
		s := card.Suit
		g.LeadSuit = &s
	}
	if len(g.Trick) == len(g.Players) {
		g.Phase = PhaseScoring
	} else {
		g.ActiveID = g.nextSeat(playerID)
	}
	return nil
}

// EvaluateTrick resolves the completed trick: the winner collects it,
// leads the next one, and play resumes. roundOver reports that every hand
// is now empty, in which case the caller must follow up with EndRound.
func (g *Game) EvaluateTrick() (winnerID string, roundOver bool, err error) {
	if g.Phase != PhaseScoring {
		return "", false, errors.New("no completed trick to evaluate")
	}
	winnerID = TrickWinner(g.Trick, g.TrumpSuit())
	g.player(winnerID).Tricks++
	g.LeaderID = winnerID
	g.ActiveID = winnerID
	g.Trick = nil
	g.LeadSuit = nil
	g.Phase = PhasePlaying
	for i := range g.Players {
		if len(g.Players[i].Hand) > 0 {
			return winnerID, false, nil
		}
	}
	return winnerID, true, nil
}

// EndRound scores the finished round and either deals the next one or
// finishes the match. An exact bid earns 10 plus 10 per trick; a miss
// costs 10 per trick of error. The lead seat rotates every round.
func (g *Game) EndRound() (finished bool, err error) {
	if g.Phase != PhasePlaying {
		return false, errors.New("round not finished")
	}
	for i := range g.Players {
		if len(g.Players[i].Hand) > 0 {
			return false, errors.New("round not finished")
		}
	}
	for i := range g.Players {
		p := &g.Players[i]
		bid := 0
		if p.Bid != nil {
			bid = *p.Bid
		}
		if bid == p.Tricks {
			p.Score += 10 + 10*bid
		} else {
			diff := bid - p.Tricks
			if diff < 0 {
				diff = -diff
			}
			p.Score -= 10 * diff
		}
	}
	g.Round++
	if g.Round > g.MaxRounds() {
		g.Phase = PhaseFinished
		g.ActiveID = ""
		return true, nil
	}
	g.deal()
	g.Phase = PhaseBidding
	lead := g.Players[(g.Round-1)%len(g.Players)].ID
	g.LeaderID = lead
	g.ActiveID = lead
	return false, nil
}

// RemovePlayer drops a viewer. Spectators and pre-start players are
// deleted outright; a seated player in a started match keeps the seat
// (turn order and scoring stay intact) and is only marked disconnected,
// leaving the seat to be driven like a bot. Unknown ids are a no-op.
func (g *Game) RemovePlayer(id string) {
	for i := range g.Spectators {
		if g.Spectators[i].ID == id {
			g.Spectators = append(g.Spectators[:i], g.Spectators[i+1:]...)
			return
		}
	}
	seat := g.seat(id)
	if seat < 0 {
		return
	}
	if g.Phase == PhaseWaiting {
		g.Players = append(g.Players[:seat], g.Players[seat+1:]...)
		return
	}
	g.Players[seat].Connected = false
}

func (g *Game) nextSeat(id string) string {
	seat := g.seat(id)
	return g.Players[(seat+1)%len(g.Players)].ID
}
