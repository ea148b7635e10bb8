package engine

import "testing"

func suitPtr(s Suit) *Suit { return &s }

func TestTrickWinnerLastWizard(t *testing.T) {
	trick := []Card{
		{Suit: SuitHearts, Value: ValueWizard, PlayedBy: "p1"},
		{Suit: SuitHearts, Value: 5, PlayedBy: "p2"},
		{Suit: SuitSpades, Value: ValueWizard, PlayedBy: "p3"},
	}
	for _, trump := range []*Suit{nil, suitPtr(SuitClubs), suitPtr(SuitHearts)} {
		if w := TrickWinner(trick, trump); w != "p3" {
			t.Fatalf("expected last wizard to win, got %s", w)
		}
	}
}

func TestTrickWinnerAllJesters(t *testing.T) {
	trick := []Card{
		{Suit: SuitHearts, Value: ValueJester, PlayedBy: "p2"},
		{Suit: SuitClubs, Value: ValueJester, PlayedBy: "p3"},
		{Suit: SuitSpades, Value: ValueJester, PlayedBy: "p1"},
	}
	if w := TrickWinner(trick, suitPtr(SuitHearts)); w != "p2" {
		t.Fatalf("expected trick leader to win all-jester trick, got %s", w)
	}
}

func TestTrickWinnerTrumpBeatsLead(t *testing.T) {
	trick := []Card{
		{Suit: SuitHearts, Value: 13, PlayedBy: "p1"},
		{Suit: SuitSpades, Value: 2, PlayedBy: "p2"},
		{Suit: SuitHearts, Value: 10, PlayedBy: "p3"},
	}
	if w := TrickWinner(trick, suitPtr(SuitSpades)); w != "p2" {
		t.Fatalf("expected low trump to beat high lead, got %s", w)
	}
	if w := TrickWinner(trick, nil); w != "p1" {
		t.Fatalf("expected lead 13 to win without trump, got %s", w)
	}
}

func TestTrickWinnerHighestOfSuit(t *testing.T) {
	trick := []Card{
		{Suit: SuitClubs, Value: 4, PlayedBy: "p1"},
		{Suit: SuitClubs, Value: 11, PlayedBy: "p2"},
		{Suit: SuitClubs, Value: 7, PlayedBy: "p3"},
	}
	if w := TrickWinner(trick, nil); w != "p2" {
		t.Fatalf("expected highest club to win, got %s", w)
	}
}

func TestTrickWinnerOffSuitNeverWins(t *testing.T) {
	trick := []Card{
		{Suit: SuitHearts, Value: 2, PlayedBy: "p1"},
		{Suit: SuitClubs, Value: 13, PlayedBy: "p2"},
	}
	if w := TrickWinner(trick, nil); w != "p1" {
		t.Fatalf("expected off-suit 13 to lose to lead 2, got %s", w)
	}
}

func TestTrickWinnerJesterLed(t *testing.T) {
	trick := []Card{
		{Suit: SuitHearts, Value: ValueJester, PlayedBy: "p1"},
		{Suit: SuitClubs, Value: 3, PlayedBy: "p2"},
		{Suit: SuitDiamonds, Value: 9, PlayedBy: "p3"},
	}
	// First real card (3C) sets the bar; 9D is off that suit.
	if w := TrickWinner(trick, nil); w != "p2" {
		t.Fatalf("expected first real card to win, got %s", w)
	}
}

func TestLegalCardsFollowSuit(t *testing.T) {
	g := newStartedGame(t, 3, 1)
	g.Phase = PhasePlaying
	g.ActiveID = "p2"
	g.LeadSuit = suitPtr(SuitHearts)
	g.Players[1].Hand = []Card{
		{Suit: SuitSpades, Value: 9},
		{Suit: SuitHearts, Value: 4},
		{Suit: SuitHearts, Value: ValueJester},
	}

	legal := g.LegalCards("p2")
	if len(legal) != 2 {
		t.Fatalf("expected 2 legal cards, got %v", legal)
	}
	if legal[0] != 1 || legal[1] != 2 {
		t.Fatalf("expected hearts and jester, got %v", legal)
	}
}

func TestLegalCardsVoidInLeadSuit(t *testing.T) {
	g := newStartedGame(t, 3, 1)
	g.Phase = PhasePlaying
	g.ActiveID = "p2"
	g.LeadSuit = suitPtr(SuitHearts)
	g.Players[1].Hand = []Card{
		{Suit: SuitSpades, Value: 9},
		{Suit: SuitClubs, Value: 2},
		{Suit: SuitHearts, Value: ValueWizard}, // printed suit does not count
	}

	legal := g.LegalCards("p2")
	if len(legal) != 3 {
		t.Fatalf("expected whole hand legal when void, got %v", legal)
	}
}

func TestLegalCardsOnlyForActivePlayer(t *testing.T) {
	g := newStartedGame(t, 3, 1)
	g.Phase = PhasePlaying
	g.ActiveID = "p1"
	if legal := g.LegalCards("p2"); legal != nil {
		t.Fatalf("expected no legal cards out of turn, got %v", legal)
	}
}

func TestLegalBidsLastBidder(t *testing.T) {
	g := newStartedGame(t, 3, 1)
	g.Round = 2
	g.Phase = PhaseBidding
	g.ActiveID = "p3"
	one, zero := 1, 0
	g.Players[0].Bid = &one
	g.Players[1].Bid = &zero

	// Forbidden bid is 2-1 = 1.
	legal := g.LegalBids("p3")
	if len(legal) != 2 || legal[0] != 0 || legal[1] != 2 {
		t.Fatalf("expected [0 2], got %v", legal)
	}
}

func TestLegalBidsEarlyBidderUnconstrained(t *testing.T) {
	g := newStartedGame(t, 3, 1)
	g.Round = 2
	g.Phase = PhaseBidding
	g.ActiveID = "p1"

	legal := g.LegalBids("p1")
	if len(legal) != 3 {
		t.Fatalf("expected [0 1 2], got %v", legal)
	}
}
