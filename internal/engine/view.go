package engine

// PlayerView is a player as one particular viewer is allowed to see them:
// the hand is populated only for the viewer itself, everyone else exposes
// just a count.
type PlayerView struct {
	ID        string
	Name      string
	Human     bool
	Connected bool
	Hand      []Card
	HandCount int
	Tricks    int
	Bid       *int
	Score     int
}

type SpectatorView struct {
	ID        string
	Name      string
	Connected bool
}

// View is the redacted projection of a match for one viewer. Everything
// in it is freshly copied, so later engine mutation can never leak a
// hidden hand through a shared slice.
type View struct {
	Players    []PlayerView
	Spectators []SpectatorView
	Round      int
	MaxRounds  int
	TrumpCard  *Card
	Trick      []Card
	LeaderID   string
	ActiveID   string
	Phase      Phase
	LeadSuit   *Suit
}

// Projection is the only state that ever crosses the engine boundary.
func (g *Game) Projection(viewerID string) View {
	v := View{
		Players:   make([]PlayerView, 0, len(g.Players)),
		Round:     g.Round,
		MaxRounds: g.MaxRounds(),
		LeaderID:  g.LeaderID,
		ActiveID:  g.ActiveID,
		Phase:     g.Phase,
	}
	for i := range g.Players {
		p := &g.Players[i]
		pv := PlayerView{
			ID:        p.ID,
			Name:      p.Name,
			Human:     p.Human,
			Connected: p.Connected,
			HandCount: len(p.Hand),
			Tricks:    p.Tricks,
			Score:     p.Score,
		}
		if p.Bid != nil {
			b := *p.Bid
			pv.Bid = &b
		}
		if p.ID == viewerID {
			pv.Hand = append([]Card(nil), p.Hand...)
		}
		v.Players = append(v.Players, pv)
	}
	for _, s := range g.Spectators {
		v.Spectators = append(v.Spectators, SpectatorView{ID: s.ID, Name: s.Name, Connected: s.Connected})
	}
	if g.TrumpCard != nil {
		c := *g.TrumpCard
		v.TrumpCard = &c
	}
	if len(g.Trick) > 0 {
		v.Trick = append([]Card(nil), g.Trick...)
	}
	if g.LeadSuit != nil {
		s := *g.LeadSuit
		v.LeadSuit = &s
	}
	return v
}
