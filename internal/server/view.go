package server

import "github.com/jeriks31/wizard-online/internal/engine"

func suitName(s engine.Suit) string {
	switch s {
	case engine.SuitHearts:
		return "hearts"
	case engine.SuitDiamonds:
		return "diamonds"
	case engine.SuitClubs:
		return "clubs"
	case engine.SuitSpades:
		return "spades"
	default:
		return "unknown"
	}
}

func cardToDTO(c engine.Card) CardDTO {
	dto := CardDTO{PlayedBy: c.PlayedBy}
	switch c.Value {
	case engine.ValueWizard:
		dto.Suit = "special"
		dto.Value = "wizard"
	case engine.ValueJester:
		dto.Suit = "special"
		dto.Value = "jester"
	default:
		dto.Suit = suitName(c.Suit)
		dto.Value = int(c.Value)
	}
	return dto
}

// buildGameView maps an engine projection onto the wire shape. The
// projection is already redacted and copied; this only renames.
func buildGameView(v engine.View) *GameView {
	players := make([]PlayerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		hand := make([]CardDTO, 0, len(p.Hand))
		for _, c := range p.Hand {
			hand = append(hand, cardToDTO(c))
		}
		players = append(players, PlayerDTO{
			ID:        p.ID,
			Name:      p.Name,
			IsHuman:   p.Human,
			Connected: p.Connected,
			Hand:      hand,
			HandCount: p.HandCount,
			Tricks:    p.Tricks,
			Bid:       p.Bid,
			Score:     p.Score,
		})
	}
	spectators := make([]SpectatorDTO, 0, len(v.Spectators))
	for _, s := range v.Spectators {
		spectators = append(spectators, SpectatorDTO{ID: s.ID, Name: s.Name, Connected: s.Connected})
	}
	trick := make([]CardDTO, 0, len(v.Trick))
	for _, c := range v.Trick {
		trick = append(trick, cardToDTO(c))
	}
	var trump *CardDTO
	if v.TrumpCard != nil {
		c := cardToDTO(*v.TrumpCard)
		trump = &c
	}
	var lead *string
	if v.LeadSuit != nil {
		s := suitName(*v.LeadSuit)
		lead = &s
	}
	return &GameView{
		Players:         players,
		Spectators:      spectators,
		CurrentRound:    v.Round,
		MaxRounds:       v.MaxRounds,
		TrumpCard:       trump,
		CurrentTrick:    trick,
		LeadingPlayerID: v.LeaderID,
		ActivePlayerID:  v.ActiveID,
		Phase:           v.Phase.String(),
		LeadSuit:        lead,
	}
}
