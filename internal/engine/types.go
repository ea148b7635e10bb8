package engine

import (
	"fmt"
	"math/rand"
)

type Suit int

const (
	SuitHearts Suit = iota
	SuitDiamonds
	SuitClubs
	SuitSpades
)

func (s Suit) String() string {
	switch s {
	case SuitHearts:
		return "H"
	case SuitDiamonds:
		return "D"
	case SuitClubs:
		return "C"
	case SuitSpades:
		return "S"
	default:
		return "?"
	}
}

// Value runs 1..13 for the numeric ranks. Jester sits below every rank,
// wizard above; neither has a numeric rank of its own.
type Value int

const (
	ValueJester Value = 0
	ValueWizard Value = 14
)

func (v Value) String() string {
	switch v {
	case ValueJester:
		return "J"
	case ValueWizard:
		return "W"
	default:
		return fmt.Sprintf("%d", int(v))
	}
}

// Card is immutable once dealt except for PlayedBy, tagged at play time.
// Wizards and jesters carry a printed suit for deck identity but are
// suitless for every rule purpose.
type Card struct {
	Suit     Suit
	Value    Value
	PlayedBy string
}

func (c Card) Special() bool {
	return c.Value == ValueJester || c.Value == ValueWizard
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Value.String(), c.Suit.String())
}

type Phase int

const (
	PhaseWaiting Phase = iota
	PhaseBidding
	PhasePlaying
	PhaseScoring
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseWaiting:
		return "waiting"
	case PhaseBidding:
		return "bidding"
	case PhasePlaying:
		return "playing"
	case PhaseScoring:
		return "scoring"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// DeckSize: 13 ranks x 4 suits + 4 wizards + 4 jesters.
const DeckSize = 60

type Rules struct {
	MinPlayers int
	MaxPlayers int
}

func DefaultRules() Rules {
	return Rules{
		MinPlayers: 3,
		MaxPlayers: 6,
	}
}

type Player struct {
	ID        string
	Name      string
	Human     bool
	Connected bool
	Hand      []Card
	Tricks    int
	Bid       *int
	Score     int
}

type Spectator struct {
	ID        string
	Name      string
	Connected bool
}

// Game holds one match's full state. Slice order of Players is join order
// and therefore turn order; spectators never appear in it.
type Game struct {
	Rules      Rules
	Players    []Player
	Spectators []Spectator
	Round      int
	TrumpCard  *Card
	Trick      []Card
	LeaderID   string
	ActiveID   string
	Phase      Phase
	LeadSuit   *Suit

	rng *rand.Rand
}

func NewGame(r Rules, seed int64) *Game {
	return &Game{
		Rules: r,
		Phase: PhaseWaiting,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// MaxRounds is the largest round for which every player can still be dealt
// a full hand. Zero before anyone has joined.
func (g *Game) MaxRounds() int {
	if len(g.Players) == 0 {
		return 0
	}
	return DeckSize / len(g.Players)
}

func (g *Game) player(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

func (g *Game) seat(id string) int {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return i
		}
	}
	return -1
}

// TrumpSuit resolves the effective trump suit for the current round. A
// wizard trump card plays with its printed suit; a jester trump card or a
// missing trump card means no trump.
func (g *Game) TrumpSuit() *Suit {
	if g.TrumpCard == nil || g.TrumpCard.Value == ValueJester {
		return nil
	}
	s := g.TrumpCard.Suit
	return &s
}
