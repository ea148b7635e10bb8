package server

// ClientMessage is the inbound tagged union. Only the fields matching the
// type are expected to be set.
type ClientMessage struct {
	Type      string `json:"type"`
	Name      string `json:"name,omitempty"`
	Bid       *int   `json:"bid,omitempty"`
	CardIndex *int   `json:"cardIndex,omitempty"`
}

// ServerMessage is the outbound tagged union. Payload fields are shared
// across types; omitempty keeps each record to its own shape.
type ServerMessage struct {
	Type        string         `json:"type"`
	State       *GameView      `json:"state,omitempty"`
	Message     string         `json:"message,omitempty"`
	PlayerID    string         `json:"playerId,omitempty"`
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name,omitempty"`
	IsSpectator bool           `json:"isSpectator,omitempty"`
	Bid         *int           `json:"bid,omitempty"`
	Card        *CardDTO       `json:"card,omitempty"`
	Scores      map[string]int `json:"scores,omitempty"`
}

// CardDTO carries value as a JSON number for ranks 1..13 and as the
// strings "wizard"/"jester" for special cards, which report suit
// "special".
type CardDTO struct {
	Suit     string      `json:"suit"`
	Value    interface{} `json:"value"`
	PlayedBy string      `json:"playedBy,omitempty"`
}

type PlayerDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsHuman   bool      `json:"isHuman"`
	Connected bool      `json:"connected"`
	Hand      []CardDTO `json:"hand"`
	HandCount int       `json:"handCount"`
	Tricks    int       `json:"tricks"`
	Bid       *int      `json:"bid"`
	Score     int       `json:"score"`
}

type SpectatorDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
}

type GameView struct {
	Players         []PlayerDTO    `json:"players"`
	Spectators      []SpectatorDTO `json:"spectators"`
	CurrentRound    int            `json:"currentRound"`
	MaxRounds       int            `json:"maxRounds"`
	TrumpCard       *CardDTO       `json:"trumpCard"`
	CurrentTrick    []CardDTO      `json:"currentTrick"`
	LeadingPlayerID string         `json:"leadingPlayerId"`
	ActivePlayerID  string         `json:"activePlayerId"`
	Phase           string         `json:"phase"`
	LeadSuit        *string        `json:"leadSuit"`
}
