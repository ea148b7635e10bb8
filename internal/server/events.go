package server

import "github.com/jeriks31/wizard-online/internal/engine"

func errorMsg(message string) ServerMessage {
	return ServerMessage{Type: "error", Message: message}
}

func joinSuccess(playerID string) ServerMessage {
	return ServerMessage{Type: "join_success", PlayerID: playerID}
}

func playerJoined(id, name string, spectator bool) ServerMessage {
	return ServerMessage{Type: "player_joined", ID: id, Name: name, IsSpectator: spectator}
}

func playerLeft(id, name string) ServerMessage {
	return ServerMessage{Type: "player_left", ID: id, Name: name}
}

func gameStarted() ServerMessage {
	return ServerMessage{Type: "game_started"}
}

func bidPlaced(playerID string, bid int) ServerMessage {
	return ServerMessage{Type: "bid_placed", PlayerID: playerID, Bid: &bid}
}

func cardPlayed(playerID string, card engine.Card) ServerMessage {
	dto := cardToDTO(card)
	return ServerMessage{Type: "card_played", PlayerID: playerID, Card: &dto}
}

func trickWon(playerID string) ServerMessage {
	return ServerMessage{Type: "trick_won", PlayerID: playerID}
}

func roundEnded(scores map[string]int) ServerMessage {
	return ServerMessage{Type: "round_ended", Scores: scores}
}

func gameState(view *GameView) ServerMessage {
	return ServerMessage{Type: "game_state", State: view}
}
