package server

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jeriks31/wizard-online/internal/bots"
	"github.com/jeriks31/wizard-online/internal/engine"
)

// Conn is the transport collaborator: one bidirectional channel per
// viewer. *websocket.Conn satisfies it; writes happen only from the room's
// run loop, so no write lock is needed.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

type Config struct {
	Rules             engine.Rules
	Seed              int64 // 0 draws a seed from the wall clock
	BotDelay          time.Duration
	TrickDelay        time.Duration
	RoundDelay        time.Duration
	InactivityTimeout time.Duration
	InactivityPoll    time.Duration
}

func DefaultConfig() Config {
	return Config{
		Rules:             engine.DefaultRules(),
		BotDelay:          600 * time.Millisecond,
		TrickDelay:        1200 * time.Millisecond,
		RoundDelay:        1500 * time.Millisecond,
		InactivityTimeout: 10 * time.Minute,
		InactivityPoll:    30 * time.Second,
	}
}

type envKind int

const (
	envAttach envKind = iota
	envMessage
	envClose
)

type envelope struct {
	kind   envKind
	connID string
	conn   Conn
	data   []byte
}

// Room owns one match: the engine instance, every live viewer connection
// and the bots. All inbound traffic funnels through the inbox channel and
// is consumed by a single run loop, which is the only goroutine that ever
// touches the game state.
type Room struct {
	cfg   Config
	log   *zap.Logger
	clock Clock
	seed  int64

	inbox chan envelope
	done  chan struct{}

	// Owned exclusively by the run loop.
	game       *engine.Game
	conns      map[string]Conn
	bots       map[string]*bots.Bot
	lastActive time.Time
}

func NewRoom(cfg Config, log *zap.Logger, clock Clock) *Room {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Room{
		cfg:   cfg,
		log:   log,
		clock: clock,
		seed:  seed,
		inbox: make(chan envelope, 64),
		done:  make(chan struct{}),
		game:  engine.NewGame(cfg.Rules, seed),
		conns: make(map[string]Conn),
		bots:  make(map[string]*bots.Bot),
	}
}

// Attach registers a connection under its server-generated id.
func (r *Room) Attach(id string, conn Conn) {
	r.post(envelope{kind: envAttach, connID: id, conn: conn})
}

// Deliver hands one raw inbound message to the room.
func (r *Room) Deliver(id string, data []byte) {
	r.post(envelope{kind: envMessage, connID: id, data: data})
}

// Leave reports that a connection has gone away.
func (r *Room) Leave(id string) {
	r.post(envelope{kind: envClose, connID: id})
}

// Done is closed once the room has shut down and released its viewers.
func (r *Room) Done() <-chan struct{} { return r.done }

func (r *Room) post(env envelope) {
	select {
	case r.inbox <- env:
	case <-r.done:
	}
}

// Run consumes the inbox until the inactivity watchdog fires. Strictly
// one envelope at a time: this single-consumer property is the room's
// whole concurrency story.
func (r *Room) Run() {
	defer close(r.done)
	r.lastActive = r.clock.Now()
	for {
		select {
		case env := <-r.inbox:
			r.lastActive = r.clock.Now()
			switch env.kind {
			case envAttach:
				r.conns[env.connID] = env.conn
			case envMessage:
				r.dispatch(env.connID, env.data)
			case envClose:
				r.dropViewer(env.connID)
			}
		case <-r.clock.After(r.cfg.InactivityPoll):
			if r.clock.Now().Sub(r.lastActive) >= r.cfg.InactivityTimeout {
				r.log.Info("room idle, shutting down",
					zap.Duration("timeout", r.cfg.InactivityTimeout))
				r.shutdown()
				return
			}
		}
	}
}

// dispatch handles one inbound message. A panic anywhere below is
// reported to the originating connection only; the room survives.
func (r *Room) dispatch(connID string, data []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("panic handling message",
				zap.Any("panic", rec), zap.String("conn", connID))
			r.send(connID, errorMsg("internal error"))
		}
	}()

	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		r.send(connID, errorMsg("malformed message"))
		return
	}
	switch msg.Type {
	case "join":
		r.handleJoin(connID, msg.Name)
	case "spectate":
		r.handleSpectate(connID, msg.Name)
	case "start_game":
		r.handleStart(connID)
	case "place_bid":
		if msg.Bid == nil {
			r.send(connID, errorMsg("bid required"))
			return
		}
		r.handleBid(connID, *msg.Bid)
	case "play_card":
		if msg.CardIndex == nil {
			r.send(connID, errorMsg("cardIndex required"))
			return
		}
		r.handlePlay(connID, *msg.CardIndex)
	case "add_bot":
		r.handleAddBot(connID)
	default:
		r.send(connID, errorMsg("unknown message type"))
	}
}

func (r *Room) handleJoin(connID, name string) {
	if name == "" {
		r.send(connID, errorMsg("name required"))
		return
	}
	if r.nameTaken(name) {
		r.send(connID, errorMsg("name already taken"))
		return
	}
	if err := r.game.AddPlayer(connID, name, true); err != nil {
		r.send(connID, errorMsg(err.Error()))
		return
	}
	r.log.Info("player joined", zap.String("id", connID), zap.String("name", name))
	r.send(connID, joinSuccess(connID))
	r.broadcast(playerJoined(connID, name, false))
	r.broadcastState()
}

func (r *Room) handleSpectate(connID, name string) {
	if name == "" {
		r.send(connID, errorMsg("name required"))
		return
	}
	if r.nameTaken(name) {
		r.send(connID, errorMsg("name already taken"))
		return
	}
	r.game.AddSpectator(connID, name)
	r.send(connID, joinSuccess(connID))
	r.broadcast(playerJoined(connID, name, true))
	r.broadcastState()
}

func (r *Room) handleStart(connID string) {
	if err := r.game.Start(); err != nil {
		r.send(connID, errorMsg(err.Error()))
		return
	}
	r.log.Info("game started", zap.Int("players", len(r.game.Players)))
	r.broadcast(gameStarted())
	r.broadcastState()
	r.driveBots()
}

func (r *Room) handleBid(connID string, bid int) {
	if err := r.game.PlaceBid(connID, bid); err != nil {
		r.send(connID, errorMsg(err.Error()))
		return
	}
	r.broadcast(bidPlaced(connID, bid))
	r.broadcastState()
	r.driveBots()
}

func (r *Room) handlePlay(connID string, cardIndex int) {
	if err := r.game.PlayCard(connID, cardIndex); err != nil {
		r.send(connID, errorMsg(err.Error()))
		return
	}
	card := r.game.Trick[len(r.game.Trick)-1]
	r.broadcast(cardPlayed(connID, card))
	r.broadcastState()
	r.settleTrick()
	r.driveBots()
}

func (r *Room) handleAddBot(connID string) {
	id := fmt.Sprintf("bot-%d", len(r.bots)+1)
	name := fmt.Sprintf("Bot %d", len(r.bots)+1)
	if err := r.game.AddPlayer(id, name, false); err != nil {
		r.send(connID, errorMsg(err.Error()))
		return
	}
	r.bots[id] = bots.New(r.seed + int64(len(r.bots)) + 1)
	r.broadcast(playerJoined(id, name, false))
	r.broadcastState()
}

// settleTrick runs the staged resolution once a trick is full: the full
// trick has already been broadcast, so pause, reveal the winner, and on a
// round boundary pause again before scoring. The delays are pacing for
// human viewers, not synchronization.
func (r *Room) settleTrick() {
	if r.game.Phase != engine.PhaseScoring {
		return
	}
	r.clock.Sleep(r.cfg.TrickDelay)
	winner, roundOver, err := r.game.EvaluateTrick()
	if err != nil {
		r.log.Error("trick evaluation failed", zap.Error(err))
		return
	}
	r.broadcast(trickWon(winner))
	r.broadcastState()
	if !roundOver {
		return
	}
	r.clock.Sleep(r.cfg.RoundDelay)
	if _, err := r.game.EndRound(); err != nil {
		r.log.Error("round scoring failed", zap.Error(err))
		return
	}
	scores := make(map[string]int, len(r.game.Players))
	for i := range r.game.Players {
		scores[r.game.Players[i].ID] = r.game.Players[i].Score
	}
	r.broadcast(roundEnded(scores))
	r.broadcastState()
}

// driveBots plays consecutive non-human turns (bots and abandoned seats)
// until a connected human is up or the match leaves the action phases.
// Each bot action gets its own pacing delay and broadcast.
func (r *Room) driveBots() {
	for {
		if r.game.Phase != engine.PhaseBidding && r.game.Phase != engine.PhasePlaying {
			return
		}
		var p *engine.Player
		for i := range r.game.Players {
			if r.game.Players[i].ID == r.game.ActiveID {
				p = &r.game.Players[i]
			}
		}
		if p == nil || (p.Human && p.Connected) {
			return
		}
		b := r.botFor(p.ID)
		r.clock.Sleep(r.cfg.BotDelay)
		if r.game.Phase == engine.PhaseBidding {
			bid := b.ChooseBid(r.game, p.ID)
			if err := r.game.PlaceBid(p.ID, bid); err != nil {
				r.log.Error("bot bid rejected", zap.String("player", p.ID), zap.Error(err))
				return
			}
			r.broadcast(bidPlaced(p.ID, bid))
			r.broadcastState()
		} else {
			idx := b.ChooseCard(r.game, p.ID)
			if err := r.game.PlayCard(p.ID, idx); err != nil {
				r.log.Error("bot play rejected", zap.String("player", p.ID), zap.Error(err))
				return
			}
			card := r.game.Trick[len(r.game.Trick)-1]
			r.broadcast(cardPlayed(p.ID, card))
			r.broadcastState()
			r.settleTrick()
		}
	}
}

// botFor returns the policy driving a seat, creating one on demand so a
// disconnected human's seat picks up a bot transparently.
func (r *Room) botFor(id string) *bots.Bot {
	if b, ok := r.bots[id]; ok {
		return b
	}
	b := bots.New(r.seed + int64(len(r.bots)) + 1)
	r.bots[id] = b
	return b
}

func (r *Room) dropViewer(connID string) {
	delete(r.conns, connID)
	name, known := r.viewerName(connID)
	if !known {
		return
	}
	r.game.RemovePlayer(connID)
	r.log.Info("viewer left", zap.String("id", connID), zap.String("name", name))
	r.broadcast(playerLeft(connID, name))
	r.broadcastState()
	r.driveBots()
}

func (r *Room) viewerName(id string) (string, bool) {
	for i := range r.game.Players {
		if r.game.Players[i].ID == id {
			return r.game.Players[i].Name, true
		}
	}
	for i := range r.game.Spectators {
		if r.game.Spectators[i].ID == id {
			return r.game.Spectators[i].Name, true
		}
	}
	return "", false
}

func (r *Room) nameTaken(name string) bool {
	for i := range r.game.Players {
		if r.game.Players[i].Name == name {
			return true
		}
	}
	for i := range r.game.Spectators {
		if r.game.Spectators[i].Name == name {
			return true
		}
	}
	return false
}

func (r *Room) send(connID string, msg ServerMessage) {
	if conn, ok := r.conns[connID]; ok {
		_ = conn.WriteJSON(msg)
	}
}

func (r *Room) broadcast(msg ServerMessage) {
	for _, conn := range r.conns {
		_ = conn.WriteJSON(msg)
	}
}

// broadcastState fans a fresh per-viewer projection out to every
// connection. Each viewer only ever receives its own redacted copy.
func (r *Room) broadcastState() {
	for id, conn := range r.conns {
		view := buildGameView(r.game.Projection(id))
		_ = conn.WriteJSON(gameState(view))
	}
}

func (r *Room) shutdown() {
	for id, conn := range r.conns {
		_ = conn.Close()
		delete(r.conns, id)
	}
}
