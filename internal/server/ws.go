package server

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Server hands connections to the current room, lazily creating a fresh
// one after the previous room idled out. Room naming and lookup are out
// of scope: one match at a time.
type Server struct {
	cfg   Config
	log   *zap.Logger
	clock Clock

	mu   sync.Mutex
	room *Room
}

func NewServer(cfg Config, log *zap.Logger) *Server {
	return &Server{cfg: cfg, log: log, clock: SystemClock()}
}

func (s *Server) currentRoom() *Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.room != nil {
		select {
		case <-s.room.Done():
		default:
			return s.room
		}
	}
	s.room = NewRoom(s.cfg, s.log, s.clock)
	go s.room.Run()
	return s.room
}

// HandleWS upgrades the connection, assigns it a server-generated id and
// pumps inbound messages into the room until the peer goes away.
func (s *Server) HandleWS(w http.ResponseWriter, req *http.Request) {
	conn, err := upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.log.Warn("ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	room := s.currentRoom()
	room.Attach(id, conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			room.Leave(id)
			return
		}
		room.Deliver(id, data)
	}
}
