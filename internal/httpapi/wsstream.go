package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// outboundMessage is the envelope written to every websocket subscriber.
type outboundMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// StreamServer serves the live trade and snapshot feeds over plain
// net/http + gorilla/websocket, since fiber's fasthttp transport doesn't
// speak net/http's hijack-based upgrade directly. It runs alongside the
// fiber app on its own listener.
type StreamServer struct {
	runner   *Runner
	upgrader websocket.Upgrader
}

// NewStreamServer builds a StreamServer over runner, accepting
// cross-origin upgrades the way a local observability tool would.
func NewStreamServer(runner *Runner) *StreamServer {
	return &StreamServer{
		runner:   runner,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
	}
}

// Handler returns the http.Handler to mount on a listener.
func (s *StreamServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/trades", s.handleTrades)
	mux.HandleFunc("/ws/snapshots", s.handleSnapshots)
	return mux
}

func (s *StreamServer) handleTrades(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sub := s.runner.Trades().Subscribe(64)
	defer s.runner.Trades().Unsubscribe(sub)

	for trade := range sub.C() {
		if err := conn.WriteJSON(outboundMessage{Type: "trade", Data: trade}); err != nil {
			return
		}
	}
}

func (s *StreamServer) handleSnapshots(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sub := s.runner.Snapshots().Subscribe(64)
	defer s.runner.Snapshots().Unsubscribe(sub)

	for snap := range sub.C() {
		if err := conn.WriteJSON(outboundMessage{Type: "snapshot", Data: snap}); err != nil {
			return
		}
	}
}
