package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/teyteymey/minesweeper/ai"
	"github.com/teyteymey/minesweeper/game"
	"github.com/teyteymey/minesweeper/solver"
	"github.com/teyteymey/minesweeper/viewmodel"
)

// session is one game plus the agent playing it. The mutex guards the
// whole thing: board, agent knowledge and solver state change together.
type session struct {
	mu     sync.Mutex
	id     string
	board  *game.Board
	solver *solver.Solver
}

// Server manages game sessions over HTTP.
type Server struct {
	log zerolog.Logger

	mu       sync.Mutex
	sessions map[string]*session

	upgrader websocket.Upgrader
}

// New creates a server with no sessions.
func New(log zerolog.Logger) *Server {
	return &Server{
		log:      log,
		sessions: make(map[string]*session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API is same-origin in practice; the demo page is
			// served from anywhere, so origins are not restricted.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/new", s.handleNew)
	mux.HandleFunc("/api/state", s.handleState)
	mux.HandleFunc("/api/open", s.handleOpen)
	mux.HandleFunc("/api/step", s.handleStep)
	mux.HandleFunc("/api/watch", s.handleWatch)
	return s.logRequests(mux)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

type newGameRequest struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Mines  int    `json:"mines"`
	Seed   *int64 `json:"seed,omitempty"`
}

type gameResponse struct {
	ID   string             `json:"id"`
	View viewmodel.GameView `json:"view"`
	Move *solver.Move       `json:"move,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// handleNew starts a session. Body is optional; missing fields fall back
// to the classic 10x10 board with 10 mines.
func (s *Server) handleNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	req := newGameRequest{Width: 10, Height: 10, Mines: 10}
	if r.Body != nil {
		// Ignore decode errors on an empty body; bad JSON keeps defaults.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	if req.Width < 2 || req.Height < 2 || req.Mines < 1 ||
		req.Mines >= req.Width*req.Height {
		writeError(w, http.StatusBadRequest, "invalid board parameters")
		return
	}

	seed := time.Now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}
	rng := rand.New(rand.NewSource(seed))

	board := game.NewBoard(req.Width, req.Height, req.Mines, rng)
	agent := ai.NewAgent(req.Width, req.Height, rng, s.log)
	sess := &session{
		id:     uuid.NewString(),
		board:  board,
		solver: solver.New(board, agent, s.log),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.log.Info().
		Str("session", sess.id).
		Int("width", req.Width).
		Int("height", req.Height).
		Int("mines", req.Mines).
		Msg("new game")

	writeJSON(w, gameResponse{ID: sess.id, View: viewmodel.NewGameView(board, agent)})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) *session {
	id := r.URL.Query().Get("id")
	s.mu.Lock()
	sess := s.sessions[id]
	s.mu.Unlock()
	if sess == nil {
		writeError(w, http.StatusNotFound, "unknown session")
	}
	return sess
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}
	sess.mu.Lock()
	resp := gameResponse{ID: sess.id, View: viewmodel.NewGameView(sess.board, sess.solver.Agent)}
	sess.mu.Unlock()
	writeJSON(w, resp)
}

// handleOpen opens a square chosen by the client rather than the agent.
// The revealed counts still flow into the agent's knowledge.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	x, errX := strconv.Atoi(r.URL.Query().Get("x"))
	y, errY := strconv.Atoi(r.URL.Query().Get("y"))
	if errX != nil || errY != nil || !sess.board.InBounds(x, y) {
		writeError(w, http.StatusBadRequest, "invalid coordinates")
		return
	}

	sess.mu.Lock()
	if sess.board.Open(x, y) {
		// Flood-revealed squares flow into the agent's knowledge too.
		sess.solver.SyncKnowledge()
	}
	resp := gameResponse{ID: sess.id, View: viewmodel.NewGameView(sess.board, sess.solver.Agent)}
	sess.mu.Unlock()
	writeJSON(w, resp)
}

// handleStep lets the agent play one move.
func (s *Server) handleStep(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	sess.mu.Lock()
	var move *solver.Move
	if !sess.board.Exploded() && !sess.board.CheckClear() {
		move, _ = sess.solver.Step()
	}
	resp := gameResponse{
		ID:   sess.id,
		View: viewmodel.NewGameView(sess.board, sess.solver.Agent),
		Move: move,
	}
	sess.mu.Unlock()
	writeJSON(w, resp)
}

// handleWatch upgrades to a websocket and streams one frame per agent
// move until the game is decided or no move is left.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	if sess == nil {
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	for {
		sess.mu.Lock()
		var move *solver.Move
		alive := true
		if !sess.board.Exploded() && !sess.board.CheckClear() {
			move, alive = sess.solver.Step()
		}
		frame := gameResponse{
			ID:   sess.id,
			View: viewmodel.NewGameView(sess.board, sess.solver.Agent),
			Move: move,
		}
		done := move == nil || !alive || sess.board.CheckClear()
		sess.mu.Unlock()

		if err := conn.WriteJSON(frame); err != nil {
			s.log.Debug().Err(err).Msg("watch client gone")
			return
		}
		if done {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
