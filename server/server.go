package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cardroom/blackjack/game"
	"github.com/cardroom/blackjack/server/connection"
	"github.com/cardroom/blackjack/server/events"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// DisplayNotifier forwards card codes to every connected display client.
// It satisfies the table's notifier contract.
type DisplayNotifier struct {
	connMgr *connection.Manager
}

// NewDisplayNotifier creates a notifier backed by the connection manager
func NewDisplayNotifier(connMgr *connection.Manager) *DisplayNotifier {
	return &DisplayNotifier{connMgr: connMgr}
}

// Notify broadcasts a raw card code (or the reset signal) to all displays
func (n *DisplayNotifier) Notify(code string) error {
	n.connMgr.Broadcast([]byte(code))
	return nil
}

// Server exposes the table over HTTP and WebSocket
type Server struct {
	table      *game.Table
	connMgr    *connection.Manager
	dispatcher *events.Dispatcher
	logger     *log.Logger
}

// BetRequest represents the body of a bet change request
type BetRequest struct {
	Amount int `json:"amount"`
}

// ErrorResponse carries a rejection reason plus the unchanged table state
type ErrorResponse struct {
	Error string     `json:"error"`
	State game.State `json:"state"`
}

// corsMiddleware adds CORS headers to all responses
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// NewServer creates a new blackjack server around an existing table
func NewServer(table *game.Table, connMgr *connection.Manager, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix("server")

	dispatcher := events.NewDispatcher(connMgr, logger)
	table.AddEventHandler(dispatcher.HandleEvent)

	return &Server{
		table:      table,
		connMgr:    connMgr,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Handler returns the HTTP routing table
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/api/state", corsMiddleware(s.handleState))
	mux.HandleFunc("/api/bet", corsMiddleware(s.handleBet))
	mux.HandleFunc("/api/deal", corsMiddleware(s.action(s.table.Deal)))
	mux.HandleFunc("/api/hit", corsMiddleware(s.action(s.table.Hit)))
	mux.HandleFunc("/api/stand", corsMiddleware(s.action(s.table.Stand)))
	mux.HandleFunc("/api/double", corsMiddleware(s.action(s.table.DoubleDown)))
	mux.HandleFunc("/api/split", corsMiddleware(s.action(s.table.Split)))
	mux.HandleFunc("/api/shuffle", corsMiddleware(s.action(s.table.ShuffleShoe)))
	mux.HandleFunc("/api/dealer/step", corsMiddleware(s.action(s.table.StepDealer)))
	mux.HandleFunc("/api/dealer/play", corsMiddleware(s.action(s.table.PlayDealerToCompletion)))
	return mux
}

// Start begins the server on the specified address
func (s *Server) Start(addr string) error {
	go s.connMgr.Start()

	s.logger.Info("starting server", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleWebSocket handles incoming WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "err", err)
		return
	}

	clientID := uuid.NewString()
	s.logger.Info("client connected", "remote", r.RemoteAddr, "id", clientID)

	client := &connection.Client{
		ID:   clientID,
		Conn: conn,
		Send: make(chan []byte, 256),
	}

	s.connMgr.Register <- client

	go s.readPump(client)
	go s.writePump(client)

	// A fresh display starts from a clean slate.
	client.Send <- []byte(game.ResetSignal)
}

// readPump reads messages from the WebSocket connection. Displays never send
// commands, so inbound traffic is drained only to detect disconnects.
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.connMgr.Unregister <- client
		client.Conn.Close()
	}()

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket read error", "id", client.ID, "err", err)
			}
			break
		}
	}
}

// writePump sends messages to the WebSocket connection
func (s *Server) writePump(client *connection.Client) {
	defer client.Conn.Close()

	for {
		message, ok := <-client.Send
		if !ok {
			client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			s.logger.Warn("websocket write error", "id", client.ID, "err", err)
			return
		}
	}
}

// handleState returns the current table state
func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.writeState(w, s.table.State())
}

// handleBet changes the bet amount for the next round
func (s *Server) handleBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var betReq BetRequest
	if err := json.NewDecoder(r.Body).Decode(&betReq); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	state, err := s.table.PlaceBet(betReq.Amount)
	if err != nil {
		s.writeError(w, err, state)
		return
	}

	s.writeState(w, state)
}

// action adapts a table operation into an HTTP handler
func (s *Server) action(op func() (game.State, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		state, err := op()
		if err != nil {
			s.writeError(w, err, state)
			return
		}

		s.writeState(w, state)
	}
}

func (s *Server) writeState(w http.ResponseWriter, state game.State) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(state)
}

// writeError reports a rejected operation. Wrong-phase calls map to 409 so
// clients can distinguish "not now" from "never".
func (s *Server) writeError(w http.ResponseWriter, err error, state game.State) {
	status := http.StatusBadRequest
	if errors.Is(err, game.ErrInvalidState) {
		status = http.StatusConflict
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error(), State: state})
}
