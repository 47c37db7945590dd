package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/blackjack/cards"
	"github.com/cardroom/blackjack/game"
	"github.com/cardroom/blackjack/server/connection"
)

// scriptedShoe deals a fixed sequence of cards
type scriptedShoe struct {
	cards cards.Stack
}

func (s *scriptedShoe) DealOne() cards.Card {
	card := s.cards[0]
	s.cards = s.cards[1:]
	return card
}

func (s *scriptedShoe) Remaining() int { return len(s.cards) }
func (s *scriptedShoe) Shuffle()       {}

func mustCards(t *testing.T, codes ...string) cards.Stack {
	t.Helper()
	stack := make(cards.Stack, 0, len(codes))
	for _, code := range codes {
		card, err := cards.CardFromString(code)
		require.NoError(t, err, "bad card code %q", code)
		stack = append(stack, card)
	}
	return stack
}

func newTestServer(t *testing.T, codes ...string) (*Server, *connection.Manager) {
	t.Helper()

	rules := game.DefaultRules()
	rules.DealerDelay = 0
	rules.SplitDelay = 0

	var shoe game.CardSource
	if len(codes) > 0 {
		shoe = &scriptedShoe{cards: mustCards(t, codes...)}
	} else {
		shoe = cards.NewShoe(rules.Decks)
	}

	connMgr := connection.NewManager()
	table := game.NewTable(rules, shoe, NewDisplayNotifier(connMgr), nil, nil, nil)
	return NewServer(table, connMgr, nil), connMgr
}

func decodeState(t *testing.T, body *bytes.Buffer) game.State {
	t.Helper()
	var state game.State
	require.NoError(t, json.NewDecoder(body).Decode(&state))
	return state
}

func TestHandleState(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/state", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	state := decodeState(t, rec.Body)
	assert.Equal(t, game.StatusWaiting, state.GameStatus)
	assert.Equal(t, 1000, state.Bank)
	assert.Equal(t, 10, state.CurrentBet)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/state", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleBet(t *testing.T) {
	srv, _ := newTestServer(t)

	t.Run("accepts a valid bet", func(t *testing.T) {
		body := strings.NewReader(`{"amount": 50}`)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bet", body))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 50, decodeState(t, rec.Body).CurrentBet)
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		body := strings.NewReader(`{"amount": `)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bet", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a bet below the minimum", func(t *testing.T) {
		body := strings.NewReader(`{"amount": 5}`)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/bet", body))

		require.Equal(t, http.StatusBadRequest, rec.Code)
		var errResp ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
		assert.NotEmpty(t, errResp.Error)
		assert.Equal(t, 50, errResp.State.CurrentBet, "state in error response is untouched")
	})
}

func TestDealAndActions(t *testing.T) {
	// Player 2H+4C, dealer 3D (hole) + 5S, then player draws TD and KH to bust.
	srv, _ := newTestServer(t, "2H", "3D", "4C", "5S", "TD", "KH")

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/deal", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	state := decodeState(t, rec.Body)
	assert.Equal(t, game.StatusPlaying, state.GameStatus)
	assert.Equal(t, 990, state.Bank)
	require.Len(t, state.PlayerHands, 1)
	assert.Equal(t, 6, state.PlayerHands[0].Value)
	assert.True(t, state.DealerHidden)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/hit", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 16, decodeState(t, rec.Body).PlayerHands[0].Value)

	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/hit", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	state = decodeState(t, rec.Body)
	assert.Equal(t, game.StatusComplete, state.GameStatus)
	assert.Equal(t, game.HandLose, state.PlayerHands[0].Status)
}

func TestActionInWrongPhaseConflicts(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{"/api/hit", "/api/stand", "/api/double", "/api/split", "/api/dealer/step", "/api/dealer/play"} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusConflict, rec.Code, "path %s", path)

		var errResp ErrorResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&errResp))
		assert.Equal(t, game.StatusWaiting, errResp.State.GameStatus)
	}
}

func TestShuffleEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/shuffle", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	state := decodeState(t, rec.Body)
	assert.Equal(t, game.StatusWaiting, state.GameStatus)
	assert.Equal(t, 6*cards.DeckSize, state.CardsRemaining)
}

func TestWebSocketDisplayFeed(t *testing.T) {
	srv, connMgr := newTestServer(t, "2H", "3D", "4C", "5S")
	go connMgr.Start()

	ts := httptest.NewServer(srv.Handler())
	defer ts.Close()

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	readText := func() string {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, message, err := conn.ReadMessage()
		require.NoError(t, err)
		return string(message)
	}

	require.Equal(t, game.ResetSignal, readText(), "fresh display is told to reset")

	require.Eventually(t, func() bool { return connMgr.Count() == 1 }, time.Second, 10*time.Millisecond)

	resp, err := http.Post(ts.URL+"/api/deal", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// The feed interleaves raw card codes with JSON event envelopes; the
	// display only cares about the codes, in deal order, hole card omitted.
	var codes []string
	for len(codes) < 3 {
		message := readText()
		if strings.HasPrefix(message, "{") {
			continue
		}
		codes = append(codes, message)
	}
	assert.Equal(t, []string{"2H", "4C", "5S"}, codes)
}
