package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/amitjaew/mini-poker/internal/codec"
	"github.com/amitjaew/mini-poker/internal/ledger"
	"github.com/amitjaew/mini-poker/internal/session"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HTTPHandler exposes the directory and the ledger over plain HTTP plus
// the websocket entry point.
type HTTPHandler struct {
	dir          *Directory
	rec          ledger.Service
	outboundSize int
}

func NewHTTPHandler(dir *Directory, rec ledger.Service, outboundSize int) *HTTPHandler {
	if outboundSize <= 0 {
		outboundSize = 10
	}
	return &HTTPHandler{dir: dir, rec: rec, outboundSize: outboundSize}
}

func (h *HTTPHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/rooms", h.handleRooms)
	mux.HandleFunc("/hands", h.handleHands)
	mux.HandleFunc("/ws", h.handleWebSocket)
}

func (h *HTTPHandler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *HTTPHandler) handleRooms(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		infos, err := h.dir.ListRooms()
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err)
			return
		}
		writeJSON(w, http.StatusOK, infos)
	case http.MethodPost:
		id, err := h.dir.CreateRoom()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id.String()})
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
	}
}

func (h *HTTPHandler) handleHands(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, errMethodNotAllowed)
		return
	}
	roomID, err := uuid.Parse(r.URL.Query().Get("room"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errBadRoomID)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	recs, err := h.rec.ListRecent(r.Context(), roomID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// handleWebSocket upgrades the connection and seats the player at the
// requested room. Without a player parameter a fresh id is minted;
// passing the previous id resumes the seat on a new socket.
func (h *HTTPHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	roomID, err := uuid.Parse(r.URL.Query().Get("room"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errBadRoomID)
		return
	}
	playerID := uuid.New()
	if v := r.URL.Query().Get("player"); v != "" {
		playerID, err = uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, errBadPlayerID)
			return
		}
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	outbound := make(chan codec.ServerMessage, h.outboundSize)
	rm, err := h.dir.Join(roomID, playerID, outbound)
	if err != nil {
		// The not-found case reaches the client as an error frame
		// before the socket closes.
		data, encErr := codec.Encode(codec.ErrorMessage(err))
		if encErr == nil {
			conn.WriteMessage(websocket.TextMessage, data)
		}
		conn.Close()
		return
	}

	log.Info().
		Str("room", roomID.String()).
		Str("player", playerID.String()).
		Msg("session opened")
	session.New(playerID, conn, rm, outbound).Run()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
