/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package web serves the pairing board over HTTP. Each browser gets its own
// viewer.View, identified by a cookie.
package web

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Al-Wasmo/sec-chessbreak-board/internal"
	"github.com/Al-Wasmo/sec-chessbreak-board/viewer"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

//go:embed templates/board.html
var boardHTML string

var boardTmpl = template.Must(template.New("board").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
	"seq": func(n int) []int {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	},
}).Parse(boardHTML))

// Server holds the dependencies of the board handlers.
type Server struct {
	Hub *viewer.Hub
	// Debug enables per-request logging.
	Debug bool
	// ReadyTimeout bounds how long /ws and /api/board?wait=1 wait for an
	// acquisition.
	ReadyTimeout time.Duration
}

func NewServer(hub *viewer.Hub) *Server {
	return &Server{
		Hub:          hub,
		ReadyTimeout: 2 * time.Minute,
	}
}

// Routes builds the board router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if s.Debug {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)

	r.Get("/", s.handlePage)
	r.Post("/league/{idx}", s.handleLeague)
	r.Post("/round/{idx}", s.handleRound)
	r.Post("/refresh", s.handleRefresh)
	r.Get("/api/board", s.handleAPI)
	r.Get("/ws", s.handleWS)
	r.Get("/healthz", Healthz)
	return r
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

// viewerID returns the viewer cookie, issuing a new one when absent or
// malformed.
func viewerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(internal.ViewerCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     internal.ViewerCookie,
		Value:    id,
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour) / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

func (s *Server) view(w http.ResponseWriter, r *http.Request) *viewer.View {
	return s.Hub.Get(viewerID(w, r))
}

type pageData struct {
	Snap    viewer.Snapshot
	Loading bool
	Error   string
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.view(w, r).Snapshot()
	data := pageData{
		Snap:    snap,
		Loading: snap.State != viewer.Ready,
	}
	if snap.Err != nil {
		data.Error = snap.Err.Error()
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := boardTmpl.Execute(w, data); err != nil {
		log.Printf("web.page: failed to render: %v", err)
	}
}

func pathIndex(r *http.Request) (int, bool) {
	idx, err := strconv.Atoi(chi.URLParam(r, "idx"))
	return idx, err == nil
}

func (s *Server) handleLeague(w http.ResponseWriter, r *http.Request) {
	v := s.view(w, r)
	idx, ok := pathIndex(r)
	if !ok {
		http.Error(w, "bad league index", http.StatusBadRequest)
		return
	}
	switch err := v.SelectLeague(idx); {
	case errors.Is(err, viewer.ErrUnknownLeague):
		http.Error(w, "league not found", http.StatusNotFound)
		return
	case errors.Is(err, viewer.ErrClosed):
		http.Error(w, "viewer expired, reload", http.StatusServiceUnavailable)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	v := s.view(w, r)
	idx, ok := pathIndex(r)
	if !ok {
		http.Error(w, "bad round index", http.StatusBadRequest)
		return
	}
	if err := v.SelectRound(idx); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.view(w, r).Refresh(); err != nil {
		http.Error(w, "viewer expired, reload", http.StatusServiceUnavailable)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) waitReady(ctx context.Context, v *viewer.View) (viewer.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.ReadyTimeout)
	defer cancel()
	return v.WaitReady(ctx)
}

func (s *Server) handleAPI(w http.ResponseWriter, r *http.Request) {
	v := s.view(w, r)
	snap := v.Snapshot()
	if r.URL.Query().Get("wait") != "" {
		var err error
		snap, err = s.waitReady(r.Context(), v)
		if err != nil {
			WriteJSON(w, http.StatusGatewayTimeout, map[string]any{
				"ok": false, "error": "board not ready"})
			return
		}
	}

	WriteJSON(w, http.StatusOK, newBoardJSON(snap))
}

// readyMessage tells a loading page that its board can be fetched.
type readyMessage struct {
	Type       string `json:"type"`
	Generation uint64 `json:"generation"`
	Error      string `json:"error,omitempty"`
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	v := s.view(w, r)

	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		log.Printf("web.ws: failed to accept: %v", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "")

	// the read side only notices the client going away
	ctx := conn.CloseRead(r.Context())
	snap, err := s.waitReady(ctx, v)
	if err != nil {
		conn.Close(websocket.StatusGoingAway, "board not ready")
		return
	}

	msg := readyMessage{Type: "ready", Generation: snap.Generation}
	if snap.Err != nil {
		msg.Error = snap.Err.Error()
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := wsjson.Write(writeCtx, conn, msg); err != nil {
		log.Printf("web.ws: failed to notify: %v", err)
		return
	}
	conn.Close(websocket.StatusNormalClosure, "ready")
}
