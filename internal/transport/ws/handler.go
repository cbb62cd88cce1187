// Package ws serves the quiz to browsers over WebSocket. Each connection
// is one tab session driven by its own quiz.Loop.
package ws

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/abhisek/aptiz/internal/question"
	"github.com/abhisek/aptiz/internal/quiz"
)

const writeWait = 10 * time.Second

// Options configures a Handler.
type Options struct {
	// AllowedOrigins lists origins permitted to connect. Empty means
	// same-origin only; "*" allows any origin.
	AllowedOrigins []string

	// FetchTimeout bounds each question fetch.
	FetchTimeout time.Duration

	// NewTicker overrides the countdown ticker, for tests.
	NewTicker func() quiz.Ticker
}

// Handler serves /ws, /categories and /healthz.
type Handler struct {
	provider question.Provider
	opts     Options
	upgrader websocket.Upgrader
}

// NewHandler creates a Handler backed by provider.
func NewHandler(provider question.Provider, opts Options) *Handler {
	h := &Handler{
		provider: provider,
		opts:     opts,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	if len(opts.AllowedOrigins) > 0 {
		h.upgrader.CheckOrigin = h.checkOrigin
	}
	return h
}

// Routes returns a mux with every endpoint registered.
func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /categories", h.ServeCategories)
	mux.HandleFunc("GET /ws", h.ServeWS)
	return mux
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if slices.Contains(h.opts.AllowedOrigins, "*") {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return slices.Contains(h.opts.AllowedOrigins, u.Scheme+"://"+u.Host)
}

type categoryInfo struct {
	ID          question.Category `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Timed       bool              `json:"timed"`
}

// ServeCategories writes the category catalogue as JSON.
func (h *Handler) ServeCategories(w http.ResponseWriter, r *http.Request) {
	out := make([]categoryInfo, 0, len(question.Categories))
	for _, c := range question.Categories {
		out = append(out, categoryInfo{ID: c, Title: c.Title(), Description: c.Description(), Timed: c.Timed()})
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Printf("ws: encode categories: %v", err)
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type startPayload struct {
	Category question.Category `json:"category"`
}

type selectPayload struct {
	Option string `json:"option"`
	Index  *int   `json:"index"`
}

type outboundMessage struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// ServeWS upgrades the request and runs one quiz session until the
// connection closes.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	id := uuid.NewString()
	log.Printf("ws: session %s connected from %s", id, r.RemoteAddr)
	defer log.Printf("ws: session %s closed", id)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	// Unblock the reader when the server shuts down.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	send := make(chan outboundMessage, 16)
	writerDone := make(chan struct{})

	// Only this goroutine writes to conn.
	go func() {
		defer close(writerDone)
		for msg := range send {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				cancel()
				conn.Close()
				return
			}
		}
	}()

	enqueue := func(msg outboundMessage) {
		select {
		case send <- msg:
		case <-ctx.Done():
		}
	}

	loop := quiz.NewLoop(quiz.LoopConfig{
		Provider:     h.provider,
		FetchTimeout: h.opts.FetchTimeout,
		NewTicker:    h.opts.NewTicker,
	})
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		_ = loop.Run(ctx, func(s quiz.Snapshot) {
			enqueue(outboundMessage{Type: "state", Payload: s})
		})
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		in, ok := parseIntent(inbound)
		if !ok {
			enqueue(outboundMessage{Type: "error", Payload: errorPayload{Message: "unsupported message"}})
			continue
		}
		if err := loop.Send(ctx, in); err != nil {
			break
		}
	}

	cancel()
	<-loopDone
	close(send)
	<-writerDone
}

// parseIntent maps a wire message to a quiz intent.
func parseIntent(msg inboundMessage) (quiz.Intent, bool) {
	switch quiz.IntentKind(msg.Type) {
	case quiz.IntentStart:
		var p startPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil || !p.Category.Valid() {
			return quiz.Intent{}, false
		}
		return quiz.Intent{Kind: quiz.IntentStart, Category: p.Category}, true
	case quiz.IntentSelect:
		var p selectPayload
		if err := json.Unmarshal(msg.Payload, &p); err != nil {
			return quiz.Intent{}, false
		}
		switch {
		case p.Option != "":
			return quiz.Intent{Kind: quiz.IntentSelect, Option: p.Option}, true
		case p.Index != nil:
			return quiz.Intent{Kind: quiz.IntentSelect, Index: *p.Index}, true
		}
		return quiz.Intent{}, false
	case quiz.IntentSubmit, quiz.IntentNext, quiz.IntentDashboard:
		return quiz.Intent{Kind: quiz.IntentKind(msg.Type)}, true
	}
	return quiz.Intent{}, false
}
