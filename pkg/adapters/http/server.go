// Package http exposes a console over HTTP: state inspection, write and clear
// requests, variable inspectors, a server-sent event stream of lifecycle
// events, and optionally Prometheus metrics.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/hackterm"
	"github.com/aretw0/hackterm/internal/logging"
	"github.com/aretw0/hackterm/pkg/domain"
)

// Console is the part of the console served over HTTP.
type Console interface {
	Write(message string, args ...any)
	WriteLine(message string, args ...any)
	Clear()
	ClearLastLine()
	AddVariable(name string, value any, visibility domain.Visibility) error
	RemoveVariable(name string) error
	Text() string
	Busy() bool
	Variables() []string
	SkippedSteps() int
	TutorialPlaying() bool
}

// Server handles the console routes.
type Server struct {
	Console Console
	Streams *StreamManager
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithMetricsHandler mounts h at /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// ConsoleState is the body of GET /console.
type ConsoleState struct {
	Text            string   `json:"text"`
	Busy            bool     `json:"busy"`
	Variables       []string `json:"variables"`
	SkippedSteps    int      `json:"skipped_steps"`
	TutorialPlaying bool     `json:"tutorial_playing"`
}

// WriteRequest is the body of POST /console/write.
// Mode is "write" (default, "\n\t" suffix), "line" ("\n>\t" suffix).
type WriteRequest struct {
	Message string `json:"message"`
	Mode    string `json:"mode,omitempty"`
}

// VariableRequest is the body of PUT /variables/{name}.
type VariableRequest struct {
	Value  any      `json:"value"`
	Hidden []string `json:"hidden,omitempty"`
}

// NewHandler creates the router. streams may be nil, in which case /events
// is not served.
func NewHandler(console Console, streams *StreamManager, opts ...Option) http.Handler {
	s := &Server{
		Console: console,
		Streams: streams,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/console", s.GetConsole)
	r.Post("/console/write", s.PostWrite)
	r.Post("/console/clear", s.PostClear)
	r.Post("/console/clear-last-line", s.PostClearLastLine)
	r.Put("/variables/{name}", s.PutVariable)
	r.Delete("/variables/{name}", s.DeleteVariable)
	if streams != nil {
		r.Get("/events", s.SubscribeEvents)
	}
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "hackterm-http",
		"version": strings.TrimSpace(hackterm.Version),
	})
}

// GetConsole handles GET /console.
func (s *Server) GetConsole(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, ConsoleState{
		Text:            s.Console.Text(),
		Busy:            s.Console.Busy(),
		Variables:       s.Console.Variables(),
		SkippedSteps:    s.Console.SkippedSteps(),
		TutorialPlaying: s.Console.TutorialPlaying(),
	})
}

// PostWrite handles POST /console/write. The write is queued, not awaited.
func (s *Server) PostWrite(w http.ResponseWriter, r *http.Request) {
	var body WriteRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("write: invalid request body", "err", err)
		return
	}

	switch body.Mode {
	case "", "write":
		s.Console.Write(body.Message)
	case "line":
		s.Console.WriteLine(body.Message)
	default:
		http.Error(w, fmt.Sprintf("Unknown mode %q", body.Mode), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// PostClear handles POST /console/clear.
func (s *Server) PostClear(w http.ResponseWriter, r *http.Request) {
	s.Console.Clear()
	w.WriteHeader(http.StatusAccepted)
}

// PostClearLastLine handles POST /console/clear-last-line.
func (s *Server) PostClearLastLine(w http.ResponseWriter, r *http.Request) {
	s.Console.ClearLastLine()
	w.WriteHeader(http.StatusAccepted)
}

// PutVariable handles PUT /variables/{name}.
func (s *Server) PutVariable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	var body VariableRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("variable: invalid request body", "name", name, "err", err)
		return
	}

	vis := make(domain.Visibility, len(body.Hidden))
	for _, key := range body.Hidden {
		vis[key] = false
	}
	if err := s.Console.AddVariable(name, body.Value, vis); err != nil {
		http.Error(w, fmt.Sprintf("Variable error: %v", err), http.StatusInternalServerError)
		s.logger.Error("add variable failed", "name", name, "err", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteVariable handles DELETE /variables/{name}.
func (s *Server) DeleteVariable(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := s.Console.RemoveVariable(name); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrVariableNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, fmt.Sprintf("Variable error: %v", err), status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeEvents handles GET /events (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()
	s.logger.Debug("sse client connected")

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("sse client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
