// Package server exposes the gridworld solvers over HTTP. Solutions are
// returned as JSON, and the sweeps of a run can be streamed over a
// websocket.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/samuelfneumann/gridmdp/dp"
	log "github.com/sirupsen/logrus"
)

// Routes served by a Server
const (
	URISolve   = "/solve/:algorithm"
	URIStream  = "/stream/:algorithm"
	URIHealthz = "/healthz"
)

const (
	// MaxRequestBytes is the largest request body, or stream message,
	// a Server reads
	MaxRequestBytes = 1 << 20

	// MaxRequestIterations is the default limit on the number of sweeps
	// per run a request may ask for
	MaxRequestIterations = 10000
)

// Server handles solve requests. Every request is solved by its own
// dp.Solver, so requests share no solver state.
type Server struct {
	router        *way.Router
	upgrader      websocket.Upgrader
	defaults      dp.Config
	maxIterations int
	logger        log.FieldLogger
}

// New creates a new Server. Requests which do not carry a solver
// configuration, or carry only part of one, are filled in from defaults.
// Requests may ask for at most MaxRequestIterations sweeps per run, or
// the MaxIterations of defaults if that is larger.
func New(defaults dp.Config, logger log.FieldLogger) *Server {
	if logger == nil {
		logger = log.StandardLogger()
	}

	s := &Server{
		defaults:      defaults,
		maxIterations: max(defaults.MaxIterations, MaxRequestIterations),
		logger:        logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router = way.NewRouter()
	s.router.HandleFunc(http.MethodPost, URISolve, s.handleSolve())
	s.router.HandleFunc(http.MethodGet, URIStream, s.handleStream())
	s.router.HandleFunc(http.MethodGet, URIHealthz, s.handleHealthz())
}

// SetMaxIterations sets the largest number of sweeps per run a request
// may ask for
func (s *Server) SetMaxIterations(n int) {
	s.maxIterations = n
}

// ServeHTTP implements the http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves requests on addr until the listener fails
func (s *Server) ListenAndServe(addr string) error {
	s.logger.WithField("addr", addr).Info("serving")
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// errorResponse is the body of every failed request
type errorResponse struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
