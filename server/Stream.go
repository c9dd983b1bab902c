package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/samuelfneumann/gridmdp/sweep"
	"github.com/samuelfneumann/gridmdp/tracker"
	log "github.com/sirupsen/logrus"
)

// Types of Message sent over a stream
const (
	MessageSweep  = "sweep"
	MessageResult = "result"
	MessageError  = "error"
)

// Message is sent over a stream, once for every sweep of the run, and
// then once more with either the result or an error
type Message struct {
	Type   string        `json:"type"`
	Sweep  *SweepMessage `json:"sweep,omitempty"`
	Result *Response     `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// SweepMessage describes a single sweep
type SweepMessage struct {
	Procedure string    `json:"procedure"`
	Round     int       `json:"round"`
	Number    int       `json:"number"`
	Delta     float64   `json:"delta"`
	Converged bool      `json:"converged"`
	Last      bool      `json:"last"`
	Values    []float64 `json:"values"`
}

func newSweepMessage(s sweep.Sweep) *SweepMessage {
	return &SweepMessage{
		Procedure: s.Procedure.String(),
		Round:     s.Round,
		Number:    s.Number,
		Delta:     s.Delta,
		Converged: s.Converged,
		Last:      s.Last(),
		Values:    s.Values,
	}
}

// handleStream upgrades the connection to a websocket, reads a single
// Request from it, and streams the run
func (s *Server) handleStream() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		algorithm := way.Param(r.Context(), "algorithm")
		logger := s.logger.WithFields(log.Fields{
			"id":        id,
			"algorithm": algorithm,
		})

		if !knownAlgorithm(algorithm) {
			logger.Warn("unknown algorithm")
			writeJSON(w, http.StatusNotFound, errorResponse{ID: id,
				Error: fmt.Sprintf("unknown algorithm %q", algorithm)})
			return
		}

		conn, err := s.upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.WithError(err).Warn("websocket upgrade failed")
			return
		}
		defer conn.Close()

		conn.SetReadLimit(MaxRequestBytes)
		_, data, err := conn.NextReader()
		if err != nil {
			logger.WithError(err).Warn("could not read request")
			return
		}

		req, err := s.decode(data)
		if err != nil {
			s.sendError(conn, logger, err)
			return
		}

		// Sweeps are tracked on this goroutine, so writes never overlap
		var writeErr error
		stream := tracker.Func(func(step sweep.Sweep) {
			if writeErr != nil {
				return
			}
			writeErr = conn.WriteJSON(Message{
				Type:  MessageSweep,
				Sweep: newSweepMessage(step),
			})
		})

		resp, err := s.solve(id, algorithm, req, stream)
		if err != nil {
			s.sendError(conn, logger, err)
			return
		}
		if writeErr != nil {
			logger.WithError(writeErr).Warn("could not stream sweep")
			return
		}

		if err := conn.WriteJSON(Message{Type: MessageResult,
			Result: &resp}); err != nil {
			logger.WithError(err).Warn("could not send result")
			return
		}
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		logger.WithField("sweeps", resp.Sweeps).Info("streamed")
	}
}

func (s *Server) sendError(conn *websocket.Conn, logger log.FieldLogger,
	err error) {
	logger.WithError(err).Warn("could not solve request")
	if err := conn.WriteJSON(Message{Type: MessageError,
		Error: err.Error()}); err != nil {
		logger.WithError(err).Warn("could not send error")
	}
}
