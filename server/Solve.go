package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/matryer/way"
	"github.com/samuelfneumann/gridmdp/dp"
	"github.com/samuelfneumann/gridmdp/environment/gridworld"
	"github.com/samuelfneumann/gridmdp/policy"
	"github.com/samuelfneumann/gridmdp/sweep"
	"github.com/samuelfneumann/gridmdp/tracker"
	log "github.com/sirupsen/logrus"
)

// Algorithms which can be requested
const (
	Evaluate        = "evaluate"
	PolicyIteration = "iterate"
	ValueIteration  = "value"
)

// Request is the body of a solve request. Policy is required by
// Evaluate and PolicyIteration and ignored by ValueIteration.
type Request struct {
	Map    string     `json:"map"`
	Policy string     `json:"policy,omitempty"`
	Config *dp.Config `json:"config,omitempty"`
}

// Response is the solution of a solve request. Policy is in the policy
// file format.
type Response struct {
	ID        string    `json:"id"`
	Algorithm string    `json:"algorithm"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Values    []float64 `json:"values"`
	Policy    string    `json:"policy"`
	Sweeps    int       `json:"sweeps"`
}

// RequestError reports a solve request which cannot be solved
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsRequestError returns whether or not an error is a *RequestError
func IsRequestError(err error) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr)
}

// knownAlgorithm returns whether algorithm names a solver
func knownAlgorithm(algorithm string) bool {
	switch algorithm {
	case Evaluate, PolicyIteration, ValueIteration:
		return true
	}
	return false
}

// decode reads a Request from r, filling in missing configuration from
// the Server's defaults. Requests asking for more sweeps than the
// Server allows are rejected.
func (s *Server) decode(r io.Reader) (Request, error) {
	config := s.defaults
	req := Request{Config: &config}
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return Request{}, err
		}
		return Request{}, &RequestError{Op: "decode", Err: err}
	}
	if req.Config == nil {
		config = s.defaults
		req.Config = &config
	}

	if req.Config.MaxIterations > s.maxIterations {
		return Request{}, &RequestError{Op: "decode",
			Err: fmt.Errorf("max iterations cannot exceed %d, have %d",
				s.maxIterations, req.Config.MaxIterations)}
	}
	return req, nil
}

// solve runs algorithm on req. Every sweep is passed to trackers.
func (s *Server) solve(id, algorithm string, req Request,
	trackers ...tracker.Tracker) (Response, error) {
	m, err := gridworld.ParseString(req.Map)
	if err != nil {
		return Response{}, &RequestError{Op: "solve", Err: err}
	}
	env := gridworld.New(m)

	solver, err := dp.New(env, *req.Config)
	if err != nil {
		return Response{}, &RequestError{Op: "solve", Err: err}
	}
	solver.SetLogger(s.logger.WithFields(log.Fields{
		"id":        id,
		"algorithm": algorithm,
	}))

	sweeps := 0
	solver.Register(tracker.Func(func(sweep.Sweep) { sweeps++ }))
	for _, t := range trackers {
		solver.Register(t)
	}

	var result *policy.Policy
	switch algorithm {
	case ValueIteration:
		result = solver.ValueIteration()

	case Evaluate, PolicyIteration:
		p, err := policy.ParseString(req.Policy)
		if err != nil {
			return Response{}, &RequestError{Op: "solve", Err: err}
		}

		if algorithm == Evaluate {
			_, err = solver.Evaluate(p)
			result = p
		} else {
			result, err = solver.PolicyIteration(p)
		}
		if err != nil {
			return Response{}, &RequestError{Op: "solve", Err: err}
		}

	default:
		return Response{}, fmt.Errorf("solve: unknown algorithm %q",
			algorithm)
	}

	return Response{
		ID:        id,
		Algorithm: algorithm,
		Width:     env.Width(),
		Height:    env.Height(),
		Values:    result.Values(),
		Policy:    result.String(),
		Sweeps:    sweeps,
	}, nil
}

func (s *Server) handleSolve() http.HandlerFunc {
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

		body := http.MaxBytesReader(w, r.Body, MaxRequestBytes)
		req, err := s.decode(body)
		if err == nil {
			var resp Response
			resp, err = s.solve(id, algorithm, req)
			if err == nil {
				logger.WithField("sweeps", resp.Sweeps).Info("solved")
				writeJSON(w, http.StatusOK, resp)
				return
			}
		}

		var tooLarge *http.MaxBytesError
		status := http.StatusInternalServerError
		switch {
		case errors.As(err, &tooLarge):
			status = http.StatusRequestEntityTooLarge
		case IsRequestError(err):
			status = http.StatusBadRequest
		}
		logger.WithError(err).Warn("could not solve request")
		writeJSON(w, status, errorResponse{ID: id, Error: err.Error()})
	}
}
