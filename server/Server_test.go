package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/samuelfneumann/gridmdp/dp"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New()
	logger.Out = io.Discard

	ts := httptest.NewServer(New(dp.DefaultConfig(), logger))
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url string, body interface{}) (*http.Response,
	[]byte) {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSolve(t *testing.T) {
	tests := []struct {
		algorithm  string
		req        Request
		wantValues []float64
		wantPolicy string
		wantSweeps int
	}{
		{
			algorithm:  ValueIteration,
			req:        Request{Map: "  X"},
			wantValues: []float64{0, 1, 0},
			wantPolicy: "EEX\n",
			wantSweeps: 3,
		},
		{
			algorithm:  Evaluate,
			req:        Request{Map: "  X", Policy: "EEX"},
			wantValues: []float64{0, 1, 0},
			wantPolicy: "EE.\n",
			wantSweeps: 3,
		},
		{
			algorithm:  PolicyIteration,
			req:        Request{Map: " X ", Policy: "EXW"},
			wantValues: []float64{1, 0, 1},
			wantPolicy: "E.W\n",
			wantSweeps: 2,
		},
	}

	ts := newTestServer(t)
	for _, test := range tests {
		t.Run(test.algorithm, func(t *testing.T) {
			resp, body := post(t, ts.URL+"/solve/"+test.algorithm, test.req)
			require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

			var have Response
			require.NoError(t, json.Unmarshal(body, &have))
			assert.NotEmpty(t, have.ID)
			assert.Equal(t, test.algorithm, have.Algorithm)
			assert.Equal(t, 3, have.Width)
			assert.Equal(t, 1, have.Height)
			assert.Equal(t, test.wantValues, have.Values)
			assert.Equal(t, test.wantPolicy, have.Policy)
			assert.Equal(t, test.wantSweeps, have.Sweeps)
		})
	}
}

func TestSolveWithConfig(t *testing.T) {
	ts := newTestServer(t)

	req := map[string]interface{}{
		"map":    "  X",
		"config": map[string]interface{}{"gamma": 0.5},
	}
	resp, body := post(t, ts.URL+"/solve/value", req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var have Response
	require.NoError(t, json.Unmarshal(body, &have))
	assert.Equal(t, []float64{-0.5, 1, 0}, have.Values)
}

func TestSolveErrors(t *testing.T) {
	tests := []struct {
		name      string
		algorithm string
		body      string
		want      int
	}{
		{"unknown algorithm", "qlearning", `{"map": "  X"}`,
			http.StatusNotFound},
		{"malformed json", "value", `{"map": `, http.StatusBadRequest},
		{"empty map", "value", `{"map": "  \n"}`, http.StatusBadRequest},
		{"ragged map", "value", `{"map": "  X\n #"}`, http.StatusBadRequest},
		{"dimension mismatch", "evaluate",
			`{"map": "  X", "policy": "EE\nEE"}`, http.StatusBadRequest},
		{"missing policy", "iterate", `{"map": "  X"}`,
			http.StatusBadRequest},
		{"invalid config", "value",
			`{"map": "  X", "config": {"theta": -1}}`, http.StatusBadRequest},
		{"too many iterations", "value",
			`{"map": "  X", "config": {"max_iterations": 1000000}}`,
			http.StatusBadRequest},
		{"body too large", "value",
			`{"map": "` + strings.Repeat(".", MaxRequestBytes) + `X"}`,
			http.StatusRequestEntityTooLarge},
	}

	ts := newTestServer(t)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/solve/"+test.algorithm,
				"application/json", strings.NewReader(test.body))
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, test.want, resp.StatusCode)

			var body errorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestSetMaxIterations(t *testing.T) {
	logger := log.New()
	logger.Out = io.Discard
	s := New(dp.DefaultConfig(), logger)
	s.SetMaxIterations(50)
	ts := httptest.NewServer(s)
	defer ts.Close()

	resp, _ := post(t, ts.URL+"/solve/value", map[string]interface{}{
		"map":    "  X",
		"config": map[string]interface{}{"max_iterations": 51},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = post(t, ts.URL+"/solve/value", map[string]interface{}{
		"map":    "  X",
		"config": map[string]interface{}{"max_iterations": 50},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func dial(t *testing.T, ts *httptest.Server, algorithm string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stream/" + algorithm
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStream(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, ValueIteration)
	require.NoError(t, conn.WriteJSON(Request{Map: "  X"}))

	var sweeps []SweepMessage
	var result *Response
	for result == nil {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg))
		switch msg.Type {
		case MessageSweep:
			require.NotNil(t, msg.Sweep)
			sweeps = append(sweeps, *msg.Sweep)
		case MessageResult:
			result = msg.Result
		default:
			t.Fatalf("unexpected message: %+v", msg)
		}
	}

	require.Len(t, sweeps, 3)
	for i, step := range sweeps {
		assert.Equal(t, "ValueIteration", step.Procedure)
		assert.Equal(t, i+1, step.Number)
	}
	assert.True(t, sweeps[2].Last)
	assert.True(t, sweeps[2].Converged)
	assert.Equal(t, []float64{-1, 1, 0}, sweeps[0].Values)

	require.NotNil(t, result)
	assert.Equal(t, []float64{0, 1, 0}, result.Values)
	assert.Equal(t, 3, result.Sweeps)
}

func TestStreamError(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, Evaluate)
	require.NoError(t, conn.WriteJSON(Request{Map: "  X", Policy: "E"}))

	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, MessageError, msg.Type)
	assert.NotEmpty(t, msg.Error)
}

func TestStreamUnknownAlgorithm(t *testing.T) {
	ts := newTestServer(t)
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/stream/sarsa"

	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	assert.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStreamRequestTooLarge(t *testing.T) {
	ts := newTestServer(t)
	conn := dial(t, ts, ValueIteration)
	require.NoError(t, conn.WriteJSON(Request{
		Map: strings.Repeat(".", MaxRequestBytes) + "X",
	}))

	var msg Message
	if err := conn.ReadJSON(&msg); err == nil {
		assert.Equal(t, MessageError, msg.Type)
	}
	assert.NotEqual(t, MessageResult, msg.Type)
}
