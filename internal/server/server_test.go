package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skillmorph/assistant-go/internal/llm"
	"github.com/skillmorph/assistant-go/internal/metrics"
	"github.com/skillmorph/assistant-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgent struct {
	answer      string
	err         error
	lastQuery   string
	lastHistory []models.Message
}

func (s *stubAgent) Run(_ context.Context, query string, history []models.Message) (string, error) {
	s.lastQuery = query
	s.lastHistory = history
	return s.answer, s.err
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(context.Context) error { return s.err }

func testServer(agent Querier, db Pinger, collector *metrics.Collector) *Server {
	logger := slog.New(slog.NewTextHandler(&strings.Builder{}, nil))
	return New(0, agent, db, collector, logger)
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func TestChatQuery(t *testing.T) {
	agent := &stubAgent{answer: "There are 7 Development courses."}
	handler := testServer(agent, &stubPinger{}, nil).Handler()

	w := postJSON(t, handler, "/chat/query",
		`{"query":"how many dev courses?","messages":[{"role":"human","content":"hi"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Success  bool   `json:"success"`
		Response string `json:"response"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "There are 7 Development courses.", resp.Response)

	assert.Equal(t, "how many dev courses?", agent.lastQuery)
	require.Len(t, agent.lastHistory, 1)
	assert.Equal(t, models.RoleHuman, agent.lastHistory[0].Role)
}

func TestChatQueryMissingQuery(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body object", `{}`},
		{"blank query", `{"query":"   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent := &stubAgent{}
			handler := testServer(agent, &stubPinger{}, nil).Handler()

			w := postJSON(t, handler, "/chat/query", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp struct {
				Error string `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, "Query is required", resp.Error)
			assert.Empty(t, agent.lastQuery)
		})
	}
}

func TestChatQueryMalformedBody(t *testing.T) {
	agent := &stubAgent{}
	handler := testServer(agent, &stubPinger{}, nil).Handler()

	w := postJSON(t, handler, "/chat/query", `{"query":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid request body", resp.Error)
	assert.Empty(t, agent.lastQuery)
}

func TestChatQueryAgentFailureIsOpaque(t *testing.T) {
	agent := &stubAgent{err: errors.New("api key leaked into error text")}
	handler := testServer(agent, &stubPinger{}, nil).Handler()

	w := postJSON(t, handler, "/chat/query", `{"query":"hello"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "api key")

	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "Failed to communicate with the AI agent.", resp.Error)
}

func TestChatQueryFatalProviderErrorLogged(t *testing.T) {
	var logBuf strings.Builder
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))
	agent := &stubAgent{err: fmt.Errorf("reasoning step: generate content: %w", llm.ErrFatalAPI)}
	handler := New(0, agent, &stubPinger{}, nil, logger).Handler()

	w := postJSON(t, handler, "/chat/query", `{"query":"hello"}`)

	// The caller still gets the generic message; the log names the cause.
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to communicate with the AI agent.")
	assert.Contains(t, logBuf.String(), "non-retryable provider error")
}

func TestHealthz(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		handler := testServer(&stubAgent{}, &stubPinger{}, nil).Handler()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("database down", func(t *testing.T) {
		handler := testServer(&stubAgent{}, &stubPinger{err: errors.New("dial tcp: refused")}, nil).Handler()
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.NotContains(t, w.Body.String(), "dial tcp")
	})
}

func TestStats(t *testing.T) {
	collector := metrics.NewCollector()
	collector.RecordTiming(metrics.OpAgentRun, 0)
	handler := testServer(&stubAgent{}, &stubPinger{}, collector).Handler()

	req := httptest.NewRequest(http.MethodGet, "/stats", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var snap metrics.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.NotNil(t, snap.AgentRun)
	assert.Equal(t, int64(1), snap.AgentRun.Count)
}

func TestCORSPreflight(t *testing.T) {
	handler := testServer(&stubAgent{}, &stubPinger{}, nil).Handler()

	req := httptest.NewRequest(http.MethodOptions, "/chat/query", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
