package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"member-qa/internal/common/logger"
	"member-qa/internal/messages"
	"member-qa/internal/models"
	"member-qa/internal/qa"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ==========================
// Mocks
// ==========================

type MockAnswerer struct {
	mock.Mock
}

func (m *MockAnswerer) Answer(ctx context.Context, question string) qa.Result {
	args := m.Called(ctx, question)
	return args.Get(0).(qa.Result)
}

type stubProber struct {
	res messages.ProbeResult
}

func (p stubProber) Probe(ctx context.Context) messages.ProbeResult {
	return p.res
}

func newTestRouter(t *testing.T, answerer Answerer, debug bool) *gin.Engine {
	t.Helper()
	status := 200
	return NewRouter(Options{
		Answerer: answerer,
		Prober:   stubProber{res: messages.ProbeResult{URL: "http://upstream/messages?limit=2&skip=0", Status: &status}},
		Env: EnvInfo{
			BaseURL:     "http://upstream",
			MessagesAPI: "http://upstream/messages",
			PageSize:    100,
			MaxPages:    10,
		},
		Logger:      logger.NewTestLogger(t),
		Gatherer:    prometheus.NewRegistry(),
		DebugRoutes: debug,
	})
}

func do(r http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==========================
// /ask
// ==========================

func TestAsk_ReturnsAnswer(t *testing.T) {
	m := &MockAnswerer{}
	m.On("Answer", mock.Anything, "How many cars does John Smith have?").
		Return(qa.Result{Answer: "John Smith has 3 car(s)."}).Once()

	w := do(newTestRouter(t, m, false), http.MethodGet, "/ask?question=How+many+cars+does+John+Smith+have%3F", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.AskResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "John Smith has 3 car(s).", body.Answer)
	assert.NotEmpty(t, w.Header().Get(headerRequestID))
	m.AssertExpectations(t)
}

func TestAsk_NotFoundIsStill200(t *testing.T) {
	m := &MockAnswerer{}
	m.On("Answer", mock.Anything, "What is it?").
		Return(qa.Result{Answer: "I could not identify the user in your question."})

	w := do(newTestRouter(t, m, false), http.MethodGet, "/ask?question=What+is+it%3F", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"answer":"I could not identify the user in your question."}`, w.Body.String())
}

func TestAsk_MissingQuestion(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{name: "absent", target: "/ask"},
		{name: "empty", target: "/ask?question="},
		{name: "blank", target: "/ask?question=%20%20"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &MockAnswerer{}
			w := do(newTestRouter(t, m, false), http.MethodGet, tt.target, nil)
			assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "QUESTION_REQUIRED", body["code"])
			m.AssertNotCalled(t, "Answer", mock.Anything, mock.Anything)
		})
	}
}

func TestAsk_PropagatesRequestID(t *testing.T) {
	m := &MockAnswerer{}
	m.On("Answer", mock.Anything, mock.Anything).Return(qa.Result{Answer: "ok"})

	w := do(newTestRouter(t, m, false), http.MethodGet, "/ask?question=hi", map[string]string{headerRequestID: "req-123"})
	assert.Equal(t, "req-123", w.Header().Get(headerRequestID))
}

// ==========================
// Diagnostics
// ==========================

func TestHealthAndReady(t *testing.T) {
	r := newTestRouter(t, &MockAnswerer{}, false)

	w := do(r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())

	w = do(r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ready":true}`, w.Body.String())
}

func TestReady_NoAnswerer(t *testing.T) {
	w := do(newTestRouter(t, nil, false), http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDebugRoutes(t *testing.T) {
	r := newTestRouter(t, &MockAnswerer{}, true)

	w := do(r, http.MethodGet, "/env", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"BASE_URL":"http://upstream","MESSAGES_API":"http://upstream/messages","PAGE_SIZE":100,"MAX_PAGES":10}`, w.Body.String())

	w = do(r, http.MethodGet, "/debug/messages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var probe messages.ProbeResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &probe))
	require.NotNil(t, probe.Status)
	assert.Equal(t, 200, *probe.Status)
}

func TestDebugRoutes_Disabled(t *testing.T) {
	r := newTestRouter(t, &MockAnswerer{}, false)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/env", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/debug/messages", nil).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	w := do(newTestRouter(t, &MockAnswerer{}, false), http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
