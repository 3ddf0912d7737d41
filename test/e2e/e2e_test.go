// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"member-qa/internal/api"
	"member-qa/internal/common/camunda"
	"member-qa/internal/common/config"
	"member-qa/internal/common/logger"
	"member-qa/internal/messages"
	"member-qa/internal/models"
	"member-qa/internal/qa"
)

var memberLog = []models.Message{
	{ID: "1", UserID: "u1", UserName: "Layla Kawaguchi", Message: "Please book a private jet to London for next Friday", Timestamp: "2025-05-05T10:00:00Z"},
	{ID: "2", UserID: "u2", UserName: "Vikram Desai", Message: "I have 2 cars parked downtown", Timestamp: "2025-04-02T09:00:00Z"},
	{ID: "3", UserID: "u3", UserName: "Amira Khan", Message: "My favorite restaurants are Nobu, Per Se, and Joe's Diner", Timestamp: "2025-02-01T00:00:00Z"},
	{ID: "4", UserID: "u4", UserName: "Hans Muller", Message: "My number is 555-123-4567.", Timestamp: "2025-01-01T00:00:00Z"},
	{ID: "5", UserID: "u4", UserName: "Hans Muller", Message: "See you at the gym", Timestamp: "2025-04-01T00:00:00Z"},
}

// messagesServer serves log the way the upstream does, honoring skip and limit.
func messagesServer(t *testing.T, log []models.Message, fail bool, hits *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if fail {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		end := skip + limit
		if skip > len(log) {
			skip = len(log)
		}
		if end > len(log) {
			end = len(log)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.MessagePage{Total: len(log), Items: log[skip:end]})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newStack(t *testing.T, upstream string) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewTestLogger(t)
	source := messages.NewSource(messages.ConfigFrom(config.MessagesConfig{
		BaseURL:     upstream,
		Path:        "/messages",
		PageSize:    2,
		MaxPages:    10,
		MaxAttempts: 3,
		RetryDelay:  1,
		Timeout:     2000,
	}), log)
	svc := qa.NewService(source, qa.WithLogger(log), qa.WithClock(func() time.Time {
		return time.Date(2025, 5, 5, 0, 0, 0, 0, time.UTC)
	}))

	cfg := source.Config()
	router := api.NewRouter(api.Options{
		Answerer: svc,
		Prober:   source,
		Env: api.EnvInfo{
			BaseURL:     cfg.BaseURL,
			MessagesAPI: cfg.APIURL(),
			PageSize:    cfg.PageSize,
			MaxPages:    cfg.MaxPages,
		},
		Logger:      log,
		Gatherer:    prometheus.NewRegistry(),
		DebugRoutes: true,
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func ask(t *testing.T, base, question string) (int, string) {
	t.Helper()
	resp, err := http.Get(base + "/ask?question=" + url.QueryEscape(question))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body models.AskResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body.Answer
}

func TestAskOverHTTP(t *testing.T) {
	var hits int32
	upstream := messagesServer(t, memberLog, false, &hits)
	base := newStack(t, upstream.URL).URL

	tests := []struct {
		question string
		want     string
	}{
		{"How many cars does Vikram Desai have?", "Vikram Desai has 2 car(s)."},
		{"What are Amira's favorite restaurants?", "Amira's favorite restaurants: Nobu, Per Se, Joe's Diner"},
		{"What is Hans's phone number?", "Hans's phone number is 555-123-4567."},
		{"What is up with Hans?", "Not sure. Latest message from Hans: See you at the gym."},
		{"What is Zed's phone number?", "I do not see messages for Zed."},
		{"what is the weather?", "I could not identify the user in your question."},
	}

	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			status, answer := ask(t, base, tt.question)
			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, tt.want, answer)
		})
	}
	// five messages at two per page
	assert.GreaterOrEqual(t, atomic.LoadInt32(&hits), int32(3))
}

func TestAskOverHTTP_UpstreamDown(t *testing.T) {
	var hits int32
	upstream := messagesServer(t, nil, true, &hits)
	base := newStack(t, upstream.URL).URL

	status, answer := ask(t, base, "When is Layla planning her trip to London?")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Sorry—couldn't reach the messages service. Please try again.", answer)
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestDiagnosticsOverHTTP(t *testing.T) {
	var hits int32
	upstream := messagesServer(t, memberLog, false, &hits)
	base := newStack(t, upstream.URL).URL

	resp, err := http.Get(base + "/env")
	require.NoError(t, err)
	var env api.EnvInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	resp.Body.Close()
	assert.Equal(t, upstream.URL+"/messages", env.MessagesAPI)
	assert.Equal(t, 2, env.PageSize)

	resp, err = http.Get(base + "/debug/messages")
	require.NoError(t, err)
	var probe messages.ProbeResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&probe))
	resp.Body.Close()
	require.NotNil(t, probe.Status)
	assert.Equal(t, http.StatusOK, *probe.Status)
	assert.Contains(t, probe.BodySnippet, "Layla")
}

// TestZeebeBroker needs a running broker; set ZEEBE_ADDRESS to enable it.
func TestZeebeBroker(t *testing.T) {
	addr := os.Getenv("ZEEBE_ADDRESS")
	if addr == "" || testing.Short() {
		t.Skip("ZEEBE_ADDRESS not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(config.CamundaConfig{
		Enabled:        true,
		BrokerAddress:  addr,
		RequestTimeout: 10000,
	}))
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.HealthCheck(ctx))
}
