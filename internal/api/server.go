// Package api exposes the answer pipeline over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"member-qa/internal/common/logger"
	"member-qa/internal/messages"
	"member-qa/internal/qa"
)

// Answerer is the answer pipeline as seen by the HTTP layer.
type Answerer interface {
	Answer(ctx context.Context, question string) qa.Result
}

// Prober runs the diagnostic request behind /debug/messages.
type Prober interface {
	Probe(ctx context.Context) messages.ProbeResult
}

// EnvInfo is what /env reports about the message source.
type EnvInfo struct {
	BaseURL     string `json:"BASE_URL"`
	MessagesAPI string `json:"MESSAGES_API"`
	PageSize    int    `json:"PAGE_SIZE"`
	MaxPages    int    `json:"MAX_PAGES"`
}

type Options struct {
	Answerer Answerer
	Prober   Prober
	Env      EnvInfo
	Logger   logger.Logger
	// Gatherer backs /metrics; nil means the default prometheus registry.
	Gatherer prometheus.Gatherer
	// DebugRoutes mounts /env and /debug/messages.
	DebugRoutes bool
}

type Server struct {
	answerer Answerer
	prober   Prober
	env      EnvInfo
	logger   logger.Logger
}

// NewRouter builds the gin engine with every route mounted.
func NewRouter(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	s := &Server{
		answerer: opts.Answerer,
		prober:   opts.Prober,
		env:      opts.Env,
		logger:   opts.Logger,
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(opts.Logger))

	r.GET("/ask", s.ask)
	r.GET("/health", s.health)
	r.GET("/ready", s.ready)

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	if opts.DebugRoutes {
		r.GET("/env", s.envInfo)
		r.GET("/debug/messages", s.debugMessages)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": "NOT_FOUND", "message": "route not found"})
	})
	return r
}
