// cmd/member-qa/serve.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"member-qa/internal/api"
	"member-qa/internal/common/camunda"
	"member-qa/internal/common/config"
	"member-qa/internal/common/observability"
	"member-qa/internal/qa"
	answerquestion "member-qa/internal/workers/member-qa/answer-question"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API (and the Zeebe worker when camunda is enabled)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	obsOpts := []observability.Option{observability.AsGlobal()}
	if !cfg.Observability.MetricsEnabled {
		// otel instruments still need somewhere to register
		obsOpts = append(obsOpts, observability.WithRegisterer(prometheus.NewRegistry()))
	}
	if cfg.Observability.TracingEnabled {
		obsOpts = append(obsOpts, observability.WithTracing())
	}
	obs, err := observability.New(cfg.Observability.ServiceName, obsOpts...)
	if err != nil {
		return fmt.Errorf("observability init failed: %w", err)
	}
	defer func() {
		if err := obs.Shutdown(context.Background()); err != nil {
			log.Warn("observability shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	var recorder qa.Recorder
	if cfg.Observability.MetricsEnabled {
		recorder = obs
	}
	svc, source := newAnswerService(cfg, log, obs.Tracer(), recorder)

	if cfg.Camunda.Enabled {
		stopWorker, err := startAnswerWorker(ctx, cfg, svc)
		if err != nil {
			return err
		}
		defer stopWorker()
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	srcCfg := source.Config()
	router := api.NewRouter(api.Options{
		Answerer: svc,
		Prober:   source,
		Env: api.EnvInfo{
			BaseURL:     srcCfg.BaseURL,
			MessagesAPI: srcCfg.APIURL(),
			PageSize:    srcCfg.PageSize,
			MaxPages:    srcCfg.MaxPages,
		},
		Logger:      log,
		DebugRoutes: cfg.Server.DebugRoutes,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", map[string]interface{}{"address": cfg.Server.Address})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received", nil)
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", map[string]interface{}{"error": err.Error()})
		return err
	}
	log.Info("member-qa stopped gracefully", nil)
	return nil
}

// startAnswerWorker connects to the broker and opens the answer-question job worker.
func startAnswerWorker(ctx context.Context, cfg *config.Config, svc *qa.Service) (func(), error) {
	wcfg := answerquestion.LoadConfig(cfg)
	if !wcfg.Enabled {
		log.Info("answer-question worker disabled", nil)
		return func() {}, nil
	}

	var client *camunda.Client
	err := retryWithBackoff(func() error {
		var err error
		client, err = camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(cfg.Camunda))
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		return nil, err
	}
	log.Info("Zeebe client connected successfully", map[string]interface{}{"broker": cfg.Camunda.BrokerAddress})

	handler := answerquestion.NewHandler(wcfg, svc, log)
	w := camunda.NewWorker(client.GetClient(), camunda.WorkerOptions{
		TaskType:      answerquestion.TaskType,
		Name:          cfg.App.Name,
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       wcfg.Timeout,
	}, handler, log)

	return func() {
		w.Stop()
		if err := client.Close(); err != nil {
			log.Error("Error closing Zeebe client", map[string]interface{}{"error": err.Error()})
		}
	}, nil
}
