// cmd/member-qa/wiring.go
package main

import (
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"

	"member-qa/internal/common/config"
	"member-qa/internal/common/logger"
	"member-qa/internal/messages"
	"member-qa/internal/qa"
)

// newAnswerService wires the message source into the answer pipeline.
func newAnswerService(cfg *config.Config, log logger.Logger, tracer trace.Tracer, recorder qa.Recorder) (*qa.Service, *messages.Source) {
	var srcOpts []messages.Option
	svcOpts := []qa.Option{qa.WithLogger(log)}
	if tracer != nil {
		srcOpts = append(srcOpts, messages.WithTracer(tracer))
		svcOpts = append(svcOpts, qa.WithTracer(tracer))
	}
	if recorder != nil {
		svcOpts = append(svcOpts, qa.WithRecorder(recorder))
	}

	source := messages.NewSource(messages.ConfigFrom(cfg.Messages), log, srcOpts...)
	return qa.NewService(source, svcOpts...), source
}

// retryWithBackoff runs operation until it succeeds, doubling the delay between attempts.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}
