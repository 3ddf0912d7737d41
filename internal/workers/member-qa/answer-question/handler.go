package answerquestion

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	apperrors "member-qa/internal/common/errors"
	"member-qa/internal/common/logger"
	"member-qa/internal/common/metrics"
	"member-qa/internal/common/validation"
	"member-qa/internal/qa"
)

const (
	TaskType = "answer-member-question"
)

// Answerer is the answer pipeline.
type Answerer interface {
	Answer(ctx context.Context, question string) qa.Result
}

type Handler struct {
	config     *Config
	answerer   Answerer
	logger     logger.Logger
	errHandler *apperrors.ErrorHandler
}

func NewHandler(config *Config, answerer Answerer, log logger.Logger) *Handler {
	log = log.With(map[string]interface{}{
		"taskType": TaskType,
	})
	return &Handler{
		config:     config,
		answerer:   answerer,
		logger:     log,
		errHandler: apperrors.NewErrorHandler(log),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	defer func() {
		metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
	}()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := ParseInput(job.Variables)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(apperrors.CodeOf(err))).Inc()
		h.errHandler.HandleJobError(ctx, client, job, err)
		return
	}

	output := h.Execute(ctx, input)
	h.completeJob(ctx, client, job, output)
}

// ParseInput decodes and validates the job variables.
func ParseInput(variables string) (*Input, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return nil, apperrors.NewInputParsingFailedError(err)
	}

	// the schema only constrains question, so any violation is a missing question
	if res := validation.AnswerQuestionInput.ValidateGo(raw); !res.Valid {
		return nil, apperrors.NewQuestionRequiredError().
			WithMetadata("validationErrors", res.GetErrorMessages())
	}

	question, _ := raw["question"].(string)
	if strings.TrimSpace(question) == "" {
		return nil, apperrors.NewQuestionRequiredError()
	}
	return &Input{Question: question}, nil
}

// Execute answers the question. It never fails; the outcome says how far the pipeline got.
func (h *Handler) Execute(ctx context.Context, input *Input) *Output {
	res := h.answerer.Answer(logger.IntoContext(ctx, h.logger), input.Question)
	return &Output{
		Answer:  res.Answer,
		Subject: res.Outcome.Subject,
		Intent:  string(res.Outcome.Intent),
		Outcome: string(res.Outcome.Status),
	}
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey":  job.Key,
		"intent":  output.Intent,
		"outcome": output.Outcome,
	})
}
