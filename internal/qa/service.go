package qa

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"member-qa/internal/common/logger"
	"member-qa/internal/common/metrics"
	"member-qa/internal/messages"
	"member-qa/internal/models"
	"member-qa/internal/qa/extract"
)

// Recorder receives one observation per answered question.
type Recorder interface {
	RecordQuestion(ctx context.Context, intent, outcome string, d time.Duration)
}

// Result is the answer plus the outcome it was composed from.
type Result struct {
	Answer  string
	Outcome Outcome
}

// Service runs the answer pipeline. It keeps no state between questions.
type Service struct {
	source    messages.Fetcher
	extractor *extract.Extractor
	logger    logger.Logger
	tracer    trace.Tracer
	recorder  Recorder
}

type Option func(*Service)

func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithClock sets the reference time used when a message timestamp is unusable.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.extractor = extract.New(extract.NewDateNormalizer(now))
	}
}

func NewService(source messages.Fetcher, opts ...Option) *Service {
	s := &Service{
		source:    source,
		extractor: extract.New(extract.NewDateNormalizer(nil)),
		logger:    logger.NewNoOpLogger(),
		tracer:    noop.NewTracerProvider().Tracer("qa"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer always produces a non-empty answer. Failures and panics become answers too.
func (s *Service) Answer(ctx context.Context, question string) (res Result) {
	start := time.Now()
	log := logger.FromContext(ctx, s.logger)

	ctx, span := s.tracer.Start(ctx, "qa.Answer")
	defer span.End()

	intent := ClassifyIntent(question)

	defer func() {
		if r := recover(); r != nil {
			detail := fmt.Sprint(r)
			if err, ok := r.(error); ok {
				detail = err.Error()
			}
			log.Error("answer pipeline panicked", map[string]interface{}{
				"question": question,
				"panic":    detail,
			})
			res.Outcome = Outcome{Status: StatusFailed, Intent: intent, Detail: detail}
		}
		if res.Outcome.Status == StatusFailed {
			span.SetStatus(codes.Error, res.Outcome.Detail)
		}
		res.Answer = Compose(res.Outcome)

		elapsed := time.Since(start)
		span.SetAttributes(
			attribute.String("qa.intent", string(intent)),
			attribute.String("qa.status", string(res.Outcome.Status)),
			attribute.String("qa.subject", res.Outcome.Subject),
		)
		metrics.QuestionsAnswered.WithLabelValues(string(intent), string(res.Outcome.Status)).Inc()
		metrics.QuestionDuration.WithLabelValues(string(intent)).Observe(elapsed.Seconds())
		if s.recorder != nil {
			s.recorder.RecordQuestion(ctx, string(intent), string(res.Outcome.Status), elapsed)
		}
		log.Info("question answered", map[string]interface{}{
			"intent":     string(intent),
			"status":     string(res.Outcome.Status),
			"subject":    res.Outcome.Subject,
			"durationMs": elapsed.Milliseconds(),
		})
	}()

	res.Outcome = s.resolve(ctx, log, question, intent)
	return res
}

func (s *Service) resolve(ctx context.Context, log logger.Logger, question string, intent Intent) Outcome {
	who, ok := ResolveSubject(question)
	if !ok {
		return Outcome{Status: StatusNoSubject, Intent: intent}
	}

	all, err := s.source.FetchAll(ctx)
	if err != nil {
		if errors.Is(err, messages.ErrUnreachable) {
			return Outcome{Status: StatusUnreachable, Intent: intent, Subject: who}
		}
		return Outcome{Status: StatusFailed, Intent: intent, Subject: who, Detail: err.Error()}
	}

	candidates := messagesFor(all, who)
	if len(candidates) == 0 {
		return Outcome{Status: StatusNoMessages, Intent: intent, Subject: who}
	}
	log.Debug("subject resolved", map[string]interface{}{
		"subject":    who,
		"intent":     string(intent),
		"candidates": len(candidates),
	})

	out := Outcome{Status: StatusNotFound, Intent: intent, Subject: who}

	switch intent {
	case IntentTrip:
		dest, _ := extract.Destination(question)
		out.Destination = dest
		for _, m := range newestFirst(candidates) {
			when, ok := s.extractor.Trip(m.Message, dest, m.Timestamp)
			if !ok {
				continue
			}
			if extract.LooksLikeDining(m.Message) {
				log.Debug("trip match reads like a dining booking", map[string]interface{}{
					"subject": who,
					"message": m.Message,
				})
			}
			out.Status, out.Value = StatusAnswered, when
			break
		}

	case IntentCars:
		out.Status, out.Value = firstFact(candidates, extract.Cars)

	case IntentPhone:
		out.Status, out.Value = firstFact(candidates, extract.Phone)

	case IntentRestaurants:
		for _, m := range candidates {
			if items, ok := extract.Restaurants(m.Message); ok {
				out.Status, out.Restaurants = StatusAnswered, items
				break
			}
		}

	default:
		out.Status, out.Value = StatusAnswered, latest(candidates).Message
	}
	return out
}

// messagesFor keeps messages whose user name starts with who, ignoring case. Log order is kept.
func messagesFor(all []models.Message, who string) []models.Message {
	prefix := strings.ToLower(who)
	var out []models.Message
	for _, m := range all {
		if strings.HasPrefix(strings.ToLower(m.UserName), prefix) {
			out = append(out, m)
		}
	}
	return out
}

func newestFirst(msgs []models.Message) []models.Message {
	sorted := make([]models.Message, len(msgs))
	copy(sorted, msgs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	return sorted
}

// latest picks the greatest timestamp string; ties go to the later message in the log.
func latest(msgs []models.Message) models.Message {
	best := msgs[0]
	for _, m := range msgs[1:] {
		if m.Timestamp >= best.Timestamp {
			best = m
		}
	}
	return best
}

func firstFact(msgs []models.Message, find func(string) (string, bool)) (Status, string) {
	for _, m := range msgs {
		if v, ok := find(m.Message); ok {
			return StatusAnswered, v
		}
	}
	return StatusNotFound, ""
}
