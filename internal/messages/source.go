// Package messages reads the remote member message log.
package messages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"member-qa/internal/common/config"
	apperrors "member-qa/internal/common/errors"
	commonhttp "member-qa/internal/common/http"
	"member-qa/internal/common/logger"
	"member-qa/internal/common/metrics"
	"member-qa/internal/common/validation"
	"member-qa/internal/models"
)

// ErrUnreachable means some page failed every attempt. It is distinct from an empty log.
var ErrUnreachable = errors.New("messages service unreachable")

// Fetcher is what the answer pipeline needs from a message source.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]models.Message, error)
}

type Config struct {
	BaseURL     string
	Path        string
	PageSize    int
	MaxPages    int
	MaxAttempts int
	RetryDelay  time.Duration
	Timeout     time.Duration
}

// ConfigFrom maps the loaded messages section onto a source config.
func ConfigFrom(c config.MessagesConfig) Config {
	return Config{
		BaseURL:     c.BaseURL,
		Path:        c.Path,
		PageSize:    c.PageSize,
		MaxPages:    c.MaxPages,
		MaxAttempts: c.MaxAttempts,
		RetryDelay:  config.GetDuration(c.RetryDelay),
		Timeout:     config.GetDuration(c.Timeout),
	}
}

func (c Config) withDefaults() Config {
	if c.Path == "" {
		c.Path = "/messages"
	}
	if c.PageSize <= 0 {
		c.PageSize = 100
	}
	if c.MaxPages <= 0 {
		c.MaxPages = 10
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.RetryDelay < 0 {
		c.RetryDelay = 0
	}
	if c.Timeout <= 0 {
		c.Timeout = 20 * time.Second
	}
	return c
}

// APIURL is the messages endpoint without query parameters.
func (c Config) APIURL() string {
	return strings.TrimRight(c.BaseURL, "/") + "/" + strings.TrimLeft(c.Path, "/")
}

type Source struct {
	cfg    Config
	client *commonhttp.Client
	logger logger.Logger
	tracer trace.Tracer
}

type Option func(*Source)

// WithTracer records a span per FetchAll.
func WithTracer(t trace.Tracer) Option {
	return func(s *Source) {
		if t != nil {
			s.tracer = t
		}
	}
}

func NewSource(cfg Config, log logger.Logger, opts ...Option) *Source {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	s := &Source{
		cfg:    cfg,
		logger: log,
		tracer: noop.NewTracerProvider().Tracer("messages"),
	}
	s.client = commonhttp.NewClient(cfg.Timeout,
		commonhttp.WithRetryPolicy(commonhttp.RetryPolicy{
			MaxAttempts: cfg.MaxAttempts,
			Delay:       cfg.RetryDelay,
		}),
		commonhttp.WithAttemptObserver(s.observeAttempt),
	)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the effective configuration.
func (s *Source) Config() Config {
	return s.cfg
}

// FetchAll pages through the log with skip/limit until a short page or MaxPages.
func (s *Source) FetchAll(ctx context.Context) ([]models.Message, error) {
	ctx, span := s.tracer.Start(ctx, "messages.FetchAll")
	defer span.End()

	var all []models.Message
	skip := 0
	for page := 0; page < s.cfg.MaxPages; page++ {
		items, err := s.fetchPage(ctx, skip)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "page fetch failed")
			s.logger.Warn("messages page unreachable", map[string]interface{}{
				"skip":  skip,
				"page":  page,
				"error": err.Error(),
			})
			return nil, err
		}
		all = append(all, items...)
		skip += s.cfg.PageSize
		if len(items) < s.cfg.PageSize {
			break
		}
	}

	if all == nil {
		all = []models.Message{}
	}
	metrics.MessagesFetched.Observe(float64(len(all)))
	span.SetAttributes(attribute.Int("messages.count", len(all)))
	s.logger.Debug("messages fetched", map[string]interface{}{"count": len(all)})
	return all, nil
}

func (s *Source) fetchPage(ctx context.Context, skip int) ([]models.Message, error) {
	pageURL, err := s.pageURL(skip, s.cfg.PageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, apperrors.NewMessagesUnreachableError(skip, 0, err))
	}

	var page models.MessagePage
	attempts, err := s.client.GetWithRetry(ctx, pageURL, func(body []byte) error {
		if res := validation.MessagePage.ValidateBytes(body); !res.Valid {
			return apperrors.NewMessagesPageInvalidError(strings.Join(res.GetErrorMessages(), "; "))
		}
		page = models.MessagePage{}
		return json.Unmarshal(body, &page)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreachable, apperrors.NewMessagesUnreachableError(skip, attempts, err))
	}
	return page.Items, nil
}

func (s *Source) pageURL(skip, limit int) (string, error) {
	u, err := url.Parse(s.cfg.APIURL())
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (s *Source) observeAttempt(a commonhttp.Attempt) {
	result := "ok"
	switch {
	case a.Err == nil:
	case a.StatusCode == 0:
		result = "transport_error"
	case errors.Is(a.Err, commonhttp.ErrStatus):
		result = "bad_status"
	default:
		result = "invalid_payload"
	}
	metrics.MessagePageAttempts.WithLabelValues(result).Inc()

	if a.Err != nil {
		s.logger.Debug("messages page attempt failed", map[string]interface{}{
			"attempt":    a.Number,
			"statusCode": a.StatusCode,
			"durationMs": a.Duration.Milliseconds(),
			"error":      a.Err.Error(),
		})
	}
}
