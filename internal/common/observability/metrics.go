package observability

import (
	"context"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Observability owns the otel meter and tracer providers of the process.
type Observability struct {
	meterProvider  *metric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
	tracer         trace.Tracer
	questions      otelmetric.Int64Counter
	duration       otelmetric.Float64Histogram
}

type options struct {
	registerer     promclient.Registerer
	spanProcessors []sdktrace.SpanProcessor
	tracing        bool
	setGlobal      bool
}

type Option func(*options)

// WithRegisterer sends otel metrics to reg instead of the default prometheus registry.
func WithRegisterer(reg promclient.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithTracing enables span recording; processors receive every ended span.
func WithTracing(processors ...sdktrace.SpanProcessor) Option {
	return func(o *options) {
		o.tracing = true
		o.spanProcessors = append(o.spanProcessors, processors...)
	}
}

// AsGlobal installs the providers as otel globals.
func AsGlobal() Option {
	return func(o *options) { o.setGlobal = true }
}

// New builds the providers. Instrument creation failures degrade to no-op recording.
func New(serviceName string, opts ...Option) (*Observability, error) {
	o := &options{registerer: promclient.DefaultRegisterer}
	for _, opt := range opts {
		opt(o)
	}

	exporter, err := prometheus.New(prometheus.WithRegisterer(o.registerer))
	if err != nil {
		return nil, err
	}
	mp := metric.NewMeterProvider(metric.WithReader(exporter))
	meter := mp.Meter(serviceName)

	questions, _ := meter.Int64Counter(
		"questions.answered",
		otelmetric.WithDescription("Number of questions answered"),
	)
	duration, _ := meter.Float64Histogram(
		"questions.duration",
		otelmetric.WithDescription("Answer pipeline duration"),
		otelmetric.WithUnit("ms"),
	)

	obs := &Observability{
		meterProvider: mp,
		questions:     questions,
		duration:      duration,
		tracer:        noop.NewTracerProvider().Tracer(serviceName),
	}

	if o.tracing {
		tpOpts := []sdktrace.TracerProviderOption{sdktrace.WithSampler(sdktrace.AlwaysSample())}
		for _, sp := range o.spanProcessors {
			tpOpts = append(tpOpts, sdktrace.WithSpanProcessor(sp))
		}
		obs.tracerProvider = sdktrace.NewTracerProvider(tpOpts...)
		obs.tracer = obs.tracerProvider.Tracer(serviceName)
	}

	if o.setGlobal {
		otel.SetMeterProvider(mp)
		if obs.tracerProvider != nil {
			otel.SetTracerProvider(obs.tracerProvider)
		}
	}
	return obs, nil
}

// Tracer returns the service tracer; a no-op tracer when tracing is off.
func (o *Observability) Tracer() trace.Tracer {
	return o.tracer
}

// RecordQuestion counts one answered question and its pipeline duration.
func (o *Observability) RecordQuestion(ctx context.Context, intent, outcome string, d time.Duration) {
	attrs := otelmetric.WithAttributes(
		attribute.String("intent", intent),
		attribute.String("outcome", outcome),
	)
	if o.questions != nil {
		o.questions.Add(ctx, 1, attrs)
	}
	if o.duration != nil {
		o.duration.Record(ctx, float64(d.Milliseconds()), attrs)
	}
}

func (o *Observability) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var firstErr error
	if o.tracerProvider != nil {
		if err := o.tracerProvider.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if o.meterProvider != nil {
		if err := o.meterProvider.Shutdown(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
