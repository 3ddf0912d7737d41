// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuestionsAnswered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "member_qa_questions_total",
			Help: "Total number of questions answered, by intent and outcome",
		},
		[]string{"intent", "outcome"},
	)

	QuestionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "member_qa_question_duration_seconds",
			Help:    "Duration of the answer pipeline in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"intent"},
	)

	MessagePageAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "member_qa_message_page_attempts_total",
			Help: "Total number of message page requests, by result",
		},
		[]string{"result"},
	)

	MessagesFetched = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "member_qa_messages_fetched",
			Help:    "Number of messages read per question",
			Buckets: []float64{0, 10, 50, 100, 250, 500, 1000},
		},
	)

	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)
)
