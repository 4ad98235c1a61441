package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "ai_interviewer"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total HTTP requests processed.",
	}, []string{"method", "route", "status_code"})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

var (
	LLMRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "llm_request_duration_seconds",
		Help:      "LLM request duration in seconds.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"request_type", "provider", "result"})

	TranscriptionDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "transcription_duration_seconds",
		Help:      "Speech-to-text duration in seconds.",
		Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider", "result"})

	SynthesisTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "speech_synthesis_total",
		Help:      "Speech synthesis requests by cache usage and result.",
	}, []string{"cache", "result"})

	InterviewOperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interview_operations_total",
		Help:      "Interview session operations by result kind.",
	}, []string{"operation", "result"})

	InterviewQuestionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "interview_questions_total",
		Help:      "Total interview questions issued.",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		LLMRequestDuration,
		TranscriptionDuration,
		SynthesisTotal,
		InterviewOperationsTotal,
		InterviewQuestionsTotal,
	)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func ObserveLLMRequest(requestType, provider string, duration time.Duration, err error) {
	LLMRequestDuration.WithLabelValues(requestType, provider, result(err)).Observe(duration.Seconds())
}

func ObserveTranscription(provider string, duration time.Duration, err error) {
	TranscriptionDuration.WithLabelValues(provider, result(err)).Observe(duration.Seconds())
}

func ObserveSynthesis(cached bool, err error) {
	SynthesisTotal.WithLabelValues(strconv.FormatBool(cached), result(err)).Inc()
}

// ObserveInterviewOperation kind - код ошибки или "ok"
func ObserveInterviewOperation(operation, kind string) {
	if kind == "" {
		kind = "ok"
	}
	InterviewOperationsTotal.WithLabelValues(operation, kind).Inc()
}

func ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
