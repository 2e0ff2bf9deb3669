package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Custom histogram buckets for page renders and upstream API calls,
	// ranging from milliseconds to the 30 second transport timeout
	CustomAPIBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5, 8, 13, 21, 34}

	// HTTP Metrics
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_server_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_server_request_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"http_request_method", "http_route", "http_response_status_code"},
	)

	ActiveRequests = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_server_active_requests",
			Help: "Number of active HTTP requests",
		},
		[]string{"http_request_method"},
	)

	// Upstream API Client Metrics (EduChain backend)
	APIClientRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_client_operation_duration_seconds",
			Help:    "EduChain API client operation duration in seconds",
			Buckets: CustomAPIBuckets,
		},
		[]string{"operation", "status"},
	)

	APIClientRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_client_operation_total",
			Help: "Total number of EduChain API client operations",
		},
		[]string{"operation", "status"},
	)

	// Business Metrics
	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"status"},
	)

	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_registrations_total",
			Help: "Total number of registration attempts",
		},
		[]string{"status"},
	)

	OTPVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_otp_verifications_total",
			Help: "Total number of OTP verification attempts",
		},
		[]string{"status"},
	)

	SkillSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_skill_saves_total",
			Help: "Total number of skill create/update/delete submissions",
		},
		[]string{"action", "status"},
	)

	ConnectionRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_connection_requests_total",
			Help: "Total number of connection requests sent",
		},
		[]string{"status"},
	)

	RequestStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_request_status_updates_total",
			Help: "Total number of connection request status updates",
		},
		[]string{"to_status", "status"},
	)

	MeetingSchedules = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_meeting_schedules_total",
			Help: "Total number of meeting scheduling submissions",
		},
		[]string{"status"},
	)

	MeetingCompletions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_meeting_completions_total",
			Help: "Total number of meeting completion submissions",
		},
		[]string{"status"},
	)

	ProfileUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_profile_updates_total",
			Help: "Total number of profile updates",
		},
		[]string{"status"},
	)

	ProfileImageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_profile_image_uploads_total",
			Help: "Total number of profile image uploads",
		},
		[]string{"status"},
	)

	NotificationReads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "educhain_notification_reads_total",
			Help: "Total number of notification mark-read actions",
		},
		[]string{"status"},
	)

	// Infrastructure Metrics
	GoRoutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_goroutines",
			Help: "Number of goroutines",
		},
	)

	HeapAlloc = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "process_runtime_go_mem_heap_alloc_bytes",
			Help: "Heap allocated bytes",
		},
	)
)

// RecordInfrastructureMetrics collects infrastructure metrics periodically
func RecordInfrastructureMetrics() {
	ticker := time.NewTicker(15 * time.Second)
	go func() {
		for range ticker.C {
			var m runtime.MemStats
			runtime.ReadMemStats(&m)

			GoRoutines.Set(float64(runtime.NumGoroutine()))
			HeapAlloc.Set(float64(m.HeapAlloc))
		}
	}()
}

// MeasureDuration measures the duration of an operation
func MeasureDuration(start time.Time) float64 {
	return time.Since(start).Seconds()
}
