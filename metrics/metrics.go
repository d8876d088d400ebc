package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics gom các counter/histogram của dịch vụ trên registry riêng
type Metrics struct {
	registry *prometheus.Registry

	BookingsCreated   prometheus.Counter
	BookingsCancelled prometheus.Counter
	BookingsCompleted prometheus.Counter
	BookingConflicts  prometheus.Counter
	RoomsCleaned      prometheus.Counter
	CacheHits         *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		BookingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_bookings_created_total",
			Help: "Total number of bookings created",
		}),
		BookingsCancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_bookings_cancelled_total",
			Help: "Total number of bookings cancelled",
		}),
		BookingsCompleted: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_bookings_completed_total",
			Help: "Total number of bookings checked out",
		}),
		BookingConflicts: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_booking_conflicts_total",
			Help: "Booking attempts rejected because a day was already reserved",
		}),
		RoomsCleaned: f.NewCounter(prometheus.CounterOpts{
			Name: "hotel_rooms_cleaned_total",
			Help: "Total number of rooms marked cleaned",
		}),
		CacheHits: f.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_calendar_cache_requests_total",
			Help: "Availability calendar cache lookups by result",
		}, []string{"result"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hotel_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// Registry dùng trong test để đọc giá trị
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler phục vụ /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// GinMiddleware đo thời gian xử lý mỗi request
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
