package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder agrupa los colectores del servicio sobre un registro propio
// (evita colisiones del registro global entre tests).
type Recorder struct {
	registry            *prometheus.Registry
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	clockEvents         *prometheus.CounterVec
	leaveEvents         *prometheus.CounterVec
}

// New registra los colectores. namespace prefija todos los nombres (ej. "asistencia").
func New(namespace string) *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		clockEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "attendance_clock_events_total",
			Help:      "Successful clock-in and clock-out operations",
		}, []string{"event"}),
		leaveEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leave_events_total",
			Help:      "Leave request lifecycle events by resulting status",
		}, []string{"status"}),
	}
	r.registry.MustRegister(
		r.httpRequestsTotal, r.httpRequestDuration, r.clockEvents, r.leaveEvents,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// ClockEvent cuenta un fichaje exitoso ("clock_in" | "clock_out").
func (r *Recorder) ClockEvent(event string) {
	r.clockEvents.WithLabelValues(event).Inc()
}

// LeaveEvent cuenta una transición de solicitud ("pending" al crear, "approved", "rejected", "deleted").
func (r *Recorder) LeaveEvent(status string) {
	r.leaveEvents.WithLabelValues(status).Inc()
}

// ObserveHTTPRequest registra una petición HTTP.
func (r *Recorder) ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	r.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// Middleware instrumenta las peticiones Fiber. Usa la ruta registrada (no la URL)
// para no crear una serie por cada ID.
func (r *Recorder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		r.ObserveHTTPRequest(c.Method(), c.Route().Path, strconv.Itoa(status), time.Since(start))
		return err
	}
}

// Handler expone el registro en formato Prometheus.
func (r *Recorder) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}

// Registry acceso al registro (tests).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
