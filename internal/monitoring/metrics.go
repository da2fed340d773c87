// Package monitoring expone métricas Prometheus del servidor HTTP.
package monitoring

import (
	"strconv"
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de peticiones HTTP",
		},
		[]string{"service", "method", "path", "status"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
)

// HTTPMetrics recolector de métricas HTTP de un servicio.
type HTTPMetrics struct {
	serviceName string
}

// NewHTTPMetrics registra los colectores y devuelve el recolector.
func NewHTTPMetrics(serviceName string) *HTTPMetrics {
	prometheus.MustRegister(requestCounter, requestDuration)
	return &HTTPMetrics{serviceName: serviceName}
}

// Middleware registra contador y duración de cada petición. Usa la plantilla
// de la ruta (c.Route().Path) y no la URL concreta para acotar cardinalidad.
func (m *HTTPMetrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		statusStr := strconv.Itoa(status)
		method := c.Method()
		path := c.Route().Path

		requestCounter.WithLabelValues(m.serviceName, method, path, statusStr).Inc()
		requestDuration.WithLabelValues(m.serviceName, method, path, statusStr).
			Observe(time.Since(start).Seconds())

		return err
	}
}

// Handler expone /metrics para el scrape de Prometheus.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
