package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/patriciastocker/intranet/internal/infrastructure/metrics"
	"github.com/patriciastocker/intranet/pkg/logger"
)

// routeLabel usa el patrón de la ruta (/api/deudas/:id) para no disparar la cardinalidad.
func routeLabel(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return "unmatched"
}

// MetricsMiddleware registra conteo y latencia de cada petición.
func MetricsMiddleware() fiber.Handler {
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
		route := routeLabel(c)
		metrics.HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		metrics.HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// RequestLogger escribe una línea estructurada por petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	l := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		// respondError deja en Locals el error que no se mostró al cliente
		logged := err
		if logged == nil {
			logged, _ = c.Locals(localError).(error)
		}
		ev := l.Info()
		if logged != nil || status >= fiber.StatusInternalServerError {
			ev = l.Error().Err(logged)
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("petición atendida")
		return err
	}
}
