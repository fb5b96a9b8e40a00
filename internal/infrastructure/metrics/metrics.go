// Package metrics registra los contadores Prometheus de la intranet en el registro por defecto.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intranet_http_requests_total",
		Help: "Total de peticiones HTTP atendidas",
	}, []string{"method", "route", "status"})
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "intranet_http_request_duration_seconds",
		Help:    "Latencia de las peticiones HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Servicios externos
	UpstreamErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intranet_upstream_errors_total",
		Help: "Errores al consultar servicios externos (indexador de correo, buscador, LLM)",
	}, []string{"service"})
	MailSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intranet_mail_sent_total",
		Help: "Correos enviados por SMTP según resultado",
	}, []string{"result"})
	IMAPConnections = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "intranet_imap_connections_total",
		Help: "Conexiones IMAP abiertas por el pool según resultado",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
	prometheus.MustRegister(UpstreamErrors)
	prometheus.MustRegister(MailSent)
	prometheus.MustRegister(IMAPConnections)
}

// Handler expone el registro por defecto en formato Prometheus.
func Handler() http.Handler {
	return promhttp.Handler()
}
