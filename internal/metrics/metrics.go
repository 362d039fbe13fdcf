// Package metrics holds the Prometheus collectors for mail delivery.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// DeliveriesTotal counts logical sends by notification kind and outcome
	// (sent or a failure code).
	DeliveriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venuebook_mail_deliveries_total",
		Help: "Total number of notification deliveries by kind and outcome",
	}, []string{"kind", "outcome"})
	// VerificationsTotal counts advisory handshakes by status.
	VerificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venuebook_mail_verifications_total",
		Help: "Total number of advisory transport verifications by status",
	}, []string{"status"})
	// TransportOverrides counts sends whose port 465 configuration was moved to 587.
	TransportOverrides = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "venuebook_mail_transport_overrides_total",
		Help: "Total number of deliveries where the configured port was overridden",
	})
	// ChannelDials counts new mail sessions opened by the channel pool.
	ChannelDials = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "venuebook_mail_channel_dials_total",
		Help: "Total number of mail channel dials by result",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(DeliveriesTotal)
	prometheus.MustRegister(VerificationsTotal)
	prometheus.MustRegister(TransportOverrides)
	prometheus.MustRegister(ChannelDials)
}

// Handler returns an http.Handler exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}
