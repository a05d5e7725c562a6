package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genstory_registrations_total",
		Help: "Total number of successful user registrations.",
	})

	emailVerificationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "genstory_email_verifications_total",
		Help: "Total number of successful email verifications.",
	})

	tokenVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "genstory_token_verifications_total",
			Help: "Total number of access token verification attempts by status.",
		},
		[]string{"status"},
	)
)
