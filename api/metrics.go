package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	admissionAdmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "userd_admission_admitted_total",
		Help: "Requests admitted past the rate limiter.",
	})

	admissionRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "userd_admission_rejected_total",
		Help: "Requests rejected by the rate limiter.",
	})

	usersTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "userd_users_total",
		Help: "Current number of user records in the store.",
	})
)
