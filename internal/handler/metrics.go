package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodrop_registrations_total",
		Help: "Students registered.",
	})
	paymentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodrop_payments_total",
		Help: "Successful payment transitions.",
	})
	loginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "photodrop_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
	zipDownloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodrop_zip_downloads_total",
		Help: "Gallery archives streamed.",
	})
	imageDeletesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "photodrop_image_deletes_total",
		Help: "Hosted image delete requests.",
	})
)
