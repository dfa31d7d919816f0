package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Account activity
	RegistrationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "app_registrations_total",
		Help: "Total number of clinician registrations.",
	})
	LoginAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_login_attempts_total",
		Help: "Total number of login attempts.",
	}, []string{"status"}) // status: "success" or "failed"

	// Verification code flow
	CodesIssuedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_verification_codes_issued_total",
		Help: "Total number of verification codes issued.",
	}, []string{"purpose"})
	CodeValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "app_verification_code_validations_total",
		Help: "Total number of verification code validation attempts.",
	}, []string{"purpose", "result"}) // result: "success" or "failed"
)
