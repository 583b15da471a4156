// Package metrics holds Prometheus instruments that are used across the
// funnel.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	SubmissionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_submissions_total",
			Help: "Cumulative number of submissions received by the intake endpoint.",
		})

	BuyerStatusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_buyer_status_total",
			Help: "Outcomes reported by the external lead buyer, by status.",
		},
		[]string{"status"},
	)

	GrantsMintedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_grants_minted_total",
			Help: "Cumulative number of thank-you access grants minted.",
		})

	SubmissionErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "lead_submission_errors_total",
			Help: "Submissions that failed with an internal error.",
		})

	ThankyouAllowedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "thankyou_allowed_total",
			Help: "Gated-page requests that carried a verifiable grant.",
		})

	ThankyouRedirectTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "thankyou_redirect_total",
			Help: "Gated-page requests redirected for a missing or invalid grant.",
		})
)

func init() {
	prometheus.MustRegister(
		SubmissionsTotal,
		BuyerStatusTotal,
		GrantsMintedTotal,
		SubmissionErrorsTotal,
		ThankyouAllowedTotal,
		ThankyouRedirectTotal,
	)
}
