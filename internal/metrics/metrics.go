// Package metrics holds the Prometheus collectors for the service.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pickup_ledger_login_attempts_total",
		Help: "Login attempts by outcome (success, invalid, error).",
	}, []string{"outcome"})

	AuthRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pickup_ledger_auth_rejections_total",
		Help: "Requests rejected by the auth guard (unauthenticated, forbidden).",
	}, []string{"reason"})

	ContactsUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pickup_ledger_contacts_upserted_total",
		Help: "Successful contact upserts.",
	})

	PickupsAppended = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pickup_ledger_pickups_appended_total",
		Help: "Pickups appended to the ledger.",
	})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
