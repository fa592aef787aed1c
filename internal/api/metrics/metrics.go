// Package metrics defines and registers all custom Prometheus metrics for
// the store ratings API. It is the single source of truth for metric
// names, labels, and help strings; counters register themselves with the
// default registry at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "store_ratings"

// RatingsSubmittedTotal counts first-time rating submissions, by value.
var RatingsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_submitted_total",
		Help:      "Total number of ratings submitted, labelled by rating value.",
	},
	[]string{"value"},
)

// RatingsUpdatedTotal counts in-place rating updates, by new value.
var RatingsUpdatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ratings_updated_total",
		Help:      "Total number of rating updates, labelled by the new value.",
	},
	[]string{"value"},
)

// UsersRegisteredTotal counts account creations (self-registration and
// admin creation), by role.
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of user accounts created, labelled by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts, labelled by outcome.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// StoresCreatedTotal counts stores created through the admin API.
var StoresCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stores_created_total",
		Help:      "Total number of stores created.",
	},
)
