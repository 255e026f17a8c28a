// Package metrics defines and registers the custom Prometheus metrics for
// the market system. It is the single source of truth for metric names,
// labels, and help strings. Metrics register themselves with the default
// registry at init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "market"

// UsersRegisteredTotal counts successful account registrations.
var UsersRegisteredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// DepositsTotal counts successful deposits.
var DepositsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deposits_total",
		Help:      "Total number of balance deposits.",
	},
)

// DepositAmountTotal accumulates the deposited virtual currency.
var DepositAmountTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "deposit_amount_total",
		Help:      "Sum of all deposited amounts.",
	},
)

// PurchasesTotal counts completed purchases.
var PurchasesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of items bought from the market.",
	},
)

// SalesTotal counts items sold back to the market.
var SalesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sales_total",
		Help:      "Total number of items returned to the market by their owners.",
	},
)

// ItemsCreatedTotal counts catalog items created by admins.
var ItemsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_created_total",
		Help:      "Total number of catalog items created.",
	},
)

// ItemsDeletedTotal counts hard-deleted catalog items.
var ItemsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "items_deleted_total",
		Help:      "Total number of catalog items deleted.",
	},
)
