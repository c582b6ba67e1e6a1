package metrics

import (
	"errors"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OTCMetrics groups the service counters. All vectors are registered once via
// promauto at construction.
type OTCMetrics struct {
	OrdersOpenedTotal   *prometheus.CounterVec
	OrdersClosedTotal   *prometheus.CounterVec
	OrdersStakeFrozen   *prometheus.CounterVec
	DealsOpenedTotal    *prometheus.CounterVec
	DealsClosedTotal    *prometheus.CounterVec
	DealsCancelledTotal *prometheus.CounterVec
	DealFeeTotal        *prometheus.CounterVec

	ArbitrationsStartedTotal  *prometheus.CounterVec
	ArbitrationsResolvedTotal *prometheus.CounterVec

	DealActionDuration *prometheus.HistogramVec

	ActionErrorsTotal *prometheus.CounterVec
}

func NewOTCMetrics() *OTCMetrics {
	return &OTCMetrics{
		OrdersOpenedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otc_orders_opened_total",
				Help: "Orders opened, by side and coin symbol",
			},
			[]string{"side", "symbol"},
		),
		OrdersClosedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otc_orders_closed_total",
				Help: "Orders closed, by side and coin symbol",
			},
			[]string{"side", "symbol"},
		),
		OrdersStakeFrozen: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otc_orders_stake_frozen_total",
				Help: "Cumulative stake frozen against opened orders",
			},
			[]string{"symbol"},
		),
		DealsOpenedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otc_deals_opened_total",
				Help: "Deals opened, by side and coin symbol",
			},
			[]string{"side", "symbol"},
		),
		DealsClosedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otc_deals_closed_total",
				Help: "Deals closed, by side and coin symbol",
			},
			[]string{"side", "symbol"},
		),
		DealsCancelledTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otc_deals_cancelled_total",
				Help: "Deals cancelled, by side and coin symbol",
			},
			[]string{"side", "symbol"},
		),
		DealFeeTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otc_deal_fee_total",
				Help: "Cumulative fee deducted from makers, by stake symbol",
			},
			[]string{"symbol"},
		),
		ArbitrationsStartedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otc_arbitrations_started_total",
				Help: "Arbitrations started, by initiating role",
			},
			[]string{"role"},
		),
		ArbitrationsResolvedTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otc_arbitrations_resolved_total",
				Help: "Arbitrations resolved, by outcome",
			},
			[]string{"outcome"},
		),
		DealActionDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "otc_deal_action_duration_seconds",
				Help:    "Wall time of deal actions",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"action"},
		),
		ActionErrorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "otc_action_errors_total",
				Help: "Rejected actions, by action and error kind",
			},
			[]string{"action", "kind"},
		),
	}
}

// ObserveActionError counts a rejected action under its error kind. A nil
// error is a no-op, so callers can defer it unconditionally.
func (m *OTCMetrics) ObserveActionError(action string, err error) {
	if err == nil {
		return
	}
	m.ActionErrorsTotal.WithLabelValues(action, errorKind(err)).Inc()
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrInvalidState):
		return "invalid_state"
	case errors.Is(err, domain.ErrInvalidParameter):
		return "invalid_parameter"
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrNotYetExpired):
		return "not_yet_expired"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
