package metrics

import (
	"fmt"
	"testing"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

var testMetrics = NewOTCMetrics()

func TestObserveActionError(t *testing.T) {
	counter := testMetrics.ActionErrorsTotal.WithLabelValues("open_order", "insufficient_funds")
	before := testutil.ToFloat64(counter)

	testMetrics.ObserveActionError("open_order", fmt.Errorf("freeze: %w", domain.ErrInsufficientFunds))
	require.Equal(t, before+1, testutil.ToFloat64(counter))

	// nil is a no-op so the helper can sit in a defer.
	testMetrics.ObserveActionError("open_order", nil)
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		kind string
	}{
		{domain.ErrNotFound, "not_found"},
		{domain.ErrUnauthorized, "unauthorized"},
		{domain.ErrInvalidState, "invalid_state"},
		{domain.ErrInvalidParameter, "invalid_parameter"},
		{domain.ErrInsufficientFunds, "insufficient_funds"},
		{domain.ErrNotYetExpired, "not_yet_expired"},
		{domain.ErrConflict, "conflict"},
		{fmt.Errorf("kafka write failed"), "internal"},
	}
	for _, tc := range tests {
		require.Equal(t, tc.kind, errorKind(tc.err), tc.kind)
	}
}
