package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/memory"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/arbitration"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/deal"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/merchant"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/order"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

var testMetrics = metrics.NewOTCMetrics()

type staticConfig struct{ cfg *domain.TradingConfig }

func (p staticConfig) TradingConfig() (*domain.TradingConfig, error) { return p.cfg, nil }

type nopPublisher struct{}

func (nopPublisher) PublishDeal(string, domain.DealEvent) error { return nil }
func (nopPublisher) PublishStake(domain.StakeEvent) error       { return nil }
func (nopPublisher) PublishMerchant(domain.MerchantEvent) error { return nil }

type nopTransfer struct{}

func (nopTransfer) Transfer(context.Context, string, string, domain.Asset, string) error {
	return nil
}

type nopSettle struct{}

func (nopSettle) SettleDeal(context.Context, domain.SettleDealRequest) error { return nil }

// stubVerifier approves everyone except accounts listed in denied.
type stubVerifier struct{ denied map[string]bool }

func (v stubVerifier) Verify(_ context.Context, account, _ string) error {
	if v.denied[account] {
		return domain.ErrUnauthorized
	}
	return nil
}

func testTradingConfig() *domain.TradingConfig {
	return &domain.TradingConfig{
		Status:        domain.ServiceRunning,
		FiatSymbol:    "CNY",
		FiatPrecision: 4,
		Coins: map[string]domain.CoinConfig{
			"BTC": {Symbol: "BTC", Precision: 4, StakeSymbol: "USDT"},
		},
		StakeAssets: map[string]domain.StakeAssetConfig{
			"USDT": {Symbol: "USDT", Precision: 4, CustodyAccount: "otccustody"},
		},
		BuyCoins:        map[string]bool{"BTC": true},
		SellCoins:       map[string]bool{"BTC": true},
		PayMethods:      map[string]bool{"alipay": true},
		StakePct:        200,
		FeePct:          50,
		AcceptedTimeout: 30 * time.Minute,
		PayedTimeout:    2 * time.Hour,
		AdminAccount:    "otcadmin",
		FeeSplitAccount: "otcfees",
		FeeSplitPlanID:  1,
	}
}

type env struct {
	router *mux.Router
	cfg    *domain.TradingConfig
}

func newEnv(t *testing.T, verifier domain.AuthVerifier) *env {
	t.Helper()
	store := memory.NewStore()
	cfg := testTradingConfig()
	provider := staticConfig{cfg}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	orderUC := order.NewDefaultOrderUsecase(store, provider, nopPublisher{}, testMetrics)
	dealUC := deal.NewDefaultDealUsecase(store, provider, nopPublisher{}, nopTransfer{}, nopSettle{}, testMetrics)
	arbitUC := arbitration.NewDefaultArbitrationUsecase(store, provider, nopPublisher{}, nopTransfer{}, testMetrics)
	merchantUC := merchant.NewDefaultMerchantUsecase(store, provider, nopPublisher{}, nopTransfer{}, testMetrics)

	router := NewRouter(
		NewOrderHandler(orderUC),
		NewDealHandler(dealUC),
		NewArbitrationHandler(arbitUC),
		NewMerchantHandler(merchantUC),
		verifier,
		logger,
	)
	return &env{router: router, cfg: cfg}
}

func (e *env) do(t *testing.T, method, path, account string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if account != "" {
		req.Header.Set("X-Account", account)
		req.Header.Set("X-Proof", "proof")
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, req)
	return recorder
}

func TestHealthz(t *testing.T) {
	e := newEnv(t, stubVerifier{})
	rec := e.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware(t *testing.T) {
	e := newEnv(t, stubVerifier{denied: map[string]bool{"mallory": true}})

	rec := e.do(t, http.MethodPost, "/merchants", "", map[string]any{"name": "x"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPost, "/merchants", "mallory", map[string]any{"name": "x"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodPost, "/merchants", "alice", map[string]any{"name": "alice"})
	require.Equal(t, http.StatusCreated, rec.Code)
}

func TestBadJSONBody(t *testing.T) {
	e := newEnv(t, stubVerifier{})
	req := httptest.NewRequest(http.MethodPost, "/merchants", strings.NewReader("{broken"))
	req.Header.Set("X-Account", "alice")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTradeLifecycleOverHTTP(t *testing.T) {
	e := newEnv(t, stubVerifier{})

	// Merchant onboarding: register, promote, fund.
	rec := e.do(t, http.MethodPost, "/merchants", "alice", map[string]any{"name": "alice"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = e.do(t, http.MethodPut, "/merchants/alice", "otcadmin", map[string]any{"status": "BASIC"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodPost, "/merchants/deposit", "alice", map[string]any{
		"amount": 200000000,
		"symbol": "USDT",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	// Maker order.
	rec = e.do(t, http.MethodPost, "/orders", "alice", map[string]any{
		"side":            "SELL",
		"quantity_amount": 100000,
		"quantity_symbol": "BTC",
		"price_amount":    700000000,
		"price_symbol":    "CNY",
		"min_take_amount": 1000,
		"max_take_amount": 50000,
		"pay_methods":     []string{"alipay"},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var orderResp struct {
		ID                uint64 `json:"id"`
		StakeFrozenAmount int64  `json:"stake_frozen_amount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orderResp))
	require.Equal(t, uint64(1), orderResp.ID)
	require.Equal(t, int64(140000000), orderResp.StakeFrozenAmount)

	// Taker deal plus the full handshake.
	rec = e.do(t, http.MethodPost, "/deals", "bob", map[string]any{
		"side":            "SELL",
		"order_id":        1,
		"quantity_amount": 10000,
		"quantity_symbol": "BTC",
		"order_sn":        "sn-1",
		"pay_method":      "alipay",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var dealResp struct {
		ID        uint64 `json:"id"`
		FeeAmount int64  `json:"fee_amount"`
		Status    string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dealResp))
	require.Equal(t, int64(3500000), dealResp.FeeAmount)
	require.Equal(t, "CREATED", dealResp.Status)

	steps := []struct {
		account string
		role    string
		action  string
	}{
		{"alice", "MERCHANT", "MAKER_ACCEPT"},
		{"bob", "USER", "TAKER_SEND"},
		{"alice", "MERCHANT", "MAKER_RECV_AND_SENT"},
	}
	for _, step := range steps {
		rec = e.do(t, http.MethodPost, "/deals/1/process", step.account, map[string]any{
			"role":   step.role,
			"action": step.action,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	}

	rec = e.do(t, http.MethodPost, "/deals/1/close", "bob", map[string]any{
		"role":      "USER",
		"close_msg": "received",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = e.do(t, http.MethodGet, "/deals/1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dealResp))
	require.Equal(t, "CLOSED", dealResp.Status)

	// Fee debited, deal stake slice thawed.
	rec = e.do(t, http.MethodGet, "/merchants/alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var merchantResp struct {
		Balances map[string]struct {
			Available int64 `json:"available"`
			Frozen    int64 `json:"frozen"`
		} `json:"balances"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &merchantResp))
	require.Equal(t, int64(70500000), merchantResp.Balances["USDT"].Available)
	require.Equal(t, int64(126000000), merchantResp.Balances["USDT"].Frozen)
}

func TestErrorMapping(t *testing.T) {
	e := newEnv(t, stubVerifier{})

	rec := e.do(t, http.MethodGet, "/orders/SELL/99", "", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(t, http.MethodGet, "/orders/SHORT/1", "", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// A withdrawal inside the cool-down maps to 409.
	rec = e.do(t, http.MethodPost, "/merchants", "alice", map[string]any{"name": "alice"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = e.do(t, http.MethodPut, "/merchants/alice", "otcadmin", map[string]any{"status": "BASIC"})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = e.do(t, http.MethodPost, "/merchants/withdraw", "alice", map[string]any{
		"amount": 1,
		"symbol": "USDT",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
}
