package handlers

import (
	"log/slog"
	"net/http"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires all endpoints. State-changing routes sit behind the auth
// middleware; queries, health and metrics stay open.
func NewRouter(
	orders *OrderHandler,
	deals *DealHandler,
	arbitrations *ArbitrationHandler,
	merchants *MerchantHandler,
	verifier domain.AuthVerifier,
	logger *slog.Logger,
) *mux.Router {
	r := mux.NewRouter()
	r.Use(LoggingMiddleware(logger))

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/orders/{side}/{id:[0-9]+}", orders.GetOrder).Methods(http.MethodGet)
	r.HandleFunc("/orders", orders.ListOrders).Methods(http.MethodGet)
	r.HandleFunc("/deals/{id:[0-9]+}", deals.GetDeal).Methods(http.MethodGet)
	r.HandleFunc("/deals", deals.ListDeals).Methods(http.MethodGet)
	r.HandleFunc("/arbiters", arbitrations.ListArbiters).Methods(http.MethodGet)
	r.HandleFunc("/merchants/{account}", merchants.GetMerchant).Methods(http.MethodGet)

	authed := r.NewRoute().Subrouter()
	authed.Use(AuthMiddleware(verifier))

	authed.HandleFunc("/orders", orders.OpenOrder).Methods(http.MethodPost)
	authed.HandleFunc("/orders/{side}/{id:[0-9]+}/pause", orders.PauseOrder).Methods(http.MethodPost)
	authed.HandleFunc("/orders/{side}/{id:[0-9]+}/resume", orders.ResumeOrder).Methods(http.MethodPost)
	authed.HandleFunc("/orders/{side}/{id:[0-9]+}/close", orders.CloseOrder).Methods(http.MethodPost)

	authed.HandleFunc("/deals", deals.OpenDeal).Methods(http.MethodPost)
	authed.HandleFunc("/deals/{id:[0-9]+}/process", deals.ProcessDeal).Methods(http.MethodPost)
	authed.HandleFunc("/deals/{id:[0-9]+}/close", deals.CloseDeal).Methods(http.MethodPost)
	authed.HandleFunc("/deals/{id:[0-9]+}/cancel", deals.CancelDeal).Methods(http.MethodPost)
	authed.HandleFunc("/deals/{id:[0-9]+}/reset", deals.ResetDeal).Methods(http.MethodPost)

	authed.HandleFunc("/deals/{id:[0-9]+}/arbitration/start", arbitrations.StartArbitration).Methods(http.MethodPost)
	authed.HandleFunc("/deals/{id:[0-9]+}/arbitration/resolve", arbitrations.ResolveArbitration).Methods(http.MethodPost)
	authed.HandleFunc("/deals/{id:[0-9]+}/arbitration/cancel", arbitrations.CancelArbitration).Methods(http.MethodPost)
	authed.HandleFunc("/deals/{id:[0-9]+}/arbiter", arbitrations.SetDealArbiter).Methods(http.MethodPut)
	authed.HandleFunc("/arbiters", arbitrations.AddArbiter).Methods(http.MethodPost)
	authed.HandleFunc("/arbiters/{account}", arbitrations.RemoveArbiter).Methods(http.MethodDelete)

	authed.HandleFunc("/merchants", merchants.RegisterMerchant).Methods(http.MethodPost)
	authed.HandleFunc("/merchants/{account}", merchants.SetMerchant).Methods(http.MethodPut)
	authed.HandleFunc("/merchants/{account}", merchants.RemoveMerchant).Methods(http.MethodDelete)
	authed.HandleFunc("/merchants/deposit", merchants.Deposit).Methods(http.MethodPost)
	authed.HandleFunc("/merchants/withdraw", merchants.Withdraw).Methods(http.MethodPost)
	authed.HandleFunc("/blacklist", merchants.SetBlacklist).Methods(http.MethodPost)

	return r
}
