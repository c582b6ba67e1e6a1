package handlers

import (
	"net/http"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/merchant"
	"github.com/gorilla/mux"
)

type MerchantHandler struct {
	Usecase merchant.MerchantUsecase
}

func NewMerchantHandler(uc merchant.MerchantUsecase) *MerchantHandler {
	return &MerchantHandler{Usecase: uc}
}

type merchantInfoRequest struct {
	Name          string `json:"name"`
	Detail        string `json:"detail"`
	Email         string `json:"email"`
	Memo          string `json:"memo"`
	Status        string `json:"status"`
	RejectReason  string `json:"reject_reason"`
	DepositAmount int64  `json:"deposit_amount"`
	DepositSymbol string `json:"deposit_symbol"`
}

type balanceResponse struct {
	Available int64 `json:"available"`
	Frozen    int64 `json:"frozen"`
}

type merchantResponse struct {
	Account   string                     `json:"account"`
	Name      string                     `json:"name,omitempty"`
	Detail    string                     `json:"detail,omitempty"`
	Email     string                     `json:"email,omitempty"`
	Status    string                     `json:"status"`
	Balances  map[string]balanceResponse `json:"balances"`
	CreatedAt time.Time                  `json:"created_at"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

func toMerchantResponse(m *domain.Merchant) merchantResponse {
	balances := make(map[string]balanceResponse, len(m.Balances))
	for sym, b := range m.Balances {
		balances[sym] = balanceResponse{Available: b.Available, Frozen: b.Frozen}
	}
	return merchantResponse{
		Account:   m.Account,
		Name:      m.Name,
		Detail:    m.Detail,
		Email:     m.Email,
		Status:    string(m.Status),
		Balances:  balances,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func (h *MerchantHandler) RegisterMerchant(w http.ResponseWriter, r *http.Request) {
	var req merchantInfoRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	registered, err := h.Usecase.RegisterMerchant(r.Context(), &merchant.MerchantInfo{
		Account:        callerAccount(r),
		Name:           req.Name,
		Detail:         req.Detail,
		Email:          req.Email,
		Memo:           req.Memo,
		InitialDeposit: domain.Asset{Amount: req.DepositAmount, Symbol: req.DepositSymbol},
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toMerchantResponse(registered))
}

func (h *MerchantHandler) SetMerchant(w http.ResponseWriter, r *http.Request) {
	var req merchantInfoRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	err := h.Usecase.SetMerchant(r.Context(), callerAccount(r), &merchant.MerchantInfo{
		Account:      mux.Vars(r)["account"],
		Name:         req.Name,
		Detail:       req.Detail,
		Email:        req.Email,
		Memo:         req.Memo,
		Status:       domain.MerchantStatus(req.Status),
		RejectReason: req.RejectReason,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *MerchantHandler) RemoveMerchant(w http.ResponseWriter, r *http.Request) {
	if err := h.Usecase.RemoveMerchant(r.Context(), callerAccount(r), mux.Vars(r)["account"]); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *MerchantHandler) GetMerchant(w http.ResponseWriter, r *http.Request) {
	found, err := h.Usecase.GetMerchant(r.Context(), mux.Vars(r)["account"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toMerchantResponse(found))
}

type fundsRequest struct {
	Amount int64  `json:"amount"`
	Symbol string `json:"symbol"`
}

func (h *MerchantHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	var req fundsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	quantity := domain.Asset{Amount: req.Amount, Symbol: req.Symbol}
	if err := h.Usecase.Deposit(r.Context(), callerAccount(r), quantity); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *MerchantHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	var req fundsRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	quantity := domain.Asset{Amount: req.Amount, Symbol: req.Symbol}
	if err := h.Usecase.Withdraw(r.Context(), callerAccount(r), quantity); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

type blacklistRequest struct {
	Account         string `json:"account"`
	DurationSeconds int64  `json:"duration_seconds"`
}

func (h *MerchantHandler) SetBlacklist(w http.ResponseWriter, r *http.Request) {
	var req blacklistRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}
	duration := time.Duration(req.DurationSeconds) * time.Second
	if err := h.Usecase.SetBlacklist(r.Context(), callerAccount(r), req.Account, duration); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
