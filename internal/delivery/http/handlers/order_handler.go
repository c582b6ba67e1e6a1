package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/order"
	"github.com/gorilla/mux"
)

type OrderHandler struct {
	Usecase order.OrderUsecase
}

func NewOrderHandler(uc order.OrderUsecase) *OrderHandler {
	return &OrderHandler{Usecase: uc}
}

type openOrderRequest struct {
	Side           string   `json:"side"`
	QuantityAmount int64    `json:"quantity_amount"`
	QuantitySymbol string   `json:"quantity_symbol"`
	PriceAmount    int64    `json:"price_amount"`
	PriceSymbol    string   `json:"price_symbol"`
	MinTakeAmount  int64    `json:"min_take_amount"`
	MaxTakeAmount  int64    `json:"max_take_amount"`
	PayMethods     []string `json:"pay_methods"`
	Memo           string   `json:"memo"`
}

type orderResponse struct {
	ID                uint64   `json:"id"`
	Side              string   `json:"side"`
	Owner             string   `json:"owner"`
	MerchantName      string   `json:"merchant_name"`
	QuantityAmount    int64    `json:"quantity_amount"`
	QuantitySymbol    string   `json:"quantity_symbol"`
	PriceAmount       int64    `json:"price_amount"`
	PriceSymbol       string   `json:"price_symbol"`
	MinTakeAmount     int64    `json:"min_take_amount"`
	MaxTakeAmount     int64    `json:"max_take_amount"`
	FrozenAmount      int64    `json:"frozen_amount"`
	FulfilledAmount   int64    `json:"fulfilled_amount"`
	StakeFrozenAmount int64    `json:"stake_frozen_amount"`
	StakeSymbol       string   `json:"stake_symbol"`
	PayMethods        []string `json:"pay_methods"`
	Memo              string   `json:"memo,omitempty"`
	Status            string   `json:"status"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:                o.ID,
		Side:              string(o.Side),
		Owner:             o.Owner,
		MerchantName:      o.MerchantName,
		QuantityAmount:    o.Quantity.Amount,
		QuantitySymbol:    o.Quantity.Symbol,
		PriceAmount:       o.Price.Amount,
		PriceSymbol:       o.Price.Symbol,
		MinTakeAmount:     o.MinTakeQuantity.Amount,
		MaxTakeAmount:     o.MaxTakeQuantity.Amount,
		FrozenAmount:      o.FrozenQuantity.Amount,
		FulfilledAmount:   o.FulfilledQuantity.Amount,
		StakeFrozenAmount: o.StakeFrozen.Amount,
		StakeSymbol:       o.StakeFrozen.Symbol,
		PayMethods:        o.PayMethods,
		Memo:              o.Memo,
		Status:            string(o.Status),
	}
}

func (h *OrderHandler) OpenOrder(w http.ResponseWriter, r *http.Request) {
	var req openOrderRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.Usecase.OpenOrder(r.Context(), &order.OpenOrderInput{
		Owner:           callerAccount(r),
		Side:            domain.OrderSide(req.Side),
		Quantity:        domain.Asset{Amount: req.QuantityAmount, Symbol: req.QuantitySymbol},
		Price:           domain.Asset{Amount: req.PriceAmount, Symbol: req.PriceSymbol},
		MinTakeQuantity: domain.Asset{Amount: req.MinTakeAmount, Symbol: req.QuantitySymbol},
		MaxTakeQuantity: domain.Asset{Amount: req.MaxTakeAmount, Symbol: req.QuantitySymbol},
		PayMethods:      req.PayMethods,
		Memo:            req.Memo,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toOrderResponse(created))
}

func orderVars(r *http.Request) (domain.OrderSide, uint64, error) {
	vars := mux.Vars(r)
	side := domain.OrderSide(vars["side"])
	if !side.Valid() {
		return "", 0, fmt.Errorf("%w: side %q", domain.ErrInvalidParameter, vars["side"])
	}
	id, err := strconv.ParseUint(vars["id"], 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: order id %q", domain.ErrInvalidParameter, vars["id"])
	}
	return side, id, nil
}

func (h *OrderHandler) PauseOrder(w http.ResponseWriter, r *http.Request) {
	side, id, err := orderVars(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Usecase.PauseOrder(r.Context(), callerAccount(r), side, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *OrderHandler) ResumeOrder(w http.ResponseWriter, r *http.Request) {
	side, id, err := orderVars(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Usecase.ResumeOrder(r.Context(), callerAccount(r), side, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *OrderHandler) CloseOrder(w http.ResponseWriter, r *http.Request) {
	side, id, err := orderVars(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Usecase.CloseOrder(r.Context(), callerAccount(r), side, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	side, id, err := orderVars(r)
	if err != nil {
		respondError(w, err)
		return
	}
	found, err := h.Usecase.GetOrder(r.Context(), side, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toOrderResponse(found))
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	side := domain.OrderSide(q.Get("side"))
	if !side.Valid() {
		respondError(w, fmt.Errorf("%w: side query param required", domain.ErrInvalidParameter))
		return
	}
	owner := q.Get("owner")
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	orders, total, err := h.Usecase.ListOrdersByOwner(r.Context(), side, owner, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	items := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		items = append(items, toOrderResponse(o))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"orders": items,
		"total":  total,
	})
}
