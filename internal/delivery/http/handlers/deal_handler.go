package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/deal"
	"github.com/gorilla/mux"
)

type DealHandler struct {
	Usecase deal.DealUsecase
}

func NewDealHandler(uc deal.DealUsecase) *DealHandler {
	return &DealHandler{Usecase: uc}
}

type openDealRequest struct {
	Side           string `json:"side"`
	OrderID        uint64 `json:"order_id"`
	QuantityAmount int64  `json:"quantity_amount"`
	QuantitySymbol string `json:"quantity_symbol"`
	OrderSN        string `json:"order_sn"`
	PayMethod      string `json:"pay_method"`
}

type dealResponse struct {
	ID             uint64    `json:"id"`
	OrderID        uint64    `json:"order_id"`
	Side           string    `json:"side"`
	Maker          string    `json:"maker"`
	Taker          string    `json:"taker"`
	MerchantName   string    `json:"merchant_name"`
	QuantityAmount int64     `json:"quantity_amount"`
	QuantitySymbol string    `json:"quantity_symbol"`
	PriceAmount    int64     `json:"price_amount"`
	PriceSymbol    string    `json:"price_symbol"`
	FeeAmount      int64     `json:"fee_amount"`
	FeeSymbol      string    `json:"fee_symbol"`
	PayMethod      string    `json:"pay_method"`
	Status         string    `json:"status"`
	ArbitStatus    string    `json:"arbit_status"`
	Arbiter        string    `json:"arbiter,omitempty"`
	OrderSN        string    `json:"order_sn"`
	CloseMsg       string    `json:"close_msg,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func toDealResponse(d *domain.Deal) dealResponse {
	return dealResponse{
		ID:             d.ID,
		OrderID:        d.OrderID,
		Side:           string(d.Side),
		Maker:          d.Maker,
		Taker:          d.Taker,
		MerchantName:   d.MerchantName,
		QuantityAmount: d.Quantity.Amount,
		QuantitySymbol: d.Quantity.Symbol,
		PriceAmount:    d.Price.Amount,
		PriceSymbol:    d.Price.Symbol,
		FeeAmount:      d.Fee.Amount,
		FeeSymbol:      d.Fee.Symbol,
		PayMethod:      d.PayMethod,
		Status:         string(d.Status),
		ArbitStatus:    string(d.ArbitStatus),
		Arbiter:        d.Arbiter,
		OrderSN:        d.OrderSN,
		CloseMsg:       d.CloseMsg,
		CreatedAt:      d.CreatedAt,
	}
}

func dealID(r *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: deal id %q", domain.ErrInvalidParameter, mux.Vars(r)["id"])
	}
	return id, nil
}

func (h *DealHandler) OpenDeal(w http.ResponseWriter, r *http.Request) {
	var req openDealRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.Usecase.OpenDeal(r.Context(), &deal.OpenDealInput{
		Taker:     callerAccount(r),
		Side:      domain.OrderSide(req.Side),
		OrderID:   req.OrderID,
		Quantity:  domain.Asset{Amount: req.QuantityAmount, Symbol: req.QuantitySymbol},
		OrderSN:   req.OrderSN,
		PayMethod: req.PayMethod,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toDealResponse(created))
}

type processDealRequest struct {
	Role   string `json:"role"`
	Action string `json:"action"`
}

func (h *DealHandler) ProcessDeal(w http.ResponseWriter, r *http.Request) {
	id, err := dealID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req processDealRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.Usecase.ProcessDeal(r.Context(), callerAccount(r),
		domain.Role(req.Role), id, domain.DealAction(req.Action))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toDealResponse(updated))
}

type closeDealRequest struct {
	Role     string `json:"role"`
	CloseMsg string `json:"close_msg"`
}

func (h *DealHandler) CloseDeal(w http.ResponseWriter, r *http.Request) {
	id, err := dealID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req closeDealRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Usecase.CloseDeal(r.Context(), callerAccount(r), domain.Role(req.Role), id, req.CloseMsg); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

type cancelDealRequest struct {
	Role           string `json:"role"`
	BlacklistTaker bool   `json:"blacklist_taker"`
}

func (h *DealHandler) CancelDeal(w http.ResponseWriter, r *http.Request) {
	id, err := dealID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req cancelDealRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Usecase.CancelDeal(r.Context(), callerAccount(r), domain.Role(req.Role), id, req.BlacklistTaker); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *DealHandler) ResetDeal(w http.ResponseWriter, r *http.Request) {
	id, err := dealID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.Usecase.ResetDeal(r.Context(), callerAccount(r), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *DealHandler) GetDeal(w http.ResponseWriter, r *http.Request) {
	id, err := dealID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	found, err := h.Usecase.GetDeal(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toDealResponse(found))
}

func (h *DealHandler) ListDeals(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	account := q.Get("account")
	if account == "" {
		respondError(w, fmt.Errorf("%w: account query param required", domain.ErrInvalidParameter))
		return
	}
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	deals, total, err := h.Usecase.ListDealsByAccount(r.Context(), account, page, limit)
	if err != nil {
		respondError(w, err)
		return
	}

	items := make([]dealResponse, 0, len(deals))
	for _, d := range deals {
		items = append(items, toDealResponse(d))
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"deals": items,
		"total": total,
	})
}
