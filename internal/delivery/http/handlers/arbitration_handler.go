package handlers

import (
	"net/http"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/LavaJover/shvark-otc-service/internal/usecase/arbitration"
	"github.com/gorilla/mux"
)

type ArbitrationHandler struct {
	Usecase arbitration.ArbitrationUsecase
}

func NewArbitrationHandler(uc arbitration.ArbitrationUsecase) *ArbitrationHandler {
	return &ArbitrationHandler{Usecase: uc}
}

type startArbitrationRequest struct {
	Role string `json:"role"`
}

func (h *ArbitrationHandler) StartArbitration(w http.ResponseWriter, r *http.Request) {
	id, err := dealID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req startArbitrationRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	updated, err := h.Usecase.StartArbitration(r.Context(), callerAccount(r), domain.Role(req.Role), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toDealResponse(updated))
}

type resolveArbitrationRequest struct {
	FavorTaker bool `json:"favor_taker"`
}

func (h *ArbitrationHandler) ResolveArbitration(w http.ResponseWriter, r *http.Request) {
	id, err := dealID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req resolveArbitrationRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Usecase.ResolveArbitration(r.Context(), callerAccount(r), id, req.FavorTaker); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *ArbitrationHandler) CancelArbitration(w http.ResponseWriter, r *http.Request) {
	id, err := dealID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req startArbitrationRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Usecase.CancelArbitration(r.Context(), callerAccount(r), domain.Role(req.Role), id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

type setDealArbiterRequest struct {
	Arbiter string `json:"arbiter"`
}

func (h *ArbitrationHandler) SetDealArbiter(w http.ResponseWriter, r *http.Request) {
	id, err := dealID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var req setDealArbiterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	if err := h.Usecase.SetDealArbiter(r.Context(), callerAccount(r), id, req.Arbiter); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

type addArbiterRequest struct {
	Account string `json:"account"`
	Email   string `json:"email"`
}

type arbiterResponse struct {
	Account       string    `json:"account"`
	Email         string    `json:"email,omitempty"`
	Seq           uint64    `json:"seq"`
	ClosedCaseNum uint64    `json:"closed_case_num"`
	FailedCaseNum uint64    `json:"failed_case_num"`
	TotalQuantity int64     `json:"total_quantity"`
	CreatedAt     time.Time `json:"created_at"`
}

func toArbiterResponse(a *domain.Arbiter) arbiterResponse {
	return arbiterResponse{
		Account:       a.Account,
		Email:         a.Email,
		Seq:           a.Seq,
		ClosedCaseNum: a.ClosedCaseNum,
		FailedCaseNum: a.FailedCaseNum,
		TotalQuantity: a.TotalQuantity,
		CreatedAt:     a.CreatedAt,
	}
}

func (h *ArbitrationHandler) AddArbiter(w http.ResponseWriter, r *http.Request) {
	var req addArbiterRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, err)
		return
	}

	created, err := h.Usecase.AddArbiter(r.Context(), callerAccount(r), req.Account, req.Email)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toArbiterResponse(created))
}

func (h *ArbitrationHandler) RemoveArbiter(w http.ResponseWriter, r *http.Request) {
	account := mux.Vars(r)["account"]
	if err := h.Usecase.RemoveArbiter(r.Context(), callerAccount(r), account); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

func (h *ArbitrationHandler) ListArbiters(w http.ResponseWriter, r *http.Request) {
	arbiters, err := h.Usecase.ListArbiters(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	items := make([]arbiterResponse, 0, len(arbiters))
	for _, a := range arbiters {
		items = append(items, toArbiterResponse(a))
	}
	respondJSON(w, http.StatusOK, map[string]any{"arbiters": items})
}
