package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
)

// HTTPSettleClient posts closed-deal records to the settlement collaborator.
// It implements domain.SettleClient.
type HTTPSettleClient struct {
	Address string
	client  *http.Client
}

func NewHTTPSettleClient(address string) *HTTPSettleClient {
	return &HTTPSettleClient{
		Address: address,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type settleRequest struct {
	DealID    uint64 `json:"deal_id"`
	Maker     string `json:"maker"`
	Taker     string `json:"taker"`
	Amount    int64  `json:"amount"`
	Symbol    string `json:"symbol"`
	FeeAmount int64  `json:"fee_amount"`
	FeeSymbol string `json:"fee_symbol"`
	Discount  int64  `json:"discount"`
	OpenedAt  int64  `json:"opened_at"`
	ClosedAt  int64  `json:"closed_at"`
}

func (c *HTTPSettleClient) SettleDeal(ctx context.Context, sreq domain.SettleDealRequest) error {
	body, err := json.Marshal(settleRequest{
		DealID:    sreq.DealID,
		Maker:     sreq.Maker,
		Taker:     sreq.Taker,
		Amount:    sreq.Amount.Amount,
		Symbol:    sreq.Amount.Symbol,
		FeeAmount: sreq.Fee.Amount,
		FeeSymbol: sreq.Fee.Symbol,
		Discount:  sreq.Discount,
		OpenedAt:  sreq.OpenedAt.Unix(),
		ClosedAt:  sreq.ClosedAt.Unix(),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/settlements", c.Address), bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	return decodeError(response)
}
