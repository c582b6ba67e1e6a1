package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LavaJover/shvark-otc-service/internal/domain"
	"github.com/jaevor/go-nanoid"
)

// HTTPTransferClient moves value through the banking collaborator's REST
// API. It implements domain.TransferClient. Every request carries a
// generated reference so retries on the banking side stay idempotent.
type HTTPTransferClient struct {
	Address string
	client  *http.Client
	newRef  func() string
}

func NewHTTPTransferClient(address string) (*HTTPTransferClient, error) {
	refGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}
	return &HTTPTransferClient{
		Address: address,
		client:  &http.Client{Timeout: 10 * time.Second},
		newRef:  refGenerator,
	}, nil
}

type transferRequest struct {
	Reference string `json:"reference"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    int64  `json:"amount"`
	Symbol    string `json:"symbol"`
	Memo      string `json:"memo"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPTransferClient) Transfer(ctx context.Context, from, to string, quantity domain.Asset, memo string) error {
	body, err := json.Marshal(transferRequest{
		Reference: c.newRef(),
		From:      from,
		To:        to,
		Amount:    quantity.Amount,
		Symbol:    quantity.Symbol,
		Memo:      memo,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/transfers", c.Address), bytes.NewBuffer(body))
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

func decodeError(response *http.Response) error {
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}
	var errResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("unexpected status %d", response.StatusCode)
	}
	return fmt.Errorf("%s", errResp.Error)
}
