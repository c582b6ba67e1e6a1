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

// HTTPAuthClient asks the auth collaborator whether a proof token actually
// belongs to the named account. It implements domain.AuthVerifier.
type HTTPAuthClient struct {
	Address string
	client  *http.Client
}

func NewHTTPAuthClient(address string) *HTTPAuthClient {
	return &HTTPAuthClient{
		Address: address,
		client:  &http.Client{Timeout: 5 * time.Second},
	}
}

type verifyRequest struct {
	Account string `json:"account"`
	Proof   string `json:"proof"`
}

func (c *HTTPAuthClient) Verify(ctx context.Context, account, proof string) error {
	body, err := json.Marshal(verifyRequest{Account: account, Proof: proof})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/auth/verify", c.Address), bytes.NewBuffer(body))
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
	if response.StatusCode == http.StatusUnauthorized || response.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: account %s", domain.ErrUnauthorized, account)
	}
	return decodeError(response)
}
