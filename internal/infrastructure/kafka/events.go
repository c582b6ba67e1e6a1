package kafka

import "time"

// DealChangedEvent mirrors domain.DealEvent on the wire, plus the recipient
// and a send timestamp so downstream consumers can fan out notifications
// without another lookup.
type DealChangedEvent struct {
	EventID     string    `json:"event_id"`
	Recipient   string    `json:"recipient"`
	DealID      uint64    `json:"deal_id"`
	OrderID     uint64    `json:"order_id"`
	Side        string    `json:"side"`
	Maker       string    `json:"maker"`
	Taker       string    `json:"taker"`
	Status      string    `json:"status"`
	ArbitStatus string    `json:"arbit_status"`
	Quantity    int64     `json:"quantity"`
	Symbol      string    `json:"symbol"`
	Action      string    `json:"action"`
	SentAt      time.Time `json:"sent_at"`
}

type StakeChangedEvent struct {
	EventID string    `json:"event_id"`
	Account string    `json:"account"`
	Amount  int64     `json:"amount"`
	Symbol  string    `json:"symbol"`
	Memo    string    `json:"memo"`
	SentAt  time.Time `json:"sent_at"`
}

type MerchantChangedEvent struct {
	EventID string    `json:"event_id"`
	Account string    `json:"account"`
	Status  string    `json:"status"`
	Reason  string    `json:"reason,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}
