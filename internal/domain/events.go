package domain

// DealEvent is the change notification emitted to the counterparty after a
// successful deal transition. The core only builds the payload; delivery and
// ordering belong to the messaging layer.
type DealEvent struct {
	DealID      uint64      `json:"deal_id"`
	OrderID     uint64      `json:"order_id"`
	Side        OrderSide   `json:"side"`
	Maker       string      `json:"maker"`
	Taker       string      `json:"taker"`
	Status      DealStatus  `json:"status"`
	ArbitStatus ArbitStatus `json:"arbit_status"`
	Quantity    int64       `json:"quantity"`
	Symbol      string      `json:"symbol"`
	Action      DealAction  `json:"action"`
}

// StakeEvent records a merchant balance change (deposit, withdrawal, fee,
// fine). Amount is signed: negative for deductions.
type StakeEvent struct {
	Account string `json:"account"`
	Amount  int64  `json:"amount"`
	Symbol  string `json:"symbol"`
	Memo    string `json:"memo"`
}

// MerchantEvent notifies a merchant about registry decisions, e.g. rejection.
type MerchantEvent struct {
	Account string         `json:"account"`
	Status  MerchantStatus `json:"status"`
	Reason  string         `json:"reason,omitempty"`
}

type EventPublisher interface {
	PublishDeal(recipient string, event DealEvent) error
	PublishStake(event StakeEvent) error
	PublishMerchant(event MerchantEvent) error
}
