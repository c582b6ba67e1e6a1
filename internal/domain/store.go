package domain

// Sequence names owned by the store. Counters are incremented transactionally
// on creation and never reused, even for cancelled records.
const (
	SeqBuyOrderID  = "buy_order_id"
	SeqSellOrderID = "sell_order_id"
	SeqDealID      = "deal_id"
	SeqArbiterSeq  = "arbiter_seq"
)

func OrderSequence(side OrderSide) string {
	if side == SideBuy {
		return SeqBuyOrderID
	}
	return SeqSellOrderID
}

type SequenceRepository interface {
	// NextSequence atomically increments and returns the named counter.
	NextSequence(name string) (uint64, error)
}

// Store aggregates the persisted collections. Transaction runs fn against a
// store bound to one transaction: every composite operation (close = unfreeze
// + debit + order update) commits as a single all-or-nothing unit.
type Store interface {
	Merchants() MerchantRepository
	Orders() OrderRepository
	Deals() DealRepository
	Arbiters() ArbiterRepository
	Blacklist() BlacklistRepository
	Sequences() SequenceRepository
	Transaction(fn func(Store) error) error
}
