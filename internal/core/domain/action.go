package domain

// Action names one operator-triggered operation against the ledger.
type Action string

const (
	ActionCreateBatch  Action = "create-batch"
	ActionReadBatch    Action = "read-batch"
	ActionListBatches  Action = "list-batches"
	ActionQueryRange   Action = "query-range"
	ActionBatchHistory Action = "batch-history"
	ActionCreateOrder  Action = "create-order"
	ActionMatchOrder   Action = "match-order"
	ActionDispatch     Action = "dispatch"
)

// Actions lists every supported action in a stable order.
var Actions = []Action{
	ActionCreateBatch,
	ActionReadBatch,
	ActionListBatches,
	ActionQueryRange,
	ActionBatchHistory,
	ActionCreateOrder,
	ActionMatchOrder,
	ActionDispatch,
}

func (a Action) Valid() bool {
	for _, known := range Actions {
		if a == known {
			return true
		}
	}
	return false
}
