package domain

// RiceBatch is the farmer-entered batch as submitted to the ledger.
// Quantity stays a raw string; the ledger parses it.
type RiceBatch struct {
	BatchID     string `json:"batchID"`
	Variety     string `json:"variety"`
	HarvestDate string `json:"harvestDate"`
	Quantity    string `json:"quantity"`
	FarmerName  string `json:"farmerName"`
}

func (b RiceBatch) Fields() Fields {
	return Fields{
		FieldBatchID:     b.BatchID,
		FieldVariety:     b.Variety,
		FieldHarvestDate: b.HarvestDate,
		FieldQuantity:    b.Quantity,
		FieldFarmerName:  b.FarmerName,
	}
}

// LedgerBatch is a batch record as the ledger stores and returns it.
type LedgerBatch struct {
	AssetType    string `json:"assetType"`
	BatchID      string `json:"batchID"`
	Variety      string `json:"variety"`
	HarvestDate  string `json:"harvestDate"`
	QuantityInKg int    `json:"quantityInKg"`
	ProducedBy   string `json:"producedBy"`
	Status       string `json:"status"`
}

// HistoryRecord is one committed revision of a batch key.
type HistoryRecord struct {
	Record    *LedgerBatch `json:"record"`
	TxID      string       `json:"txId"`
	Timestamp string       `json:"timestamp"`
	IsDelete  bool         `json:"isDelete"`
}

// RangeQuery selects batches whose keys fall in [Start, End).
type RangeQuery struct {
	Start string
	End   string
}

func (q RangeQuery) Fields() Fields {
	return Fields{FieldStart: q.Start, FieldEnd: q.End}
}
