package domain

// ProcessingOrder is a miller's request for rice. The operator enters the
// amount as "quantity"; the ledger payload carries it as "quantityInKg".
type ProcessingOrder struct {
	OrderID      string `json:"orderID"`
	Variety      string `json:"variety"`
	QuantityInKg string `json:"quantityInKg"`
	MillerName   string `json:"millerName"`
}

func (o ProcessingOrder) Fields() Fields {
	return Fields{
		FieldOrderID:    o.OrderID,
		FieldVariety:    o.Variety,
		FieldQuantity:   o.QuantityInKg,
		FieldMillerName: o.MillerName,
	}
}

// Match pairs a batch with a processing order.
type Match struct {
	BatchID string `json:"batchID"`
	OrderID string `json:"orderID"`
}

func (m Match) Fields() Fields {
	return Fields{FieldBatchID: m.BatchID, FieldOrderID: m.OrderID}
}

// Dispatch hands a batch to a named retailer.
type Dispatch struct {
	BatchID      string `json:"batchID"`
	RetailerName string `json:"retailerName"`
}

func (d Dispatch) Fields() Fields {
	return Fields{FieldBatchID: d.BatchID, FieldRetailerName: d.RetailerName}
}
