package domain

// Input names read from the operator at action time.
const (
	FieldBatchID      = "batchID"
	FieldVariety      = "variety"
	FieldHarvestDate  = "harvestDate"
	FieldQuantity     = "quantity"
	FieldFarmerName   = "farmerName"
	FieldOrderID      = "orderID"
	FieldMillerName   = "millerName"
	FieldRetailerName = "retailerName"
	FieldStart        = "start"
	FieldEnd          = "end"
)

// InputSource yields the current value of a named input. A name the source
// does not know must yield "".
type InputSource interface {
	Value(name string) string
}

// Fields is an InputSource backed by a plain map.
type Fields map[string]string

func (f Fields) Value(name string) string {
	return f[name]
}
