package domain

// LedgerRequest is one HTTP exchange with the ledger service.
// Path includes any query string.
type LedgerRequest struct {
	Method string
	Path   string
	Body   []byte
}

type LedgerResponse struct {
	StatusCode int
	Body       []byte
}
