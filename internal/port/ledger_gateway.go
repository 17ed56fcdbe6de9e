package port

import (
	"context"

	"github.com/rl1809/rice-trace/internal/core/domain"
)

type LedgerGateway interface {
	// Send performs exactly one request against the ledger service and returns
	// the raw response. A non-nil error means no response was obtained.
	Send(ctx context.Context, req domain.LedgerRequest) (domain.LedgerResponse, error)
}
