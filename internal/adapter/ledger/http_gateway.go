package ledger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rl1809/rice-trace/internal/core/domain"
	"github.com/rl1809/rice-trace/internal/port"
)

var _ port.LedgerGateway = (*HTTPGateway)(nil)

// HTTPGateway talks JSON over HTTP to the ledger-backed service. It adds no
// auth header, request ID or idempotency key, and enforces no timeout.
type HTTPGateway struct {
	baseURL string
	client  *http.Client
}

func NewHTTPGateway(baseURL string, client *http.Client) *HTTPGateway {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPGateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (g *HTTPGateway) Send(ctx context.Context, req domain.LedgerRequest) (domain.LedgerResponse, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, g.baseURL+req.Path, body)
	if err != nil {
		return domain.LedgerResponse{}, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return domain.LedgerResponse{}, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.LedgerResponse{}, fmt.Errorf("read response: %w", err)
	}

	return domain.LedgerResponse{StatusCode: resp.StatusCode, Body: data}, nil
}
