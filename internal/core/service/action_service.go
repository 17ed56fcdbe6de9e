package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rl1809/rice-trace/internal/core/domain"
	"github.com/rl1809/rice-trace/internal/port"
)

var (
	ErrValidation    = errors.New("missing required fields")
	ErrTransport     = errors.New("ledger request failed")
	ErrDecode        = errors.New("ledger response is not valid json")
	ErrUnknownAction = errors.New("unknown action")
)

// ActionService turns one operator action into one ledger request and
// reports the result as an Outcome. It holds no per-action state.
type ActionService struct {
	ledger  port.LedgerGateway
	journal port.Journal
	now     func() time.Time
}

// NewActionService builds the dispatcher. journal may be nil.
func NewActionService(ledger port.LedgerGateway, journal port.Journal) *ActionService {
	return &ActionService{
		ledger:  ledger,
		journal: journal,
		now:     time.Now,
	}
}

// Run executes action with values read from in at call time. It always
// returns exactly one outcome and never panics on ledger output.
//
// The ledger request is detached from ctx cancellation: once dispatched it
// runs to completion even if the caller has gone away.
func (s *ActionService) Run(ctx context.Context, action domain.Action, in domain.InputSource) domain.Outcome {
	ctx = context.WithoutCancel(ctx)
	id := uuid.NewString()

	spec, ok := actionSpecs[action]
	if !ok {
		out := domain.Outcome{
			Action:  action,
			Kind:    domain.OutcomeFailure,
			Message: "unknown action",
			Err:     fmt.Errorf("%w: %q", ErrUnknownAction, action),
		}
		log.Printf("action %s (%s): %v", action, id, out.Err)
		s.record(ctx, id, out, domain.LedgerRequest{})
		return out
	}
	if in == nil {
		in = domain.Fields{}
	}

	values := make(map[string]string, len(spec.required))
	var missing []string
	for _, name := range spec.required {
		v := in.Value(name)
		if v == "" {
			missing = append(missing, name)
			continue
		}
		values[name] = v
	}
	if len(missing) > 0 {
		out := domain.Outcome{
			Action:  action,
			Kind:    domain.OutcomeValidation,
			Message: spec.invalid,
			Missing: missing,
			Err:     fmt.Errorf("%w: %s", ErrValidation, strings.Join(missing, ", ")),
		}
		s.record(ctx, id, out, domain.LedgerRequest{})
		return out
	}

	req, err := spec.request(values)
	if err != nil {
		return s.fail(ctx, id, action, spec, req, 0, fmt.Errorf("build request: %w", err))
	}

	resp, err := s.ledger.Send(ctx, req)
	if err != nil {
		return s.fail(ctx, id, action, spec, req, 0, fmt.Errorf("%w: %w", ErrTransport, err))
	}

	body, err := decodeBody(resp.Body)
	if err != nil {
		return s.fail(ctx, id, action, spec, req, resp.StatusCode,
			fmt.Errorf("%w: status %d", err, resp.StatusCode))
	}

	out := domain.Outcome{
		Action:     action,
		Kind:       domain.OutcomeSuccess,
		StatusCode: resp.StatusCode,
	}
	spec.present(body, &out)
	s.record(ctx, id, out, req)
	return out
}

func (s *ActionService) fail(ctx context.Context, id string, action domain.Action, spec actionSpec,
	req domain.LedgerRequest, status int, err error) domain.Outcome {
	log.Printf("action %s (%s): %s %s: %v", action, id, req.Method, req.Path, err)
	out := domain.Outcome{
		Action:     action,
		Kind:       domain.OutcomeFailure,
		Message:    spec.failure,
		StatusCode: status,
		Err:        err,
	}
	s.record(ctx, id, out, req)
	return out
}

func (s *ActionService) record(ctx context.Context, id string, out domain.Outcome, req domain.LedgerRequest) {
	if s.journal == nil {
		return
	}
	entry := domain.JournalEntry{
		ID:         id,
		Action:     out.Action,
		Kind:       out.Kind,
		Message:    out.Message,
		Method:     req.Method,
		Path:       req.Path,
		StatusCode: out.StatusCode,
		OccurredAt: s.now().UTC(),
	}
	if out.Err != nil {
		entry.Error = out.Err.Error()
	}
	if err := s.journal.Record(ctx, entry); err != nil {
		log.Printf("journal: failed to record %s (%s): %v", out.Action, id, err)
	}
}

func (s *ActionService) CreateBatch(ctx context.Context, batch domain.RiceBatch) domain.Outcome {
	return s.Run(ctx, domain.ActionCreateBatch, batch.Fields())
}

func (s *ActionService) ReadBatch(ctx context.Context, batchID string) domain.Outcome {
	return s.Run(ctx, domain.ActionReadBatch, domain.Fields{domain.FieldBatchID: batchID})
}

func (s *ActionService) ListBatches(ctx context.Context) domain.Outcome {
	return s.Run(ctx, domain.ActionListBatches, domain.Fields{})
}

func (s *ActionService) QueryRange(ctx context.Context, q domain.RangeQuery) domain.Outcome {
	return s.Run(ctx, domain.ActionQueryRange, q.Fields())
}

func (s *ActionService) BatchHistory(ctx context.Context, batchID string) domain.Outcome {
	return s.Run(ctx, domain.ActionBatchHistory, domain.Fields{domain.FieldBatchID: batchID})
}

func (s *ActionService) CreateOrder(ctx context.Context, order domain.ProcessingOrder) domain.Outcome {
	return s.Run(ctx, domain.ActionCreateOrder, order.Fields())
}

func (s *ActionService) MatchOrder(ctx context.Context, match domain.Match) domain.Outcome {
	return s.Run(ctx, domain.ActionMatchOrder, match.Fields())
}

func (s *ActionService) Dispatch(ctx context.Context, dispatch domain.Dispatch) domain.Outcome {
	return s.Run(ctx, domain.ActionDispatch, dispatch.Fields())
}
