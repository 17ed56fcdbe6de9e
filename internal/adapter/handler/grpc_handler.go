package handler

import (
	"context"
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"

	"github.com/rl1809/rice-trace/internal/core/domain"
	"github.com/rl1809/rice-trace/internal/core/service"
)

const (
	actionServiceName = "ricetrace.ActionService"
	runMethod         = "/" + actionServiceName + "/Run"

	// Messages travel as JSON under this content-subtype; there are no
	// generated protobuf stubs.
	codecName = "json"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return codecName }

type ActionRequest struct {
	Action string            `json:"action"`
	Fields map[string]string `json:"fields"`
}

type ActionResponse struct {
	Success    bool            `json:"success"`
	Kind       string          `json:"kind"`
	Message    string          `json:"message"`
	Missing    []string        `json:"missing,omitempty"`
	StatusCode int             `json:"statusCode,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// ActionServiceServer is the server side of ricetrace.ActionService.
type ActionServiceServer interface {
	Run(ctx context.Context, req *ActionRequest) (*ActionResponse, error)
}

var actionServiceDesc = grpc.ServiceDesc{
	ServiceName: actionServiceName,
	HandlerType: (*ActionServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Run", Handler: runHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "ricetrace/action_service",
}

func RegisterActionServiceServer(s grpc.ServiceRegistrar, srv ActionServiceServer) {
	s.RegisterService(&actionServiceDesc, srv)
}

func runHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(ActionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ActionServiceServer).Run(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: runMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ActionServiceServer).Run(ctx, req.(*ActionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

type GRPCHandler struct {
	actionService *service.ActionService
}

func NewGRPCHandler(actionService *service.ActionService) *GRPCHandler {
	return &GRPCHandler{actionService: actionService}
}

// Run reports every outcome, including validation and ledger failures, in
// the response body rather than as a gRPC status.
func (h *GRPCHandler) Run(ctx context.Context, req *ActionRequest) (*ActionResponse, error) {
	out := h.actionService.Run(ctx, domain.Action(req.Action), domain.Fields(req.Fields))
	return &ActionResponse{
		Success:    out.OK(),
		Kind:       string(out.Kind),
		Message:    out.Message,
		Missing:    out.Missing,
		StatusCode: out.StatusCode,
		Data:       out.Data,
	}, nil
}

// GRPCClient calls a remote ricetrace.ActionService.
type GRPCClient struct {
	conn grpc.ClientConnInterface
}

func NewGRPCClient(conn grpc.ClientConnInterface) *GRPCClient {
	return &GRPCClient{conn: conn}
}

func (c *GRPCClient) Run(ctx context.Context, action domain.Action, fields domain.Fields) (domain.Outcome, error) {
	req := &ActionRequest{Action: string(action), Fields: fields}
	resp := new(ActionResponse)
	if err := c.conn.Invoke(ctx, runMethod, req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return domain.Outcome{}, err
	}
	return domain.Outcome{
		Action:     action,
		Kind:       domain.OutcomeKind(resp.Kind),
		Message:    resp.Message,
		Missing:    resp.Missing,
		StatusCode: resp.StatusCode,
		Data:       resp.Data,
	}, nil
}
