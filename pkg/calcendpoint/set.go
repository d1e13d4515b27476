package calcendpoint

import (
	"context"

	stdopentracing "github.com/opentracing/opentracing-go"

	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/tracing/opentracing"

	"github.com/calcrpc/calcsvc/pkg/calcservice"
)

// Set collects all of the endpoints that compose a calculator service. It's
// meant to be used as a helper struct, to collect all of the endpoints into a
// single parameter.
type Set struct {
	AddEndpoint      endpoint.Endpoint
	SubtractEndpoint endpoint.Endpoint
}

// New returns a Set that wraps the provided server, and wires in all of the
// expected endpoint middlewares via the various parameters.
func New(svc calcservice.Service, logger log.Logger, duration metrics.Histogram, tracer stdopentracing.Tracer) Set {
	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = MakeAddEndpoint(svc)
		addEndpoint = opentracing.TraceServer(tracer, "Add")(addEndpoint)
		addEndpoint = LoggingMiddleware(log.With(logger, "method", "Add"))(addEndpoint)
		addEndpoint = InstrumentingMiddleware(duration.With("method", "Add"))(addEndpoint)
	}
	var subtractEndpoint endpoint.Endpoint
	{
		subtractEndpoint = MakeSubtractEndpoint(svc)
		subtractEndpoint = opentracing.TraceServer(tracer, "Subtract")(subtractEndpoint)
		subtractEndpoint = LoggingMiddleware(log.With(logger, "method", "Subtract"))(subtractEndpoint)
		subtractEndpoint = InstrumentingMiddleware(duration.With("method", "Subtract"))(subtractEndpoint)
	}
	return Set{
		AddEndpoint:      addEndpoint,
		SubtractEndpoint: subtractEndpoint,
	}
}

// Add implements the service interface, so Set may be used as a service.
// This is primarily useful in the context of a client library.
func (s Set) Add(ctx context.Context, a, b int32) (int32, error) {
	resp, err := s.AddEndpoint(ctx, AddRequest{A: a, B: b})
	if err != nil {
		return 0, err
	}
	response := resp.(AddResponse)
	return response.Result, response.Err
}

// Subtract implements the service interface, so Set may be used as a
// service. This is primarily useful in the context of a client library.
func (s Set) Subtract(ctx context.Context, a, b int32) (int32, error) {
	resp, err := s.SubtractEndpoint(ctx, SubtractRequest{A: a, B: b})
	if err != nil {
		return 0, err
	}
	response := resp.(SubtractResponse)
	return response.Result, response.Err
}

// MakeAddEndpoint constructs an Add endpoint wrapping the service.
func MakeAddEndpoint(s calcservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(AddRequest)
		v, err := s.Add(ctx, req.A, req.B)
		return AddResponse{Result: v, Err: err}, nil
	}
}

// MakeSubtractEndpoint constructs a Subtract endpoint wrapping the service.
func MakeSubtractEndpoint(s calcservice.Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (response interface{}, err error) {
		req := request.(SubtractRequest)
		v, err := s.Subtract(ctx, req.A, req.B)
		return SubtractResponse{Result: v, Err: err}, nil
	}
}

// compile time assertions for our response types implementing endpoint.Failer.
var (
	_ endpoint.Failer = AddResponse{}
	_ endpoint.Failer = SubtractResponse{}
)

// AddRequest collects the request parameters for the Add method.
type AddRequest struct {
	A int32 `json:"a"`
	B int32 `json:"b"`
}

// AddResponse collects the response values for the Add method.
type AddResponse struct {
	Result int32 `json:"result"`
	Err    error `json:"-"` // should be intercepted by Failed/errorEncoder
}

// Failed implements endpoint.Failer.
func (r AddResponse) Failed() error { return r.Err }

// SubtractRequest collects the request parameters for the Subtract method.
type SubtractRequest struct {
	A int32 `json:"a"`
	B int32 `json:"b"`
}

// SubtractResponse collects the response values for the Subtract method.
type SubtractResponse struct {
	Result int32 `json:"result"`
	Err    error `json:"-"`
}

// Failed implements endpoint.Failer.
func (r SubtractResponse) Failed() error { return r.Err }
