package calctransport

import (
	"context"
	"time"

	stdopentracing "github.com/opentracing/opentracing-go"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/transport"
	grpctransport "github.com/go-kit/kit/transport/grpc"

	"github.com/calcrpc/calcsvc/pb"
	"github.com/calcrpc/calcsvc/pkg/calcendpoint"
	"github.com/calcrpc/calcsvc/pkg/calcservice"
)

// GRPCServiceName is the fully qualified name of the Calculator service, as
// declared in calc.proto. The proto has no package, so the name is bare.
const GRPCServiceName = "Calculator"

type grpcServer struct {
	add      grpctransport.Handler
	subtract grpctransport.Handler
}

// NewGRPCServer makes a set of endpoints available as a gRPC CalculatorServer.
func NewGRPCServer(endpoints calcendpoint.Set, tracer stdopentracing.Tracer, logger log.Logger) pb.CalculatorServer {
	options := []grpctransport.ServerOption{
		grpctransport.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
	}

	return &grpcServer{
		add: grpctransport.NewServer(
			endpoints.AddEndpoint,
			decodeGRPCAddRequest,
			encodeGRPCAddResponse,
			append(options, grpctransport.ServerBefore(opentracing.GRPCToContext(tracer, "Add", logger)))...,
		),
		subtract: grpctransport.NewServer(
			endpoints.SubtractEndpoint,
			decodeGRPCSubtractRequest,
			encodeGRPCSubtractResponse,
			append(options, grpctransport.ServerBefore(opentracing.GRPCToContext(tracer, "Subtract", logger)))...,
		),
	}
}

func (s *grpcServer) Add(ctx context.Context, req *pb.AddRequest) (*pb.AddResponse, error) {
	_, rep, err := s.add.ServeGRPC(ctx, req)
	if err != nil {
		return nil, err
	}
	return rep.(*pb.AddResponse), nil
}

func (s *grpcServer) Subtract(ctx context.Context, req *pb.SubtractRequest) (*pb.SubtractResponse, error) {
	_, rep, err := s.subtract.ServeGRPC(ctx, req)
	if err != nil {
		return nil, err
	}
	return rep.(*pb.SubtractResponse), nil
}

// NewGRPCClient returns a calculator Service backed by a gRPC server at the
// other end of the conn. The caller is responsible for constructing the conn,
// and eventually closing the underlying transport. We bake-in certain
// middlewares, implementing the client library pattern.
func NewGRPCClient(conn *grpc.ClientConn, tracer stdopentracing.Tracer, logger log.Logger) calcservice.Service {
	// A single ratelimiter limits the total outgoing QPS from this client to
	// all methods on the remote instance; circuit breakers are per endpoint.
	limiter := ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Every(time.Second), 100))

	var options []grpctransport.ClientOption

	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = grpctransport.NewClient(
			conn,
			GRPCServiceName,
			"Add",
			encodeGRPCAddRequest,
			decodeGRPCAddResponse,
			pb.AddResponse{},
			append(options, grpctransport.ClientBefore(opentracing.ContextToGRPC(tracer, logger)))...,
		).Endpoint()
		addEndpoint = opentracing.TraceClient(tracer, "Add")(addEndpoint)
		addEndpoint = limiter(addEndpoint)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Add",
			Timeout: 30 * time.Second,
		}))(addEndpoint)
	}

	var subtractEndpoint endpoint.Endpoint
	{
		subtractEndpoint = grpctransport.NewClient(
			conn,
			GRPCServiceName,
			"Subtract",
			encodeGRPCSubtractRequest,
			decodeGRPCSubtractResponse,
			pb.SubtractResponse{},
			append(options, grpctransport.ClientBefore(opentracing.ContextToGRPC(tracer, logger)))...,
		).Endpoint()
		subtractEndpoint = opentracing.TraceClient(tracer, "Subtract")(subtractEndpoint)
		subtractEndpoint = limiter(subtractEndpoint)
		subtractEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Subtract",
			Timeout: 30 * time.Second,
		}))(subtractEndpoint)
	}

	return calcendpoint.Set{
		AddEndpoint:      addEndpoint,
		SubtractEndpoint: subtractEndpoint,
	}
}

// decodeGRPCAddRequest is a transport/grpc.DecodeRequestFunc that converts a
// gRPC add request to a user-domain add request. Primarily useful in a server.
func decodeGRPCAddRequest(_ context.Context, grpcReq interface{}) (interface{}, error) {
	req := grpcReq.(*pb.AddRequest)
	return calcendpoint.AddRequest{A: req.A, B: req.B}, nil
}

// decodeGRPCSubtractRequest is a transport/grpc.DecodeRequestFunc that
// converts a gRPC subtract request to a user-domain subtract request.
// Primarily useful in a server.
func decodeGRPCSubtractRequest(_ context.Context, grpcReq interface{}) (interface{}, error) {
	req := grpcReq.(*pb.SubtractRequest)
	return calcendpoint.SubtractRequest{A: req.A, B: req.B}, nil
}

// decodeGRPCAddResponse is a transport/grpc.DecodeResponseFunc that converts a
// gRPC add reply to a user-domain add response. Primarily useful in a client.
func decodeGRPCAddResponse(_ context.Context, grpcReply interface{}) (interface{}, error) {
	reply := grpcReply.(*pb.AddResponse)
	return calcendpoint.AddResponse{Result: reply.Result}, nil
}

// decodeGRPCSubtractResponse is a transport/grpc.DecodeResponseFunc that
// converts a gRPC subtract reply to a user-domain subtract response.
// Primarily useful in a client.
func decodeGRPCSubtractResponse(_ context.Context, grpcReply interface{}) (interface{}, error) {
	reply := grpcReply.(*pb.SubtractResponse)
	return calcendpoint.SubtractResponse{Result: reply.Result}, nil
}

// encodeGRPCAddResponse is a transport/grpc.EncodeResponseFunc that converts a
// user-domain add response to a gRPC add reply. Primarily useful in a server.
func encodeGRPCAddResponse(_ context.Context, response interface{}) (interface{}, error) {
	resp := response.(calcendpoint.AddResponse)
	if resp.Err != nil {
		return nil, status.Error(codes.Internal, resp.Err.Error())
	}
	return &pb.AddResponse{Result: resp.Result}, nil
}

// encodeGRPCSubtractResponse is a transport/grpc.EncodeResponseFunc that
// converts a user-domain subtract response to a gRPC subtract reply.
// Primarily useful in a server.
func encodeGRPCSubtractResponse(_ context.Context, response interface{}) (interface{}, error) {
	resp := response.(calcendpoint.SubtractResponse)
	if resp.Err != nil {
		return nil, status.Error(codes.Internal, resp.Err.Error())
	}
	return &pb.SubtractResponse{Result: resp.Result}, nil
}

// encodeGRPCAddRequest is a transport/grpc.EncodeRequestFunc that converts a
// user-domain add request to a gRPC add request. Primarily useful in a client.
func encodeGRPCAddRequest(_ context.Context, request interface{}) (interface{}, error) {
	req := request.(calcendpoint.AddRequest)
	return &pb.AddRequest{A: req.A, B: req.B}, nil
}

// encodeGRPCSubtractRequest is a transport/grpc.EncodeRequestFunc that
// converts a user-domain subtract request to a gRPC subtract request.
// Primarily useful in a client.
func encodeGRPCSubtractRequest(_ context.Context, request interface{}) (interface{}, error) {
	req := request.(calcendpoint.SubtractRequest)
	return &pb.SubtractRequest{A: req.A, B: req.B}, nil
}
