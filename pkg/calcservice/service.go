package calcservice

import (
	"context"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
)

// Service describes a service that does integer arithmetic.
type Service interface {
	Add(ctx context.Context, a, b int32) (int32, error)
	Subtract(ctx context.Context, a, b int32) (int32, error)
}

// New returns a basic Service with all of the expected middlewares wired in.
func New(logger log.Logger, operands, calls metrics.Counter) Service {
	var svc Service
	{
		svc = NewBasicService()
		svc = LoggingMiddleware(logger)(svc)
		svc = InstrumentingMiddleware(operands, calls)(svc)
	}
	return svc
}

// NewBasicService returns a naïve, stateless implementation of Service.
//
// Results wrap around on overflow, following Go's int32 arithmetic: the
// service never saturates and never rejects a pair of operands.
func NewBasicService() Service {
	return basicService{}
}

type basicService struct{}

func (s basicService) Add(_ context.Context, a, b int32) (int32, error) {
	return a + b, nil
}

func (s basicService) Subtract(_ context.Context, a, b int32) (int32, error) {
	return a - b, nil
}
