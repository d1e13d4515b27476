package calcservice

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
)

// Middleware describes a service (as opposed to endpoint) middleware.
type Middleware func(Service) Service

// LoggingMiddleware takes a logger as a dependency and returns a service
// Middleware that writes one line per call, describing the operation, its
// operands and its result.
func LoggingMiddleware(logger log.Logger) Middleware {
	return func(next Service) Service {
		return loggingMiddleware{logger, next}
	}
}

type loggingMiddleware struct {
	logger log.Logger
	next   Service
}

func (mw loggingMiddleware) Add(ctx context.Context, a, b int32) (v int32, err error) {
	defer func(begin time.Time) {
		mw.log("Add", "+", a, b, v, err, begin)
	}(time.Now())
	return mw.next.Add(ctx, a, b)
}

func (mw loggingMiddleware) Subtract(ctx context.Context, a, b int32) (v int32, err error) {
	defer func(begin time.Time) {
		mw.log("Subtract", "-", a, b, v, err, begin)
	}(time.Now())
	return mw.next.Subtract(ctx, a, b)
}

func (mw loggingMiddleware) log(method, op string, a, b, v int32, err error, begin time.Time) {
	if err != nil {
		level.Error(mw.logger).Log(
			"msg", fmt.Sprintf("%d %s %d failed", a, op, b),
			"method", method, "a", a, "b", b, "err", err, "took", time.Since(begin),
		)
		return
	}
	level.Info(mw.logger).Log(
		"msg", fmt.Sprintf("%d %s %d = %d", a, op, b, v),
		"method", method, "a", a, "b", b, "result", v, "took", time.Since(begin),
	)
}

// InstrumentingMiddleware returns a service middleware that instruments the
// number of calls per method and the number of operands processed over the
// lifetime of the service.
func InstrumentingMiddleware(operands, calls metrics.Counter) Middleware {
	return func(next Service) Service {
		return instrumentingMiddleware{
			operands: operands,
			calls:    calls,
			next:     next,
		}
	}
}

type instrumentingMiddleware struct {
	operands metrics.Counter
	calls    metrics.Counter
	next     Service
}

func (mw instrumentingMiddleware) Add(ctx context.Context, a, b int32) (int32, error) {
	v, err := mw.next.Add(ctx, a, b)
	mw.operands.Add(2)
	mw.calls.With("method", "Add").Add(1)
	return v, err
}

func (mw instrumentingMiddleware) Subtract(ctx context.Context, a, b int32) (int32, error) {
	v, err := mw.next.Subtract(ctx, a, b)
	mw.operands.Add(2)
	mw.calls.With("method", "Subtract").Add(1)
	return v, err
}
