// Package calcclient issues calls against a calculator service and reports
// each one as an explicit outcome: a result or an error, never a sentinel.
package calcclient

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/calcrpc/calcsvc/pkg/calcservice"
)

// Op names a calculator operation.
type Op string

// The operations a calculator service offers.
const (
	OpAdd      Op = "Add"
	OpSubtract Op = "Subtract"
)

// Symbol returns the arithmetic symbol for op.
func (op Op) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	}
	return "?"
}

// Call is a single operation with its operands.
type Call struct {
	Op   Op
	A, B int32
}

func (c Call) String() string {
	return fmt.Sprintf("%d %s %d", c.A, c.Op.Symbol(), c.B)
}

// DefaultCalls are the calls the command-line client issues when no operands
// are given: Add(10, 20) then Subtract(50, 30).
var DefaultCalls = []Call{
	{Op: OpAdd, A: 10, B: 20},
	{Op: OpSubtract, A: 50, B: 30},
}

// Outcome is the result of one call. Err is nil iff Result is meaningful.
type Outcome struct {
	Call
	Result int32
	Err    error
}

// OK reports whether the call succeeded.
func (o Outcome) OK() bool { return o.Err == nil }

// Status returns the status of the call, as a gRPC status. Successful calls
// have code OK; errors that carry no gRPC status map to Unknown.
func (o Outcome) Status() *status.Status {
	return Status(o.Err)
}

// String renders the outcome the way the client prints it, e.g.
// "10 + 20 = 30" or "10 + 20: call failed: 14 (Unavailable): ...".
func (o Outcome) String() string {
	if o.OK() {
		return fmt.Sprintf("%s = %d", o.Call, o.Result)
	}
	s := o.Status()
	return fmt.Sprintf("%s: call failed: %d (%s): %s", o.Call, s.Code(), s.Code(), s.Message())
}

// Status converts err to a gRPC status, looking through errors wrapped with
// github.com/pkg/errors. A nil error yields an OK status.
func Status(err error) *status.Status {
	if err == nil {
		return status.New(codes.OK, "")
	}
	if s, ok := status.FromError(errors.Cause(err)); ok {
		return s
	}
	return status.New(codes.Unknown, err.Error())
}

// Invoke issues a single call against svc and waits for its outcome.
func Invoke(ctx context.Context, svc calcservice.Service, c Call) Outcome {
	o := Outcome{Call: c}
	switch c.Op {
	case OpAdd:
		o.Result, o.Err = svc.Add(ctx, c.A, c.B)
	case OpSubtract:
		o.Result, o.Err = svc.Subtract(ctx, c.A, c.B)
	default:
		o.Err = status.Errorf(codes.InvalidArgument, "unknown operation %q", c.Op)
	}
	if o.Err != nil {
		o.Result = 0
	}
	return o
}

// Invoker issues calls sequentially and prints one line per outcome.
type Invoker struct {
	svc    calcservice.Service
	out    io.Writer
	logger log.Logger
}

// NewInvoker returns an Invoker calling svc and printing outcomes to out.
// Failures are also logged at error level.
func NewInvoker(svc calcservice.Service, out io.Writer, logger log.Logger) *Invoker {
	return &Invoker{svc: svc, out: out, logger: logger}
}

// Run issues each call in order, one at a time, and returns every outcome. A
// failed call does not stop the ones after it.
func (i *Invoker) Run(ctx context.Context, calls []Call) []Outcome {
	outcomes := make([]Outcome, 0, len(calls))
	for _, c := range calls {
		o := Invoke(ctx, i.svc, c)
		if !o.OK() {
			level.Error(i.logger).Log("method", c.Op, "a", c.A, "b", c.B, "code", o.Status().Code(), "err", o.Err)
		}
		fmt.Fprintln(i.out, o)
		outcomes = append(outcomes, o)
	}
	return outcomes
}
