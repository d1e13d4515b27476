package calcclient

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/go-kit/kit/log"

	"github.com/calcrpc/calcsvc/pkg/calcservice"
)

func TestRunDefaultCalls(t *testing.T) {
	var out bytes.Buffer
	outcomes := NewInvoker(calcservice.NewBasicService(), &out, log.NewNopLogger()).Run(context.Background(), DefaultCalls)

	if want, have := 2, len(outcomes); want != have {
		t.Fatalf("want %d outcomes, have %d", want, have)
	}
	for i, want := range []int32{30, 20} {
		if !outcomes[i].OK() {
			t.Errorf("outcome %d: unexpected error %v", i, outcomes[i].Err)
		}
		if have := outcomes[i].Result; want != have {
			t.Errorf("outcome %d: want %d, have %d", i, want, have)
		}
	}
	if want, have := "10 + 20 = 30\n50 - 30 = 20\n", out.String(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}

func TestRunUnreachable(t *testing.T) {
	var out, logs bytes.Buffer
	svc := failingService{status.Error(codes.Unavailable, "connection refused")}
	outcomes := NewInvoker(svc, &out, log.NewLogfmtLogger(&logs)).Run(context.Background(), DefaultCalls)

	for i, o := range outcomes {
		if o.OK() {
			t.Fatalf("outcome %d: want failure, have %d", i, o.Result)
		}
		if want, have := codes.Unavailable, o.Status().Code(); want != have {
			t.Errorf("outcome %d: want %s, have %s", i, want, have)
		}
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if want, have := 2, len(lines); want != have {
		t.Fatalf("want %d lines, have %d: %q", want, have, out.String())
	}
	for _, want := range []string{
		"10 + 20: call failed: 14 (Unavailable): connection refused",
		"50 - 30: call failed: 14 (Unavailable): connection refused",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("want %q in %q", want, out.String())
		}
	}
	if want, have := 2, strings.Count(logs.String(), "level=error"); want != have {
		t.Errorf("want %d error records, have %d: %q", want, have, logs.String())
	}
}

func TestMinusOneIsAResult(t *testing.T) {
	o := Invoke(context.Background(), calcservice.NewBasicService(), Call{Op: OpSubtract, A: 10, B: 11})
	if !o.OK() {
		t.Fatalf("unexpected error %v", o.Err)
	}
	if want, have := int32(-1), o.Result; want != have {
		t.Errorf("want %d, have %d", want, have)
	}
}

func TestStatus(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		want codes.Code
	}{
		{"nil", nil, codes.OK},
		{"grpc", status.Error(codes.Unavailable, "down"), codes.Unavailable},
		{"wrapped grpc", errors.Wrap(status.Error(codes.DeadlineExceeded, "slow"), "add"), codes.DeadlineExceeded},
		{"plain", errors.New("circuit breaker is open"), codes.Unknown},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if have := Status(tc.err).Code(); tc.want != have {
				t.Errorf("want %s, have %s", tc.want, have)
			}
		})
	}
}

func TestInvokeUnknownOp(t *testing.T) {
	o := Invoke(context.Background(), calcservice.NewBasicService(), Call{Op: "Multiply", A: 2, B: 3})
	if want, have := codes.InvalidArgument, o.Status().Code(); want != have {
		t.Errorf("want %s, have %s", want, have)
	}
}

type failingService struct{ err error }

func (s failingService) Add(context.Context, int32, int32) (int32, error)      { return 0, s.err }
func (s failingService) Subtract(context.Context, int32, int32) (int32, error) { return 0, s.err }
