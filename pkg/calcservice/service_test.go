package calcservice

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	"github.com/go-kit/kit/metrics/generic"
)

func TestBasicService(t *testing.T) {
	svc := NewBasicService()
	for _, tc := range []struct {
		name     string
		a, b     int32
		add, sub int32
	}{
		{"literals", 10, 20, 30, -10},
		{"zero", 0, 0, 0, 0},
		{"negative", -7, -3, -10, -4},
		{"max plus one wraps", math.MaxInt32, 1, math.MinInt32, math.MaxInt32 - 1},
		{"min minus one wraps", math.MinInt32, -1, math.MaxInt32, math.MinInt32 + 1},
		{"min minus max", math.MinInt32, math.MaxInt32, -1, 1},
	} {
		t.Run(tc.name, func(t *testing.T) {
			add, err := svc.Add(context.Background(), tc.a, tc.b)
			if err != nil {
				t.Fatalf("Add: %v", err)
			}
			if want, have := tc.add, add; want != have {
				t.Errorf("Add(%d, %d): want %d, have %d", tc.a, tc.b, want, have)
			}
			sub, err := svc.Subtract(context.Background(), tc.a, tc.b)
			if err != nil {
				t.Fatalf("Subtract: %v", err)
			}
			if want, have := tc.sub, sub; want != have {
				t.Errorf("Subtract(%d, %d): want %d, have %d", tc.a, tc.b, want, have)
			}
		})
	}
}

func TestSubtractLegitimateMinusOne(t *testing.T) {
	v, err := NewBasicService().Subtract(context.Background(), 10, 11)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int32(-1), v; want != have {
		t.Errorf("want %d, have %d", want, have)
	}
}

func TestLoggingMiddlewareOneLinePerCall(t *testing.T) {
	var buf bytes.Buffer
	svc := LoggingMiddleware(log.NewLogfmtLogger(&buf))(NewBasicService())

	if _, err := svc.Add(context.Background(), 10, 20); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Subtract(context.Background(), 50, 30); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if want, have := 2, len(lines); want != have {
		t.Fatalf("want %d lines, have %d: %q", want, have, buf.String())
	}
	for i, want := range [][]string{
		{`level=info`, `msg="10 + 20 = 30"`, `method=Add`, `a=10`, `b=20`, `result=30`},
		{`level=info`, `msg="50 - 30 = 20"`, `method=Subtract`, `a=50`, `b=30`, `result=20`},
	} {
		for _, fragment := range want {
			if !strings.Contains(lines[i], fragment) {
				t.Errorf("line %d: want %s in %q", i, fragment, lines[i])
			}
		}
	}
	if strings.Contains(lines[1], "a=10") || strings.Contains(lines[1], "result=30") {
		t.Errorf("second line leaks state from the first: %q", lines[1])
	}
}

func TestInstrumentingMiddleware(t *testing.T) {
	var (
		operands = generic.NewCounter("operands")
		calls    = newLabelCounter()
		svc      = InstrumentingMiddleware(operands, calls)(NewBasicService())
	)
	svc.Add(context.Background(), 1, 2)
	svc.Add(context.Background(), 3, 4)
	svc.Subtract(context.Background(), 5, 6)

	if want, have := 6.0, operands.Value(); want != have {
		t.Errorf("operands: want %v, have %v", want, have)
	}
	if want, have := 2.0, calls.totals["method=Add"]; want != have {
		t.Errorf("Add calls: want %v, have %v", want, have)
	}
	if want, have := 1.0, calls.totals["method=Subtract"]; want != have {
		t.Errorf("Subtract calls: want %v, have %v", want, have)
	}
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	svc := New(log.NewLogfmtLogger(&buf), discard.NewCounter(), discard.NewCounter())
	v, err := svc.Add(context.Background(), 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int32(5), v; want != have {
		t.Errorf("want %d, have %d", want, have)
	}
	if want, have := `msg="2 + 3 = 5"`, buf.String(); !strings.Contains(have, want) {
		t.Errorf("want %s in %q", want, have)
	}
}

// labelCounter accumulates additions per label set. Counters derived via
// With share the same totals.
type labelCounter struct {
	lvs    []string
	totals map[string]float64
}

func newLabelCounter() *labelCounter {
	return &labelCounter{totals: map[string]float64{}}
}

func (c *labelCounter) With(labelValues ...string) metrics.Counter {
	return &labelCounter{
		lvs:    append(append([]string{}, c.lvs...), labelValues...),
		totals: c.totals,
	}
}

func (c *labelCounter) Add(delta float64) {
	var pairs []string
	for i := 0; i+1 < len(c.lvs); i += 2 {
		pairs = append(pairs, c.lvs[i]+"="+c.lvs[i+1])
	}
	c.totals[strings.Join(pairs, ",")] += delta
}
