package calcendpoint

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	stdopentracing "github.com/opentracing/opentracing-go"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"

	"github.com/calcrpc/calcsvc/pkg/calcservice"
)

func TestSetImplementsService(t *testing.T) {
	duration := newRecordingHistogram()
	var svc calcservice.Service = New(calcservice.NewBasicService(), log.NewNopLogger(), duration, stdopentracing.NoopTracer{})

	sum, err := svc.Add(context.Background(), 10, 20)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int32(30), sum; want != have {
		t.Errorf("Add: want %d, have %d", want, have)
	}

	diff, err := svc.Subtract(context.Background(), 50, 30)
	if err != nil {
		t.Fatal(err)
	}
	if want, have := int32(20), diff; want != have {
		t.Errorf("Subtract: want %d, have %d", want, have)
	}

	for _, key := range []string{"method=Add,success=true", "method=Subtract,success=true"} {
		if want, have := 1, duration.observations[key]; want != have {
			t.Errorf("%s: want %d observations, have %d", key, want, have)
		}
	}
}

func TestSetSurfacesEndpointErrors(t *testing.T) {
	boom := errors.New("connection refused")
	set := Set{
		AddEndpoint:      func(context.Context, interface{}) (interface{}, error) { return nil, boom },
		SubtractEndpoint: func(context.Context, interface{}) (interface{}, error) { return nil, boom },
	}
	if _, err := set.Add(context.Background(), 1, 2); err != boom {
		t.Errorf("Add: want %v, have %v", boom, err)
	}
	if _, err := set.Subtract(context.Background(), 1, 2); err != boom {
		t.Errorf("Subtract: want %v, have %v", boom, err)
	}
}

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	logger := level.NewFilter(log.NewLogfmtLogger(&buf), level.AllowInfo())

	ok := LoggingMiddleware(logger)(MakeAddEndpoint(calcservice.NewBasicService()))
	if _, err := ok(context.Background(), AddRequest{A: 1, B: 1}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Errorf("successful call logged above debug: %q", buf.String())
	}

	failing := LoggingMiddleware(logger)(func(context.Context, interface{}) (interface{}, error) {
		return nil, errors.New("dang")
	})
	if _, err := failing(context.Background(), AddRequest{}); err == nil {
		t.Fatal("want error, have none")
	}
	for _, want := range []string{"level=error", "transport_error=dang"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("want %s in %q", want, buf.String())
		}
	}
}

func TestInstrumentingMiddlewareFailure(t *testing.T) {
	duration := newRecordingHistogram()
	e := InstrumentingMiddleware(duration.With("method", "Add"))(func(context.Context, interface{}) (interface{}, error) {
		return nil, errors.New("dang")
	})
	e(context.Background(), AddRequest{})
	if want, have := 1, duration.observations["method=Add,success=false"]; want != have {
		t.Errorf("want %d, have %d", want, have)
	}
}

// recordingHistogram counts observations per label set. Histograms derived
// via With share the same counts.
type recordingHistogram struct {
	lvs          []string
	observations map[string]int
}

func newRecordingHistogram() *recordingHistogram {
	return &recordingHistogram{observations: map[string]int{}}
}

func (h *recordingHistogram) With(labelValues ...string) metrics.Histogram {
	return &recordingHistogram{
		lvs:          append(append([]string{}, h.lvs...), labelValues...),
		observations: h.observations,
	}
}

func (h *recordingHistogram) Observe(float64) {
	var pairs []string
	for i := 0; i+1 < len(h.lvs); i += 2 {
		pairs = append(pairs, h.lvs[i]+"="+h.lvs[i+1])
	}
	h.observations[strings.Join(pairs, ",")]++
}
