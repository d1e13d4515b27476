package calctransport

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/mux"
	stdopentracing "github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	"github.com/go-kit/kit/tracing/opentracing"
	"github.com/go-kit/kit/transport"
	httptransport "github.com/go-kit/kit/transport/http"

	"github.com/calcrpc/calcsvc/pkg/calcendpoint"
	"github.com/calcrpc/calcsvc/pkg/calcservice"
)

// NewHTTPHandler returns an HTTP handler that makes a set of endpoints
// available on predefined paths.
//
//   POST /add       {"a":1,"b":2} -> {"result":3}
//   POST /subtract  {"a":1,"b":2} -> {"result":-1}
func NewHTTPHandler(endpoints calcendpoint.Set, tracer stdopentracing.Tracer, logger log.Logger) http.Handler {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(errorEncoder),
		httptransport.ServerErrorHandler(transport.NewLogErrorHandler(logger)),
	}
	r := mux.NewRouter()
	r.Methods("POST").Path("/add").Handler(httptransport.NewServer(
		endpoints.AddEndpoint,
		decodeHTTPAddRequest,
		encodeHTTPGenericResponse,
		append(options, httptransport.ServerBefore(opentracing.HTTPToContext(tracer, "Add", logger)))...,
	))
	r.Methods("POST").Path("/subtract").Handler(httptransport.NewServer(
		endpoints.SubtractEndpoint,
		decodeHTTPSubtractRequest,
		encodeHTTPGenericResponse,
		append(options, httptransport.ServerBefore(opentracing.HTTPToContext(tracer, "Subtract", logger)))...,
	))
	return r
}

// NewHTTPClient returns a calculator Service backed by an HTTP server living
// at the remote instance. We expect instance to come from a service discovery
// system, so likely of the form "host:port". We bake-in certain middlewares,
// implementing the client library pattern.
func NewHTTPClient(instance string, tracer stdopentracing.Tracer, logger log.Logger) (calcservice.Service, error) {
	if !strings.HasPrefix(instance, "http") {
		instance = "http://" + instance
	}
	u, err := url.Parse(instance)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing instance %q", instance)
	}

	limiter := ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Every(time.Second), 100))

	var options []httptransport.ClientOption

	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = httptransport.NewClient(
			"POST",
			copyURL(u, "/add"),
			encodeHTTPGenericRequest,
			decodeHTTPAddResponse,
			append(options, httptransport.ClientBefore(opentracing.ContextToHTTP(tracer, logger)))...,
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
		subtractEndpoint = httptransport.NewClient(
			"POST",
			copyURL(u, "/subtract"),
			encodeHTTPGenericRequest,
			decodeHTTPSubtractResponse,
			append(options, httptransport.ClientBefore(opentracing.ContextToHTTP(tracer, logger)))...,
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
	}, nil
}

func copyURL(base *url.URL, path string) *url.URL {
	next := *base
	next.Path = path
	return &next
}

// badRequest marks errors caused by a malformed request body.
type badRequest struct{ error }

func errorEncoder(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(err2code(err))
	json.NewEncoder(w).Encode(errorWrapper{Error: err.Error()})
}

func err2code(err error) int {
	if _, ok := err.(badRequest); ok {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func errorDecoder(r *http.Response) error {
	var w errorWrapper
	if err := json.NewDecoder(r.Body).Decode(&w); err != nil || w.Error == "" {
		return errors.New(r.Status)
	}
	return errors.New(w.Error)
}

type errorWrapper struct {
	Error string `json:"error"`
}

// decodeHTTPAddRequest is a transport/http.DecodeRequestFunc that decodes a
// JSON-encoded add request from the HTTP request body. Primarily useful in a
// server.
func decodeHTTPAddRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req calcendpoint.AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, badRequest{err}
	}
	return req, nil
}

// decodeHTTPSubtractRequest is a transport/http.DecodeRequestFunc that
// decodes a JSON-encoded subtract request from the HTTP request body.
// Primarily useful in a server.
func decodeHTTPSubtractRequest(_ context.Context, r *http.Request) (interface{}, error) {
	var req calcendpoint.SubtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, badRequest{err}
	}
	return req, nil
}

// decodeHTTPAddResponse is a transport/http.DecodeResponseFunc that decodes a
// JSON-encoded add response from the HTTP response body. If the response has
// a non-200 status code, we will interpret that as an error and attempt to
// decode the specific error message from the response body. Primarily useful
// in a client.
func decodeHTTPAddResponse(_ context.Context, r *http.Response) (interface{}, error) {
	if r.StatusCode != http.StatusOK {
		return nil, errorDecoder(r)
	}
	var resp calcendpoint.AddResponse
	err := json.NewDecoder(r.Body).Decode(&resp)
	return resp, err
}

// decodeHTTPSubtractResponse is a transport/http.DecodeResponseFunc that
// decodes a JSON-encoded subtract response from the HTTP response body.
// Primarily useful in a client.
func decodeHTTPSubtractResponse(_ context.Context, r *http.Response) (interface{}, error) {
	if r.StatusCode != http.StatusOK {
		return nil, errorDecoder(r)
	}
	var resp calcendpoint.SubtractResponse
	err := json.NewDecoder(r.Body).Decode(&resp)
	return resp, err
}

// encodeHTTPGenericRequest is a transport/http.EncodeRequestFunc that
// JSON-encodes any request to the request body. Primarily useful in a client.
func encodeHTTPGenericRequest(_ context.Context, r *http.Request, request interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(request); err != nil {
		return err
	}
	r.Body = ioutil.NopCloser(&buf)
	return nil
}

// encodeHTTPGenericResponse is a transport/http.EncodeResponseFunc that
// encodes the response as JSON to the response writer. Primarily useful in a
// server.
func encodeHTTPGenericResponse(ctx context.Context, w http.ResponseWriter, response interface{}) error {
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		errorEncoder(ctx, f.Failed(), w)
		return nil
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	return json.NewEncoder(w).Encode(response)
}
