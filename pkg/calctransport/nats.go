package calctransport

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/go-kit/kit/circuitbreaker"
	"github.com/go-kit/kit/endpoint"
	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/ratelimit"
	natstransport "github.com/go-kit/kit/transport/nats"

	"github.com/calcrpc/calcsvc/pkg/calcendpoint"
	"github.com/calcrpc/calcsvc/pkg/calcservice"
)

// Subjects served over NATS request/reply. Bodies are the same JSON documents
// the HTTP binding uses.
const (
	NATSAddSubject      = "calc.add"
	NATSSubtractSubject = "calc.subtract"

	// NATSQueue is the queue group shared by every calcsvc instance, so each
	// request is answered once.
	NATSQueue = "calcsvc"
)

// SubscribeNATS makes a set of endpoints available on the NATS subjects
// above. The caller owns nc and should unsubscribe the returned subscriptions
// (or drain the connection) on shutdown.
func SubscribeNATS(nc *nats.Conn, endpoints calcendpoint.Set, logger log.Logger) ([]*nats.Subscription, error) {
	options := []natstransport.SubscriberOption{
		natstransport.SubscriberErrorEncoder(encodeNATSError),
		natstransport.SubscriberErrorLogger(logger),
	}

	handlers := []struct {
		subject    string
		subscriber *natstransport.Subscriber
	}{
		{NATSAddSubject, natstransport.NewSubscriber(
			endpoints.AddEndpoint,
			decodeNATSAddRequest,
			encodeNATSGenericResponse,
			options...,
		)},
		{NATSSubtractSubject, natstransport.NewSubscriber(
			endpoints.SubtractEndpoint,
			decodeNATSSubtractRequest,
			encodeNATSGenericResponse,
			options...,
		)},
	}

	var subs []*nats.Subscription
	for _, h := range handlers {
		sub, err := nc.QueueSubscribe(h.subject, NATSQueue, h.subscriber.ServeMsg(nc))
		if err != nil {
			for _, s := range subs {
				s.Unsubscribe()
			}
			return nil, errors.Wrapf(err, "subscribing to %s", h.subject)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// NewNATSClient returns a calculator Service that publishes requests on nc
// and waits for the reply of whichever calcsvc instance picks them up.
func NewNATSClient(nc *nats.Conn) calcservice.Service {
	limiter := ratelimit.NewErroringLimiter(rate.NewLimiter(rate.Every(time.Second), 100))

	options := []natstransport.PublisherOption{
		natstransport.PublisherTimeout(5 * time.Second),
	}

	var addEndpoint endpoint.Endpoint
	{
		addEndpoint = natstransport.NewPublisher(
			nc,
			NATSAddSubject,
			natstransport.EncodeJSONRequest,
			decodeNATSAddResponse,
			options...,
		).Endpoint()
		addEndpoint = limiter(addEndpoint)
		addEndpoint = circuitbreaker.Gobreaker(gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "Add",
			Timeout: 30 * time.Second,
		}))(addEndpoint)
	}

	var subtractEndpoint endpoint.Endpoint
	{
		subtractEndpoint = natstransport.NewPublisher(
			nc,
			NATSSubtractSubject,
			natstransport.EncodeJSONRequest,
			decodeNATSSubtractResponse,
			options...,
		).Endpoint()
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

// natsReply is the envelope published back to the requester. Error is set
// only when the endpoint reports a failure.
type natsReply struct {
	Result int32  `json:"result"`
	Error  string `json:"error,omitempty"`
}

func decodeNATSAddRequest(_ context.Context, msg *nats.Msg) (interface{}, error) {
	var req calcendpoint.AddRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return nil, errors.Wrap(err, "decoding add request")
	}
	return req, nil
}

func decodeNATSSubtractRequest(_ context.Context, msg *nats.Msg) (interface{}, error) {
	var req calcendpoint.SubtractRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		return nil, errors.Wrap(err, "decoding subtract request")
	}
	return req, nil
}

// encodeNATSGenericResponse is a transport/nats.EncodeResponseFunc that
// publishes the response, or its failure, as JSON to the reply subject.
func encodeNATSGenericResponse(_ context.Context, reply string, nc *nats.Conn, response interface{}) error {
	var env natsReply
	switch resp := response.(type) {
	case calcendpoint.AddResponse:
		env.Result = resp.Result
	case calcendpoint.SubtractResponse:
		env.Result = resp.Result
	}
	if f, ok := response.(endpoint.Failer); ok && f.Failed() != nil {
		env = natsReply{Error: f.Failed().Error()}
	}
	b, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return nc.Publish(reply, b)
}

// encodeNATSError is a transport/nats.ErrorEncoder that replies to a failed
// request, including one whose body could not be decoded, with the same
// envelope successful replies use.
func encodeNATSError(_ context.Context, err error, reply string, nc *nats.Conn) {
	b, merr := json.Marshal(natsReply{Error: err.Error()})
	if merr != nil {
		return
	}
	nc.Publish(reply, b)
}

func decodeNATSAddResponse(_ context.Context, msg *nats.Msg) (interface{}, error) {
	env, err := decodeNATSReply(msg)
	if err != nil {
		return nil, err
	}
	return calcendpoint.AddResponse{Result: env.Result}, nil
}

func decodeNATSSubtractResponse(_ context.Context, msg *nats.Msg) (interface{}, error) {
	env, err := decodeNATSReply(msg)
	if err != nil {
		return nil, err
	}
	return calcendpoint.SubtractResponse{Result: env.Result}, nil
}

func decodeNATSReply(msg *nats.Msg) (natsReply, error) {
	var env natsReply
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		return natsReply{}, errors.Wrap(err, "decoding reply")
	}
	if env.Error != "" {
		return natsReply{}, errors.New(env.Error)
	}
	return env, nil
}
