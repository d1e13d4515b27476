package calctransport

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/nats-io/gnatsd/server"
	"github.com/nats-io/nats.go"
	"google.golang.org/grpc/codes"

	"github.com/go-kit/kit/log"

	"github.com/calcrpc/calcsvc/pkg/calcclient"
)

func newNATSConn(t *testing.T) (*server.Server, *nats.Conn) {
	t.Helper()
	s := server.New(&server.Options{
		Host:   "127.0.0.1",
		Port:   server.RANDOM_PORT,
		NoLog:  true,
		NoSigs: true,
	})
	go s.Start()

	if ok := s.ReadyForConnections(5 * time.Second); !ok {
		s.Shutdown()
		t.Fatal("NATS server not ready for connections")
	}

	c, err := nats.Connect("nats://"+s.Addr().String(), nats.Name(t.Name()))
	if err != nil {
		s.Shutdown()
		t.Fatalf("failed to connect to NATS server: %s", err)
	}
	return s, c
}

func TestNATSClientServer(t *testing.T) {
	s, nc := newNATSConn(t)
	defer s.Shutdown()
	defer nc.Close()

	subs, err := SubscribeNATS(nc, newTestSet(log.NewNopLogger()), log.NewNopLogger())
	if err != nil {
		t.Fatal(err)
	}
	if want, have := 2, len(subs); want != have {
		t.Fatalf("want %d subscriptions, have %d", want, have)
	}
	for _, sub := range subs {
		if want, have := NATSQueue, sub.Queue; want != have {
			t.Errorf("%s: want queue %q, have %q", sub.Subject, want, have)
		}
	}

	client := NewNATSClient(nc)

	sum, err := client.Add(context.Background(), 10, 20)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if want, have := int32(30), sum; want != have {
		t.Errorf("Add: want %d, have %d", want, have)
	}

	diff, err := client.Subtract(context.Background(), 50, 30)
	if err != nil {
		t.Fatalf("Subtract: %v", err)
	}
	if want, have := int32(20), diff; want != have {
		t.Errorf("Subtract: want %d, have %d", want, have)
	}
}

func TestNATSReplyError(t *testing.T) {
	_, err := decodeNATSReply(&nats.Msg{Data: []byte(`{"error":"dang"}`)})
	if err == nil || err.Error() != "dang" {
		t.Errorf("want dang, have %v", err)
	}
	if _, err := decodeNATSReply(&nats.Msg{Data: []byte(`{`)}); err == nil {
		t.Error("want decode error, have none")
	}
}

func TestNATSMalformedRequest(t *testing.T) {
	s, nc := newNATSConn(t)
	defer s.Shutdown()
	defer nc.Close()

	if _, err := SubscribeNATS(nc, newTestSet(log.NewNopLogger()), log.NewNopLogger()); err != nil {
		t.Fatal(err)
	}

	for _, subject := range []string{NATSAddSubject, NATSSubtractSubject} {
		msg, err := nc.Request(subject, []byte(`{"a":`), 5*time.Second)
		if err != nil {
			t.Fatalf("%s: %v", subject, err)
		}
		var decode func(context.Context, *nats.Msg) (interface{}, error)
		switch subject {
		case NATSAddSubject:
			decode = decodeNATSAddResponse
		case NATSSubtractSubject:
			decode = decodeNATSSubtractResponse
		}
		resp, err := decode(context.Background(), msg)
		if err == nil {
			t.Fatalf("%s: want error, have response %+v (reply %s)", subject, resp, msg.Data)
		}
		if want, have := "decoding", err.Error(); !strings.Contains(have, want) {
			t.Errorf("%s: want error containing %q, have %q", subject, want, have)
		}
	}
}

func TestNATSClientNoResponder(t *testing.T) {
	s, nc := newNATSConn(t)
	defer s.Shutdown()
	defer nc.Close()

	client := NewNATSClient(nc)

	ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if _, err := client.Add(ctx, 10, 20); err == nil {
		t.Error("Add: want error, have none")
	} else if calcclient.Status(err).Code() == codes.OK {
		t.Errorf("Add: want non-OK status, have OK (%v)", err)
	}

	ctx, cancel = context.WithTimeout(context.Background(), 250*time.Millisecond)
	defer cancel()
	if _, err := client.Subtract(ctx, 50, 30); err == nil {
		t.Error("Subtract: want error, have none")
	} else if calcclient.Status(err).Code() == codes.OK {
		t.Errorf("Subtract: want non-OK status, have OK (%v)", err)
	}
}
