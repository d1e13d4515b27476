package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nats-io/nats.go"
	stdopentracing "github.com/opentracing/opentracing-go"
	zipkin "github.com/openzipkin-contrib/zipkin-go-opentracing"
	"github.com/pkg/errors"
	"google.golang.org/grpc"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"

	"github.com/calcrpc/calcsvc/pkg/calcclient"
	"github.com/calcrpc/calcsvc/pkg/calcconfig"
	"github.com/calcrpc/calcsvc/pkg/calcservice"
	"github.com/calcrpc/calcsvc/pkg/calctransport"
)

// envPrefix namespaces the environment variables read by calccli.
const envPrefix = "CALCCLI"

func main() {
	// The calccli presumes no service discovery system, and expects users to
	// provide the direct address of a calcsvc: the -grpc-addr and -http-addr
	// flags and the client constructors all expect host:port strings.
	fs := flag.NewFlagSet("calccli", flag.ContinueOnError)
	var (
		_         = fs.String(calcconfig.ConfigFlag, "", "Optional config file (yaml, json, toml)")
		method    = fs.String("transport", "grpc", "grpc, http, nats")
		grpcAddr  = fs.String("grpc-addr", "localhost:50051", "gRPC address of calcsvc")
		httpAddr  = fs.String("http-addr", "localhost:8081", "HTTP address of calcsvc")
		natsURL   = fs.String("nats-url", nats.DefaultURL, "NATS server URL calcsvc listens on")
		zipkinURL = fs.String("zipkin-url", "", "Zipkin collector URL e.g. http://localhost:9411/api/v1/spans")
		logLevel  = fs.String("log.level", "info", "debug, info, warn, error")
		addA      = calcconfig.Int32(fs, "add.a", 10, "first operand of Add")
		addB      = calcconfig.Int32(fs, "add.b", 20, "second operand of Add")
		subA      = calcconfig.Int32(fs, "sub.a", 50, "first operand of Subtract")
		subB      = calcconfig.Int32(fs, "sub.b", 30, "second operand of Subtract")
	)
	fs.Usage = usageFor(fs, os.Args[0]+" [flags]", envPrefix)
	// The client exits 0 whatever happens, bad configuration included.
	if err := calcconfig.Parse(fs, os.Args[1:], envPrefix); err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return
	}

	logger, err := calcconfig.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return
	}

	var tracer stdopentracing.Tracer
	{
		if *zipkinURL != "" {
			collector, err := zipkin.NewHTTPCollector(*zipkinURL)
			if err != nil {
				level.Error(logger).Log("during", "NewHTTPCollector", "err", err)
				return
			}
			defer collector.Close()
			var (
				debug       = false
				hostPort    = "localhost:0"
				serviceName = "calccli"
			)
			tracer, err = zipkin.NewTracer(zipkin.NewRecorder(
				collector, debug, hostPort, serviceName,
			))
			if err != nil {
				level.Error(logger).Log("during", "NewTracer", "err", err)
				return
			}
		} else {
			tracer = stdopentracing.GlobalTracer() // no-op
		}
	}

	svc, closer, err := dial(*method, *grpcAddr, *httpAddr, *natsURL, tracer, logger)
	if err != nil {
		level.Error(logger).Log("transport", *method, "err", err)
		return
	}
	defer closer()

	calls := []calcclient.Call{
		{Op: calcclient.OpAdd, A: *addA, B: *addB},
		{Op: calcclient.OpSubtract, A: *subA, B: *subB},
	}
	calcclient.NewInvoker(svc, os.Stdout, logger).Run(context.Background(), calls)
}

// dial returns a calculator Service over the chosen transport, and a func
// releasing whatever connection backs it.
func dial(method, grpcAddr, httpAddr, natsURL string, tracer stdopentracing.Tracer, logger log.Logger) (calcservice.Service, func(), error) {
	switch method {
	case "grpc":
		conn, err := grpc.Dial(grpcAddr, grpc.WithInsecure())
		if err != nil {
			return nil, nil, errors.Wrapf(err, "dialing %s", grpcAddr)
		}
		return calctransport.NewGRPCClient(conn, tracer, logger), func() { conn.Close() }, nil

	case "http":
		svc, err := calctransport.NewHTTPClient(httpAddr, tracer, logger)
		if err != nil {
			return nil, nil, err
		}
		return svc, func() {}, nil

	case "nats":
		nc, err := nats.Connect(natsURL, nats.Name("calccli"))
		if err != nil {
			return nil, nil, errors.Wrapf(err, "connecting to %s", natsURL)
		}
		return calctransport.NewNATSClient(nc), nc.Close, nil

	default:
		return nil, nil, errors.Errorf("unsupported transport %q", method)
	}
}

func usageFor(fs *flag.FlagSet, short, envPrefix string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "USAGE\n")
		fmt.Fprintf(os.Stderr, "  %s\n", short)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		fs.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(os.Stderr, "  -%-12s %-16s %s\n", f.Name, f.DefValue, f.Usage)
		})
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Unset flags are read from %s_<FLAG> environment variables.\n", envPrefix)
	}
}
