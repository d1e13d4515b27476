package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"

	"github.com/nats-io/nats.go"
	"github.com/oklog/oklog/pkg/group"
	stdopentracing "github.com/opentracing/opentracing-go"
	zipkin "github.com/openzipkin-contrib/zipkin-go-opentracing"
	"github.com/pkg/errors"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"

	"github.com/go-kit/kit/log/level"
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/prometheus"

	"github.com/calcrpc/calcsvc/pb"
	"github.com/calcrpc/calcsvc/pkg/calcconfig"
	"github.com/calcrpc/calcsvc/pkg/calcendpoint"
	"github.com/calcrpc/calcsvc/pkg/calcservice"
	"github.com/calcrpc/calcsvc/pkg/calctransport"
)

// envPrefix namespaces the environment variables read by calcsvc.
const envPrefix = "CALCSVC"

func main() {
	// Define our flags. gRPC transitively registers flags via its import of
	// glog, so we keep our own FlagSet.
	fs := flag.NewFlagSet("calcsvc", flag.ExitOnError)
	var (
		_         = fs.String(calcconfig.ConfigFlag, "", "Optional config file (yaml, json, toml)")
		debugAddr = fs.String("debug-addr", ":8080", "Debug and metrics listen address")
		httpAddr  = fs.String("http-addr", ":8081", "HTTP/JSON listen address")
		grpcAddr  = fs.String("grpc-addr", "0.0.0.0:50051", "gRPC listen address")
		natsURL   = fs.String("nats-url", "", "NATS server URL to serve requests from, e.g. nats://localhost:4222")
		zipkinURL = fs.String("zipkin-url", "", "Zipkin collector URL e.g. http://localhost:9411/api/v1/spans")
		logLevel  = fs.String("log.level", "info", "debug, info, warn, error")
	)
	fs.Usage = usageFor(fs, os.Args[0]+" [flags]", envPrefix)
	if err := calcconfig.Parse(fs, os.Args[1:], envPrefix); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// Create a single logger, which we'll use and give to other components.
	logger, err := calcconfig.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	var tracer stdopentracing.Tracer
	{
		if *zipkinURL != "" {
			level.Info(logger).Log("tracer", "Zipkin", "URL", *zipkinURL)
			collector, err := zipkin.NewHTTPCollector(*zipkinURL)
			if err != nil {
				level.Error(logger).Log("during", "NewHTTPCollector", "err", err)
				os.Exit(1)
			}
			defer collector.Close()
			var (
				debug       = false
				hostPort    = *grpcAddr
				serviceName = "calcsvc"
			)
			tracer, err = zipkin.NewTracer(zipkin.NewRecorder(
				collector, debug, hostPort, serviceName,
			))
			if err != nil {
				level.Error(logger).Log("during", "NewTracer", "err", err)
				os.Exit(1)
			}
		} else {
			tracer = stdopentracing.GlobalTracer() // no-op
		}
	}

	// Create the (sparse) metrics we'll use in the service. They, too, are
	// dependencies that we pass to components that use them.
	var operands, calls metrics.Counter
	{
		// Business-level metrics.
		operands = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "calc",
			Subsystem: "calcsvc",
			Name:      "operands_total",
			Help:      "Total count of integer operands processed by Add and Subtract.",
		}, []string{})
		calls = prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: "calc",
			Subsystem: "calcsvc",
			Name:      "calls_total",
			Help:      "Total count of calls, by method.",
		}, []string{"method"})
	}
	var duration metrics.Histogram
	{
		// Endpoint-level metrics.
		duration = prometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
			Namespace: "calc",
			Subsystem: "calcsvc",
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds.",
		}, []string{"method", "success"})
	}
	http.DefaultServeMux.Handle("/metrics", promhttp.Handler())

	// Build the layers of the service "onion" from the inside out.
	var (
		service     = calcservice.New(logger, operands, calls)
		endpoints   = calcendpoint.New(service, logger, duration, tracer)
		httpHandler = calctransport.NewHTTPHandler(endpoints, tracer, logger)
		grpcServer  = calctransport.NewGRPCServer(endpoints, tracer, logger)
	)

	// Every actor runs in a run group; the first one to return stops the
	// others, and the process exits.
	var g group.Group
	{
		// The debug listener mounts the http.DefaultServeMux, and serves up
		// stuff like the Prometheus metrics route and the Go debug and
		// profiling routes.
		debugListener, err := net.Listen("tcp", *debugAddr)
		if err != nil {
			level.Error(logger).Log("transport", "debug/HTTP", "during", "Listen", "err", err)
			os.Exit(1)
		}
		g.Add(func() error {
			level.Info(logger).Log("transport", "debug/HTTP", "addr", *debugAddr)
			return http.Serve(debugListener, http.DefaultServeMux)
		}, func(error) {
			debugListener.Close()
		})
	}
	{
		httpListener, err := net.Listen("tcp", *httpAddr)
		if err != nil {
			level.Error(logger).Log("transport", "HTTP", "during", "Listen", "err", err)
			os.Exit(1)
		}
		g.Add(func() error {
			level.Info(logger).Log("transport", "HTTP", "addr", *httpAddr)
			return http.Serve(httpListener, httpHandler)
		}, func(error) {
			httpListener.Close()
		})
	}
	{
		// The gRPC listener mounts the Go kit gRPC server we created. The
		// channel is plaintext.
		grpcListener, err := net.Listen("tcp", *grpcAddr)
		if err != nil {
			level.Error(logger).Log("transport", "gRPC", "during", "Listen", "err", err)
			os.Exit(1)
		}
		baseServer := grpc.NewServer()
		pb.RegisterCalculatorServer(baseServer, grpcServer)
		g.Add(func() error {
			level.Info(logger).Log("transport", "gRPC", "addr", *grpcAddr)
			return baseServer.Serve(grpcListener)
		}, func(error) {
			baseServer.Stop()
		})
	}
	if *natsURL != "" {
		nc, err := nats.Connect(*natsURL, nats.Name("calcsvc"))
		if err != nil {
			level.Error(logger).Log("transport", "NATS", "during", "Connect", "err", err)
			os.Exit(1)
		}
		subs, err := calctransport.SubscribeNATS(nc, endpoints, logger)
		if err != nil {
			level.Error(logger).Log("transport", "NATS", "during", "Subscribe", "err", err)
			os.Exit(1)
		}
		closed := make(chan struct{})
		nc.SetClosedHandler(func(*nats.Conn) { close(closed) })
		g.Add(func() error {
			level.Info(logger).Log("transport", "NATS", "url", *natsURL, "subjects", len(subs))
			<-closed
			return errors.New("NATS connection closed")
		}, func(error) {
			nc.Flush()
			nc.Close()
		})
	}
	{
		// This function just sits and waits for ctrl-C.
		cancelInterrupt := make(chan struct{})
		g.Add(func() error {
			c := make(chan os.Signal, 1)
			signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-c:
				return errors.Errorf("received signal %s", sig)
			case <-cancelInterrupt:
				return nil
			}
		}, func(error) {
			close(cancelInterrupt)
		})
	}
	level.Info(logger).Log("exit", g.Run())
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
