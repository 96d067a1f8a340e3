package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jt828/observation/pkg/instrument"
	"github.com/jt828/observation/pkg/observability"
	"github.com/jt828/observation/pkg/observability/implementation"
	"github.com/jt828/observation/pkg/observation"
	"github.com/jt828/observation/pkg/observation/bridge"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := implementation.Config{
		ServiceName:  "observation-demo",
		MetricsAddr:  ":9090",
		OTLPEndpoint: os.Getenv("OTLP_ENDPOINT"),
	}
	obs, err := implementation.NewObservability(cfg)
	if err != nil {
		panic(err)
	}
	log := obs.Logger()

	if err := obs.Start(ctx); err != nil {
		log.Error("failed to start observability", observability.Err(err))
	}

	reg := observation.NewRegistry()
	reg.RegisterHandler(bridge.NewLoggingHandler(log))
	reg.RegisterHandler(bridge.NewMeterHandler(obs.Meter()))
	if tracer := obs.Tracer(); tracer != nil {
		reg.RegisterHandler(bridge.NewTracingHandler(tracer))
	}
	reg.RegisterFilter(func(c *observation.Context) {
		c.AddLowCardinalityKeyValue(observation.KV("service", cfg.ServiceName))
	})

	mux := http.NewServeMux()
	mux.HandleFunc("/hello", func(w http.ResponseWriter, r *http.Request) {
		err := observation.Observe(r.Context(), "demo.greet", reg, func(ctx context.Context) error {
			_, err := w.Write([]byte("hello\n"))
			return err
		}, observation.WithLowCardinalityKeyValue("greeting.type", "plain"))
		if err != nil {
			log.Error("greet failed", observability.Err(err))
		}
	})

	srv := &http.Server{
		Addr:              ":8080",
		Handler:           instrument.HTTPServer(reg, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sig
		log.Info("Shutting down server...")
		cancel()
	}()

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", observability.Err(err))
			cancel()
		}
	}()
	log.Info("demo server listening", observability.String("addr", srv.Addr))

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", observability.Err(err))
	}
	if err := obs.Close(shutdownCtx); err != nil {
		log.Error("observability shutdown failed", observability.Err(err))
	}
}
