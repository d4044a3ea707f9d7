package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	appAudit "github.com/Zhima-Mochi/minishop-console/internal/application/audit"
	appCart "github.com/Zhima-Mochi/minishop-console/internal/application/cart"
	appCheckout "github.com/Zhima-Mochi/minishop-console/internal/application/checkout"
	appOrder "github.com/Zhima-Mochi/minishop-console/internal/application/order"
	"github.com/Zhima-Mochi/minishop-console/internal/config"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/auditlog"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/id"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/memory"
	infraobs "github.com/Zhima-Mochi/minishop-console/internal/infrastructure/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/observability/oteltrace"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/observability/prometrics"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/observability/zaplogger"
	"github.com/Zhima-Mochi/minishop-console/internal/infrastructure/outbox"
	"github.com/Zhima-Mochi/minishop-console/internal/observability"
	"github.com/Zhima-Mochi/minishop-console/internal/pkg/logging"
	"github.com/Zhima-Mochi/minishop-console/internal/presentation/console"
	httppresentation "github.com/Zhima-Mochi/minishop-console/internal/presentation/http"
	"github.com/Zhima-Mochi/minishop-console/internal/presentation/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "minishop: %v\n", err)
		os.Exit(1)
	}

	baseLogger, err := logging.NewLogger(logging.Options{
		Service: cfg.ServiceName,
		Env:     cfg.Environment,
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "minishop: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	logger := zaplogger.New(baseLogger)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	counters, histograms := prometrics.Instruments(prometrics.New(registry, ""))
	tel := infraobs.New(oteltrace.New("minishop"), logger, counters, histograms)

	catalogRepo := memory.NewCatalogRepository(memory.DefaultCatalog()...)
	orderRepo := memory.NewOrderRepository()
	orderIDs := id.NewSequence()

	// Synchronous in-process bus: handlers finish before Publish returns.
	bus := outbox.NewBus(logger)
	auditWriter := auditlog.NewFileWriter(cfg.AuditLogPath)
	auditWorker := appAudit.New(bus, auditWriter, tel)
	auditWorker.Start()

	cartService := appCart.NewService(catalogRepo, logger)
	orderService := appOrder.NewService(orderRepo, logger)
	checkout := appCheckout.NewUseCase(orderRepo, orderIDs, bus, tel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = session.Start(ctx, logger, map[string]string{"env": cfg.Environment})
	logger.Info("minishop_started",
		observability.F("session_id", session.ID(ctx)),
		observability.F("audit_log", auditWriter.Path()),
		observability.F("diagnostics_addr", cfg.MetricsAddr),
	)

	var server *http.Server
	if cfg.MetricsAddr != "" {
		handler := httppresentation.NewHandler(orderService, registry, tel)
		server = httppresentation.NewServer(cfg.MetricsAddr, handler.Router())
		go serveDiagnostics(server, logger)
	}

	controller := console.NewController(os.Stdin, os.Stdout, console.Deps{
		Shop:     cartService,
		Orders:   orderService,
		Checkout: checkout,
		Currency: cfg.CurrencySymbol,
		Tel:      tel,
	})

	done := make(chan error, 1)
	go func() { done <- controller.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("console_stopped", observability.F("error", err))
		}
	case <-ctx.Done():
		logger.Info("signal_received")
	}

	if server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http_server_shutdown_error", observability.F("error", err))
		} else {
			logger.Info("http_server_stopped")
		}
	}
}

func serveDiagnostics(server *http.Server, logger observability.Logger) {
	logger.Info("http_server_start", observability.F("addr", server.Addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http_server_error", observability.F("error", err))
	}
}
