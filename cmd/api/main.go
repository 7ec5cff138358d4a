package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hr-portal/internal/config"
	appHTTP "github.com/cmlabs-hris/hr-portal/internal/handler/http"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/database"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/hr-portal/internal/pkg/logger"
	"github.com/cmlabs-hris/hr-portal/internal/repository/postgresql"
	employeeService "github.com/cmlabs-hris/hr-portal/internal/service/employee"
	holidayService "github.com/cmlabs-hris/hr-portal/internal/service/holiday"
	reportService "github.com/cmlabs-hris/hr-portal/internal/service/report"
	timeOffService "github.com/cmlabs-hris/hr-portal/internal/service/timeoff"
	"github.com/go-chi/httplog/v3"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.ConnectTimeout)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer db.Close()

	if err := postgresql.Migrate(ctx, db); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}

	transactor := postgresql.NewTransactor(db)
	requestRepo := postgresql.NewTimeOffRequestRepository(db)
	allowanceRepo := postgresql.NewLeaveAllowanceRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	holidaySvc := holidayService.NewHolidayService(transactor, holidayRepo, log)
	if cfg.Holidays.File != "" {
		if _, err := holidaySvc.ImportFile(ctx, cfg.Holidays.File); err != nil {
			return fmt.Errorf("importing holidays: %w", err)
		}
	}

	balanceCalculator := timeOffService.NewBalanceCalculator(requestRepo, allowanceRepo, log)
	timeOffSvc := timeOffService.NewTimeOffService(
		transactor,
		requestRepo,
		allowanceRepo,
		employeeRepo,
		holidaySvc,
		balanceCalculator,
		log,
		timeOffService.WithLocation(cfg.App.Timezone),
	)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo, log)
	reportSvc := reportService.NewReportService(reportRepo, requestRepo, log)

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("building jwt service: %w", err)
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsDevelopment())
	requestLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-portal"),
		slog.String("env", cfg.App.Env),
	)
	slog.SetDefault(requestLogger)

	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Session:  appHTTP.NewSessionHandler(employeeSvc),
		TimeOff:  appHTTP.NewTimeOffHandler(timeOffSvc),
		Employee: appHTTP.NewEmployeeHandler(employeeSvc, timeOffSvc),
		Holiday:  appHTTP.NewHolidayHandler(holidaySvc),
		Report:   appHTTP.NewReportHandler(reportSvc),
	}, appHTTP.RouterOptions{
		AllowedOrigins: strings.Split(cfg.App.FrontendURL, ","),
		Logger:         requestLogger,
		LogLevel:       logLevel,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
