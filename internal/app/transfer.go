package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remit-transfer/internal/api/handlers"
	"remit-transfer/internal/api/middlew"
	"remit-transfer/internal/config"
	"remit-transfer/internal/db"
	"remit-transfer/internal/grpc_client"
	"remit-transfer/internal/kafka"
	"remit-transfer/internal/railclient"
	"remit-transfer/internal/server"
	"remit-transfer/internal/service"
	"remit-transfer/internal/storage/postgres"
	"remit-transfer/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TransferApp struct {
	log             *slog.Logger
	server          *server.Server
	pool            *pgxpool.Pool
	logFile         *os.File
	cfg             *config.Config
	accountClient   grpc_client.AccountClient
	kafkaProducer   kafka.Producer
	transferService *service.TransferService
}

func NewTransferApp() (*TransferApp, error) {
	loggerWithFile := logger.NewLoggerWithFile("transfer.log")
	log := loggerWithFile.Logger
	log.Info("инициализация приложения")

	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации конфига: %w", err)
	}
	log.Info("конфигурация загружена", slog.String("port", cfg.HTTPPort))

	log.Info("выполнение миграций базы данных")
	if err := db.RunMigrations(cfg.DB.MigrationURL(), "migrations"); err != nil {
		return nil, fmt.Errorf("ошибка выполнения миграций: %w", err)
	}
	log.Info("миграции успешно применены")

	poolCfg := db.PoolConfig{
		MaxConns:          200,
		MinConns:          10,
		HealthCheckPeriod: 30 * time.Second,
		PoolTimeout:       5 * time.Second,
		RetryAttempts:     5,
		RetryDelay:        1 * time.Second,
		ApplicationName:   "remit-transfer",
	}

	pool, err := db.NewPool(context.Background(), cfg.DB.DSN(), poolCfg, log)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к базе данных: %w", err)
	}
	log.Info("подключение к базе данных установлено")

	accountClient, err := grpc_client.NewAccountClient(cfg.GRPC.AccountRegistryAddr, cfg.GRPC.Timeout, log)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к реестру счетов: %w", err)
	}
	log.Info("gRPC client инициализирован")

	var kafkaProducer kafka.Producer
	if cfg.Kafka.Enabled {
		log.Info("инициализация kafka producer", slog.Any("brokers", cfg.Kafka.Brokers))
		kafkaProducer, err = kafka.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		if err != nil {
			return nil, fmt.Errorf("ошибка инициализации kafka: %w", err)
		}
	} else {
		log.Info("kafka отключен в конфигурации")
		kafkaProducer = kafka.NewNoOpProducer(log)
	}

	srv := server.NewServer(cfg.HTTPPort)
	log.Info("сервер инициализирован", slog.String("port", cfg.HTTPPort))
	srv.Router.Use(middleware.RequestID)
	srv.Router.Use(middlew.WithLogger(log))
	srv.Router.Use(middleware.RealIP)
	srv.Router.Use(middleware.Recoverer)
	srv.RegisterSwagger()

	return &TransferApp{
		log:           log,
		server:        srv,
		pool:          pool,
		logFile:       loggerWithFile.LogFile,
		cfg:           cfg,
		accountClient: accountClient,
		kafkaProducer: kafkaProducer,
	}, nil
}

func (a *TransferApp) BuildTransferLayer() {
	historyRepo := postgres.NewHistoryRepository(a.pool)
	railClient := railclient.NewRailClient(a.cfg.Rail.BaseURL, a.cfg.Rail.APIKey, a.cfg.Rail.Timeout, a.log)

	a.transferService = service.NewTransferService(
		a.accountClient,
		railClient,
		historyRepo,
		a.kafkaProducer,
		a.log,
	)

	transferHandler := handlers.NewTransferHandler(a.transferService)

	a.server.Router.Group(func(r chi.Router) {
		r.Use(middlew.RequireAuth(a.cfg.JWT.Secret))

		r.Post("/api/v1/transfers", transferHandler.Transfer)
		r.Post("/api/v1/transfers/proximity", transferHandler.ProximityTransfer)
		r.Get("/api/v1/transfers", transferHandler.GetHistory)
	})

	a.log.Info("слой 'transfer' собран и маршруты зарегистрированы")
}

func (a *TransferApp) Run() error {
	a.log.Info("сервер запускается")

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("ошибка запуска сервера: %w", err)
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return err
	case sig := <-shutdownChan:
		a.log.Info("получен сигнал завершения", slog.String("signal", sig.String()))
	}

	a.log.Info("приложение останавливается")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.log.Error("ошибка при остановке http сервера", slog.String("error", err.Error()))
	}

	if a.transferService != nil {
		a.log.Info("остановка transfer service")
		if err := a.transferService.Shutdown(ctx); err != nil {
			a.log.Error("ошибка при остановке transfer service", slog.String("error", err.Error()))
		}
	}

	if a.kafkaProducer != nil {
		a.log.Info("закрытие kafka producer")
		if err := a.kafkaProducer.Close(); err != nil {
			a.log.Error("ошибка при закрытии kafka producer", slog.String("error", err.Error()))
		}
	}

	if err := a.accountClient.Close(); err != nil {
		a.log.Error("ошибка при закрытии gRPC client", slog.String("error", err.Error()))
	}

	a.log.Info("закрытие соединения с базой данных")
	a.pool.Close()

	a.log.Info("закрытие файла логов")
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			a.log.Error("ошибка при закрытии файла логов", slog.String("error", err.Error()))
		}
	}

	a.log.Info("приложение остановлено")
	return nil
}
