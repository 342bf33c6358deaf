package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"remit-transfer/internal/config"
	"remit-transfer/internal/kafka"
	"remit-transfer/internal/push"
	"remit-transfer/internal/storage/mongodb"
	"remit-transfer/pkg/logger"
)

type NotifierApp struct {
	log              *slog.Logger
	logFile          *os.File
	cfg              *config.NotifierConfig
	storage          *mongodb.MongoStorage
	consumer         *kafka.Consumer
	recoveryConsumer *kafka.RecoveryConsumer
}

func NewNotifierApp() (*NotifierApp, error) {
	loggerWithFile := logger.NewLoggerWithFile("notifier.log")
	log := loggerWithFile.Logger
	log.Info("инициализация notifier")

	cfg, err := config.NewNotifierConfig()
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации конфига: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoDB.Timeout)
	defer cancel()

	store, err := mongodb.NewMongoStorage(ctx, cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.Timeout)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к mongodb: %w", err)
	}
	log.Info("подключение к mongodb установлено", slog.String("database", cfg.MongoDB.Database))

	sender := push.NewFCMClient(cfg.Push.Endpoint, cfg.Push.ServerKey, cfg.Push.Timeout, log)

	topology := kafka.Topology{
		MainTopic:    cfg.Kafka.Topic,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	}

	consumer, err := kafka.NewConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.GroupID,
		topology,
		cfg.Kafka.Workers,
		sender,
		store,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания kafka consumer: %w", err)
	}

	recoveryConsumer, err := kafka.NewRecoveryConsumer(
		cfg.Kafka.Brokers,
		cfg.Kafka.RecoveryGroupID,
		topology,
		sender,
		store,
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания recovery consumer: %w", err)
	}

	return &NotifierApp{
		log:              log,
		logFile:          loggerWithFile.LogFile,
		cfg:              cfg,
		storage:          store,
		consumer:         consumer,
		recoveryConsumer: recoveryConsumer,
	}, nil
}

func (a *NotifierApp) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.consumer.Start(ctx); err != nil {
		return fmt.Errorf("ошибка запуска consumer: %w", err)
	}
	if err := a.recoveryConsumer.Start(ctx); err != nil {
		return fmt.Errorf("ошибка запуска recovery consumer: %w", err)
	}

	a.log.Info("notifier запущен")

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdownChan
	a.log.Info("получен сигнал завершения", slog.String("signal", sig.String()))

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := a.consumer.Close(shutdownCtx); err != nil {
		a.log.Error("ошибка при остановке consumer", slog.String("error", err.Error()))
	}
	if err := a.recoveryConsumer.Close(shutdownCtx); err != nil {
		a.log.Error("ошибка при остановке recovery consumer", slog.String("error", err.Error()))
	}

	if lost := a.recoveryConsumer.Lost(); lost > 0 {
		a.log.Warn("за время работы потеряны сообщения на recovery-пути", slog.Int64("lost", lost))
	}

	if err := a.storage.Close(); err != nil {
		a.log.Error("ошибка при закрытии mongodb", slog.String("error", err.Error()))
	}

	a.log.Info("закрытие файла логов")
	if a.logFile != nil {
		if err := a.logFile.Close(); err != nil {
			a.log.Error("ошибка при закрытии файла логов", slog.String("error", err.Error()))
		}
	}

	a.log.Info("notifier остановлен")
	return nil
}
