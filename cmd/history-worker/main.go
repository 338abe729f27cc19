package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"retiresaveup/internal/amqp"
	"retiresaveup/internal/backend"
	"retiresaveup/internal/cli"
	"retiresaveup/internal/config"
	"retiresaveup/internal/log"
	"retiresaveup/internal/worker"
)

func main() {
	cfg, logger := cli.Bootstrap(log.ComponentWorker, (*config.Config).ValidateWorker)
	logger.Info("Starting history-worker")

	if err := run(cfg, logger); err != nil {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Worker shutdown complete")
}

func run(cfg *config.Config, logger *log.Logger) error {
	ctx, stop := cli.SignalContext()
	defer stop()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return err
	}
	factory := backend.NewFactory(logger)

	// The worker reads the store the API server writes to.
	store, err := factory.CreateStore(ctx, backendCfg)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	exporter, err := factory.CreateExporter(ctx, backendCfg)
	if err != nil {
		return err
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return fmt.Errorf("initialize AMQP client: %w", err)
	}
	defer client.Close()

	exportWorker := worker.NewExportWorker(store, exporter, logger)

	// Blocks until a signal arrives; failed exports are requeued by the client.
	err = client.ConsumeCalculationRecorded(ctx, exportWorker.HandleCalculationRecorded)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
