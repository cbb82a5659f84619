package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"housing-trainer/config"
	"housing-trainer/graph"
	"housing-trainer/models"
	"housing-trainer/services"
	"housing-trainer/storage"
	"housing-trainer/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLogger(utils.ParseLevel(cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	warnMissingRuntime(cfg, logger, graph.Available())
	err := run(ctx, cfg, logger, graph.NewExecutor(graph.DefaultNodeNames(), logger))
	if err != nil {
		logger.Error("Pipeline failed (%s): %v", models.KindOf(err), err)
		fmt.Println(err)
	}
	stop()
	os.Exit(models.ExitCode(err))
}

// warnMissingRuntime reports up front when training is requested but the
// binary cannot execute graphs.
func warnMissingRuntime(cfg *config.Config, logger *utils.Logger, available bool) bool {
	if !cfg.RunModel || available {
		return false
	}
	logger.Warn("RUN_MODEL is set but this build has no TensorFlow support; " +
		"the model stage will fail (rebuild with -tags tensorflow or set RUN_MODEL=false)")
	return true
}

func run(ctx context.Context, cfg *config.Config, logger *utils.Logger, exec services.GraphExecutor) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Info("=== Housing trainer starting ===")
	logger.Info("Config: data %s | model %s | steps %d | seed %d | run model %v",
		cfg.DataPath, cfg.ModelPath, cfg.TrainSteps, cfg.ShuffleSeed, cfg.RunModel)

	reader := storage.NewHousingReader(logger, os.Stdout, cfg.TargetScale)
	dataset, stats, err := reader.Load(cfg.DataPath)
	if err != nil {
		return err
	}

	services.NewSeededShuffler(cfg.ShuffleSeed).Shuffle(dataset)
	buf := services.NewFeaturePreparer(logger).Prepare(dataset)

	report := services.NewReportService(logger, os.Stdout)
	report.Summary(stats, buf)

	if cfg.FeaturesOutputPath != "" {
		if err := exportFeatures(cfg.FeaturesOutputPath, buf); err != nil {
			return err
		}
		logger.Info("Prepared features saved to %s", cfg.FeaturesOutputPath)
	}

	if !cfg.RunModel {
		logger.Info("RUN_MODEL disabled, skipping training")
		return nil
	}

	runner := services.NewModelRunner(exec, services.RunnerConfig{
		ModelPath: cfg.ModelPath,
		Steps:     cfg.TrainSteps,
		ExpectedW: cfg.ExpectedW,
		ExpectedB: cfg.ExpectedB,
		Tolerance: cfg.Tolerance,
	}, logger)

	result, err := runner.Run(ctx, buf)
	if err != nil {
		return err
	}
	report.PrintChecks(result)

	if cfg.PostgresEnabled {
		return persistRun(cfg, logger, report, stats, buf, result)
	}
	return nil
}

func exportFeatures(path string, buf *models.FeatureBuffers) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	defer w.Close()
	return w.WriteBuffers(buf)
}

func persistRun(cfg *config.Config, logger *utils.Logger, report *services.ReportService,
	stats models.LoadStats, buf *models.FeatureBuffers, result *models.TrainingResult) error {
	pgWriter, err := storage.NewPostgresWriter(cfg.DSN(), &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("Make sure PostgreSQL is running and POSTGRES_* settings are correct")
		return err
	}
	defer pgWriter.Close()

	run := &models.RunRecord{
		DataPath:  cfg.DataPath,
		ModelPath: cfg.ModelPath,
		Rows:      stats.Kept,
		Dropped:   stats.Dropped,
		Steps:     result.Steps,
		W:         result.Parameters.W,
		B:         result.Parameters.B,
		Passed:    result.Passed(),
	}
	id, err := pgWriter.Write(run, buf)
	if err != nil {
		return err
	}
	logger.Info("Run #%d stored in PostgreSQL (%d samples)", id, buf.Len())

	history, err := pgWriter.FetchRecent(cfg.HistoryLimit)
	if err != nil {
		logger.Warn("Failed to fetch run history: %v", err)
		return nil
	}
	report.PrintHistory(history)
	return nil
}
