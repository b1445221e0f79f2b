package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/Freeeeeet/roomplan/internal/app"
	"github.com/Freeeeeet/roomplan/internal/config"
	"github.com/Freeeeeet/roomplan/internal/engine"
	"github.com/Freeeeeet/roomplan/internal/loader"
	"github.com/Freeeeeet/roomplan/internal/report"
	"github.com/Freeeeeet/roomplan/internal/service"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	logger.Sugar().Infow("Starting roomplan",
		"environment", cfg.Environment,
		"strategy", cfg.Strategy)

	events, err := loader.EventsFromFile(cfg.EventsFile)
	if err != nil {
		logger.Fatal("invalid events input", zap.Error(err))
	}
	rooms, err := loader.RoomsFromFile(cfg.RoomsFile)
	if err != nil {
		logger.Fatal("invalid rooms input", zap.Error(err))
	}

	strategy, err := engine.ForName(cfg.Strategy, engine.Options{
		AllowShift:  cfg.AllowShift,
		SlackWeight: cfg.SlackWeight,
		ShiftWeight: cfg.ShiftWeight,
	})
	if err != nil {
		logger.Fatal("invalid strategy", zap.Error(err))
	}

	ctx := context.Background()
	if cfg.Strategy == engine.StrategyOptimal && cfg.SolverTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.SolverTimeout)
		defer cancel()
	}

	svc := service.NewAllocationService(strategy, logger)
	assignment, err := svc.Run(ctx, events, rooms)
	if err != nil {
		logger.Fatal("allocation failed", zap.Error(err))
	}

	fmt.Print(report.Text(assignment))

	if cfg.ChartFile != "" {
		png, err := report.Gantt(assignment)
		if err != nil {
			logger.Fatal("chart rendering failed", zap.Error(err))
		}
		if err := os.WriteFile(cfg.ChartFile, png, 0o644); err != nil {
			logger.Fatal("chart write failed", zap.Error(err))
		}
		logger.Info("chart written", zap.String("path", cfg.ChartFile))
	}
}
