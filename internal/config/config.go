package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration, read from the environment with an
// optional .env file on top.
type Config struct {
	Environment   string
	Strategy      string // greedy | optimal
	EventsFile    string
	RoomsFile     string
	SolverTimeout time.Duration
	AllowShift    bool
	SlackWeight   int
	ShiftWeight   int
	ChartFile     string // empty - no chart rendered
}

func Load() (*Config, error) {
	// Load .env when present; plain environment variables otherwise.
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	cfg := &Config{
		Environment: os.Getenv("ENV"),
		Strategy:    os.Getenv("STRATEGY"),
		EventsFile:  os.Getenv("EVENTS_FILE"),
		RoomsFile:   os.Getenv("ROOMS_FILE"),
		ChartFile:   os.Getenv("CHART_FILE"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Strategy == "" {
		cfg.Strategy = "greedy"
	}
	if cfg.EventsFile == "" {
		cfg.EventsFile = "events.json"
	}
	if cfg.RoomsFile == "" {
		cfg.RoomsFile = "rooms.json"
	}

	var err error
	if cfg.SolverTimeout, err = durationEnv("SOLVER_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.AllowShift, err = boolEnv("ALLOW_SHIFT", false); err != nil {
		return nil, err
	}
	if cfg.SlackWeight, err = intEnv("SLACK_WEIGHT", 1); err != nil {
		return nil, err
	}
	if cfg.ShiftWeight, err = intEnv("SHIFT_WEIGHT", 1); err != nil {
		return nil, err
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q: %w", key, raw, err)
	}
	return d, nil
}

func boolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s: invalid bool %q: %w", key, raw, err)
	}
	return b, nil
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q: %w", key, raw, err)
	}
	return n, nil
}
