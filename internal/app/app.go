package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mishagrol/dscsm/internal/config"
	"github.com/mishagrol/dscsm/internal/ctxlog"
	"github.com/mishagrol/dscsm/internal/sim"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")
	return &App{outW: outW, logger: logger, config: cfg}
}

// Run executes one full simulation lifecycle: load the scenario, stage the
// workspace, compile inputs and run the engine, report the parsed tables,
// then tear the workspace down unless it was asked to be kept.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)

	scenario, err := config.Load(ctx, a.config.ScenarioPath)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}
	a.logger.Info("Scenario loaded.",
		"path", a.config.ScenarioPath,
		"crop", scenario.Crop.Code(),
		"station", scenario.Weather.StationCode(),
	)

	env := sim.New(scenario.Environment)
	if err := env.Setup(ctx); err != nil {
		return err
	}

	if err := env.Run(ctx, scenario.Soil, scenario.Weather, scenario.Crop, scenario.Management); err != nil {
		// Leave the workspace in place on failure so the engine's own
		// error report stays inspectable.
		return err
	}

	for name, table := range env.Outputs() {
		attrs := []any{"table", name, "rows", table.NumRows(), "columns", len(table.Columns)}
		if len(table.Dates) > 0 {
			attrs = append(attrs,
				"first_date", table.Dates[0].Format("2006-01-02"),
				"last_date", table.Dates[len(table.Dates)-1].Format("2006-01-02"),
			)
		}
		a.logger.Info("Output table parsed.", attrs...)
	}

	if a.config.KeepWorkspace {
		a.logger.Info("Workspace kept.", "workspace", env.Workspace())
		return nil
	}
	return env.Close()
}
