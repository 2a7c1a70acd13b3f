package model

import (
	"log/slog"
	"time"
)

type logHook struct {
	logger *slog.Logger
}

// LogHook returns a hook logging executions to logger: runs at info level, steps at
// debug level and failures at error level.
func LogHook(logger *slog.Logger) Hook {
	if logger == nil {
		logger = slog.Default()
	}

	return &logHook{logger: logger}
}

func (lh *logHook) OnStart(run RunInfo) {
	lh.logger.Info("pipeline started",
		slog.String("run_id", run.ID),
		slog.Int("start", run.Start),
		slog.Int("stop", run.Stop),
		slog.Bool("partial", run.Partial()),
	)
}

func (lh *logHook) BeforeStep(run RunInfo, step StepInfo) {
	lh.logger.Debug("step started", slog.String("run_id", run.ID), slog.String("step", step.Name()))
}

func (lh *logHook) AfterStep(run RunInfo, step StepInfo, elapsed time.Duration, err error) {
	if err != nil {
		lh.logger.Error("step failed",
			slog.String("run_id", run.ID),
			slog.String("step", step.Name()),
			slog.String("variant", step.Variant),
			slog.Duration("elapsed", elapsed),
			slog.Any("error", err),
		)

		return
	}

	lh.logger.Debug("step done",
		slog.String("run_id", run.ID),
		slog.String("step", step.Name()),
		slog.Duration("elapsed", elapsed),
	)
}

func (lh *logHook) OnFinish(run RunInfo, elapsed time.Duration, err error) {
	if err != nil {
		lh.logger.Error("pipeline failed", slog.String("run_id", run.ID), slog.Duration("elapsed", elapsed))

		return
	}

	lh.logger.Info("pipeline done",
		slog.String("run_id", run.ID),
		slog.Int("steps", run.Steps()),
		slog.Duration("elapsed", elapsed),
	)
}
