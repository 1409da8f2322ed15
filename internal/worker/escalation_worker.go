package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/config"
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// EscalationWorker runs the breach evaluator on a fixed cadence.
type EscalationWorker struct {
	escalations *service.EscalationService
	logger      *zap.Logger
	cfg         config.EscalationConfig
	cron        *cron.Cron
}

// NewEscalationWorker creates the worker without starting it.
func NewEscalationWorker(escalations *service.EscalationService, logger *zap.Logger, cfg config.EscalationConfig) *EscalationWorker {
	return &EscalationWorker{
		escalations: escalations,
		logger:      logger,
		cfg:         cfg,
		cron:        cron.New(),
	}
}

// Start schedules the periodic sweep. A sweep runs immediately on start so a
// restart cannot delay overdue escalations by a full interval.
func (w *EscalationWorker) Start(ctx context.Context) error {
	if !w.cfg.Enabled {
		w.logger.Info("escalation worker disabled")
		return nil
	}

	spec := fmt.Sprintf("@every %s", w.cfg.Interval())
	if _, err := w.cron.AddFunc(spec, func() { w.sweep(ctx) }); err != nil {
		return fmt.Errorf("schedule escalation sweep: %w", err)
	}

	go w.sweep(ctx)
	w.cron.Start()
	w.logger.Info("escalation worker started", zap.Duration("interval", w.cfg.Interval()))
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (w *EscalationWorker) Stop() {
	stopCtx := w.cron.Stop()
	<-stopCtx.Done()
	w.logger.Info("escalation worker stopped")
}

func (w *EscalationWorker) sweep(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	processed, escalated, err := w.escalations.EvaluateAll(ctx)
	if err != nil {
		w.logger.Error("escalation sweep failed", zap.Error(err))
		return
	}
	if escalated > 0 {
		w.logger.Info("escalation sweep", zap.Int("processed", processed), zap.Int("escalated", escalated))
	}
}
