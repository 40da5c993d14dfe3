// Package scheduler runs the trading cycle on a cron schedule.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"TradeSentinel/internal/auditor"
	"TradeSentinel/internal/collector"
	"TradeSentinel/internal/evaluator"
	"TradeSentinel/internal/executor"
	"TradeSentinel/internal/metrics"
	"TradeSentinel/internal/model"
	"TradeSentinel/internal/notifier"
)

// ErrCycleRunning is returned when a cycle is requested while another one is in progress.
var ErrCycleRunning = errors.New("cycle already running")

// Cycle outcomes reported to metrics and health.
const (
	OutcomeOK          = "ok"
	OutcomeGatherError = "gather_error"
	OutcomeOrderError  = "order_error"
	OutcomeAuditError  = "audit_error"
)

// Scheduler wires the cycle stages together and manages the cron task.
type Scheduler struct {
	Cron      *cron.Cron
	Product   model.Product
	Collector *collector.Collector
	Evaluator *evaluator.Evaluator
	Executor  *executor.Executor
	Auditor   *auditor.Auditor
	Notifier  notifier.Notifier
	Metrics   *metrics.Metrics
	Health    *metrics.HealthStatus
	Ctx       context.Context

	mu     sync.Mutex // held for the duration of a cycle
	lastMu sync.Mutex
	last   *model.Evaluation
}

// Deps are the collaborators of a Scheduler.
type Deps struct {
	Collector *collector.Collector
	Evaluator *evaluator.Evaluator
	Executor  *executor.Executor
	Auditor   *auditor.Auditor
	Notifier  notifier.Notifier
	Metrics   *metrics.Metrics
	Health    *metrics.HealthStatus
}

// NewScheduler creates a new Scheduler for product.
func NewScheduler(ctx context.Context, product model.Product, d Deps) *Scheduler {
	n := d.Notifier
	if n == nil {
		n = notifier.Noop{}
	}
	health := d.Health
	if health == nil {
		health = metrics.NewHealthStatus()
	}
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Product:   product,
		Collector: d.Collector,
		Evaluator: d.Evaluator,
		Executor:  d.Executor,
		Auditor:   d.Auditor,
		Notifier:  n,
		Metrics:   d.Metrics,
		Health:    health,
		Ctx:       ctx,
	}
}

// Register schedules the trading cycle.
func (s *Scheduler) Register(cycleCron string) error {
	if _, err := s.Cron.AddFunc(cycleCron, s.cycleTask); err != nil {
		return fmt.Errorf("register cycle task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for a running cycle to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunNow executes the cycle immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunNow() {
	s.cycleTask()
}

func (s *Scheduler) cycleTask() {
	if _, err := s.RunCycle(s.Ctx); err != nil {
		log.Printf("[ERROR] cycle: %v", err)
	}
}

// RunCycle gathers, evaluates, executes and audits one cycle. Only one cycle
// runs at a time. The evaluation is returned whenever the gather succeeded,
// even if execution or auditing failed.
func (s *Scheduler) RunCycle(ctx context.Context) (*model.Evaluation, error) {
	if !s.mu.TryLock() {
		return nil, ErrCycleRunning
	}
	defer s.mu.Unlock()

	start := time.Now()
	log.Printf("[INFO] running cycle for %s", s.Product)

	in, err := s.Collector.Gather(ctx, s.Product)
	if err != nil {
		s.finish(start, OutcomeGatherError, err)
		s.trySend(ctx, notifier.FormatError("cycle", err))
		return nil, err
	}

	ev := s.Evaluator.Evaluate(s.Product, in)
	for _, e := range ev.Errors {
		log.Printf("[WARN] evaluation %s: %s", ev.ID, e)
	}
	log.Printf("[INFO] evaluation %s: price=%s signal=%s trade=%v", ev.ID, ev.Price, ev.Signal, ev.Trade != nil)

	outcome := OutcomeOK
	execErr := s.Executor.Execute(ctx, ev)
	if execErr != nil {
		outcome = OutcomeOrderError
		s.trySend(ctx, notifier.FormatError("order placement", execErr))
	}

	settled, auditErr := s.Auditor.Audit(ctx, ev)
	if auditErr != nil {
		log.Printf("[ERROR] audit: %v", auditErr)
		if outcome == OutcomeOK {
			outcome = OutcomeAuditError
		}
	}

	if s.Metrics != nil {
		s.Metrics.ObserveEvaluation(ev)
		for _, t := range settled {
			s.Metrics.TradesSettledTotal.WithLabelValues(string(t.Result)).Inc()
		}
	}
	if ev.Signal != model.ActionNone {
		s.trySend(ctx, notifier.FormatEvaluation(ev))
	}
	if len(settled) > 0 {
		s.trySend(ctx, notifier.FormatAudit(settled))
	}

	s.lastMu.Lock()
	s.last = ev
	s.lastMu.Unlock()
	cycleErr := errors.Join(execErr, auditErr)
	s.finish(start, outcome, cycleErr)
	return ev, cycleErr
}

func (s *Scheduler) finish(start time.Time, outcome string, err error) {
	if s.Metrics != nil {
		s.Metrics.CyclesTotal.WithLabelValues(outcome).Inc()
		s.Metrics.CycleDuration.Observe(time.Since(start).Seconds())
	}
	s.Health.RecordCycle(outcome, err)
}

// LastEvaluation returns the evaluation of the most recent completed cycle.
func (s *Scheduler) LastEvaluation() *model.Evaluation {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	return s.last
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/status":
		last := s.LastEvaluation()
		if last == nil {
			return "No evaluation yet"
		}
		return notifier.FormatEvaluation(last)
	case "/evaluate":
		ev, err := s.RunCycle(ctx)
		if ev == nil {
			return notifier.FormatError("cycle", err)
		}
		if ev.Signal != model.ActionNone {
			// already reported by the cycle
			return ""
		}
		return notifier.FormatEvaluation(ev)
	default:
		return "Available commands:\n• /status - last evaluation\n• /evaluate - run a cycle now"
	}
}

type retrier interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

func (s *Scheduler) trySend(ctx context.Context, text string) {
	var err error
	if r, ok := s.Notifier.(retrier); ok {
		err = r.SendWithRetry(ctx, text, 3)
	} else {
		err = s.Notifier.Send(ctx, text)
	}
	if err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
