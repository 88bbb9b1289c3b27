package job

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Task is satisfied structurally by any type with Name and Handle methods.
type Task interface {
	Name() string
	Handle(ctx context.Context) error
}

// TaskFunc adapts a function to Task.
type TaskFunc struct {
	TaskName string
	Fn       func(ctx context.Context) error
}

func (t TaskFunc) Name() string                     { return t.TaskName }
func (t TaskFunc) Handle(ctx context.Context) error { return t.Fn(ctx) }

// Scheduler runs registered tasks on their cron schedules.
type Scheduler struct {
	cron    *cron.Cron
	logger  *slog.Logger
	timeout time.Duration

	mu      sync.Mutex
	running bool
	baseCtx context.Context
	tasks   []string
}

// Option configures a Scheduler.
type Option func(*options)

type options struct {
	logger   *slog.Logger
	location *time.Location
	timeout  time.Duration
}

// WithLogger sets the logger for task results and panics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithLocation sets the time zone schedules are evaluated in. Default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.location = loc
		}
	}
}

// WithTimeout bounds every task run. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// New creates a scheduler. Nothing runs until Run is called.
func New(opts ...Option) *Scheduler {
	o := &options{
		logger:   slog.New(slog.DiscardHandler),
		location: time.Local,
	}
	for _, opt := range opts {
		opt(o)
	}

	cl := cronLogger{o.logger}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(o.location),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		logger:  o.logger,
		timeout: o.timeout,
		baseCtx: context.Background(),
	}
}

// Schedule registers task to run on spec. It must be called before Run.
func (s *Scheduler) Schedule(task Task, spec string) error {
	if task == nil || strings.TrimSpace(task.Name()) == "" {
		return ErrInvalidTask
	}
	if tf, ok := task.(TaskFunc); ok && tf.Fn == nil {
		return ErrInvalidTask
	}

	sched, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidSchedule, spec, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrAlreadyStarted
	}
	s.cron.Schedule(sched, cron.FuncJob(func() { s.execute(task) }))
	s.tasks = append(s.tasks, task.Name())
	return nil
}

// Tasks returns the names of registered tasks in registration order.
func (s *Scheduler) Tasks() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.tasks...)
}

// Run starts the scheduler and blocks until ctx is done. It then waits for
// in-flight runs to finish; their context is not cancelled by ctx.
func (s *Scheduler) Run(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.running = true
	s.baseCtx = context.WithoutCancel(ctx)
	s.mu.Unlock()

	s.logger.Info("scheduler started", slog.Any("tasks", s.Tasks()))
	s.cron.Start()

	<-ctx.Done()

	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) execute(task Task) {
	s.mu.Lock()
	ctx := s.baseCtx
	s.mu.Unlock()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	if err := task.Handle(ctx); err != nil {
		s.logger.Error("task failed",
			slog.String("task", task.Name()),
			slog.Duration("duration", time.Since(start)),
			slog.Any("error", err),
		)
		return
	}
	s.logger.Debug("task completed",
		slog.String("task", task.Name()),
		slog.Duration("duration", time.Since(start)),
	)
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	l *slog.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.l.Debug("cron: "+msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.l.Error("cron: "+msg, append([]any{slog.Any("error", err)}, keysAndValues...)...)
}
