// Package reminder contains the break reminder scheduler and suppression.
package reminder

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Interval bounds in minutes.
const (
	MinIntervalMinutes = 10
	MaxIntervalMinutes = 120
)

// ErrIntervalOutOfRange indicates a work interval outside [10,120] minutes.
var ErrIntervalOutOfRange = fmt.Errorf("work interval must be between %d and %d minutes", MinIntervalMinutes, MaxIntervalMinutes)

// FireEvent signals that a break is due.
type FireEvent struct {
	At       time.Time
	Interval time.Duration
}

// SchedulerConfig holds configuration for the scheduler.
type SchedulerConfig struct {
	IntervalMinutes int
	// Tick is the poll granularity of the loop. Stop latency and fire
	// precision are bounded by it.
	Tick time.Duration
}

// DefaultSchedulerConfig returns sensible defaults.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		IntervalMinutes: 50,
		Tick:            time.Second,
	}
}

// Scheduler triggers a FireEvent once per configured interval while
// running. Start is idempotent, Stop blocks until the loop goroutine has
// exited, and Reconfigure is valid in either state.
//
// Fires are delivered on a buffered channel of capacity one with a
// non-blocking send: when the consumer has not drained the previous fire,
// the new one is dropped and logged. At most one fire is ever in flight.
type Scheduler struct {
	logger *slog.Logger
	now    func() time.Time
	tick   time.Duration

	fires chan FireEvent

	wg       sync.WaitGroup
	stopChan chan struct{}
	mu       sync.Mutex
	running  bool
	interval time.Duration
	nextFire time.Time
	loopErr  error
}

// NewScheduler creates a stopped scheduler.
func NewScheduler(config SchedulerConfig, logger *slog.Logger) (*Scheduler, error) {
	if err := validateInterval(config.IntervalMinutes); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	tick := config.Tick
	if tick <= 0 {
		tick = time.Second
	}
	return &Scheduler{
		logger:   logger,
		now:      time.Now,
		tick:     tick,
		fires:    make(chan FireEvent, 1),
		interval: time.Duration(config.IntervalMinutes) * time.Minute,
	}, nil
}

// Fires returns the channel break triggers are delivered on.
func (s *Scheduler) Fires() <-chan FireEvent {
	return s.fires
}

// Interval returns the currently configured interval.
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// IsRunning returns true if the loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Err returns the error that terminated the loop, if any.
func (s *Scheduler) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loopErr
}

// Start begins the polling loop in a goroutine. Calling Start on a running
// scheduler is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.loopErr = nil
	s.stopChan = make(chan struct{})
	s.nextFire = s.now().Add(s.interval)
	interval := s.interval
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run()

	s.logger.Info("scheduler started", "interval", interval)
}

// Stop halts the loop and blocks until the goroutine has exited. Calling
// Stop on a stopped scheduler is a no-op.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

// Reconfigure changes the interval. While running, the next fire is
// rescheduled to a full interval from now; elapsed time under the old
// interval is not carried over.
func (s *Scheduler) Reconfigure(minutes int) error {
	if err := validateInterval(minutes); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.interval = time.Duration(minutes) * time.Minute
	if s.running {
		s.nextFire = s.now().Add(s.interval)
	}

	s.logger.Info("scheduler reconfigured", "interval", s.interval)
	return nil
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			if err := s.poll(); err != nil {
				s.mu.Lock()
				s.loopErr = err
				s.running = false
				s.mu.Unlock()
				s.logger.Error("scheduler loop failed", "error", err)
				return
			}
		}
	}
}

func (s *Scheduler) poll() error {
	now := s.now()

	s.mu.Lock()
	if s.interval <= 0 {
		s.mu.Unlock()
		return errors.New("scheduler interval corrupted")
	}
	if now.Before(s.nextFire) {
		s.mu.Unlock()
		return nil
	}
	interval := s.interval
	s.nextFire = now.Add(interval)
	s.mu.Unlock()

	event := FireEvent{At: now, Interval: interval}
	select {
	case s.fires <- event:
	default:
		s.logger.Warn("break reminder dropped, previous fire not consumed", "at", now)
	}
	return nil
}

func validateInterval(minutes int) error {
	if minutes < MinIntervalMinutes || minutes > MaxIntervalMinutes {
		return ErrIntervalOutOfRange
	}
	return nil
}
