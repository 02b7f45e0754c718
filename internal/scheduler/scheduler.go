// Package scheduler drives a step function at a fixed, adjustable interval.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/san-kum/lifesim/internal/config"
)

// ErrRunning is returned by Run when the loop is already running.
var ErrRunning = errors.New("scheduler: already running")

// Scheduler calls a step function once per interval while it is running.
// Steps never overlap and Stop waits for an in-flight step to finish. The
// step runs without the scheduler's lock held, so it may call Pause, Resume,
// SetInterval, Interval, Steps or Running; a Pause from inside a step takes
// effect before the next tick. Stop waits for the loop, so it must not be
// called from the step.
type Scheduler struct {
	step func()

	mu       sync.Mutex
	interval time.Duration
	paused   bool
	reset    chan struct{}
	cancel   context.CancelFunc
	done     chan struct{}
	steps    int
}

// New builds a stopped scheduler. A non-positive interval becomes 2ms.
func New(step func(), interval time.Duration) *Scheduler {
	return &Scheduler{
		step:     step,
		interval: clamp(interval),
		reset:    make(chan struct{}, 1),
	}
}

// FromSlider builds a scheduler whose interval follows a speed slider value.
func FromSlider(step func(), slider int) *Scheduler {
	return New(step, config.IntervalFromSlider(slider))
}

func clamp(d time.Duration) time.Duration {
	if d <= 0 {
		return 2 * time.Millisecond
	}
	return d
}

// Run blocks, stepping once per interval, until ctx is done or Stop is
// called. Stop and Running apply to a loop started by Run the same as one
// started by Start.
func (s *Scheduler) Run(ctx context.Context) error {
	ctx, end, ok := s.begin(ctx)
	if !ok {
		return ErrRunning
	}
	defer end()
	return s.loop(ctx)
}

// Start runs the loop in a goroutine. Starting a running scheduler is a no-op.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, end, ok := s.begin(ctx)
	if !ok {
		return
	}
	go func() {
		defer end()
		s.loop(ctx)
	}()
}

// begin registers a new loop. end must be called when the loop exits.
func (s *Scheduler) begin(parent context.Context) (context.Context, func(), bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return nil, nil, false
	}
	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	s.cancel, s.done = cancel, done
	s.paused = false
	end := func() {
		cancel()
		s.mu.Lock()
		if s.done == done {
			s.cancel, s.done = nil, nil
		}
		s.mu.Unlock()
		close(done)
	}
	return ctx, end, true
}

func (s *Scheduler) loop(ctx context.Context) error {
	timer := time.NewTimer(s.Interval())
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.reset:
			timer.Reset(s.Interval())
		case <-timer.C:
			s.mu.Lock()
			paused := s.paused
			s.mu.Unlock()

			if !paused {
				s.step()
				s.mu.Lock()
				s.steps++
				s.mu.Unlock()
			}
			timer.Reset(s.Interval())
		}
	}
}

// Stop ends the running loop and waits for it to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Pause keeps the loop alive but skips steps until Resume.
func (s *Scheduler) Pause() {
	s.mu.Lock()
	s.paused = true
	s.mu.Unlock()
}

func (s *Scheduler) Resume() {
	s.mu.Lock()
	s.paused = false
	s.mu.Unlock()
}

// Running reports whether the loop is started and not paused.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil && !s.paused
}

// SetInterval changes the tick interval; the next tick uses it.
func (s *Scheduler) SetInterval(d time.Duration) {
	s.mu.Lock()
	s.interval = clamp(d)
	s.mu.Unlock()
	select {
	case s.reset <- struct{}{}:
	default:
	}
}

// SetSlider is SetInterval for a speed slider value.
func (s *Scheduler) SetSlider(v int) {
	s.SetInterval(config.IntervalFromSlider(v))
}

func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// Steps counts the steps taken since New.
func (s *Scheduler) Steps() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}
