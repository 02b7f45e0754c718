package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/onsi/gomega"
)

func TestSchedulerSteps(t *testing.T) {
	g := NewWithT(t)
	var n atomic.Int32
	s := New(func() { n.Add(1) }, time.Millisecond)

	s.Start(context.Background())
	g.Expect(s.Running()).To(BeTrue())
	g.Eventually(n.Load).WithTimeout(time.Second).Should(BeNumerically(">=", 3))

	s.Stop()
	g.Expect(s.Running()).To(BeFalse())
	stopped := n.Load()
	time.Sleep(20 * time.Millisecond)
	g.Expect(n.Load()).To(Equal(stopped))
	g.Expect(s.Steps()).To(Equal(int(stopped)))
}

func TestSchedulerPause(t *testing.T) {
	g := NewWithT(t)
	var n atomic.Int32
	s := New(func() { n.Add(1) }, time.Millisecond)
	s.Start(context.Background())
	defer s.Stop()

	g.Eventually(n.Load).WithTimeout(time.Second).Should(BeNumerically(">=", 1))
	s.Pause()
	g.Expect(s.Running()).To(BeFalse())
	paused := n.Load()
	time.Sleep(20 * time.Millisecond)
	g.Expect(n.Load()).To(Equal(paused))

	s.Resume()
	g.Eventually(n.Load).WithTimeout(time.Second).Should(BeNumerically(">", paused))
}

func TestSchedulerContextCancel(t *testing.T) {
	g := NewWithT(t)
	s := New(func() {}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Run(ctx) }()
	cancel()
	g.Eventually(errc).WithTimeout(time.Second).Should(Receive(MatchError(context.Canceled)))
}

func TestSchedulerInterval(t *testing.T) {
	tests := []struct {
		name   string
		slider int
		want   time.Duration
	}{
		{"default", 1200, 802 * time.Millisecond},
		{"slowest", 400, 1602 * time.Millisecond},
		{"fastest", 2000, 2 * time.Millisecond},
		{"beyond", 2100, 2 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := FromSlider(func() {}, tt.slider)
			if got := s.Interval(); got != tt.want {
				t.Errorf("interval = %v, want %v", got, tt.want)
			}
		})
	}

	s := New(func() {}, 0)
	if s.Interval() != 2*time.Millisecond {
		t.Errorf("zero interval not clamped: %v", s.Interval())
	}
}

func TestSchedulerSetIntervalWakesLoop(t *testing.T) {
	g := NewWithT(t)
	var n atomic.Int32
	s := New(func() { n.Add(1) }, time.Hour)
	s.Start(context.Background())
	defer s.Stop()

	s.SetSlider(2000)
	g.Eventually(n.Load).WithTimeout(time.Second).Should(BeNumerically(">=", 1))
	g.Expect(s.Interval()).To(Equal(2 * time.Millisecond))
}

func TestSchedulerStepCanPause(t *testing.T) {
	g := NewWithT(t)
	var s *Scheduler
	s = New(func() {
		if s.Steps() == 2 {
			s.Pause()
		}
	}, time.Millisecond)
	s.Start(context.Background())
	defer s.Stop()

	g.Eventually(s.Running).WithTimeout(time.Second).Should(BeFalse())
	time.Sleep(20 * time.Millisecond)
	g.Expect(s.Steps()).To(Equal(3))
}

func TestSchedulerStopEndsRun(t *testing.T) {
	g := NewWithT(t)
	var n atomic.Int32
	s := New(func() { n.Add(1) }, time.Millisecond)
	errc := make(chan error, 1)
	go func() { errc <- s.Run(context.Background()) }()

	g.Eventually(s.Running).WithTimeout(time.Second).Should(BeTrue())
	g.Expect(s.Run(context.Background())).To(MatchError(ErrRunning))
	g.Eventually(n.Load).WithTimeout(time.Second).Should(BeNumerically(">=", 1))

	s.Stop()
	g.Eventually(errc).WithTimeout(time.Second).Should(Receive(MatchError(context.Canceled)))
	g.Expect(s.Running()).To(BeFalse())
}
