package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/luna-scenes/core"
)

// FrameFunc runs one frame at now
type FrameFunc func(now time.Time)

// Scheduler runs frames on a fixed interval on one goroutine
// Work posted through Post runs on the same goroutine between frames, so frame state needs no locking
type Scheduler struct {
	clock    Clock
	interval time.Duration
	frame    FrameFunc
	log      zerolog.Logger

	inbox chan func()

	nextDeadline time.Time
	frames       atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewScheduler creates a scheduler; interval must be positive
func NewScheduler(clock Clock, interval time.Duration, frame FrameFunc, log zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 16 * time.Millisecond
	}
	return &Scheduler{
		clock:    clock,
		interval: interval,
		frame:    frame,
		log:      log,
		inbox:    make(chan func(), 256),
		stopChan: make(chan struct{}),
	}
}

// Interval returns the frame interval
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Frames returns the number of frames run
func (s *Scheduler) Frames() uint64 {
	return s.frames.Load()
}

// Post queues fn to run on the loop goroutine
// Returns false when the inbox is full or the scheduler stopped
func (s *Scheduler) Post(fn func()) bool {
	select {
	case <-s.stopChan:
		return false
	default:
	}
	select {
	case s.inbox <- fn:
		return true
	default:
		s.log.Warn().Msg("scheduler inbox full, dropping event")
		return false
	}
}

// Step runs one frame synchronously, for tests and single-threaded hosts
func (s *Scheduler) Step() {
	s.drain()
	s.runFrame(s.clock.Now())
}

// Start begins the scheduler loop
func (s *Scheduler) Start() {
	if s.running.CompareAndSwap(false, true) {
		s.wg.Add(1)
		core.Go(s.loop)
	}
}

// Stop halts the scheduler loop and waits for the current frame to finish
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		if s.running.CompareAndSwap(true, false) {
			s.wg.Wait()
		}
	})
}

// Done is closed once Stop was called
func (s *Scheduler) Done() <-chan struct{} {
	return s.stopChan
}

func (s *Scheduler) runFrame(now time.Time) {
	s.frame(now)
	s.frames.Add(1)
}

func (s *Scheduler) drain() {
	for {
		select {
		case fn := <-s.inbox:
			fn()
		default:
			return
		}
	}
}

func (s *Scheduler) loop() {
	defer s.wg.Done()

	s.nextDeadline = s.clock.Now().Add(s.interval)
	timer := time.NewTimer(s.interval)
	defer timer.Stop()

	s.log.Debug().Dur("interval", s.interval).Msg("scheduler started")
	defer s.log.Debug().Uint64("frames", s.frames.Load()).Msg("scheduler stopped")

	for {
		select {
		case <-s.stopChan:
			return

		case fn := <-s.inbox:
			fn()

		case <-timer.C:
			now := s.clock.Now()
			s.drain()
			s.runFrame(now)

			// Drift correction: schedule against the deadline, resync when too far behind
			s.nextDeadline = s.nextDeadline.Add(s.interval)
			if now.Sub(s.nextDeadline) > s.interval*2 {
				s.nextDeadline = now.Add(s.interval)
			}
			wait := s.nextDeadline.Sub(s.clock.Now())
			if wait < 0 {
				wait = 0
			}
			timer.Reset(wait)
		}
	}
}
