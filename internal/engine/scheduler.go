package engine

import (
	"sync"
	"time"
)

// Scheduler drives a tick function at a fixed period on its own
// goroutine. The first tick's delta is pinned to zero so a slow start
// never time-warps the simulation.
type Scheduler struct {
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartScheduler begins ticking immediately.
func StartScheduler(period time.Duration, tick func(dt time.Duration)) *Scheduler {
	s := &Scheduler{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.done)
		t := time.NewTicker(period)
		defer t.Stop()
		tick(0)
		last := time.Now()
		for {
			select {
			case <-s.stop:
				return
			case now := <-t.C:
				tick(now.Sub(last))
				last = now
			}
		}
	}()
	return s
}

// Stop cancels the loop and waits for the in-flight tick to finish. Safe
// to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
	<-s.done
}
