package monitor

import "time"

// scheduler fires a callback at a fixed period until stopped. Stopping only
// suppresses future fires; a callback that is already running finishes.
type scheduler struct {
	ticker *time.Ticker
	quit   chan struct{}
}

func startScheduler(period time.Duration, fn func()) *scheduler {
	s := &scheduler{
		ticker: time.NewTicker(period),
		quit:   make(chan struct{}),
	}

	go func() {
		for {
			select {
			case <-s.ticker.C:
				fn()
			case <-s.quit:
				return
			}
		}
	}()

	return s
}

func (s *scheduler) stop() {
	s.ticker.Stop()
	close(s.quit)
}
