package ecs

import "time"

// System updates a world once per frame.
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order and keeps the duration of
// each system's last update for the debug overlay.
type Scheduler struct {
	systems []System
	timings []time.Duration
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, sys := range systems {
		s.Add(sys)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
	s.timings = append(s.timings, 0)
}

func (s *Scheduler) Update(w *World) {
	for i, system := range s.systems {
		start := time.Now()
		system.Update(w)
		s.timings[i] = time.Since(start)
	}
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}

// Timings returns the last update duration of each system, in order.
func (s *Scheduler) Timings() []time.Duration {
	return append([]time.Duration(nil), s.timings...)
}
