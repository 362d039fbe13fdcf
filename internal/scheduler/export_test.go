package scheduler

// ExportedProbe exposes the private probe method for external tests.
func (s *Scheduler) ExportedProbe() {
	s.probe()
}
