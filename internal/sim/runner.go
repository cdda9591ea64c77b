package sim

// Runner owns the single active loop of the process.
type Runner struct {
	current *Loop
}

// Switch stops the current loop, if any, before starting next.
func (r *Runner) Switch(next *Loop) {
	if r.current != nil && r.current != next {
		r.current.Stop()
	}
	r.current = next
	if next != nil {
		next.Start()
	}
}

func (r *Runner) Stop() {
	if r.current != nil {
		r.current.Stop()
		r.current = nil
	}
}

func (r *Runner) Current() *Loop {
	return r.current
}

// Frame forwards a frame callback to the active loop.
func (r *Runner) Frame(timestamp float64) (Frame, bool) {
	if r.current == nil {
		return Frame{Timestamp: timestamp}, false
	}
	return r.current.Frame(timestamp), true
}
