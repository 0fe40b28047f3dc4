package toc

// Coalescer runs fn at most once per scheduled slot: the first Signal
// schedules it, later signals are dropped until it has run.
type Coalescer struct {
	schedule func(func())
	fn       func()
	pending  bool
}

// NewCoalescer returns a Coalescer that defers fn through schedule,
// typically a document's RequestFrame.
func NewCoalescer(schedule func(func()), fn func()) *Coalescer {
	return &Coalescer{schedule: schedule, fn: fn}
}

// Signal requests a run.
func (c *Coalescer) Signal() {
	if c.pending {
		return
	}
	c.pending = true
	c.schedule(func() {
		c.pending = false
		c.fn()
	})
}

// Pending reports whether a run is scheduled.
func (c *Coalescer) Pending() bool { return c.pending }
