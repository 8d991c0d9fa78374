package astar

import (
	"time"
)

// Deadline of one search, armed once at search start and read-only afterwards
type _Deadline struct {
	start time.Time
	end   time.Time
	set   bool
}

func _NewDeadline() *_Deadline {
	return &_Deadline{start: time.Now()}
}

// Start counting now; a negative budget means no deadline
func (d *_Deadline) Arm(budget time.Duration) {
	d.start = time.Now()
	d.set = budget >= 0
	if d.set {
		d.end = d.start.Add(budget)
	}
}

// Whether the budget is used up
func (d *_Deadline) Passed() bool {
	return d.set && !time.Now().Before(d.end)
}

func (d *_Deadline) IsSet() bool {
	return d.set
}

func (d *_Deadline) At() time.Time {
	return d.end
}

func (d *_Deadline) Start() time.Time {
	return d.start
}

func (d *_Deadline) Elapsed() time.Duration {
	return time.Since(d.start)
}
