package astar

import (
	"context"
	"sync/atomic"
	"time"
)

type StopReason int

const (
	StopNone      StopReason = iota
	StopInterrupt            = 1 // Stopped by user, by calling .SetStop(true) or context cancellation
	StopMovetime             = 2 // Time budget used up
	StopCycles               = 4 // Descent limit reached
)

func (sr StopReason) String() string {
	if sr == StopNone {
		return "None"
	}

	reasons := []struct {
		flag StopReason
		name string
	}{
		{StopInterrupt, "Interrupt"},
		{StopMovetime, "Movetime"},
		{StopCycles, "Cycles"},
	}

	var result string
	for _, r := range reasons {
		if sr&r.flag == r.flag {
			if result != "" {
				result += "|"
			}
			result += r.name
		}
	}

	return result
}

type LimiterLike interface {
	SetContext(ctx context.Context)
	Context() context.Context
	// Set the limits
	SetLimits(*Limits)
	// Get the limits
	Limits() *Limits
	// Time since the last 'Reset' call
	Elapsed() time.Duration
	// Set the stop signal, will cause to exit search if set to true
	SetStop(bool)
	// Get the stop signal
	Stop() bool
	// Arm the deadline and clear the flags, called on search setup
	Reset()
	// Whether the search may run another descent, safe to call from many workers
	Ok(cycles uint32) bool
	// Get the reason why the search was stopped, valid after search ends
	StopReason() StopReason
	// Evaluate stop reason based on current state and store it,
	// called once after all workers have finished
	EvaluateStopReason(cycles uint32)
}

type Limiter struct {
	limits   *Limits
	Deadline *_Deadline
	stop     atomic.Bool
	reason   StopReason
	ctx      context.Context
}

func NewLimiter() *Limiter {
	return &Limiter{
		limits:   DefaultLimits(),
		Deadline: _NewDeadline(),
		ctx:      context.Background(),
	}
}

func (l *Limiter) Reset() {
	l.Deadline.Arm(l.limits.Movetime)
	l.stop.Store(false)
	l.reason = StopNone
}

func (l *Limiter) SetContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	l.ctx = ctx
}

func (l *Limiter) Context() context.Context {
	return l.ctx
}

func (l *Limiter) SetLimits(limits *Limits) {
	l.limits = limits
}

func (l *Limiter) Limits() *Limits {
	return l.limits
}

func (l *Limiter) Elapsed() time.Duration {
	return l.Deadline.Elapsed()
}

func (l *Limiter) SetStop(v bool) {
	l.stop.Store(v)
}

func (l *Limiter) Stop() bool {
	select {
	case <-l.ctx.Done():
		l.stop.Store(true)
	default:
	}
	return l.stop.Load()
}

func (l *Limiter) StopReason() StopReason {
	return l.reason
}

func (l *Limiter) limitMask(cycles uint32) StopReason {
	mask := StopNone
	if l.Stop() {
		mask |= StopInterrupt
	}
	// If infinite, only the stop signal counts
	if l.limits.Infinite {
		return mask
	}
	if l.Deadline.Passed() {
		mask |= StopMovetime
	}
	if l.limits.Cycles <= cycles {
		mask |= StopCycles
	}
	return mask
}

func (l *Limiter) EvaluateStopReason(cycles uint32) {
	l.reason = l.limitMask(cycles)
}

func (l *Limiter) Ok(cycles uint32) bool {
	return l.limitMask(cycles) == StopNone
}
