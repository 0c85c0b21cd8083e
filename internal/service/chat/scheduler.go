package chat

import (
	"math/rand"
	"time"
)

// Handle is a scheduled task that can still be cancelled.
type Handle interface {
	// Stop prevents the task from running. It reports false when the task
	// already ran or was stopped.
	Stop() bool
}

// Scheduler runs fn once after delay.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
}

// TimerScheduler schedules tasks on runtime timers.
type TimerScheduler struct{}

// Schedule implements Scheduler with time.AfterFunc.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) Handle {
	return time.AfterFunc(delay, fn)
}

// Default simulated thinking time window.
const (
	DefaultMinDelay = 1000 * time.Millisecond
	DefaultMaxDelay = 3000 * time.Millisecond
)

// UniformDelay returns a source of delays uniformly distributed in [lo, hi).
// When hi <= lo the source always returns lo.
func UniformDelay(lo, hi time.Duration) func() time.Duration {
	if hi <= lo {
		return func() time.Duration { return lo }
	}
	span := int64(hi - lo)
	return func() time.Duration {
		return lo + time.Duration(rand.Int63n(span))
	}
}
