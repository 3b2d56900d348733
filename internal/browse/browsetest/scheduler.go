// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package browsetest provides test doubles for the browse package.
package browsetest

import (
	"sort"
	"sync"
	"time"

	"github.com/taibuivan/photodir/internal/browse"
)

// ManualScheduler is a [browse.Scheduler] driven by [ManualScheduler.Advance]
// instead of wall-clock time.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*manualTimer
}

type manualTimer struct {
	owner    *ManualScheduler
	due      time.Duration
	callback func()
	stopped  bool
	fired    bool
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers callback to run once the clock has advanced by delay.
func (scheduler *ManualScheduler) AfterFunc(delay time.Duration, callback func()) browse.Timer {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	timer := &manualTimer{owner: scheduler, due: scheduler.now + delay, callback: callback}
	scheduler.pending = append(scheduler.pending, timer)
	return timer
}

// Advance moves the clock forward and runs every callback that became due,
// in due order, on the calling goroutine.
func (scheduler *ManualScheduler) Advance(delta time.Duration) {
	scheduler.mu.Lock()
	scheduler.now += delta

	var due []*manualTimer
	remaining := scheduler.pending[:0]
	for _, timer := range scheduler.pending {
		switch {
		case timer.stopped:
		case timer.due <= scheduler.now:
			timer.fired = true
			due = append(due, timer)
		default:
			remaining = append(remaining, timer)
		}
	}
	scheduler.pending = remaining
	scheduler.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	for _, timer := range due {
		timer.callback()
	}
}

// Pending reports how many timers are armed and not yet stopped.
func (scheduler *ManualScheduler) Pending() int {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	count := 0
	for _, timer := range scheduler.pending {
		if !timer.stopped {
			count++
		}
	}
	return count
}

func (timer *manualTimer) Stop() bool {
	timer.owner.mu.Lock()
	defer timer.owner.mu.Unlock()

	if timer.stopped || timer.fired {
		return false
	}
	timer.stopped = true
	return true
}
