package debounce

import (
	"sync"
	"time"

	"github.com/pkg/errors"
)

var ErrInvalidDelay = errors.New("debounce delay must be positive")

// Debouncer runs a function once per burst of triggers. Each Trigger
// cancels any pending run and reschedules, so after a quiet period of
// one delay only the last triggered function executes.
type Debouncer struct {
	delay time.Duration
	mu    sync.Mutex
	timer *time.Timer
}

func New(delay time.Duration) (*Debouncer, error) {
	if delay <= 0 {
		return nil, ErrInvalidDelay
	}
	return &Debouncer{delay: delay}, nil
}

func (d *Debouncer) Delay() time.Duration {
	return d.delay
}

// Trigger schedules fn to run after the delay, superseding any run
// scheduled by an earlier Trigger that has not fired yet.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel drops any pending run. A run that already started is not
// interrupted.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
