// Package debounce coalesces bursts of change notifications into one
// deferred trigger.
package debounce

import "time"

// DefaultDelay is the quiet period used when none is configured.
const DefaultDelay = 5 * time.Second

// Token tags one trigger. Timers fire with the token they were started with;
// Flush fires with Immediate.
type Token uint64

// Immediate is the token of a trigger produced by Flush.
const Immediate Token = 0

// Scheduler keeps at most one pending one-shot timer.
//
// Notify, Flush, Cancel and Claim must all be called from the goroutine that
// owns the Scheduler. Expired timers call fire from their own goroutine and
// touch nothing else, so fire must be safe to call concurrently with the
// owner (enqueueing onto a mailbox is).
type Scheduler struct {
	delay time.Duration
	fire  func(Token)

	timer   *time.Timer
	pending Token
	last    Token
}

// New returns a Scheduler that calls fire once per quiet period of delay.
// A non-positive delay selects DefaultDelay.
func New(delay time.Duration, fire func(Token)) *Scheduler {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Scheduler{delay: delay, fire: fire}
}

// Delay returns the quiet period.
func (s *Scheduler) Delay() time.Duration {
	return s.delay
}

// Notify restarts the quiet period, replacing any pending timer.
func (s *Scheduler) Notify() {
	s.Cancel()
	s.last++
	token := s.last
	s.pending = token
	s.timer = time.AfterFunc(s.delay, func() {
		s.fire(token)
	})
}

// Flush cancels any pending timer and fires immediately on the caller's
// goroutine.
func (s *Scheduler) Flush() {
	s.Cancel()
	s.fire(Immediate)
}

// Cancel stops the pending timer, if any, and reports whether one was
// pending. A timer that already fired but has not been claimed is
// superseded and Claim will reject its token.
func (s *Scheduler) Cancel() bool {
	if s.pending == 0 {
		return false
	}
	s.timer.Stop()
	s.timer = nil
	s.pending = 0
	return true
}

// Pending reports whether a timer is outstanding.
func (s *Scheduler) Pending() bool {
	return s.pending != 0
}

// Claim is called by the consumer when a trigger with token arrives. It
// reports whether the trigger is still current: Immediate always is, and so
// is the token of the pending timer. Claiming clears the pending handle.
func (s *Scheduler) Claim(token Token) bool {
	switch {
	case token == Immediate:
		s.Cancel()
		return true
	case token == s.pending:
		s.timer = nil
		s.pending = 0
		return true
	default:
		return false
	}
}
