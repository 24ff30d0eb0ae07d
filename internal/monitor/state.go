// Package monitor holds the process-wide monitoring state: whether
// inbound messages are evaluated at all, and where alerts are delivered.
package monitor

import "sync/atomic"

// State is the live monitoring state. It has a single writer (the
// command interpreter) and many readers (router, dispatcher); both
// fields are plain atomic cells, so readers always observe either the
// pre- or post-update value.
type State struct {
	active       atomic.Bool
	alertChannel atomic.Int64
}

// NewState returns a State with monitoring active and alerts going to
// Saved Messages.
func NewState() *State {
	s := &State{}
	s.active.Store(true)
	return s
}

// Active reports whether monitoring is enabled.
func (s *State) Active() bool { return s.active.Load() }

// SetActive enables or disables monitoring.
func (s *State) SetActive(v bool) { s.active.Store(v) }

// AlertChannel returns the configured alert destination chat id, or zero
// when alerts go to Saved Messages.
func (s *State) AlertChannel() int64 { return s.alertChannel.Load() }

// SetAlertChannel sets the alert destination chat id; zero reverts to
// Saved Messages.
func (s *State) SetAlertChannel(id int64) { s.alertChannel.Store(id) }
