package runner

import "time"

// Result captures the outcome of one watchdog cycle. The error is stored
// in Err/Stage rather than returned bare, so the caller can map the
// outcome to an exit code and still see what happened.
type Result struct {
	Attempts   int           // ping attempts made
	Emailed    bool          // an alert email went out this run
	Suppressed bool          // failure seen, but already escalated earlier
	Duration   time.Duration
	Err        error
	Stage      string // "ping", "mail", "state"
}

// Healthy reports whether the ping was delivered and the run is clean.
func (r Result) Healthy() bool { return r.Err == nil }
