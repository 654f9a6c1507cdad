package domain

import "time"

// ReviewOutcome holds the result from a single profile's review call in one
// iteration. Exactly one exists per requested profile; a profile whose call
// failed has Err set and no findings.
type ReviewOutcome struct {
	Profile     string
	RawResponse string
	Findings    []Finding
	Err         string
	Elapsed     time.Duration
	TimedOut    bool
}

// Failed reports whether this profile's review call produced no usable result.
func (o *ReviewOutcome) Failed() bool {
	return o.Err != ""
}
