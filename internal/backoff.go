package internal

import "time"

// Poller bounds a polling loop to a fixed number of polls. Between polls it
// sleeps, starting at the initial wait and doubling up to the maximum wait.
// A zero wait makes the loop spin without sleeping.
type Poller struct {
	polls    int
	maxPolls int
	// wait defines the amount of time that Next will sleep on its next call.
	wait time.Duration
	// Maximum allowable value for wait.
	maxWait time.Duration
}

// NewPoller returns a Poller allowing maxPolls polls. maxPolls must be positive.
func NewPoller(maxPolls int, wait, maxWait time.Duration) Poller {
	if maxPolls <= 0 {
		panic("maxPolls must be positive")
	}
	if maxWait < wait {
		maxWait = wait
	}
	return Poller{maxPolls: maxPolls, wait: wait, maxWait: maxWait}
}

// Next accounts for one poll and reports whether it is allowed. Every call
// after the first sleeps before returning true.
func (p *Poller) Next() bool {
	if p.polls >= p.maxPolls {
		return false
	}
	if p.polls > 0 && p.wait > 0 {
		time.Sleep(p.wait)
		p.wait *= 2
		if p.wait > p.maxWait {
			p.wait = p.maxWait
		}
	}
	p.polls++
	return true
}

// Polls returns the number of polls performed so far.
func (p *Poller) Polls() int { return p.polls }
