package exam

// Each countdown chain carries a sequence number. Bumping the sequence
// when a countdown is suspended or restarted makes any tick still in
// flight from the old chain identifiable as stale, so it is dropped
// instead of double-counting.

// mainTickMsg is one second of the per-question countdown.
type mainTickMsg struct {
	seq int
}

// promptTickMsg is one second of the confidence prompt countdown.
type promptTickMsg struct {
	seq int
}

// submitDoneMsg is sent when the submission attempt resolves.
type submitDoneMsg struct {
	Err error
}
