package engine

import (
	"sync"

	"tally/internal/model"
)

// Accumulator is the strictly ordered, append-only list of finalized
// but unpublished sessions for the current work period. It is owned by
// exactly one work period, but the desk appends from its update loop
// while a publish settles on a command goroutine, so access is
// mutex-guarded. Entries leave only through DropFirst after a
// successful publish or through Clear on an explicit user reset.
type Accumulator struct {
	mu       sync.Mutex
	sessions []model.StudySession
}

// Append adds a finalized session at the end of the period.
func (a *Accumulator) Append(s model.StudySession) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions = append(a.sessions, s)
}

// Len reports the number of accumulated sessions.
func (a *Accumulator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.sessions)
}

// TotalMinutes sums the accumulated session durations.
func (a *Accumulator) TotalMinutes() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	total := 0
	for i := range a.sessions {
		total += a.sessions[i].Minutes
	}
	return total
}

// Snapshot returns a defensive copy in finalization order.
func (a *Accumulator) Snapshot() []model.StudySession {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.sessions) == 0 {
		return nil
	}
	out := make([]model.StudySession, len(a.sessions))
	copy(out, a.sessions)
	for i := range out {
		if n := out[i].ThoughtNotes; n != nil {
			notes := make([]model.ThoughtNote, len(n))
			copy(notes, n)
			out[i].ThoughtNotes = notes
		}
	}
	return out
}

// DropFirst removes the oldest n sessions: the snapshotted prefix a
// publish settled. Sessions appended after that snapshot stay.
func (a *Accumulator) DropFirst(n int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if n <= 0 {
		return
	}
	if n >= len(a.sessions) {
		a.sessions = nil
		return
	}
	rest := make([]model.StudySession, len(a.sessions)-n)
	copy(rest, a.sessions[n:])
	a.sessions = rest
}

// Clear discards the accumulated sessions.
func (a *Accumulator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.sessions = nil
}
