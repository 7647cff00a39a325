package engine

import (
	"strings"

	"tally/internal/model"
)

// TimerPhase is the state of the session timer.
type TimerPhase int

const (
	PhaseIdle TimerPhase = iota
	PhaseRunning
	PhasePaused
)

func (p TimerPhase) String() string {
	switch p {
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	default:
		return "idle"
	}
}

// Commentary cadence: a live comment is permitted at most once per
// cooldown window, or immediately when elapsed minutes crosses a
// milestone. Each milestone fires once per running session.
const CommentCooldownSeconds = 90

var commentMilestones = [...]int{10, 25, 45}

// Timer is the Idle → Running → Paused state machine for the current
// draft session. It owns the draft fields and emits a finalized
// StudySession on Stop or AddSession. The owner of the timer drives
// Tick once per wall-clock second while Running; because ticks only
// happen through that call, leaving Running cancels them atomically.
type Timer struct {
	phase    TimerPhase
	subject  string
	category Category
	hasCat   bool
	elapsed  int
	thoughts []model.ThoughtNote
	insight  string

	lastMilestone int
	lastCommentAt int
}

// Phase reports the current state.
func (t *Timer) Phase() TimerPhase { return t.phase }

// Subject reports the active draft subject ("" while Idle).
func (t *Timer) Subject() string { return t.subject }

// Elapsed reports the accumulated seconds of the draft session.
func (t *Timer) Elapsed() int { return t.elapsed }

// ThoughtCount reports how many thought notes the draft has collected.
func (t *Timer) ThoughtCount() int { return len(t.thoughts) }

// LastThought returns the text of the most recent thought note, or "".
func (t *Timer) LastThought() string {
	if len(t.thoughts) == 0 {
		return ""
	}
	return t.thoughts[len(t.thoughts)-1].Text
}

// Start begins a new draft session. The subject must be non-empty after
// trimming; otherwise a ValidationError is returned and nothing changes.
// Starting while not Idle is a no-op.
func (t *Timer) Start(subject, categoryID string) error {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return ValidationError{Field: "subject", Message: "subject is required"}
	}
	if t.phase != PhaseIdle {
		return nil
	}
	cat, ok := LookupCategory(categoryID)
	t.phase = PhaseRunning
	t.subject = subject
	t.category = cat
	t.hasCat = ok
	t.elapsed = 0
	t.thoughts = nil
	t.insight = ""
	t.lastMilestone = 0
	t.lastCommentAt = 0
	return nil
}

// Tick advances the clock by one second. Only Running timers tick.
func (t *Timer) Tick() {
	if t.phase == PhaseRunning {
		t.elapsed++
	}
}

// Pause freezes a Running timer, preserving elapsed time and draft
// fields. No-op in any other state.
func (t *Timer) Pause() {
	if t.phase == PhaseRunning {
		t.phase = PhasePaused
	}
}

// Resume continues a Paused timer from the preserved elapsed time.
func (t *Timer) Resume() {
	if t.phase == PhasePaused {
		t.phase = PhaseRunning
	}
}

// SetInsight records the key-insight memo for the draft session. Empty
// input clears it.
func (t *Timer) SetInsight(text string) {
	t.insight = strings.TrimSpace(text)
}

// AttachThought appends a timestamped note to the draft. Valid only
// while Running and with non-empty trimmed text; no-op otherwise.
func (t *Timer) AttachThought(text string) {
	if t.phase != PhaseRunning {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	t.thoughts = append(t.thoughts, model.ThoughtNote{
		Label: ThoughtLabel(t.elapsed),
		Text:  text,
	})
}

// Stop finalizes the draft into a StudySession and resets to Idle.
// A session must be explicitly paused before it can be stopped; calling
// Stop in any other state returns nil and changes nothing.
func (t *Timer) Stop() *model.StudySession {
	if t.phase != PhasePaused {
		return nil
	}
	return t.finalize()
}

// AddSession finalizes the draft without the stop ceremony, for
// recording one of several sessions within a longer work period. Valid
// only with elapsed time on the clock and the timer not Running.
func (t *Timer) AddSession() *model.StudySession {
	if t.phase == PhaseRunning || t.elapsed == 0 {
		return nil
	}
	return t.finalize()
}

// CommentDue reports whether a live commentary request is permitted at
// the current elapsed time, and marks the window consumed when it is.
// Milestones fire regardless of the cooldown but at most once each per
// running session; a pause/resume past a milestone does not re-fire it.
func (t *Timer) CommentDue() bool {
	if t.phase != PhaseRunning {
		return false
	}
	minutes := t.elapsed / 60
	for _, m := range commentMilestones {
		if minutes >= m && t.lastMilestone < m {
			t.lastMilestone = m
			t.lastCommentAt = t.elapsed
			return true
		}
	}
	if t.elapsed-t.lastCommentAt >= CommentCooldownSeconds {
		t.lastCommentAt = t.elapsed
		return true
	}
	return false
}

func (t *Timer) finalize() *model.StudySession {
	s := &model.StudySession{
		Subject:      t.subject,
		Minutes:      MinutesForElapsed(t.elapsed),
		Mode:         model.ModeFlow,
		ThoughtNotes: t.thoughts,
	}
	if t.hasCat {
		s.Category = strPtr(t.category.ID)
		s.CategoryEmoji = strPtr(t.category.Emoji)
		s.CategoryName = strPtr(t.category.Name)
		s.CategoryColor = strPtr(t.category.Color)
	}
	if t.insight != "" {
		s.KeyInsight = strPtr(t.insight)
	}
	s.ElapsedFormatted = strPtr(FormatClock(t.elapsed))

	t.phase = PhaseIdle
	t.subject = ""
	t.hasCat = false
	t.elapsed = 0
	t.thoughts = nil
	t.insight = ""
	t.lastMilestone = 0
	t.lastCommentAt = 0
	return s
}

func strPtr(s string) *string { return &s }
