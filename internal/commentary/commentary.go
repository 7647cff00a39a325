// Package commentary is the opaque "manager" collaborator that returns
// short encouragement strings. It is cosmetic by contract: any failure
// of a real implementation is replaced by a canned line, never surfaced
// as an error, and never allowed to touch timer or publish state.
package commentary

import (
	"context"
	"math/rand"
	"time"

	"tally/internal/model"
)

// Profile is the optional user context a commentator may personalize on.
type Profile struct {
	Nickname string
	JobGoal  string
}

// Settlement is the pair of lines shown when a receipt is published.
type Settlement struct {
	GrowthSummary string
	ManagerNote   string
}

// LiveContext describes the running session at comment time.
type LiveContext struct {
	Subject      string
	TimerMinutes int
	ThoughtCount int
	LastThought  string
}

// Commentator produces manager commentary. Implementations may take
// unbounded time and may fail; callers wrap them with WithFallback.
type Commentator interface {
	Settlement(ctx context.Context, notes []model.ThoughtNote, profile *Profile) (Settlement, error)
	LiveComment(ctx context.Context, lc LiveContext, profile *Profile) (string, error)
}

var liveFallbacks = []string{
	"Oh, you're pinning this concept down too!",
	"The receipt is getting longer. Keep going!",
	"Notes pile up into treasure later.",
}

var settlementFallback = Settlement{
	GrowthSummary: "Another step forward today.",
	ManagerNote:   "Come print another receipt tomorrow!",
}

// Static is the bundled commentator: fixed pools, random choice, never
// fails. It is also the fallback for every other implementation.
type Static struct {
	rng *rand.Rand
}

func NewStatic() *Static {
	return &Static{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (s *Static) Settlement(ctx context.Context, notes []model.ThoughtNote, profile *Profile) (Settlement, error) {
	return settlementFallback, nil
}

func (s *Static) LiveComment(ctx context.Context, lc LiveContext, profile *Profile) (string, error) {
	return liveFallbacks[s.rng.Intn(len(liveFallbacks))], nil
}

type fallback struct {
	inner  Commentator
	static *Static
}

// WithFallback wraps a commentator so that failures degrade silently to
// the static lines.
func WithFallback(c Commentator) Commentator {
	if c == nil {
		return NewStatic()
	}
	return &fallback{inner: c, static: NewStatic()}
}

func (f *fallback) Settlement(ctx context.Context, notes []model.ThoughtNote, profile *Profile) (Settlement, error) {
	out, err := f.inner.Settlement(ctx, notes, profile)
	if err != nil || out.GrowthSummary == "" {
		return settlementFallback, nil
	}
	return out, nil
}

func (f *fallback) LiveComment(ctx context.Context, lc LiveContext, profile *Profile) (string, error) {
	out, err := f.inner.LiveComment(ctx, lc, profile)
	if err != nil || out == "" {
		return f.static.LiveComment(ctx, lc, profile)
	}
	return out, nil
}
