package engine

import (
	"context"

	"tally/internal/model"
)

const (
	// ExpPerReceipt is the experience granted per successful publish.
	ExpPerReceipt = 10

	// ExpPerLevel is the experience span of one level.
	ExpPerLevel = 50
)

// LevelForExperience maps cumulative experience to a level. Level is
// always this pure function of experience; a stored level that disagrees
// is stale and the experience value wins.
func LevelForExperience(exp int) int {
	if exp <= 0 {
		return 1
	}
	return exp/ExpPerLevel + 1
}

// ProgressResult reports the outcome of an experience grant.
type ProgressResult struct {
	LeveledUp     bool
	NewLevel      int
	NewExperience int
}

// AddExperience performs the read-modify-write experience grant for one
// owner: read (absent record counts as zero), add delta, recompute the
// level in the same write. Concurrent grants for the same owner are
// last-writer-wins; the gateway owns any stronger consistency.
func (s *Service) AddExperience(ctx context.Context, owner string, delta int) (*ProgressResult, error) {
	cur, err := s.store.GetProgress(ctx, owner)
	if err != nil {
		return nil, PersistenceError{Op: "read progress", Err: err}
	}
	curExp := 0
	if cur != nil {
		curExp = cur.Experience
	}

	newExp := curExp + delta
	if newExp < 0 {
		newExp = 0
	}
	newLevel := LevelForExperience(newExp)

	if err := s.store.SetProgress(ctx, owner, model.UserProgress{Experience: newExp, Level: newLevel}); err != nil {
		return nil, PersistenceError{Op: "write progress", Err: err}
	}

	return &ProgressResult{
		LeveledUp:     newLevel > LevelForExperience(curExp),
		NewLevel:      newLevel,
		NewExperience: newExp,
	}, nil
}
