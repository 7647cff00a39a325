package engine

import (
	"context"

	"tally/internal/model"
)

// Workshop is one work period: the live timer, the in-memory
// accumulator of finalized sessions, and the publish pipeline around
// them. Finalized sessions are mirrored into the gateway's draft rows
// underneath the interaction (best effort, never blocking), so a crash
// cannot lose a recorded session.
type Workshop struct {
	Timer Timer

	svc   *Service
	owner string
	acc   Accumulator
}

func NewWorkshop(svc *Service, owner string) *Workshop {
	return &Workshop{svc: svc, owner: owner}
}

// Restore loads the durable work period (draft rows) into the
// accumulator, oldest first. Used on desk start and by `tally publish`.
func (w *Workshop) Restore(ctx context.Context) error {
	drafts, err := w.svc.store.ListDrafts(ctx, w.owner)
	if err != nil {
		return PersistenceError{Op: "restore work period", Err: err}
	}
	w.acc.Clear()
	for _, d := range drafts {
		w.acc.Append(d)
	}
	return nil
}

// Sessions returns a defensive copy of the accumulated sessions in
// finalization order.
func (w *Workshop) Sessions() []model.StudySession { return w.acc.Snapshot() }

// Count reports how many sessions the period holds.
func (w *Workshop) Count() int { return w.acc.Len() }

// TotalMinutes sums the accumulated durations.
func (w *Workshop) TotalMinutes() int { return w.acc.TotalMinutes() }

// Stop finalizes the paused timer into the accumulator. Returns the
// emitted session, or nil when the timer state made it a no-op.
func (w *Workshop) Stop(ctx context.Context) *model.StudySession {
	return w.take(ctx, w.Timer.Stop())
}

// AddSession finalizes the paused timer without ending the work period.
func (w *Workshop) AddSession(ctx context.Context) *model.StudySession {
	return w.take(ctx, w.Timer.AddSession())
}

func (w *Workshop) take(ctx context.Context, s *model.StudySession) *model.StudySession {
	if s == nil {
		return nil
	}
	if id, err := w.svc.store.CreateDraft(ctx, w.owner, *s); err != nil {
		w.svc.log.Warn().Err(err).Msg("draft mirror failed; session is held in memory only")
	} else {
		s.ID = id
	}
	w.acc.Append(*s)
	return s
}

// Publish publishes the accumulated sessions as one receipt. Only the
// snapshotted prefix leaves the period once the receipt has settled —
// by count from the accumulator, by id from the draft mirror — so a
// session finalized while the publish was in flight stays for the next
// one. On failure everything is left exactly as it was and a retry is
// safe.
func (w *Workshop) Publish(ctx context.Context) (*PublishResult, error) {
	snap := w.acc.Snapshot()
	draftIDs := make([]string, 0, len(snap))
	for i := range snap {
		if snap[i].ID != "" {
			draftIDs = append(draftIDs, snap[i].ID)
		}
	}

	res, err := w.svc.Publish(ctx, w.owner, snap)
	if err != nil {
		return nil, err
	}
	w.acc.DropFirst(len(snap))
	for _, id := range draftIDs {
		if err := w.svc.store.DeleteDraft(ctx, w.owner, id); err != nil {
			// A stale draft means a later publish may duplicate its
			// session; duplication is preferred over losing the receipt.
			w.svc.log.Warn().Err(err).Str("draft", id).Msg("clearing draft after publish failed")
		}
	}
	return res, nil
}

// Reset discards the work period without publishing. Callers must have
// confirmed the discard explicitly with the user.
func (w *Workshop) Reset(ctx context.Context) error {
	w.acc.Clear()
	if err := w.svc.store.ClearDrafts(ctx, w.owner); err != nil {
		return PersistenceError{Op: "discard work period", Err: err}
	}
	return nil
}
