package engine

import (
	"context"
	"fmt"

	"tally/internal/model"
)

// PublishResult reports a successful publish. LeveledUp/NewLevel come
// from the post-commit experience grant; when that grant fails the
// receipt still stands and ProgressErr carries the isolated failure.
type PublishResult struct {
	ReceiptID   string
	Receipt     model.Receipt
	LeveledUp   bool
	NewLevel    int
	ProgressErr error
}

// Publish persists every session of the snapshot, computes the
// aggregates, and persists one immutable receipt. All session writes
// must succeed or the publish as a whole fails; on any failure the
// caller's accumulator is untouched and a retry is safe (retrying may
// re-persist already-saved sessions — duplication is preferred over
// loss, there are no distributed-transaction semantics here).
//
// After the receipt settles, the experience grant and the square-feed
// post run as isolated side effects: their failures are logged and
// never invalidate the receipt.
func (s *Service) Publish(ctx context.Context, owner string, sessions []model.StudySession) (*PublishResult, error) {
	if len(sessions) == 0 {
		return nil, EmptyPublishError{}
	}

	for i := range sessions {
		id, err := s.store.CreateSession(ctx, owner, sessions[i])
		if err != nil {
			return nil, PersistenceError{Op: fmt.Sprintf("save session %d of %d", i+1, len(sessions)), Err: err}
		}
		sessions[i].ID = id
	}

	total := 0
	for i := range sessions {
		total += sessions[i].Minutes
	}

	receipt := model.Receipt{
		Sessions:       sessions,
		TotalFormatted: FormatDuration(total),
		TotalMinutes:   total,
		CategoryStats:  CategoryStats(sessions),
	}
	receiptID, err := s.store.CreateReceipt(ctx, owner, receipt)
	if err != nil {
		return nil, PersistenceError{Op: "save receipt", Err: err}
	}
	receipt.ID = receiptID

	res := &PublishResult{ReceiptID: receiptID, Receipt: receipt}

	progress, err := s.AddExperience(ctx, owner, ExpPerReceipt)
	if err != nil {
		s.log.Warn().Err(err).Str("owner", owner).Msg("experience grant failed after publish")
		res.ProgressErr = err
	} else {
		res.LeveledUp = progress.LeveledUp
		res.NewLevel = progress.NewLevel
	}

	s.postToFeed(ctx, owner, sessions, total)

	s.log.Info().
		Str("owner", owner).
		Str("receipt", receiptID).
		Int("sessions", len(sessions)).
		Int("total_minutes", total).
		Msg("receipt published")
	return res, nil
}

// CategoryStats groups sessions by category (sentinel "other" when
// absent) and sums per-group counts and minutes. Groups appear in
// first-seen order; each entry satisfies the receipt invariants
// sum(totalMinutes) == receipt total and sum(count) == len(sessions).
func CategoryStats(sessions []model.StudySession) []model.CategoryStat {
	var order []string
	byID := map[string]*model.CategoryStat{}

	for i := range sessions {
		id := OtherCategoryID
		if sessions[i].Category != nil && *sessions[i].Category != "" {
			id = *sessions[i].Category
		}
		stat, ok := byID[id]
		if !ok {
			stat = &model.CategoryStat{CategoryID: id}
			if sessions[i].CategoryName != nil {
				stat.Name = sessions[i].CategoryName
				stat.Emoji = sessions[i].CategoryEmoji
			} else if cat, known := LookupCategory(id); known || id == OtherCategoryID {
				stat.Name = strPtr(cat.Name)
				stat.Emoji = strPtr(cat.Emoji)
			}
			byID[id] = stat
			order = append(order, id)
		}
		stat.Count++
		stat.TotalMinutes += sessions[i].Minutes
	}

	out := make([]model.CategoryStat, 0, len(order))
	for _, id := range order {
		stat := byID[id]
		stat.Formatted = FormatDuration(stat.TotalMinutes)
		out = append(out, *stat)
	}
	return out
}

// postToFeed publishes an anonymous summary card to the square feed.
// Cosmetic: failures are logged and swallowed.
func (s *Service) postToFeed(ctx context.Context, owner string, sessions []model.StudySession, totalMinutes int) {
	label := "anon"
	if profile, err := s.store.GetProfile(ctx, owner); err == nil && profile != nil && profile.Nickname != nil {
		label = MaskDisplayName(*profile.Nickname)
	}

	subject := sessions[0].Subject
	if len(sessions) > 1 {
		subject = fmt.Sprintf("%s +%d more", subject, len(sessions)-1)
	}

	if _, err := s.store.AddFeedItem(ctx, model.FeedItem{
		Subject:     subject,
		Minutes:     totalMinutes,
		AuthorLabel: label,
	}); err != nil {
		s.log.Warn().Err(err).Msg("square feed post failed")
	}
}
