package engine

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"tally/internal/model"
)

// Service wires the core operations to a persistence gateway.
type Service struct {
	store Gateway
	log   zerolog.Logger
}

func NewService(store Gateway) *Service {
	return &Service{store: store, log: zerolog.Nop()}
}

// SetLogger installs a logger for the publish pipeline and gateway
// failures. The default is a no-op logger.
func (s *Service) SetLogger(l zerolog.Logger) { s.log = l }

// Store exposes the underlying gateway for read-side commands.
func (s *Service) Store() Gateway { return s.store }

// LogSessionInput is a manually recorded session (no timer involved).
type LogSessionInput struct {
	Subject    string
	Minutes    int
	CategoryID string
	KeyInsight string
	DailyNote  string
}

// LogSession validates a manual entry, snapshots its category, and
// appends it to the durable work period (drafts). It does not publish.
func (s *Service) LogSession(ctx context.Context, owner string, in LogSessionInput) (model.StudySession, error) {
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		return model.StudySession{}, ValidationError{Field: "subject", Message: "subject is required"}
	}
	if in.Minutes < 1 {
		return model.StudySession{}, ValidationError{Field: "minutes", Message: "minutes must be at least 1"}
	}

	sess := model.StudySession{
		Subject: subject,
		Minutes: in.Minutes,
		Mode:    model.ModeFlow,
	}
	if cat, ok := LookupCategory(in.CategoryID); ok {
		sess.Category = strPtr(cat.ID)
		sess.CategoryEmoji = strPtr(cat.Emoji)
		sess.CategoryName = strPtr(cat.Name)
		sess.CategoryColor = strPtr(cat.Color)
	}
	if v := strings.TrimSpace(in.KeyInsight); v != "" {
		sess.KeyInsight = strPtr(v)
	}
	if v := strings.TrimSpace(in.DailyNote); v != "" {
		sess.DailyNote = strPtr(v)
	}

	id, err := s.store.CreateDraft(ctx, owner, sess)
	if err != nil {
		return model.StudySession{}, PersistenceError{Op: "save draft", Err: err}
	}
	sess.ID = id
	return sess, nil
}

// TodaySessions returns the published sessions created on the local
// calendar day, newest first.
func (s *Service) TodaySessions(ctx context.Context, owner string) ([]model.StudySession, error) {
	all, err := s.store.ListSessions(ctx, owner)
	if err != nil {
		return nil, PersistenceError{Op: "list sessions", Err: err}
	}
	now := time.Now()
	var out []model.StudySession
	for _, sess := range all {
		if sameLocalDay(sess.CreatedAt, now) {
			out = append(out, sess)
		}
	}
	return out, nil
}

// WeekMinutes returns per-day focus minutes for the last seven local
// days, index 0 = today.
func (s *Service) WeekMinutes(ctx context.Context, owner string) ([7]int, error) {
	var days [7]int
	all, err := s.store.ListSessions(ctx, owner)
	if err != nil {
		return days, PersistenceError{Op: "list sessions", Err: err}
	}
	now := time.Now()
	for _, sess := range all {
		if sess.CreatedAt.IsZero() {
			continue
		}
		idx := int(now.Sub(sess.CreatedAt).Hours() / 24)
		if idx >= 0 && idx < 7 {
			days[idx] += sess.Minutes
		}
	}
	return days, nil
}

func sameLocalDay(a, b time.Time) bool {
	if a.IsZero() {
		return false
	}
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// MaskDisplayName reduces a name to its first rune plus "**" for the
// anonymous square feed ("Jordan" → "J**").
func MaskDisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "anon"
	}
	r := []rune(name)
	if len(r) <= 1 {
		return name + "**"
	}
	return string(r[0]) + "**"
}
