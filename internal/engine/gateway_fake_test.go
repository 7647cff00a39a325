package engine

import (
	"context"
	"errors"
	"fmt"

	"tally/internal/model"
)

// fakeGateway is an in-memory Gateway with per-call failure injection.
type fakeGateway struct {
	sessions []model.StudySession
	drafts   []model.StudySession
	receipts []model.Receipt
	progress map[string]model.UserProgress
	profiles map[string]model.Profile
	feed     []model.FeedItem

	calls map[string]int

	failCreateSessionAfter int // fail the Nth CreateSession (1-based); 0 = never
	failCreateReceipt      bool
	failSetProgress        bool
	failAddFeedItem        bool
	failClearDrafts        bool

	// onCreateReceipt runs just before the receipt write, standing in
	// for work that lands while a publish is in flight.
	onCreateReceipt func()
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		progress: map[string]model.UserProgress{},
		profiles: map[string]model.Profile{},
		calls:    map[string]int{},
	}
}

func (g *fakeGateway) count(op string) int { return g.calls[op] }

func (g *fakeGateway) CreateSession(ctx context.Context, owner string, s model.StudySession) (string, error) {
	g.calls["CreateSession"]++
	if g.failCreateSessionAfter > 0 && g.calls["CreateSession"] == g.failCreateSessionAfter {
		return "", errors.New("disk full")
	}
	s.ID = fmt.Sprintf("sess-%d", len(g.sessions)+1)
	g.sessions = append(g.sessions, s)
	return s.ID, nil
}

func (g *fakeGateway) ListSessions(ctx context.Context, owner string) ([]model.StudySession, error) {
	g.calls["ListSessions"]++
	out := make([]model.StudySession, len(g.sessions))
	copy(out, g.sessions)
	return out, nil
}

func (g *fakeGateway) DeleteSession(ctx context.Context, owner, id string) error {
	g.calls["DeleteSession"]++
	for i := range g.sessions {
		if g.sessions[i].ID == id {
			g.sessions = append(g.sessions[:i], g.sessions[i+1:]...)
			return nil
		}
	}
	return errors.New("session not found")
}

func (g *fakeGateway) CreateDraft(ctx context.Context, owner string, s model.StudySession) (string, error) {
	g.calls["CreateDraft"]++
	s.ID = fmt.Sprintf("draft-%d", len(g.drafts)+1)
	g.drafts = append(g.drafts, s)
	return s.ID, nil
}

func (g *fakeGateway) ListDrafts(ctx context.Context, owner string) ([]model.StudySession, error) {
	g.calls["ListDrafts"]++
	out := make([]model.StudySession, len(g.drafts))
	copy(out, g.drafts)
	return out, nil
}

func (g *fakeGateway) DeleteDraft(ctx context.Context, owner, id string) error {
	g.calls["DeleteDraft"]++
	for i := range g.drafts {
		if g.drafts[i].ID == id {
			g.drafts = append(g.drafts[:i], g.drafts[i+1:]...)
			return nil
		}
	}
	return errors.New("draft not found")
}

func (g *fakeGateway) ClearDrafts(ctx context.Context, owner string) error {
	g.calls["ClearDrafts"]++
	if g.failClearDrafts {
		return errors.New("locked")
	}
	g.drafts = nil
	return nil
}

func (g *fakeGateway) CreateReceipt(ctx context.Context, owner string, r model.Receipt) (string, error) {
	g.calls["CreateReceipt"]++
	if g.onCreateReceipt != nil {
		g.onCreateReceipt()
	}
	if g.failCreateReceipt {
		return "", errors.New("disk full")
	}
	r.ID = fmt.Sprintf("rcpt-%d", len(g.receipts)+1)
	g.receipts = append(g.receipts, r)
	return r.ID, nil
}

func (g *fakeGateway) ListReceipts(ctx context.Context, owner string) ([]model.Receipt, error) {
	g.calls["ListReceipts"]++
	out := make([]model.Receipt, len(g.receipts))
	copy(out, g.receipts)
	return out, nil
}

func (g *fakeGateway) GetProgress(ctx context.Context, owner string) (*model.UserProgress, error) {
	g.calls["GetProgress"]++
	p, ok := g.progress[owner]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (g *fakeGateway) SetProgress(ctx context.Context, owner string, p model.UserProgress) error {
	g.calls["SetProgress"]++
	if g.failSetProgress {
		return errors.New("locked")
	}
	g.progress[owner] = p
	return nil
}

func (g *fakeGateway) GetProfile(ctx context.Context, owner string) (*model.Profile, error) {
	g.calls["GetProfile"]++
	p, ok := g.profiles[owner]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (g *fakeGateway) UpdateProfile(ctx context.Context, owner string, nickname, jobGoal *string) error {
	g.calls["UpdateProfile"]++
	p := g.profiles[owner]
	p.OwnerID = owner
	if nickname != nil {
		p.Nickname = nickname
	}
	if jobGoal != nil {
		p.JobGoal = jobGoal
	}
	g.profiles[owner] = p
	return nil
}

func (g *fakeGateway) AddFeedItem(ctx context.Context, item model.FeedItem) (string, error) {
	g.calls["AddFeedItem"]++
	if g.failAddFeedItem {
		return "", errors.New("offline")
	}
	item.ID = fmt.Sprintf("feed-%d", len(g.feed)+1)
	g.feed = append(g.feed, item)
	return item.ID, nil
}

func (g *fakeGateway) ListFeed(ctx context.Context, limit int) ([]model.FeedItem, error) {
	g.calls["ListFeed"]++
	out := make([]model.FeedItem, len(g.feed))
	copy(out, g.feed)
	return out, nil
}

func (g *fakeGateway) CheerFeedItem(ctx context.Context, id string) error {
	g.calls["CheerFeedItem"]++
	for i := range g.feed {
		if g.feed[i].ID == id {
			g.feed[i].Reactions++
			return nil
		}
	}
	return errors.New("feed item not found")
}
