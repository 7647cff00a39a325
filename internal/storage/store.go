package storage

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"tally/internal/model"
)

// Store is the sqlite persistence gateway. Creation timestamps are
// assigned here, at write time, the way a server timestamp would be.
type Store struct {
	db       *sql.DB
	sessions *SessionRepo
	drafts   *SessionRepo
	receipts *ReceiptRepo
	profiles *ProfileRepo
	feed     *FeedRepo
	entropy  *rand.Rand
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:       db,
		sessions: NewSessionRepo(db, "sessions"),
		drafts:   NewSessionRepo(db, "drafts"),
		receipts: NewReceiptRepo(db),
		profiles: NewProfileRepo(db),
		feed:     NewFeedRepo(db),
		entropy:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Store) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *Store) CreateSession(ctx context.Context, owner string, sess model.StudySession) (string, error) {
	id := s.newID()
	if err := s.sessions.Insert(ctx, id, owner, sess, time.Now().UTC()); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListSessions(ctx context.Context, owner string) ([]model.StudySession, error) {
	return s.sessions.List(ctx, owner, true)
}

func (s *Store) DeleteSession(ctx context.Context, owner, id string) error {
	return s.sessions.Delete(ctx, owner, id)
}

func (s *Store) CreateDraft(ctx context.Context, owner string, sess model.StudySession) (string, error) {
	id := s.newID()
	if err := s.drafts.Insert(ctx, id, owner, sess, time.Now().UTC()); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListDrafts(ctx context.Context, owner string) ([]model.StudySession, error) {
	return s.drafts.List(ctx, owner, false)
}

func (s *Store) DeleteDraft(ctx context.Context, owner, id string) error {
	return s.drafts.Delete(ctx, owner, id)
}

func (s *Store) ClearDrafts(ctx context.Context, owner string) error {
	return s.drafts.DeleteAll(ctx, owner)
}

func (s *Store) CreateReceipt(ctx context.Context, owner string, rec model.Receipt) (string, error) {
	id := s.newID()
	if err := s.receipts.Insert(ctx, id, owner, rec, time.Now().UTC()); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListReceipts(ctx context.Context, owner string) ([]model.Receipt, error) {
	return s.receipts.List(ctx, owner)
}

func (s *Store) GetProgress(ctx context.Context, owner string) (*model.UserProgress, error) {
	p, err := s.profiles.Get(ctx, owner)
	if err != nil || p == nil {
		return nil, err
	}
	return &model.UserProgress{Experience: p.Experience, Level: p.Level}, nil
}

func (s *Store) SetProgress(ctx context.Context, owner string, p model.UserProgress) error {
	return s.profiles.SetProgress(ctx, owner, p, time.Now().UTC())
}

func (s *Store) GetProfile(ctx context.Context, owner string) (*model.Profile, error) {
	return s.profiles.Get(ctx, owner)
}

func (s *Store) UpdateProfile(ctx context.Context, owner string, nickname, jobGoal *string) error {
	return s.profiles.UpdateInfo(ctx, owner, nickname, jobGoal, time.Now().UTC())
}

func (s *Store) AddFeedItem(ctx context.Context, item model.FeedItem) (string, error) {
	id := s.newID()
	if err := s.feed.Insert(ctx, id, item, time.Now().UTC()); err != nil {
		return "", err
	}
	return id, nil
}

func (s *Store) ListFeed(ctx context.Context, limit int) ([]model.FeedItem, error) {
	return s.feed.List(ctx, limit)
}

func (s *Store) CheerFeedItem(ctx context.Context, id string) error {
	return s.feed.Cheer(ctx, id)
}
