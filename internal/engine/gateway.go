package engine

import (
	"context"

	"tally/internal/model"
)

// Gateway is the durable store the engine publishes into. It is treated
// as an opaque, possibly-failing dependency: every method may return an
// error, the engine never retries automatically, and in-memory state is
// left untouched on failure so a retry is safe.
//
// Draft rows are the durable mirror of the work period: finalized but
// unpublished sessions held between CLI invocations (and across desk
// crashes). Publish clears them only after the receipt has settled.
type Gateway interface {
	CreateSession(ctx context.Context, owner string, s model.StudySession) (string, error)
	ListSessions(ctx context.Context, owner string) ([]model.StudySession, error)
	DeleteSession(ctx context.Context, owner, id string) error

	CreateDraft(ctx context.Context, owner string, s model.StudySession) (string, error)
	ListDrafts(ctx context.Context, owner string) ([]model.StudySession, error)
	DeleteDraft(ctx context.Context, owner, id string) error
	ClearDrafts(ctx context.Context, owner string) error

	CreateReceipt(ctx context.Context, owner string, r model.Receipt) (string, error)
	ListReceipts(ctx context.Context, owner string) ([]model.Receipt, error)

	GetProgress(ctx context.Context, owner string) (*model.UserProgress, error)
	SetProgress(ctx context.Context, owner string, p model.UserProgress) error
	GetProfile(ctx context.Context, owner string) (*model.Profile, error)
	UpdateProfile(ctx context.Context, owner string, nickname, jobGoal *string) error

	AddFeedItem(ctx context.Context, item model.FeedItem) (string, error)
	ListFeed(ctx context.Context, limit int) ([]model.FeedItem, error)
	CheerFeedItem(ctx context.Context, id string) error
}
