// Package model holds the domain types shared by the engine and the
// storage gateway.
package model

import "time"

// Mode describes how a session was recorded: free-running ("flow") or
// against a preset target.
type Mode string

const (
	ModeFlow   Mode = "flow"
	ModeTarget Mode = "target"
)

func (m Mode) IsValid() bool {
	return m == ModeFlow || m == ModeTarget
}

// ThoughtNote is one timestamped note attached to a session while its
// timer was running. Label is the elapsed time at the moment of writing
// ("MM:SS", or "HH:MM" past an hour). Insertion order is chronological.
type ThoughtNote struct {
	Label string
	Text  string
}

// StudySession is one finalized, unpublished unit of focused work.
// Optional free-text fields are nil when absent; empty strings are never
// stored. Category display attributes are a value snapshot taken from the
// catalog at creation time so later catalog edits cannot rewrite history.
type StudySession struct {
	ID               string
	Subject          string
	Minutes          int
	KeyInsight       *string
	DailyNote        *string
	FlowLog          *string
	Mode             Mode
	Category         *string
	CategoryEmoji    *string
	CategoryName     *string
	CategoryColor    *string
	ElapsedFormatted *string
	ThoughtNotes     []ThoughtNote
	CreatedAt        time.Time
}

// CategoryStat is one per-category aggregate line on a receipt.
type CategoryStat struct {
	CategoryID   string
	Name         *string
	Emoji        *string
	Count        int
	TotalMinutes int
	Formatted    string
}

// Receipt is an immutable aggregate of the sessions published together.
// Sessions is a copied snapshot, not a live reference.
type Receipt struct {
	ID             string
	Sessions       []StudySession
	TotalFormatted string
	TotalMinutes   int
	CategoryStats  []CategoryStat
	CreatedAt      time.Time
}

// UserProgress is the experience/level slice of a profile. Level is stored
// redundantly for fast reads; experience is authoritative whenever the two
// disagree.
type UserProgress struct {
	Experience int
	Level      int
}

// Profile is the stored per-owner document.
type Profile struct {
	OwnerID    string
	Nickname   *string
	JobGoal    *string
	Experience int
	Level      int
	JoinDate   time.Time
	UpdatedAt  time.Time
}

// FeedItem is one anonymous entry on the square feed.
type FeedItem struct {
	ID          string
	Subject     string
	Minutes     int
	AuthorLabel string
	Reactions   int
	CreatedAt   time.Time
}
