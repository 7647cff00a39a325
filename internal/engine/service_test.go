package engine

import (
	"context"
	"errors"
	"testing"
)

func TestLogSessionValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeGateway())

	var verr ValidationError
	if _, err := svc.LogSession(ctx, "local", LogSessionInput{Subject: "  ", Minutes: 10}); !errors.As(err, &verr) {
		t.Fatalf("blank subject: got %v, want ValidationError", err)
	}
	if _, err := svc.LogSession(ctx, "local", LogSessionInput{Subject: "reading", Minutes: 0}); !errors.As(err, &verr) {
		t.Fatalf("zero minutes: got %v, want ValidationError", err)
	}
}

func TestLogSessionSnapshotsCategoryAndTrims(t *testing.T) {
	ctx := context.Background()
	store := newFakeGateway()
	svc := NewService(store)

	sess, err := svc.LogSession(ctx, "local", LogSessionInput{
		Subject:    "  morning reading ",
		Minutes:    25,
		CategoryID: "reading",
		KeyInsight: "  slow is smooth  ",
		DailyNote:  "   ",
	})
	if err != nil {
		t.Fatalf("LogSession: %v", err)
	}
	if sess.Subject != "morning reading" {
		t.Fatalf("subject=%q", sess.Subject)
	}
	if sess.Category == nil || *sess.Category != "reading" || sess.CategoryEmoji == nil {
		t.Fatalf("category not snapshotted: %+v", sess)
	}
	if sess.KeyInsight == nil || *sess.KeyInsight != "slow is smooth" {
		t.Fatalf("keyInsight=%v", sess.KeyInsight)
	}
	if sess.DailyNote != nil {
		t.Fatalf("blank dailyNote stored: %v", *sess.DailyNote)
	}
	if len(store.drafts) != 1 {
		t.Fatalf("drafts=%d, want 1 (log goes to the work period)", len(store.drafts))
	}
	if len(store.sessions) != 0 {
		t.Fatalf("log published a session directly")
	}
}

func TestLogSessionUnknownCategoryLeftUnset(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeGateway())

	sess, err := svc.LogSession(ctx, "local", LogSessionInput{Subject: "misc", Minutes: 5, CategoryID: "swimming"})
	if err != nil {
		t.Fatalf("LogSession: %v", err)
	}
	if sess.Category != nil {
		t.Fatalf("unknown category stored: %v", *sess.Category)
	}
}

func TestMaskDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "anon"},
		{"   ", "anon"},
		{"J", "J**"},
		{"Jordan", "J**"},
		{"김철수", "김**"},
	}
	for _, c := range cases {
		if got := MaskDisplayName(c.in); got != c.want {
			t.Fatalf("MaskDisplayName(%q)=%q, want %q", c.in, got, c.want)
		}
	}
}
