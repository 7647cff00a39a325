package commentary

import (
	"context"
	"errors"
	"testing"

	"tally/internal/model"
)

type failing struct{}

func (failing) Settlement(ctx context.Context, notes []model.ThoughtNote, profile *Profile) (Settlement, error) {
	return Settlement{}, errors.New("model offline")
}

func (failing) LiveComment(ctx context.Context, lc LiveContext, profile *Profile) (string, error) {
	return "", errors.New("model offline")
}

type empty struct{}

func (empty) Settlement(ctx context.Context, notes []model.ThoughtNote, profile *Profile) (Settlement, error) {
	return Settlement{}, nil
}

func (empty) LiveComment(ctx context.Context, lc LiveContext, profile *Profile) (string, error) {
	return "", nil
}

func TestStaticNeverFails(t *testing.T) {
	ctx := context.Background()
	s := NewStatic()

	settle, err := s.Settlement(ctx, nil, nil)
	if err != nil || settle.GrowthSummary == "" || settle.ManagerNote == "" {
		t.Fatalf("Settlement: %+v, %v", settle, err)
	}
	line, err := s.LiveComment(ctx, LiveContext{Subject: "reading"}, nil)
	if err != nil || line == "" {
		t.Fatalf("LiveComment: %q, %v", line, err)
	}
}

func TestWithFallbackOnError(t *testing.T) {
	ctx := context.Background()
	c := WithFallback(failing{})

	settle, err := c.Settlement(ctx, nil, nil)
	if err != nil {
		t.Fatalf("fallback surfaced an error: %v", err)
	}
	if settle.GrowthSummary == "" || settle.ManagerNote == "" {
		t.Fatalf("fallback settlement empty: %+v", settle)
	}
	line, err := c.LiveComment(ctx, LiveContext{}, nil)
	if err != nil || line == "" {
		t.Fatalf("fallback live comment: %q, %v", line, err)
	}
}

func TestWithFallbackOnEmptyOutput(t *testing.T) {
	ctx := context.Background()
	c := WithFallback(empty{})

	settle, _ := c.Settlement(ctx, nil, nil)
	if settle.GrowthSummary == "" {
		t.Fatalf("empty settlement not replaced")
	}
	line, _ := c.LiveComment(ctx, LiveContext{}, nil)
	if line == "" {
		t.Fatalf("empty live comment not replaced")
	}
}

func TestWithFallbackNil(t *testing.T) {
	c := WithFallback(nil)
	line, err := c.LiveComment(context.Background(), LiveContext{}, nil)
	if err != nil || line == "" {
		t.Fatalf("nil commentator fallback: %q, %v", line, err)
	}
}
