package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"tally/internal/commentary"
	"tally/internal/engine"
	"tally/internal/storage"
)

func newTestDesk(t *testing.T) deskModel {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	svc := engine.NewService(storage.NewStore(db))
	return newDeskModel(ctx, svc, "local", commentary.WithFallback(commentary.NewStatic()))
}

func press(t *testing.T, m deskModel, msg tea.KeyMsg) (deskModel, tea.Cmd) {
	t.Helper()
	mm, cmd := m.Update(msg)
	return mm.(deskModel), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func startSession(t *testing.T, m deskModel, subject string) (deskModel, tea.Cmd) {
	t.Helper()
	m, _ = press(t, m, keyRunes("s"))
	m, _ = press(t, m, keyRunes(subject))
	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.ws.Timer.Phase() != engine.PhaseRunning {
		t.Fatalf("phase after start = %v, want running", m.ws.Timer.Phase())
	}
	if cmd == nil {
		t.Fatalf("start did not arm a tick chain")
	}
	return m, cmd
}

func TestDeskStaleTickChainIsDropped(t *testing.T) {
	m := newTestDesk(t)
	m, _ = startSession(t, m, "focus")
	firstGen := m.tickGen

	mm, cmd := m.Update(tickMsg{gen: firstGen})
	m = mm.(deskModel)
	if m.ws.Timer.Elapsed() != 1 {
		t.Fatalf("elapsed=%d after one tick, want 1", m.ws.Timer.Elapsed())
	}
	if cmd == nil {
		t.Fatalf("running tick did not re-arm")
	}

	// Pause and resume inside the same one-second window: the first
	// chain's tick is still pending when the second chain is armed.
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.ws.Timer.Phase() != engine.PhasePaused {
		t.Fatalf("phase after space = %v, want paused", m.ws.Timer.Phase())
	}
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	if m.ws.Timer.Phase() != engine.PhaseRunning {
		t.Fatalf("phase after resume = %v, want running", m.ws.Timer.Phase())
	}
	if cmd == nil {
		t.Fatalf("resume did not arm a tick chain")
	}
	if m.tickGen == firstGen {
		t.Fatalf("resume reused the abandoned chain's generation")
	}

	// One simulated second: both chains deliver. Only the live one may
	// advance the clock or re-arm.
	mm, cmd = m.Update(tickMsg{gen: firstGen})
	m = mm.(deskModel)
	if cmd != nil {
		t.Fatalf("stale chain re-armed")
	}
	mm, cmd = m.Update(tickMsg{gen: m.tickGen})
	m = mm.(deskModel)
	if cmd == nil {
		t.Fatalf("live chain did not re-arm")
	}
	if m.ws.Timer.Elapsed() != 2 {
		t.Fatalf("elapsed after one wall-clock second = %d, want 2 total (1 before pause + 1 after)", m.ws.Timer.Elapsed())
	}
}

func TestDeskTickWhilePausedNeitherAdvancesNorRearms(t *testing.T) {
	m := newTestDesk(t)
	m, _ = startSession(t, m, "focus")

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace})
	mm, cmd := m.Update(tickMsg{gen: m.tickGen})
	m = mm.(deskModel)
	if m.ws.Timer.Elapsed() != 0 {
		t.Fatalf("paused timer ticked: elapsed=%d", m.ws.Timer.Elapsed())
	}
	if cmd != nil {
		t.Fatalf("tick re-armed while paused")
	}
}
