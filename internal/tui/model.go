package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tally/internal/commentary"
	"tally/internal/engine"
	"tally/internal/model"
	"tally/internal/ui"
)

type inputKind int

const (
	inputNone inputKind = iota
	inputSubject
	inputThought
	inputInsight
)

type deskModel struct {
	ctx   context.Context
	svc   *engine.Service
	ws    *engine.Workshop
	cmt   commentary.Commentator
	owner string

	width  int
	height int

	categories []engine.Category
	catIndex   int

	input   inputKind
	buf     string
	comment string
	lastLog string

	publishing   bool
	confirmReset bool
	newLevel     int
	err          error

	// tickGen identifies the live tick chain. Arming a chain bumps it,
	// so ticks from an abandoned chain (pause, then resume inside the
	// same second) are dropped instead of double-running the clock.
	tickGen int
}

type tickMsg struct{ gen int }

type restoredMsg struct {
	profile *model.Profile
	err     error
}

type publishedMsg struct {
	res *engine.PublishResult
	err error
}

type commentMsg struct{ text string }

type settlementMsg struct{ s commentary.Settlement }

func newDeskModel(ctx context.Context, svc *engine.Service, owner string, cmt commentary.Commentator) deskModel {
	return deskModel{
		ctx:        ctx,
		svc:        svc,
		ws:         engine.NewWorkshop(svc, owner),
		cmt:        cmt,
		owner:      owner,
		categories: engine.Categories(),
		lastLog:    "Press s to start a session.",
	}
}

func (m deskModel) Init() tea.Cmd {
	return m.restoreCmd()
}

func (m deskModel) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		if err := m.ws.Restore(m.ctx); err != nil {
			return restoredMsg{err: err}
		}
		profile, err := m.svc.Store().GetProfile(m.ctx, m.owner)
		if err != nil {
			// Profile is decoration here; the work period is what matters.
			profile = nil
		}
		return restoredMsg{profile: profile}
	}
}

func tickCmd(gen int) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// armTick starts a fresh tick chain and invalidates any pending one.
func (m *deskModel) armTick() tea.Cmd {
	m.tickGen++
	return tickCmd(m.tickGen)
}

func (m deskModel) publishCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.ws.Publish(m.ctx)
		return publishedMsg{res: res, err: err}
	}
}

func (m deskModel) liveCommentCmd() tea.Cmd {
	lc := commentary.LiveContext{
		Subject:      m.ws.Timer.Subject(),
		TimerMinutes: m.ws.Timer.Elapsed() / 60,
		ThoughtCount: m.ws.Timer.ThoughtCount(),
		LastThought:  m.ws.Timer.LastThought(),
	}
	return func() tea.Msg {
		text, _ := m.cmt.LiveComment(m.ctx, lc, nil)
		return commentMsg{text: text}
	}
}

func (m deskModel) settlementCmd(notes []model.ThoughtNote) tea.Cmd {
	return func() tea.Msg {
		s, _ := m.cmt.Settlement(m.ctx, notes, nil)
		return settlementMsg{s: s}
	}
}

func (m deskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case restoredMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		if msg.profile != nil && msg.profile.Nickname != nil {
			m.comment = "Welcome back, " + *msg.profile.Nickname + "."
		}
		if n := m.ws.Count(); n > 0 {
			m.lastLog = fmt.Sprintf("Restored %d unpublished session(s).", n)
		}
		return m, nil

	case tickMsg:
		// The timer only advances through this message, and the tick is
		// only re-armed while Running: leaving Running stops the clock
		// in the same update that changes the state. A stale generation
		// is a chain that was abandoned by a pause; dropping it keeps
		// exactly one chain alive.
		if msg.gen != m.tickGen || m.ws.Timer.Phase() != engine.PhaseRunning {
			return m, nil
		}
		m.ws.Timer.Tick()
		cmds := []tea.Cmd{tickCmd(m.tickGen)}
		if m.ws.Timer.CommentDue() {
			cmds = append(cmds, m.liveCommentCmd())
		}
		return m, tea.Batch(cmds...)

	case publishedMsg:
		m.publishing = false
		if msg.err != nil {
			// Nothing was cleared; the same sessions are still on the
			// desk and p publishes them again.
			m.lastLog = "Publish failed: " + msg.err.Error() + " — press p to retry."
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Receipt %s published: %d session(s), %s.",
			msg.res.ReceiptID, len(msg.res.Receipt.Sessions), msg.res.Receipt.TotalFormatted)
		if msg.res.LeveledUp {
			m.newLevel = msg.res.NewLevel
		}
		var notes []model.ThoughtNote
		for _, s := range msg.res.Receipt.Sessions {
			notes = append(notes, s.ThoughtNotes...)
		}
		return m, m.settlementCmd(notes)

	case commentMsg:
		m.comment = msg.text
		return m, nil

	case settlementMsg:
		m.comment = msg.s.GrowthSummary + " " + msg.s.ManagerNote
		return m, nil

	case tea.KeyMsg:
		if m.input != inputNone {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m deskModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input = inputNone
		m.buf = ""
		return m, nil
	case "enter":
		text := m.buf
		kind := m.input
		m.input = inputNone
		m.buf = ""
		return m.commitInput(kind, text)
	case "backspace":
		if m.buf != "" {
			r := []rune(m.buf)
			m.buf = string(r[:len(r)-1])
		}
		return m, nil
	default:
		if msg.String() == " " {
			m.buf += " "
		} else if msg.Type == tea.KeyRunes {
			m.buf += string(msg.Runes)
		}
		return m, nil
	}
}

func (m deskModel) commitInput(kind inputKind, text string) (tea.Model, tea.Cmd) {
	switch kind {
	case inputSubject:
		cat := m.categories[m.catIndex]
		if err := m.ws.Timer.Start(text, cat.ID); err != nil {
			m.lastLog = err.Error()
			return m, nil
		}
		m.comment = ""
		m.lastLog = fmt.Sprintf("Focusing on %q. space pauses.", m.ws.Timer.Subject())
		return m, m.armTick()
	case inputThought:
		before := m.ws.Timer.ThoughtCount()
		m.ws.Timer.AttachThought(text)
		if m.ws.Timer.ThoughtCount() > before {
			m.lastLog = "Thought pinned at " + engine.FormatClock(m.ws.Timer.Elapsed()) + "."
		}
		return m, nil
	case inputInsight:
		m.ws.Timer.SetInsight(text)
		m.lastLog = "Key insight noted."
		return m, nil
	}
	return m, nil
}

func (m deskModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.confirmReset {
		m.confirmReset = false
		if msg.String() == "y" {
			if err := m.ws.Reset(m.ctx); err != nil {
				m.lastLog = "Reset failed: " + err.Error()
			} else {
				m.lastLog = "Work period discarded."
			}
		} else {
			m.lastLog = "Reset cancelled."
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "s":
		if m.ws.Timer.Phase() != engine.PhaseIdle {
			return m, nil
		}
		m.input = inputSubject
		m.buf = ""
		return m, nil

	case "tab":
		if m.ws.Timer.Phase() == engine.PhaseIdle {
			m.catIndex = (m.catIndex + 1) % len(m.categories)
		}
		return m, nil

	case " ":
		switch m.ws.Timer.Phase() {
		case engine.PhaseRunning:
			m.ws.Timer.Pause()
			m.lastLog = "Paused. space resumes, x stops, a adds the session."
			return m, nil
		case engine.PhasePaused:
			m.ws.Timer.Resume()
			m.lastLog = "Back to it."
			return m, m.armTick()
		}
		return m, nil

	case "x":
		if s := m.ws.Stop(m.ctx); s != nil {
			m.lastLog = fmt.Sprintf("Recorded %q (%s).", s.Subject, engine.FormatDuration(s.Minutes))
		}
		return m, nil

	case "a":
		if s := m.ws.AddSession(m.ctx); s != nil {
			m.lastLog = fmt.Sprintf("Added %q (%s) — start the next one.", s.Subject, engine.FormatDuration(s.Minutes))
		}
		return m, nil

	case "t":
		if m.ws.Timer.Phase() == engine.PhaseRunning {
			m.input = inputThought
			m.buf = ""
		}
		return m, nil

	case "m":
		if m.ws.Timer.Phase() != engine.PhaseIdle {
			m.input = inputInsight
			m.buf = ""
		}
		return m, nil

	case "p":
		if m.publishing {
			return m, nil
		}
		if m.ws.Count() == 0 {
			m.lastLog = "Nothing to publish yet."
			return m, nil
		}
		m.publishing = true
		m.lastLog = "Publishing…"
		return m, m.publishCmd()

	case "R":
		if m.ws.Count() > 0 {
			m.confirmReset = true
			m.lastLog = fmt.Sprintf("Discard %d unpublished session(s)? y confirms.", m.ws.Count())
		}
		return m, nil

	case "enter":
		if m.newLevel > 0 {
			m.newLevel = 0
		}
		return m, nil
	}
	return m, nil
}

func (m deskModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	left := m.renderControl()
	right := m.renderReceipt()

	leftW := 34
	if m.width > 0 && m.width/2 < leftW {
		leftW = m.width / 2
	}
	if leftW < 22 {
		leftW = 22
	}

	linesLeft := strings.Split(left, "\n")
	linesRight := strings.Split(right, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l, r := "", ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	footer := "\n" + m.lastLog
	if m.newLevel > 0 {
		footer += "\n" + ui.BadgeLevelUp + ui.Gold.Render(fmt.Sprintf(" → level %d! (enter dismisses)", m.newLevel))
	}
	return header + "\n\n" + body.String() + footer
}

func (m deskModel) renderHeader() string {
	clock := engine.FormatClock(m.ws.Timer.Elapsed())
	phase := ui.PhaseText(m.ws.Timer.Phase().String())
	title := ui.Heading(ui.IconReceipt, "Tally Desk")
	if m.ws.Timer.Phase() == engine.PhaseIdle {
		return fmt.Sprintf("%s  %s", title, phase)
	}
	return fmt.Sprintf("%s  %s  %s  %s", title, phase, ui.Lime.Render(clock), m.ws.Timer.Subject())
}

func (m deskModel) renderControl() string {
	lines := []string{ui.H2.Render("Control")}

	if m.input != inputNone {
		label := map[inputKind]string{
			inputSubject: "subject",
			inputThought: "thought",
			inputInsight: "insight",
		}[m.input]
		lines = append(lines, "", ui.Key.Render(label+" >")+" "+m.buf+"▌", ui.Muted.Render("enter confirms, esc cancels"))
		return strings.Join(lines, "\n")
	}

	cat := m.categories[m.catIndex]
	lines = append(lines, "", ui.LabelValue("Category", cat.Emoji+" "+cat.Name))
	if m.ws.Timer.ThoughtCount() > 0 {
		lines = append(lines, ui.LabelValue("Thoughts", m.ws.Timer.ThoughtCount()))
	}
	lines = append(lines, "")
	lines = append(lines, ui.H2.Render("Keys"))
	lines = append(lines,
		"- s: start  tab: category",
		"- space: pause/resume",
		"- x: stop  a: add session",
		"- t: thought  m: insight",
		"- p: publish  R: reset",
		"- q: quit",
	)
	if m.comment != "" {
		lines = append(lines, "", ui.H2.Render("Manager"), ui.Muted.Render(m.comment))
	}
	return strings.Join(lines, "\n")
}

func (m deskModel) renderReceipt() string {
	var out []string
	out = append(out, ui.Lime.Render("FLOW RECEIPT"), ui.Muted.Render(time.Now().Format("2006.01.02")), "")

	sessions := m.ws.Sessions()
	if len(sessions) == 0 {
		out = append(out, ui.Muted.Render("(sessions will stack up here)"))
		return strings.Join(out, "\n")
	}
	for _, s := range sessions {
		emoji := "🎯"
		if s.CategoryEmoji != nil {
			emoji = *s.CategoryEmoji
		}
		out = append(out, fmt.Sprintf("%s %s  %s", emoji, s.Subject, ui.Lime.Render(engine.FormatDuration(s.Minutes))))
		if s.KeyInsight != nil {
			out = append(out, "   "+ui.Muted.Render(*s.KeyInsight))
		}
	}
	out = append(out, ui.Muted.Render(strings.Repeat("- ", 14)))
	out = append(out, fmt.Sprintf("%s %s", ui.Key.Render("TOTAL"), ui.Lime.Render(engine.FormatDuration(m.ws.TotalMinutes()))))
	if m.publishing {
		out = append(out, "", ui.Warn.Render("publishing…"))
	}
	return strings.Join(out, "\n")
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
