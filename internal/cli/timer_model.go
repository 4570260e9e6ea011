package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"pomoplan/internal/cli/formatter"
	"pomoplan/internal/domain"
	"pomoplan/internal/planner"
)

type tickMsg time.Time

// boxRef points at one timebox in the session's timeline together with the
// story it belongs to, so the timer can mark boxes completed in place.
type boxRef struct {
	storyTitle string
	box        *domain.TimeBox
}

// timerModel runs the session's timebox timeline as an interactive countdown.
type timerModel struct {
	session   *domain.Session
	boxes     []boxRef
	idx       int
	remaining time.Duration
	paused    bool
	bar       progress.Model
	done      bool
	quitting  bool
	width     int
}

func newTimerModel(session *domain.Session) timerModel {
	bar := progress.New(progress.WithDefaultGradient())

	m := timerModel{
		session: session,
		boxes:   flattenBoxes(session),
		bar:     bar,
	}
	m.skipCompleted()
	if m.idx < len(m.boxes) {
		m.remaining = boxDuration(m.boxes[m.idx])
	} else {
		m.done = true
	}
	return m
}

// flattenBoxes collects pointers to every timebox in schedule order.
func flattenBoxes(session *domain.Session) []boxRef {
	var refs []boxRef
	for i := range session.StoryBlocks {
		story := &session.StoryBlocks[i]
		for j := range story.TimeBoxes {
			refs = append(refs, boxRef{storyTitle: story.Title, box: &story.TimeBoxes[j]})
		}
	}
	return refs
}

func boxDuration(ref boxRef) time.Duration {
	return time.Duration(ref.box.Duration) * time.Minute
}

// skipCompleted moves the cursor past boxes already marked done, so a
// restarted timer resumes where the previous run stopped.
func (m *timerModel) skipCompleted() {
	for m.idx < len(m.boxes) && m.boxes[m.idx].box.Completed {
		m.idx++
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m timerModel) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return tick()
}

func (m timerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(msg.Width-8, 50)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
			return m, nil
		case "n":
			return m.advance()
		}
		return m, nil

	case tickMsg:
		if m.done || m.paused {
			return m, tick()
		}
		m.remaining -= time.Second
		if m.remaining <= 0 {
			return m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance completes the current box and moves to the next. Tasks riding on
// a finished work box are marked completed so progress reporting follows.
func (m timerModel) advance() (tea.Model, tea.Cmd) {
	if m.idx < len(m.boxes) {
		box := m.boxes[m.idx].box
		box.Completed = true
		for i := range box.Tasks {
			box.Tasks[i].Status = domain.TaskCompleted
		}
		m.idx++
	}
	m.skipCompleted()
	if m.idx >= len(m.boxes) {
		m.done = true
		return m, tea.Quit
	}
	m.remaining = boxDuration(m.boxes[m.idx])
	return m, tick()
}

func (m timerModel) View() string {
	if m.done {
		return formatter.StyleGreen.Render("All timeboxes done. Nice work!") + "\n"
	}
	if m.quitting {
		return ""
	}

	ref := m.boxes[m.idx]
	total := boxDuration(ref)
	elapsed := total - m.remaining
	pct := 0.0
	if total > 0 {
		pct = float64(elapsed) / float64(total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n",
		formatter.StyleHeader.Render(strings.ToUpper(string(ref.box.Type))),
		formatter.StyleDim.Render(fmt.Sprintf("(%d/%d · %s)", m.idx+1, len(m.boxes), ref.storyTitle)),
	)

	if ref.box.Type == domain.BoxWork {
		for _, task := range ref.box.Tasks {
			name := task.Title
			if task.IsFrog {
				name = "🐸 " + name
			}
			fmt.Fprintf(&b, "  %s %s %s\n",
				formatter.TaskStatusIndicator(task.Status),
				name,
				formatter.StyleDim.Render(planner.FormatMinutes(task.Duration)),
			)
		}
		b.WriteString("\n")
	}

	mins := int(m.remaining.Minutes())
	secs := int(m.remaining.Seconds()) % 60
	fmt.Fprintf(&b, "  %s  %02d:%02d", m.bar.ViewAs(pct), mins, secs)
	if m.paused {
		b.WriteString("  " + formatter.StyleYellow.Render("⏸ paused"))
	}
	b.WriteString("\n\n" + formatter.StyleDim.Render("space pause · n next box · q quit") + "\n")
	return b.String()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
