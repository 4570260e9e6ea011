package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"pomoplan/internal/domain"
	"pomoplan/internal/planner"
)

// FormatSessionList renders one line per stored session, newest first.
func FormatSessionList(sessions []*domain.Session) string {
	if len(sessions) == 0 {
		return StyleDim.Render("No sessions yet. Run `pomoplan plan` to create one.")
	}

	var b strings.Builder
	for _, s := range sessions {
		status := StatusStyle(s.Status).Render(string(s.Status))
		pct := planner.CompletionPercentage(s)
		fmt.Fprintf(&b, "%s  %-12s %6s  %s\n",
			StyleBold.Render(s.Date),
			status,
			planner.FormatMinutes(s.TotalDuration),
			RenderProgress(float64(pct)/100, 10),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatSessionDetail renders the full schedule for one session: the story
// blocks, their timeline of boxes, and the closing estimates line.
func FormatSessionDetail(s *domain.Session, estimates planner.TimeEstimates) string {
	var b strings.Builder

	header := fmt.Sprintf("%s  %s", s.Date, StatusStyle(s.Status).Render(string(s.Status)))
	b.WriteString(StyleHeader.Render("SESSION ") + header + "\n\n")

	for _, story := range s.StoryBlocks {
		b.WriteString(formatStory(story))
		b.WriteString("\n")
	}

	if s.IncompleteTasks != nil && s.IncompleteTasks.Count > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("%d task(s) left unfinished:", s.IncompleteTasks.Count)) + "\n")
		for _, t := range s.IncompleteTasks.Tasks {
			marker := "•"
			if t.Mitigated {
				marker = "~"
			}
			fmt.Fprintf(&b, "  %s %s (%s, %s)\n", marker, t.Title, t.StoryTitle, planner.FormatMinutes(t.Duration))
		}
		b.WriteString("\n")
	}

	pct := planner.CompletionPercentage(s)
	fmt.Fprintf(&b, "%s %s · ends %s · %s\n",
		StyleDim.Render("total"),
		estimates.TotalTime,
		estimates.EstimatedEnd,
		RenderProgress(float64(pct)/100, 14),
	)
	return b.String()
}

func formatStory(story domain.Story) string {
	var b strings.Builder

	title := story.Title
	if story.Icon != "" {
		title = story.Icon + " " + title
	}
	fmt.Fprintf(&b, "%s %s\n",
		StyleBold.Render(title),
		StyleDim.Render(fmt.Sprintf("(%s)", planner.FormatMinutes(story.EstimatedDuration))),
	)
	if story.Summary != "" {
		b.WriteString(StyleDim.Render("  "+story.Summary) + "\n")
	}

	for _, box := range story.TimeBoxes {
		b.WriteString("  " + formatBox(box) + "\n")
	}
	return b.String()
}

func formatBox(box domain.TimeBox) string {
	window := boxWindow(box)
	label := BoxStyle(box.Type).Render(string(box.Type))

	if box.Type != domain.BoxWork {
		return fmt.Sprintf("%s %-12s %s", window, label, StyleDim.Render(planner.FormatMinutes(box.Duration)))
	}

	var tasks []string
	for _, task := range box.Tasks {
		name := task.Title
		if task.IsFrog {
			name = "🐸 " + name
		}
		tasks = append(tasks, TaskStatusIndicator(task.Status)+" "+name)
	}
	return fmt.Sprintf("%s %-12s %s %s",
		window,
		label,
		StyleDim.Render(planner.FormatMinutes(box.Duration)),
		strings.Join(tasks, ", "),
	)
}

// boxWindow renders "09:00–09:25" from the box's estimated times.
func boxWindow(box domain.TimeBox) string {
	start, err1 := time.Parse(time.RFC3339, box.EstimatedStartTime)
	end, err2 := time.Parse(time.RFC3339, box.EstimatedEndTime)
	if err1 != nil || err2 != nil {
		return StyleDim.Render("     –     ")
	}
	return StyleDim.Render(start.Format("15:04") + "–" + end.Format("15:04"))
}

// FormatCoverageGaps renders the warning block for input lines the organizer
// failed to carry into the plan.
func FormatCoverageGaps(gaps []string) string {
	if len(gaps) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(StyleYellow.Render("⚠ Some input tasks are missing from the plan:") + "\n")
	for _, gap := range gaps {
		fmt.Fprintf(&b, "  - %s\n", gap)
	}
	return b.String()
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}
