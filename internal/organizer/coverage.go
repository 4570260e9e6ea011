package organizer

import (
	"log/slog"
	"strings"

	"pomoplan/internal/domain"
)

// CheckCoverage diffs the original input lines against the normalized task
// titles and returns the lines the organizer silently dropped. Matching is
// case-insensitive and whitespace-trimmed; a line counts as covered when it
// equals a task title or one contains the other.
//
// Coverage gaps are advisory. Callers log them and proceed; a dropped task
// never blocks session creation.
func CheckCoverage(inputLines []string, stories []domain.Story) []string {
	var titles []string
	for _, s := range stories {
		for _, t := range s.Tasks {
			titles = append(titles, normalizeText(t.Title))
		}
	}

	var gaps []string
	for _, line := range inputLines {
		norm := normalizeText(line)
		if norm == "" {
			continue
		}
		if !covered(norm, titles) {
			gaps = append(gaps, line)
		}
	}
	return gaps
}

func covered(line string, titles []string) bool {
	for _, title := range titles {
		if title == "" {
			continue
		}
		if line == title || strings.Contains(line, title) || strings.Contains(title, line) {
			return true
		}
	}
	return false
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// LogCoverageGaps reports gaps as warnings. Non-fatal by design: the
// upstream collaborator dropping a task is recoverable, the user re-adds it.
func LogCoverageGaps(logger *slog.Logger, gaps []string) {
	if logger == nil {
		return
	}
	for _, line := range gaps {
		logger.Warn("task missing from organized output", "input_line", line)
	}
}
