package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dedatech/workplan/internal/schedule"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
)

// treeLine is one rendered row: connectors plus styled text, with an
// optional right-aligned badge.
type treeLine struct {
	content string
	badge   string
}

// RenderScheduleTree renders a schedule tree as an indented outline using
// box-drawing connectors. Done items get a green ✔ prefix, in-progress items
// an amber ▶ prefix; date-range badges are right-aligned.
func RenderScheduleTree(root *schedule.Node) string {
	if root == nil {
		return ""
	}

	var lines []treeLine
	collectLines(root, 0, true, &lines)

	maxWidth := 0
	for _, li := range lines {
		if w := lipgloss.Width(li.content); w > maxWidth {
			maxWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		if li.badge != "" {
			pad := maxWidth - lipgloss.Width(li.content)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(li.content + strings.Repeat(" ", pad) + "  " + li.badge + "\n")
		} else {
			b.WriteString(li.content + "\n")
		}
	}
	return b.String()
}

func collectLines(n *schedule.Node, level int, isLast bool, out *[]treeLine) {
	var prefix string
	if level > 0 {
		for i := 1; i < level; i++ {
			prefix += treePipe
		}
		if isLast {
			prefix += treeCorner
		} else {
			prefix += treeBranch
		}
	}

	title := n.Text
	statusPrefix := ""
	switch {
	case strings.EqualFold(n.Status, "DONE") || strings.EqualFold(n.Status, "completed"):
		statusPrefix = StyleGreen.Render("✔ ")
		title = Dim(title)
	case strings.EqualFold(n.Status, "IN_PROGRESS"):
		statusPrefix = StyleYellowBold.Render("▶ ")
		title = StyleYellowBold.Render(title)
	}
	if n.Kind == schedule.NodeTask && n.Priority != "" {
		title = PriorityStyle(n.Priority).Render("● ") + title
	}
	if n.OwnerName != "" {
		title += StyleDim.Render(" @" + n.OwnerName)
	}

	*out = append(*out, treeLine{
		content: prefix + statusPrefix + title,
		badge:   dateBadge(n),
	})

	for i, c := range n.Children {
		collectLines(c, level+1, i == len(n.Children)-1, out)
	}
}

func dateBadge(n *schedule.Node) string {
	if n.PlannedStart == nil || n.PlannedEnd == nil {
		return ""
	}
	text := fmt.Sprintf("%s → %s",
		n.PlannedStart.Format("2006-01-02"), n.PlannedEnd.Format("2006-01-02"))
	if n.DurationDays != nil {
		text += fmt.Sprintf(" · %dd", *n.DurationDays)
	}
	return StyleBlue.Render("[ " + text + " ]")
}

// FormatDate renders a nullable date, using a dim dash for nil.
func FormatDate(t *time.Time) string {
	if t == nil {
		return Dim("—")
	}
	return t.Format("2006-01-02")
}
