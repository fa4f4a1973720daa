// Package console is the terminal front end of an interview.
package console

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spigell/talentscout/internal/interview"
	"github.com/spigell/talentscout/internal/telemetry"
)

const progressWidth = 20

// Console writes interview output to a terminal.
type Console struct {
	out      io.Writer
	markdown *markdownRenderer

	assistant *color.Color
	muted     *color.Color
	label     *color.Color
	good      *color.Color
	bad       *color.Color
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// New returns a console writing to out. Colors are used only when colored is set.
func New(out io.Writer, colored bool) *Console {
	c := &Console{
		out:       out,
		markdown:  newMarkdownRenderer(colored),
		assistant: color.New(color.FgGreen, color.Bold),
		muted:     color.New(color.Faint),
		label:     color.New(color.Bold),
		good:      color.New(color.FgGreen),
		bad:       color.New(color.FgRed),
	}
	if !colored {
		for _, col := range []*color.Color{c.assistant, c.muted, c.label, c.good, c.bad} {
			col.DisableColor()
		}
	}
	return c
}

// Messages prints assistant turns. Candidate turns are already on screen.
func (c *Console) Messages(messages []interview.Message) {
	for _, m := range messages {
		if m.Role != interview.RoleAssistant {
			continue
		}
		fmt.Fprintf(c.out, "\n%s\n%s\n", c.assistant.Sprint("TalentScout:"), c.markdown.Render(m.Content))
	}
}

// Markdown prints free markdown text such as the privacy notice.
func (c *Console) Markdown(src string) {
	fmt.Fprintln(c.out, c.markdown.Render(src))
}

// Info prints a dimmed one-line note.
func (c *Console) Info(format string, args ...any) {
	fmt.Fprintln(c.out, c.muted.Sprintf(format, args...))
}

// Progress prints the stage progress bar.
func (c *Console) Progress(stage interview.Stage) {
	fmt.Fprintln(c.out, c.muted.Sprint(ProgressLine(stage)))
}

// ProgressLine renders "[#####---------------] 30% Email".
func ProgressLine(stage interview.Stage) string {
	pct := stage.Progress()
	filled := pct * progressWidth / 100
	return fmt.Sprintf("[%s%s] %d%% %s",
		strings.Repeat("#", filled),
		strings.Repeat("-", progressWidth-filled),
		pct,
		stage.Label(),
	)
}

// StatusView is what the status panel shows about a session.
type StatusView struct {
	Stage     interview.Stage
	Record    interview.CandidateRecord
	Language  string
	Sentiment []float64
	Questions int
	Answered  int
}

// Status prints the candidate panel with email and phone masked.
func (c *Console) Status(v StatusView) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.label.Sprint("Candidate"))
	for _, row := range StatusRows(v) {
		fmt.Fprintf(c.out, "  %-12s %s\n", row[0]+":", row[1])
	}

	summary := telemetry.Summarize(v.Sentiment)
	if summary.Samples > 0 {
		paint := c.muted
		switch summary.Label {
		case telemetry.LabelPositive:
			paint = c.good
		case telemetry.LabelNegative:
			paint = c.bad
		}
		fmt.Fprintf(c.out, "  %-12s %s\n", "Sentiment:", paint.Sprintf("%s (%.2f)", summary.Label, summary.Average))
	}
}

// StatusRows lists the non-empty panel rows in display order.
func StatusRows(v StatusView) [][2]string {
	r := v.Record
	rows := [][2]string{{"Stage", fmt.Sprintf("%s (%d%%)", v.Stage.Label(), v.Stage.Progress())}}

	add := func(name, value string) {
		if value != "" {
			rows = append(rows, [2]string{name, value})
		}
	}

	add("Name", r.Name)
	if r.Email != "" {
		add("Email", interview.MaskEmail(r.Email))
	}
	if r.Phone != "" {
		add("Phone", interview.MaskPhone(r.Phone))
	}
	if r.YearsOfExperience != nil {
		add("Experience", strconv.FormatFloat(*r.YearsOfExperience, 'f', -1, 64)+" years")
	}
	add("Positions", strings.Join(r.DesiredPositions, ", "))
	add("Location", r.Location)
	add("Tech stack", strings.Join(r.TechStack, ", "))
	if v.Questions > 0 {
		add("Questions", fmt.Sprintf("%d/%d answered", v.Answered, v.Questions))
	}
	if v.Language != "" {
		add("Language", telemetry.LanguageName(v.Language))
	}
	return rows
}
