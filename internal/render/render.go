// Package render owns every terminal surface: the banner, boxed sections,
// progress spinners, and the outcome display.
package render

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/exedev/tandem/internal/history"
	"github.com/exedev/tandem/internal/pipeline"
	"github.com/exedev/tandem/internal/refine"
)

var (
	ColorRed     = lipgloss.Color("1")
	ColorGreen   = lipgloss.Color("2")
	ColorYellow  = lipgloss.Color("3")
	ColorBlue    = lipgloss.Color("4")
	ColorMagenta = lipgloss.Color("5")
	ColorCyan    = lipgloss.Color("6")
	ColorWhite   = lipgloss.Color("7")
)

const (
	defaultWidth = 80
	minWidth     = 60
	maxWidth     = 100
)

var faint = lipgloss.NewStyle().Faint(true)

// Width is the rendering width, clamped so boxes stay readable on very
// narrow or very wide terminals.
func Width() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	if w < minWidth {
		return minWidth
	}
	if w > maxWidth {
		return maxWidth
	}
	return w
}

// Header prints a centered double-bordered banner line.
func Header(text string, color lipgloss.Color) {
	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(color).
		Foreground(color).
		Width(Width() - 2).
		Align(lipgloss.Center)
	fmt.Println("\n" + style.Render(text) + "\n")
}

// Section prints a titled box: a rule carrying the title, the body with a
// colored gutter, and a closing rule. Body text keeps its own colors.
func Section(title, content string, color lipgloss.Color) {
	style := lipgloss.NewStyle().Foreground(color)
	w := Width()

	rule := w - 6 - runewidth.StringWidth(title)
	if rule < 1 {
		rule = 1
	}
	fmt.Println(style.Render("╭─── " + title + " " + strings.Repeat("─", rule)))
	for _, line := range strings.Split(content, "\n") {
		fmt.Println(style.Render("│ ") + line)
	}
	fmt.Println(style.Render("╰" + strings.Repeat("─", w-2)))
}

// Banner prints the welcome header and the credential status box.
func Banner(reasonerKeySet, anthropicKeySet bool) {
	Header("🤖 Tandem Reasoning Chain 🤖", ColorCyan)
	Section("Status",
		fmt.Sprintf("OpenRouter API Key: %s\nAnthropic API Key: %s",
			mark(reasonerKeySet), mark(anthropicKeySet)),
		ColorBlue)
}

func mark(set bool) string {
	if set {
		return "✓"
	}
	return "✗"
}

// Question echoes the accepted question before the pipeline starts.
func Question(q string) {
	Header("Question", ColorYellow)
	Section("Input", q, ColorCyan)
}

// QuestionPrompt is the styled interactive input prompt.
func QuestionPrompt() string {
	return lipgloss.NewStyle().Foreground(ColorCyan).Render("🤔 Enter your question: ")
}

// Outcome prints the full result bundle for one question cycle.
func Outcome(out *pipeline.Outcome) {
	Header("DeepSeek's Analysis 🔍", ColorGreen)
	Section("Reasoning Process", out.First.Reasoning, ColorCyan)
	Section("Initial Answer", out.First.Answer, ColorGreen)
	elapsedLine("DeepSeek", out.FirstElapsed)

	Header("Claude's Analysis 🤔", ColorMagenta)
	Section("Prompt", refine.Prompt(out.Question, out.First.Reasoning), ColorBlue)
	Section("Response", out.Second.Text, ColorMagenta)
	elapsedLine("Claude", out.Second.Elapsed)

	Header("Final Comparison 🎯", ColorYellow)
	Section("DeepSeek's Answer", out.First.Answer, ColorGreen)
	Section("Claude's Answer", out.Second.Text, ColorMagenta)
	agreement(out)

	if out.Narrative != "" {
		Section("Model Critique", out.Narrative, ColorWhite)
	}
	for _, d := range out.Diagnostics {
		Section("Error", d, ColorRed)
	}
}

func elapsedLine(who string, d time.Duration) {
	if d <= 0 {
		return
	}
	fmt.Println(faint.Render(fmt.Sprintf("%s responded in %s", who, d.Round(100*time.Millisecond))))
}

func agreement(out *pipeline.Outcome) {
	verdict := "answers diverge"
	color := ColorRed
	if out.Agreement.Agree {
		verdict = "answers agree"
		color = ColorGreen
	}
	Section("Agreement",
		fmt.Sprintf("Lexical ratio %.0f%%: %s", out.Agreement.Ratio*100, verdict),
		color)
}

// Error renders a visible failure box; the session continues afterwards.
func Error(err error) {
	Section("Error", err.Error(), ColorRed)
}

// History prints the session history as numbered snippets.
func History(entries []history.Entry) {
	Header("Session History 📜", ColorCyan)
	if len(entries) == 0 {
		Section("History", "No questions asked yet.", ColorWhite)
		return
	}
	for i, e := range entries {
		title := fmt.Sprintf("%d. %s", i+1, e.AskedAt.Format("15:04:05"))
		body := fmt.Sprintf("Q: %s\nDeepSeek: %s\nClaude: %s",
			snippet(e.Question, 70),
			snippet(e.FirstAnswer, 70),
			snippet(e.SecondAnswer, 70))
		Section(title, body, ColorWhite)
	}
}

// snippet reduces multi-line text to its first line, truncated to fit.
func snippet(s string, w int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return runewidth.Truncate(s, w, "…")
}
