package approval

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"mvdan.cc/sh/v3/syntax"
)

const (
	ActionApprove        = "approve_once"
	ActionDeny           = "deny"
	ActionNonInteractive = "auto_deny_non_interactive"
	ActionReadError      = "error_reading_input"
)

type Result struct {
	Approved   bool
	UserAction string
}

type Prompt struct {
	Binary         string
	Args           []string
	Context        string
	Namespace      string
	Command        string
	TriggeredRules []string
	Reasons        []string
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	labelStyle   = lipgloss.NewStyle().Faint(true)
	contextStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	nsStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	cmdStyle     = lipgloss.NewStyle().Bold(true)
)

// Asker prompts on Out and reads the answer from In.
type Asker struct {
	In          io.Reader
	Out         io.Writer
	Interactive func() bool
}

// NewAsker returns an Asker bound to the process stdin and stderr.
func NewAsker() *Asker {
	return &Asker{
		In:          os.Stdin,
		Out:         os.Stderr,
		Interactive: IsInteractive,
	}
}

func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Ask shows the prompt and waits for one answer. Only "y" or "yes" approve;
// anything else, including an empty line, denies.
func (a *Asker) Ask(p Prompt) Result {
	if a.Interactive != nil && !a.Interactive() {
		return Result{
			Approved:   false,
			UserAction: ActionNonInteractive,
		}
	}

	fmt.Fprintln(a.Out, Render(p))
	fmt.Fprint(a.Out, "Continue? [y/N]: ")

	reader := bufio.NewReader(a.In)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return Result{
			Approved:   false,
			UserAction: ActionReadError,
		}
	}

	switch strings.TrimSpace(strings.ToLower(input)) {
	case "y", "yes":
		return Result{
			Approved:   true,
			UserAction: ActionApprove,
		}
	default:
		return Result{
			Approved:   false,
			UserAction: ActionDeny,
		}
	}
}

// Render formats the confirmation banner.
func Render(p Prompt) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("⚠  CONFIRMATION REQUIRED"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Context:  "), contextStyle.Render(p.Context))
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Namespace:"), nsStyle.Render(p.Namespace))
	fmt.Fprintf(&sb, "%s %s\n", labelStyle.Render("Command:  "), cmdStyle.Render(CommandLine(p.Binary, p.Args)))

	if len(p.TriggeredRules) > 0 {
		fmt.Fprintf(&sb, "\n%s %s\n", labelStyle.Render("Triggered rules:"), strings.Join(p.TriggeredRules, ", "))
	}
	for _, reason := range p.Reasons {
		fmt.Fprintf(&sb, "  • %s\n", reason)
	}

	return sb.String()
}

// CommandLine joins binary and args into a line that can be pasted back
// into a shell.
func CommandLine(binary string, args []string) string {
	parts := make([]string, 0, len(args)+1)
	if binary != "" {
		parts = append(parts, quote(binary))
	}
	for _, arg := range args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangBash)
	if err != nil {
		return s
	}
	return q
}
