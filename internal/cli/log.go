package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/IGLOU-EU/go-wildcard/v2"
	"github.com/spf13/cobra"

	"github.com/gzhole/kubeguard/internal/approval"
	"github.com/gzhole/kubeguard/internal/config"
	"github.com/gzhole/kubeguard/internal/logger"
)

var (
	logFilterDecision string
	logFilterContext  string
	logLast           int
	logSummary        bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View and filter the audit log",
	Long: `View the kubeguard audit log with filtering and summary options.

Examples:
  kubeguard guard log                        # Show all entries
  kubeguard guard log --last 20              # Show last 20 entries
  kubeguard guard log --decision CONFIRM     # Show only gated commands
  kubeguard guard log --context 'prod-*'     # Show commands against prod contexts
  kubeguard guard log --summary              # Show summary stats`,
	RunE: logCommand,
}

func init() {
	logCmd.Flags().StringVar(&logFilterDecision, "decision", "", "Filter by decision (ALLOW, CONFIRM)")
	logCmd.Flags().StringVar(&logFilterContext, "context", "", "Filter by context (wildcards allowed)")
	logCmd.Flags().IntVar(&logLast, "last", 0, "Show last N entries")
	logCmd.Flags().BoolVar(&logSummary, "summary", false, "Show summary statistics")
	guardCmd.AddCommand(logCmd)
}

func logCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(guardOptions())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	events, err := readAuditLog(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No audit log entries found.")
		return nil
	}

	filtered := filterEvents(events)

	if logLast > 0 && logLast < len(filtered) {
		filtered = filtered[len(filtered)-logLast:]
	}

	if logSummary {
		printSummary(out, filtered)
		return nil
	}

	printEvents(out, filtered)
	return nil
}

func readAuditLog(path string) ([]logger.AuditEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []logger.AuditEvent
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var event logger.AuditEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue // skip malformed lines
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}

func filterEvents(events []logger.AuditEvent) []logger.AuditEvent {
	if logFilterDecision == "" && logFilterContext == "" {
		return events
	}

	var filtered []logger.AuditEvent
	for _, e := range events {
		if logFilterDecision != "" && !strings.EqualFold(e.Decision, logFilterDecision) {
			continue
		}
		if logFilterContext != "" && !wildcard.Match(logFilterContext, e.Context) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func printEvents(out io.Writer, events []logger.AuditEvent) {
	for _, e := range events {
		ts := formatTimestamp(e.Timestamp)
		icon := decisionIcon(e)

		fmt.Fprintf(out, "%s %s [%s/%s] %s\n", icon, ts, e.Context, e.Namespace, approval.CommandLine("kubectl", e.Args))

		if len(e.TriggeredRules) > 0 {
			fmt.Fprintf(out, "     Rules: %s\n", strings.Join(e.TriggeredRules, ", "))
		}
		if e.UserAction != "" {
			fmt.Fprintf(out, "     Action: %s\n", e.UserAction)
		}
		if e.ExitCode != nil && *e.ExitCode != 0 {
			fmt.Fprintf(out, "     Exit: %d\n", *e.ExitCode)
		}
		if e.Error != "" {
			fmt.Fprintf(out, "     Error: %s\n", e.Error)
		}
		fmt.Fprintln(out)
	}
}

func printSummary(out io.Writer, events []logger.AuditEvent) {
	counts := map[string]int{}
	approved, denied, failed := 0, 0, 0
	contexts := map[string]int{}

	for _, e := range events {
		counts[e.Decision]++
		contexts[e.Context]++
		switch {
		case e.UserAction == approval.ActionApprove:
			approved++
		case e.UserAction != "":
			denied++
		}
		if e.Error != "" || (e.ExitCode != nil && *e.ExitCode != 0) {
			failed++
		}
	}

	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintln(out, "  kubeguard Audit Summary")
	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintf(out, "  Total events:    %d\n", len(events))
	fmt.Fprintf(out, "  ALLOW:           %d\n", counts["ALLOW"])
	fmt.Fprintf(out, "  CONFIRM:         %d\n", counts["CONFIRM"])
	fmt.Fprintf(out, "    approved:      %d\n", approved)
	fmt.Fprintf(out, "    denied:        %d\n", denied)
	fmt.Fprintf(out, "  Failed:          %d\n", failed)
	fmt.Fprintf(out, "  Contexts:        %d\n", len(contexts))
	fmt.Fprintln(out, "═══════════════════════════════════════════")

	if len(events) > 0 {
		fmt.Fprintf(out, "  First event:     %s\n", formatTimestamp(events[0].Timestamp))
		fmt.Fprintf(out, "  Last event:      %s\n", formatTimestamp(events[len(events)-1].Timestamp))
	}

	fmt.Fprintln(out)
}

func decisionIcon(e logger.AuditEvent) string {
	switch {
	case e.UserAction != "" && e.UserAction != approval.ActionApprove:
		return "\xf0\x9f\x9b\x91" // stop sign
	case e.Decision == "CONFIRM":
		return "\xe2\x9a\xa0\xef\xb8\x8f" // warning
	case e.Decision == "ALLOW":
		return "\xe2\x9c\x85" // check mark
	default:
		return "\xe2\x9d\x93" // question mark
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
