package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gzhole/kubeguard/internal/config"
	"github.com/gzhole/kubeguard/internal/logger"
	"github.com/gzhole/kubeguard/internal/metadata"
	"github.com/gzhole/kubeguard/internal/policy"
)

var resolveOutput string

var resolveCmd = &cobra.Command{
	Use:   "resolve [flags] -- <kubectl args...>",
	Short: "Show which context, namespace and subcommand kubectl would use",
	Long: `Resolve a kubectl argument vector against the kubeconfig and report the
target and gate decision without running anything. Put kubectl's own flags
after --.

Examples:
  kubeguard guard resolve -- get pods
  kubeguard guard resolve --output json -- --context prod -n payments delete pod web-1`,
	RunE: resolveCommand,
}

type resolveReport struct {
	metadata.Metadata
	Kubeconfig     string   `json:"kubeconfig"`
	Decision       string   `json:"decision"`
	TriggeredRules []string `json:"triggered_rules"`
}

func init() {
	resolveCmd.Flags().StringVarP(&resolveOutput, "output", "o", "text", "Output format: text or json")
	guardCmd.AddCommand(resolveCmd)
}

func resolveCommand(cmd *cobra.Command, args []string) error {
	if resolveOutput != "text" && resolveOutput != "json" {
		return fmt.Errorf("unknown output format %q (want text or json)", resolveOutput)
	}

	cfg, err := config.Load(guardOptions())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.InitDiagnostics(cmd.ErrOrStderr(), cfg.Debug)

	target, err := resolveTarget(cfg, args)
	if err != nil {
		return err
	}

	report := resolveReport{
		Metadata:       target.meta,
		Kubeconfig:     target.kubeconfigPath,
		Decision:       string(target.eval.Decision),
		TriggeredRules: target.eval.TriggeredRules,
	}

	out := cmd.OutOrStdout()
	if resolveOutput == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "Context:    %s\n", report.Context)
	fmt.Fprintf(out, "Namespace:  %s\n", report.Namespace)
	fmt.Fprintf(out, "Command:    %s\n", report.Command)
	fmt.Fprintf(out, "Kubeconfig: %s\n", report.Kubeconfig)
	fmt.Fprintln(out)
	fmt.Fprint(out, target.eval.Explanation)
	if report.Decision == string(policy.DecisionConfirm) {
		fmt.Fprintln(out, "kubeguard would ask for confirmation before running this command.")
	}
	return nil
}
