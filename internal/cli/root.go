package cli

import (
	"context"

	"github.com/spf13/cobra"
)

// guardCommandName is the one first argument kubeguard keeps for itself;
// everything else belongs to kubectl.
const guardCommandName = "guard"

var rootCmd = &cobra.Command{
	Use:   "kubeguard [kubectl flags] <command> [args...]",
	Short: "kubeguard - confirmation gate in front of kubectl",
	Long: `kubeguard wraps kubectl. It works out which context and namespace a
command targets and asks for confirmation before running state-changing
subcommands such as delete or apply.

All arguments are passed to kubectl unchanged. Use "kubeguard guard" for
kubeguard's own commands.`,
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	SilenceUsage:       true,
	SilenceErrors:      true,
	RunE:               runCommand,
}

// Execute dispatches args either to the guard command tree or to the
// kubectl wrapper.
func Execute(ctx context.Context, args []string) error {
	if args == nil {
		args = []string{}
	}

	if len(args) > 0 && args[0] == guardCommandName {
		guardRoot.SetArgs(args)
		return guardRoot.ExecuteContext(ctx)
	}

	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
