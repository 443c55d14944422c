package cli

import (
	"github.com/spf13/cobra"

	"github.com/gzhole/kubeguard/internal/config"
)

var (
	settingsPath string
	logPath      string
	debug        bool
)

var guardCmd = &cobra.Command{
	Use:   guardCommandName,
	Short: "kubeguard's own commands",
	Long: `Commands that inspect kubeguard itself rather than run kubectl.

  kubeguard guard resolve -- --context prod delete pod web-1
  kubeguard guard log --last 20
  kubeguard guard version`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// guardRoot only exists so that help and usage lines read
// "kubeguard guard ...". It is never reached without "guard" as the first
// argument.
var guardRoot = &cobra.Command{
	Use:               "kubeguard",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
}

func init() {
	guardRoot.AddCommand(guardCmd)
	guardCmd.PersistentFlags().StringVar(&settingsPath, "config", "", "Path to settings YAML file (default: ~/.kubeguard/config.yaml)")
	guardCmd.PersistentFlags().StringVar(&logPath, "log", "", "Path to audit log file (default: ~/.kubeguard/audit.jsonl)")
	guardCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug diagnostics on stderr")
}

func guardOptions() config.Options {
	return config.Options{
		SettingsPath: settingsPath,
		LogPath:      logPath,
		Debug:        debug,
	}
}
