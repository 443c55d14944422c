package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gzhole/kubeguard/internal/approval"
	"github.com/gzhole/kubeguard/internal/config"
	"github.com/gzhole/kubeguard/internal/kubeconfig"
	"github.com/gzhole/kubeguard/internal/logger"
	"github.com/gzhole/kubeguard/internal/metadata"
	"github.com/gzhole/kubeguard/internal/policy"
	"github.com/gzhole/kubeguard/internal/runner"
)

// ErrNotConfirmed is returned when a guarded command was not approved.
var ErrNotConfirmed = errors.New("execution cancelled")

type asker interface {
	Ask(p approval.Prompt) approval.Result
}

type kubectlRunner interface {
	Run(ctx context.Context, args []string) error
}

// Swapped in tests.
var (
	newAsker  = func() asker { return approval.NewAsker() }
	newRunner = func(binary string) kubectlRunner { return runner.New(binary) }
	now       = time.Now
)

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.Options{})
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.InitDiagnostics(cmd.ErrOrStderr(), cfg.Debug)

	target, err := resolveTarget(cfg, args)
	if err != nil {
		return err
	}

	auditLogger, err := logger.New(cfg.LogPath)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.LogPath).Msg("audit log unavailable")
	} else {
		defer auditLogger.Close()
	}

	event := logger.AuditEvent{
		Timestamp:      now().UTC().Format(time.RFC3339),
		Context:        target.meta.Context,
		Namespace:      target.meta.Namespace,
		Command:        target.meta.Command,
		Args:           args,
		Kubeconfig:     target.kubeconfigPath,
		Decision:       string(target.eval.Decision),
		TriggeredRules: target.eval.TriggeredRules,
	}

	if target.eval.Decision == policy.DecisionConfirm {
		result := newAsker().Ask(approval.Prompt{
			Binary:         cfg.KubectlPath,
			Args:           args,
			Context:        target.meta.Context,
			Namespace:      target.meta.Namespace,
			Command:        target.meta.Command,
			TriggeredRules: target.eval.TriggeredRules,
			Reasons:        target.eval.Reasons,
		})
		event.UserAction = result.UserAction

		if !result.Approved {
			writeAudit(auditLogger, event)
			if result.UserAction == approval.ActionNonInteractive {
				return fmt.Errorf("%w: confirmation required but stdin is not a terminal", ErrNotConfirmed)
			}
			return ErrNotConfirmed
		}
	}

	runErr := newRunner(cfg.KubectlPath).Run(cmd.Context(), args)

	code := runner.ExitCode(runErr)
	event.ExitCode = &code
	var exitErr *runner.ExitError
	if runErr != nil && !errors.As(runErr, &exitErr) {
		event.Error = runErr.Error()
	}
	writeAudit(auditLogger, event)

	return runErr
}

type resolvedTarget struct {
	kubeconfigPath string
	meta           metadata.Metadata
	eval           policy.EvalResult
}

// resolveTarget loads the kubeconfig kubectl would use, resolves the
// invocation against it and evaluates the gate policy.
func resolveTarget(cfg *config.Config, args []string) (*resolvedTarget, error) {
	path := metadata.KubeconfigPath(args, cfg.KubeconfigPath)

	kc, err := kubeconfig.Load(path)
	if err != nil {
		return nil, err
	}

	meta, err := metadata.Resolve(kc, args)
	if err != nil {
		return nil, err
	}

	engine := policy.NewEngine(policy.New(cfg.Settings.UnsafeCommands, cfg.Settings.ProtectedContexts))
	eval := engine.Evaluate(meta)

	log.Debug().
		Str("kubeconfig", path).
		Str("context", meta.Context).
		Str("namespace", meta.Namespace).
		Str("command", meta.Command).
		Str("decision", string(eval.Decision)).
		Msg("resolved kubectl target")

	return &resolvedTarget{
		kubeconfigPath: path,
		meta:           meta,
		eval:           eval,
	}, nil
}

func writeAudit(l *logger.AuditLogger, event logger.AuditEvent) {
	if l == nil {
		return
	}
	if err := l.Log(event); err != nil {
		log.Warn().Err(err).Msg("failed to write audit log")
	}
}
