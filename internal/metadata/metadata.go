// Package metadata works out which context, namespace and subcommand a
// kubectl invocation targets.
//
// Resolution follows kubectl's own precedence: --context overrides the
// kubeconfig's current-context, --namespace (or -n) overrides the context's
// default namespace, and a context without a namespace means "default".
package metadata

import (
	"github.com/gzhole/kubeguard/internal/argscan"
	"github.com/gzhole/kubeguard/internal/kubeconfig"
)

const (
	FlagContext        = "--context"
	FlagNamespace      = "--namespace"
	FlagNamespaceShort = "-n"
	FlagKubeconfig     = "--kubeconfig"
)

// Metadata is the resolved target of a kubectl invocation.
type Metadata struct {
	Context   string `json:"context"`
	Namespace string `json:"namespace"`
	Command   string `json:"command"`
}

// Overrides holds what the argument vector itself says, before the
// kubeconfig is consulted. A nil field means the flag was not given.
type Overrides struct {
	Context   *string
	Namespace *string
	Command   *string
}

// Scan walks args once, left to right. Later occurrences of a flag replace
// earlier ones. Only the first non-flag token is taken as the command.
func Scan(args []string) Overrides {
	var o Overrides

	for i := 0; i < len(args); i++ {
		token := args[i]

		if !argscan.IsFlag(token) {
			if o.Command == nil && token != "" {
				o.Command = &token
			}
			continue
		}

		rest := args[i+1:]
		if v, n, ok := argscan.Value(token, FlagContext, rest); ok {
			o.Context = &v
			i += n
		} else if v, n, ok := argscan.Value(token, FlagNamespace, rest); ok {
			o.Namespace = &v
			i += n
		} else if v, n, ok := argscan.Value(token, FlagNamespaceShort, rest); ok {
			o.Namespace = &v
			i += n
		}
	}

	return o
}

// KubeconfigPath returns the file kubectl would read for args: the last
// non-empty --kubeconfig value, otherwise fallback. It is a separate pass
// so that Scan keeps treating --kubeconfig as an unrecognized flag.
func KubeconfigPath(args []string, fallback string) string {
	path := fallback
	for i := 0; i < len(args); i++ {
		v, n, ok := argscan.Value(args[i], FlagKubeconfig, args[i+1:])
		if !ok {
			continue
		}
		if v != "" {
			path = v
		}
		i += n
	}
	return path
}

// Resolve computes the effective context, namespace and command for args
// against cfg. It never modifies cfg.
func Resolve(cfg *kubeconfig.Config, args []string) (Metadata, error) {
	o := Scan(args)

	// An explicit --context wins even when empty.
	target := cfg.CurrentContext
	if o.Context != nil {
		target = *o.Context
	}
	if target == "" {
		return Metadata{}, &ContextNotFoundError{Name: target, Available: cfg.Names()}
	}

	var namespace string
	if o.Namespace != nil && *o.Namespace != "" {
		namespace = *o.Namespace
	} else {
		ctx, ok := cfg.Lookup(target)
		if !ok {
			return Metadata{}, &ContextNotFoundError{Name: target, Available: cfg.Names()}
		}
		namespace = ctx.NamespaceOrDefault()
	}

	if o.Command == nil {
		return Metadata{}, ErrNoCommandSpecified
	}

	return Metadata{
		Context:   target,
		Namespace: namespace,
		Command:   *o.Command,
	}, nil
}
