package policy

import "fmt"

const (
	RuleUnsafeCommand    = "unsafe-command"
	RuleProtectedContext = "protected-context"
)

// New builds the gate policy from the configured unsafe subcommands and
// protected context patterns. Anything not matched is allowed.
func New(unsafeCommands, protectedContexts []string) *Policy {
	p := &Policy{
		Defaults: Defaults{Decision: DecisionAllow},
	}

	if len(unsafeCommands) > 0 {
		p.Rules = append(p.Rules, Rule{
			ID:       RuleUnsafeCommand,
			Match:    Match{Commands: unsafeCommands},
			Decision: DecisionConfirm,
			Reason:   "Subcommand changes cluster state.",
		})
	}

	if len(protectedContexts) > 0 {
		p.Rules = append(p.Rules, Rule{
			ID:       RuleProtectedContext,
			Match:    Match{Contexts: protectedContexts},
			Decision: DecisionConfirm,
			Reason:   fmt.Sprintf("Target context is protected (%d pattern(s) configured).", len(protectedContexts)),
		})
	}

	return p
}
