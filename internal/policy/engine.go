package policy

import (
	"fmt"
	"slices"
	"strings"

	"github.com/IGLOU-EU/go-wildcard/v2"

	"github.com/gzhole/kubeguard/internal/metadata"
)

type Engine struct {
	policy *Policy
}

func NewEngine(p *Policy) *Engine {
	return &Engine{policy: p}
}

// Evaluate decides whether the resolved invocation needs confirmation.
// Every matching rule is reported; the most restrictive decision wins.
func (e *Engine) Evaluate(meta metadata.Metadata) EvalResult {
	result := EvalResult{
		Decision:       e.policy.Defaults.Decision,
		TriggeredRules: []string{},
		Reasons:        []string{},
	}

	var bestDecision Decision
	matched := false

	for _, rule := range e.policy.Rules {
		if !matchRule(meta, rule) {
			continue
		}
		if !matched || decisionSeverity(rule.Decision) > decisionSeverity(bestDecision) {
			bestDecision = rule.Decision
			matched = true
		}
		result.TriggeredRules = append(result.TriggeredRules, rule.ID)
		result.Reasons = append(result.Reasons, rule.Reason)
	}

	if matched && decisionSeverity(bestDecision) > decisionSeverity(result.Decision) {
		result.Decision = bestDecision
	}

	result.Explanation = buildExplanation(meta, result)
	return result
}

// decisionSeverity returns a numeric severity for priority comparison.
// Higher number = more restrictive decision.
func decisionSeverity(d Decision) int {
	switch d {
	case DecisionConfirm:
		return 2
	case DecisionAllow:
		return 1
	default:
		return 0
	}
}

func matchRule(meta metadata.Metadata, rule Rule) bool {
	if slices.Contains(rule.Match.Commands, meta.Command) {
		return true
	}

	for _, pattern := range rule.Match.Contexts {
		if wildcard.Match(pattern, meta.Context) {
			return true
		}
	}

	return false
}

func buildExplanation(meta metadata.Metadata, result EvalResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Decision: %s\n", result.Decision)
	fmt.Fprintf(&sb, "Target: %s/%s (%s)\n", meta.Context, meta.Namespace, meta.Command)

	if len(result.TriggeredRules) > 0 {
		fmt.Fprintf(&sb, "Triggered rules: %s\n", strings.Join(result.TriggeredRules, ", "))
	}

	if len(result.Reasons) > 0 {
		sb.WriteString("Reasons:\n")
		for _, reason := range result.Reasons {
			fmt.Fprintf(&sb, "  - %s\n", reason)
		}
	}

	return sb.String()
}
