package policy

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gzhole/kubeguard/internal/metadata"
)

var defaultUnsafe = []string{"delete", "apply", "drain", "edit"}

func TestEngine_UnsafeCommands(t *testing.T) {
	engine := NewEngine(New(defaultUnsafe, nil))

	tests := []struct {
		command  string
		expected Decision
	}{
		{"delete", DecisionConfirm},
		{"apply", DecisionConfirm},
		{"drain", DecisionConfirm},
		{"get", DecisionAllow},
		{"describe", DecisionAllow},
		{"logs", DecisionAllow},
		{"Delete", DecisionAllow}, // exact, case-sensitive match
		{"deletes", DecisionAllow},
	}

	for _, tt := range tests {
		meta := metadata.Metadata{Context: "dev", Namespace: "default", Command: tt.command}
		result := engine.Evaluate(meta)
		if result.Decision != tt.expected {
			t.Errorf("command %q: expected %s, got %s", tt.command, tt.expected, result.Decision)
		}
	}
}

func TestEngine_TriggeredRules(t *testing.T) {
	engine := NewEngine(New(defaultUnsafe, nil))

	result := engine.Evaluate(metadata.Metadata{Context: "dev", Namespace: "ns", Command: "delete"})
	if !reflect.DeepEqual(result.TriggeredRules, []string{RuleUnsafeCommand}) {
		t.Errorf("expected [%s], got %v", RuleUnsafeCommand, result.TriggeredRules)
	}
	if len(result.Reasons) != 1 {
		t.Errorf("expected one reason, got %v", result.Reasons)
	}

	result = engine.Evaluate(metadata.Metadata{Context: "dev", Namespace: "ns", Command: "get"})
	if len(result.TriggeredRules) != 0 {
		t.Errorf("expected no triggered rules, got %v", result.TriggeredRules)
	}
}

func TestEngine_ProtectedContexts(t *testing.T) {
	engine := NewEngine(New(defaultUnsafe, []string{"prod-*", "*-live", "exact"}))

	tests := []struct {
		context  string
		command  string
		expected Decision
		rules    []string
	}{
		{"prod-eu", "get", DecisionConfirm, []string{RuleProtectedContext}},
		{"shop-live", "logs", DecisionConfirm, []string{RuleProtectedContext}},
		{"exact", "get", DecisionConfirm, []string{RuleProtectedContext}},
		{"exactly", "get", DecisionAllow, []string{}},
		{"staging", "get", DecisionAllow, []string{}},
		{"staging", "delete", DecisionConfirm, []string{RuleUnsafeCommand}},
		{"prod-us", "delete", DecisionConfirm, []string{RuleUnsafeCommand, RuleProtectedContext}},
	}

	for _, tt := range tests {
		meta := metadata.Metadata{Context: tt.context, Namespace: "default", Command: tt.command}
		result := engine.Evaluate(meta)
		if result.Decision != tt.expected {
			t.Errorf("%s/%s: expected %s, got %s", tt.context, tt.command, tt.expected, result.Decision)
		}
		if !reflect.DeepEqual(result.TriggeredRules, tt.rules) {
			t.Errorf("%s/%s: expected rules %v, got %v", tt.context, tt.command, tt.rules, result.TriggeredRules)
		}
	}
}

func TestEngine_EmptyPolicyAllowsEverything(t *testing.T) {
	p := New(nil, nil)
	if len(p.Rules) != 0 {
		t.Fatalf("expected no rules, got %d", len(p.Rules))
	}
	engine := NewEngine(p)

	result := engine.Evaluate(metadata.Metadata{Context: "prod", Namespace: "default", Command: "delete"})
	if result.Decision != DecisionAllow {
		t.Errorf("expected ALLOW, got %s", result.Decision)
	}
}

func TestEngine_Explanation(t *testing.T) {
	engine := NewEngine(New(defaultUnsafe, nil))

	result := engine.Evaluate(metadata.Metadata{Context: "prod", Namespace: "payments", Command: "delete"})
	for _, want := range []string{"Decision: CONFIRM", "prod/payments", "delete", RuleUnsafeCommand} {
		if !strings.Contains(result.Explanation, want) {
			t.Errorf("explanation missing %q:\n%s", want, result.Explanation)
		}
	}
}
