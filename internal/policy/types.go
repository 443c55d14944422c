package policy

type Decision string

const (
	DecisionAllow   Decision = "ALLOW"
	DecisionConfirm Decision = "CONFIRM"
)

type Policy struct {
	Defaults Defaults
	Rules    []Rule
}

type Defaults struct {
	Decision Decision
}

type Rule struct {
	ID       string
	Match    Match
	Decision Decision
	Reason   string
}

// Match is satisfied when any listed command equals the kubectl subcommand,
// or any context pattern matches the target context. Context patterns use
// '*' and '?' wildcards.
type Match struct {
	Commands []string
	Contexts []string
}

type EvalResult struct {
	Decision       Decision
	TriggeredRules []string
	Reasons        []string
	Explanation    string
}
