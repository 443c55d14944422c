// Package kubeconfig reads the parts of a kubeconfig file that decide where
// a kubectl command lands: the current context and each context's default
// namespace. Clusters, users and credentials are never looked at.
package kubeconfig

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultNamespace is used when a context has no namespace configured.
const DefaultNamespace = "default"

type Config struct {
	CurrentContext string
	Contexts       []Context
}

type Context struct {
	Name string
	// Namespace is nil when the context does not set one.
	Namespace *string
}

// NamespaceOrDefault returns the configured namespace, or DefaultNamespace.
func (c Context) NamespaceOrDefault() string {
	if c.Namespace == nil {
		return DefaultNamespace
	}
	return *c.Namespace
}

// Lookup returns the first context called name.
func (c *Config) Lookup(name string) (Context, bool) {
	for _, ctx := range c.Contexts {
		if ctx.Name == name {
			return ctx, true
		}
	}
	return Context{}, false
}

// Names lists context names in file order.
func (c *Config) Names() []string {
	names := make([]string, 0, len(c.Contexts))
	for _, ctx := range c.Contexts {
		names = append(names, ctx.Name)
	}
	return names
}

// rawConfig mirrors the kubeconfig document loosely so that type mismatches
// surface as MalformedError rather than yaml decode failures.
type rawConfig struct {
	CurrentContext any `yaml:"current-context"`
	Contexts       any `yaml:"contexts"`
}

// Load reads and parses the kubeconfig at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &IoError{Path: path, Err: err}
	}
	return Parse(path, data)
}

// Parse decodes kubeconfig content. path is only used in error messages.
func Parse(path string, data []byte) (*Config, error) {
	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			return nil, &MalformedError{Path: path, Reason: "document is not a mapping"}
		}
		return nil, &ParseError{Path: path, Err: err}
	}

	current, ok := raw.CurrentContext.(string)
	if !ok {
		return nil, &MalformedError{Path: path, Reason: "current-context is missing or not a string"}
	}

	contexts, err := parseContexts(path, raw.Contexts)
	if err != nil {
		return nil, err
	}

	return &Config{
		CurrentContext: current,
		Contexts:       contexts,
	}, nil
}

func parseContexts(path string, value any) ([]Context, error) {
	if value == nil {
		return []Context{}, nil
	}

	entries, ok := value.([]any)
	if !ok {
		return nil, &MalformedError{Path: path, Reason: "contexts is not a list"}
	}

	contexts := make([]Context, 0, len(entries))
	for i, entry := range entries {
		if !isMapping(entry) {
			return nil, &MalformedError{Path: path, Reason: fmt.Sprintf("contexts[%d] is not a mapping", i)}
		}

		name, ok := field(entry, "name").(string)
		if !ok {
			return nil, &MalformedError{Path: path, Reason: fmt.Sprintf("contexts[%d] has no name", i)}
		}

		contexts = append(contexts, Context{
			Name:      name,
			Namespace: namespaceOf(field(entry, "context")),
		})
	}
	return contexts, nil
}

func namespaceOf(value any) *string {
	ns, ok := field(value, "namespace").(string)
	if !ok || ns == "" {
		return nil
	}
	return &ns
}

// yaml.v3 decodes a mapping into map[string]any only when every key is a
// string; any other key yields map[any]any.
func isMapping(value any) bool {
	switch value.(type) {
	case map[string]any, map[any]any:
		return true
	}
	return false
}

func field(value any, key string) any {
	switch m := value.(type) {
	case map[string]any:
		return m[key]
	case map[any]any:
		return m[key]
	}
	return nil
}
