package kubeconfig

import "fmt"

// IoError is returned when the kubeconfig file cannot be read.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("could not read kubeconfig %s: %v", e.Path, e.Err)
}

func (e *IoError) Unwrap() error { return e.Err }

// ParseError is returned when the kubeconfig file is not valid YAML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse kubeconfig %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MalformedError is returned when the kubeconfig parses but lacks a field
// kubeguard needs.
type MalformedError struct {
	Path   string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed kubeconfig %s: %s", e.Path, e.Reason)
}
