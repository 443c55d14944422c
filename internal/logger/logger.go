package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/gzhole/kubeguard/internal/redact"
)

// defaultMaxLogBytes is the size at which the audit log is rotated to
// <path>.1 before the next write.
const defaultMaxLogBytes = 10 * 1024 * 1024

type AuditEvent struct {
	Timestamp      string   `json:"timestamp"`
	Context        string   `json:"context,omitempty"`
	Namespace      string   `json:"namespace,omitempty"`
	Command        string   `json:"command,omitempty"`
	Args           []string `json:"args"`
	Kubeconfig     string   `json:"kubeconfig,omitempty"`
	Decision       string   `json:"decision"`
	TriggeredRules []string `json:"triggered_rules,omitempty"`
	UserAction     string   `json:"user_action,omitempty"`
	ExitCode       *int     `json:"exit_code,omitempty"`
	Error          string   `json:"error,omitempty"`
}

type AuditLogger struct {
	path     string
	file     *os.File
	maxBytes int64
	mu       sync.Mutex
}

// New opens the audit log at path for appending, creating its directory
// when needed.
func New(path string) (*AuditLogger, error) {
	if err := ensureDir(filepath.Dir(path)); err != nil {
		return nil, err
	}

	l := &AuditLogger{path: path, maxBytes: defaultMaxLogBytes}
	if err := l.rotateIfNeeded(); err != nil {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	l.file = file

	return l, nil
}

func (l *AuditLogger) Log(event AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Redact sensitive data before logging
	event.Args = redact.RedactArgs(event.Args)
	if event.Error != "" {
		event.Error = redact.Redact(event.Error)
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

func (l *AuditLogger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

func (l *AuditLogger) rotateIfNeeded() error {
	info, err := os.Stat(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < l.maxBytes {
		return nil
	}
	return os.Rename(l.path, l.path+".1")
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
