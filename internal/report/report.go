// Package report writes YAML run reports with a stable field order so
// successive runs diff cleanly.
package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/flarebyte/ptah-forge/internal/gitinfo"
)

// Report describes one helper run.
type Report struct {
	Task       string
	Helper     string
	ExitCode   int
	TimedOut   bool
	StartedAt  time.Time
	DurationMs int64
	Git        gitinfo.Context
}

// FileName returns the report file name for a task.
func FileName(task string) string {
	return task + ".report.yaml"
}

// Marshal returns canonical YAML bytes for the report.
func Marshal(r Report) ([]byte, error) {
	top := &yaml.Node{Kind: yaml.MappingNode}
	appendStr(top, "task", r.Task)
	appendStr(top, "helper", r.Helper)
	appendInt(top, "exitCode", int64(r.ExitCode))
	appendBool(top, "timedOut", r.TimedOut)
	appendStr(top, "startedAt", r.StartedAt.UTC().Format(time.RFC3339))
	appendInt(top, "durationMs", r.DurationMs)

	git := &yaml.Node{Kind: yaml.MappingNode}
	appendStr(git, "branch", r.Git.Branch)
	appendStr(git, "commit", r.Git.Commit)
	appendBool(git, "dirty", r.Git.Dirty)
	top.Content = append(top.Content, scalar("git"), git)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(top); err != nil {
		_ = enc.Close()
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	out := bytes.TrimRight(buf.Bytes(), "\n")
	out = append(out, '\n')
	return out, nil
}

// Write stores the report under dir, creating parent directories.
func Write(dir string, r Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	b, err := Marshal(r)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(r.Task))
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func scalar(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func appendStr(n *yaml.Node, key, v string) {
	n.Content = append(n.Content, scalar(key), scalar(v))
}

func appendInt(n *yaml.Node, key string, v int64) {
	n.Content = append(n.Content, scalar(key), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(v, 10)})
}

func appendBool(n *yaml.Node, key string, v bool) {
	n.Content = append(n.Content, scalar(key), &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(v)})
}
