// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package robot invokes the ROBOT ontology tool (https://robot.obolibrary.org)
// as a subprocess. It builds convert pipelines from structured requests,
// runs `java -jar robot.jar <args...>`, and wraps non-zero exits in a
// ToolError carrying the command, exit code, and bounded output previews.
//
// The package performs no ontology processing itself; it only
// orchestrates the external executable. Invocations are synchronous and
// block until the subprocess terminates; no timeout is imposed beyond
// whatever deadline the caller attaches to the context.
package robot

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

// JarResolver maps a ROBOT version to a local jar path, downloading on
// first use. An empty version selects the resolver's default.
// Implementations must guarantee the file exists at the returned path
// and must tolerate concurrent calls.
type JarResolver interface {
	Path(ctx context.Context, version string) (string, error)
}

// Tool invokes ROBOT through a runtime launcher. Concurrent calls are
// independent OS processes; the only shared state is the jar cache
// behind the resolver.
type Tool struct {
	jars    JarResolver
	java    string
	version string
	preview int
	exec    executor
	log     logrus.FieldLogger
}

// Option configures a Tool.
type Option func(*Tool)

// WithJava sets the runtime launcher binary (default "java").
func WithJava(bin string) Option {
	return func(t *Tool) { t.java = bin }
}

// WithVersion pins the ROBOT version passed to the resolver.
func WithVersion(version string) Option {
	return func(t *Tool) { t.version = version }
}

// WithPreviewLength bounds the stdout/stderr previews in ToolErrors.
func WithPreviewLength(n int) Option {
	return func(t *Tool) { t.preview = n }
}

// WithLogger sets the logger (default: logrus standard logger).
func WithLogger(log logrus.FieldLogger) Option {
	return func(t *Tool) { t.log = log }
}

// New creates a Tool that resolves its jar through jars.
func New(jars JarResolver, opts ...Option) *Tool {
	t := &Tool{
		jars:    jars,
		java:    "java",
		preview: DefaultPreviewLength,
		exec:    defaultExec,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// JarPath resolves the jar for the tool's configured version,
// downloading it if necessary.
func (t *Tool) JarPath(ctx context.Context) (string, error) {
	return t.jars.Path(ctx, t.version)
}

// Run executes ROBOT with the given argument tokens and returns its
// standard output. A non-zero exit is returned as a *ToolError; a
// launch failure (missing launcher, jar resolution error) is returned
// as an ordinary wrapped error. There is no retry: one invocation per
// call.
func (t *Tool) Run(ctx context.Context, args []string) (string, error) {
	jar, err := t.jars.Path(ctx, t.version)
	if err != nil {
		return "", fmt.Errorf("resolving robot jar: %w", err)
	}

	command := make([]string, 0, len(args)+3)
	command = append(command, t.java, "-jar", jar)
	command = append(command, args...)

	t.log.WithField("command", strings.Join(command, " ")).Debug("running robot")

	res, err := t.exec.RunCaptured(ctx, command[0], command[1:]...)
	if err != nil {
		return "", fmt.Errorf("running %s: %w", t.java, err)
	}
	if res.exitCode != 0 {
		return "", newToolError(command, res.exitCode, res.stdout, res.stderr, t.preview)
	}
	return res.stdout, nil
}

// Convert runs a ROBOT convert pipeline for req and returns ROBOT's
// standard output. See ConvertArgs for the argument construction.
func (t *Tool) Convert(ctx context.Context, req ConvertRequest) (string, error) {
	return t.Run(ctx, ConvertArgs(req))
}
