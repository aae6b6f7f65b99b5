// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package robot

import (
	"context"
	"os"
)

// Available reports whether a conversion could actually run right now.
// It checks, in order: the launcher is on PATH, the launcher answers
// --help, the jar resolves to a regular file, and ROBOT itself answers
// --help. The first failing check short-circuits the rest and is logged
// at error level. Available is advisory: it never returns an error.
//
// Note that the jar check may trigger a first-time download through the
// resolver.
func (t *Tool) Available(ctx context.Context) bool {
	if _, err := t.exec.LookPath(t.java); err != nil {
		t.log.WithError(err).Errorf("%s is not on the PATH", t.java)
		return false
	}

	if err := t.exec.RunSilent(t.java, "--help"); err != nil {
		t.log.WithError(err).Errorf("%s --help failed; the runtime environment may be misconfigured", t.java)
		return false
	}

	jar, err := t.jars.Path(ctx, t.version)
	if err != nil {
		t.log.WithError(err).Error("robot jar could not be resolved")
		return false
	}
	info, err := os.Stat(jar)
	if err != nil || !info.Mode().IsRegular() {
		t.log.WithField("path", jar).Error("robot jar is not a regular file")
		return false
	}

	if _, err := t.Run(ctx, []string{"--help"}); err != nil {
		t.log.WithError(err).WithField("path", jar).Error("robot was resolved but could not be run with --help")
		return false
	}

	return true
}
