// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package edgeaa

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestSetLogger(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("attach", "paths", 3)
	if !strings.Contains(buf.String(), "paths=3") {
		t.Errorf("log output = %q, want it to contain %q", buf.String(), "paths=3")
	}

	// Passing nil restores the silent default.
	SetLogger(nil)
	buf.Reset()
	Logger().Info("ignored")
	if buf.Len() != 0 {
		t.Errorf("log output after SetLogger(nil) = %q, want empty", buf.String())
	}
	if Logger() == nil {
		t.Error("Logger() = nil, want non-nil")
	}
}

func TestNopLoggerDisabled(t *testing.T) {
	l := newNopLogger()
	if l.Enabled(t.Context(), slog.LevelError) {
		t.Error("nop logger Enabled(LevelError) = true, want false")
	}
}
