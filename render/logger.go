// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"log/slog"

	"github.com/gogpu/edgeaa"
)

// slogger returns the logger configured through edgeaa.SetLogger.
// All logging in render goes through this function.
func slogger() *slog.Logger { return edgeaa.Logger() }
