/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

const (
	LevelTrace slog.Level = -8
)

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}

// levelFor maps a verbosity count to a log level
func levelFor(verbosity int) slog.Level {
	switch {
	case verbosity >= 2:
		return LevelTrace
	case verbosity >= 1:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// SetupLogging initializes the global logger based on verbosity, the
// optional log file and the optional Seq endpoint.
func (c *Config) SetupLogging() {
	c.LogLevel.Set(levelFor(c.Verbosity))

	opts := &slog.HandlerOptions{
		Level: c.LogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				if level, ok := a.Value.Any().(slog.Level); ok && level == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}

	c.CloseLogging()
	var closers []func()

	var writer io.Writer = os.Stderr
	var openErr error
	if c.LogFile != "" {
		_ = os.MkdirAll(filepath.Dir(c.LogFile), 0755)
		f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			openErr = err
		} else {
			writer = f
			closers = append(closers, func() { f.Close() })
		}
	}

	var handler slog.Handler = slog.NewTextHandler(writer, opts)

	if c.SeqURL != "" {
		_, seqHandler := slogseq.NewLogger(
			c.SeqURL,
			slogseq.WithBatchSize(1),
			slogseq.WithFlushInterval(500*time.Millisecond),
			slogseq.WithHandlerOptions(&slog.HandlerOptions{Level: c.LogLevel}),
		)
		// If Seq is not available, keep the text handler only
		if seqHandler != nil {
			handler = &multiHandler{handlers: []slog.Handler{handler, seqHandler}}
			// Flush Seq before the file goes away
			closers = append([]func(){func() { seqHandler.Close() }}, closers...)
		}
	}

	c.closeLog = func() {
		for _, fn := range closers {
			fn()
		}
	}
	c.Logger = slog.New(handler)
	slog.SetDefault(c.Logger)

	if openErr != nil {
		c.Logger.Warn("failed to open log file, logging to stderr", "path", c.LogFile, "error", openErr)
	}
}

// CloseLogging flushes and closes remote log handlers
func (c *Config) CloseLogging() {
	if c.closeLog != nil {
		c.closeLog()
		c.closeLog = nil
	}
}

// Enabled returns true if the given level is enabled
func (c *Config) Enabled(level slog.Level) bool {
	return c.LogLevel.Level() <= level
}
