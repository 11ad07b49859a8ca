// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
)

// Logger defines the interface for logging operations used by both the CLI
// and the [MCP] server mode, allowing seamless switching between
// human-readable output and structured logging.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package with timestamps
// disabled, suitable for user-facing CLI output.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger writing to stdout.
func NewCLILogger() *CLILogger {
	return &CLILogger{logger: log.New(os.Stdout, "", 0)}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// MCPLogger implements Logger for [MCP] server mode. It suppresses output by
// default since MCP communication happens over stdio, but can be configured
// to write JSON-line logs to a separate destination.
//
// MCPLogger is safe for concurrent use by multiple goroutines.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type MCPLogger struct {
	mu     sync.Mutex
	writer io.Writer
	silent bool
}

// NewMCPLogger creates a new [MCP] logger. By default it is silent to avoid
// interfering with the MCP stdio protocol; set silent=false and provide a
// writer to enable structured logging to a file or stderr.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
func NewMCPLogger(writer io.Writer, silent bool) *MCPLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &MCPLogger{
		writer: writer,
		silent: silent,
	}
}

// Printf formats and logs a structured message in JSON format. Output is
// suppressed in silent mode.
func (m *MCPLogger) Printf(format string, v ...any) {
	m.emit(fmt.Sprintf(format, v...))
}

// Println logs a structured message in JSON format. Output is suppressed in
// silent mode.
func (m *MCPLogger) Println(v ...any) {
	m.emit(fmt.Sprint(v...))
}

func (m *MCPLogger) emit(msg string) {
	if m.silent {
		return
	}

	entry := map[string]any{
		"level":   "info",
		"message": msg,
	}
	data, _ := json.Marshal(entry)

	m.mu.Lock()
	fmt.Fprintln(m.writer, string(data))
	m.mu.Unlock()
}

// SetOutput sets the output destination for the MCP logger.
func (m *MCPLogger) SetOutput(w io.Writer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if w == nil {
		m.writer = io.Discard
	} else {
		m.writer = w
	}
}
