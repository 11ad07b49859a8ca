// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

// Package logger provides abstraction and implementation for logging
// operations. It defines the Logger interface with two implementations:
// CLILogger for human-readable command-line output and MCPLogger for
// structured JSON logging in MCP server environments. Both implementations
// are safe for concurrent use.
package logger
