// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
	"github.com/signerkit/cert-chain-verifier/src/version"
)

var appVersion = version.Version // default version

// GetVersion returns the current version of the MCP server. The version is
// initially the default from the version package but can be overridden when
// calling Run with a specific version string.
func GetVersion() string {
	return appVersion
}

// buildInstructions generates the server instructions sent to MCP clients
// during the initialize handshake, describing each available tool.
func buildInstructions(tools []ToolDefinition, toolsWithConfig []ToolDefinitionWithConfig) string {
	var sb strings.Builder
	sb.WriteString("Certificate chain verifier. Builds and validates certification paths ")
	sb.WriteString("from leaf certificates to trusted roots using only locally supplied ")
	sb.WriteString("certificates; no network access is performed.\n\nAvailable tools:\n")

	for _, tool := range tools {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", tool.Tool.Name, tool.Role, tool.Tool.Description)
	}
	for _, tool := range toolsWithConfig {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", tool.Tool.Name, tool.Role, tool.Tool.Description)
	}

	return sb.String()
}

// Run starts the MCP server with certificate chain verification tools.
//
// Run loads configuration from the MCP_VERIFIER_CONFIG_FILE environment
// variable (falling back to defaults), builds the server with all tool
// definitions, and serves the MCP protocol over stdio until the context is
// cancelled by SIGINT or SIGTERM.
//
// Parameters:
//   - version: Version string reported during the MCP initialize handshake
//
// Returns:
//   - error: Server startup or runtime error, or the wrapped context error
//     on signal-based shutdown
func Run(version string) error {
	// Set the version for GetVersion
	appVersion = version

	config, err := loadConfig(os.Getenv("MCP_VERIFIER_CONFIG_FILE"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tools, toolsWithConfig := createTools()

	s, err := NewServerBuilder().
		WithConfig(config).
		WithVersion(version).
		WithTools(tools...).
		WithToolsWithConfig(toolsWithConfig...).
		WithInstructions(buildInstructions(tools, toolsWithConfig)).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build server: %w", err)
	}

	// Cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	stdioServer := server.NewStdioServer(s)

	errChan := make(chan error, 1)
	go func() {
		errChan <- stdioServer.Listen(ctx, os.Stdin, os.Stdout)
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		// Graceful shutdown triggered by signal
		return fmt.Errorf("server shutdown: %w", ctx.Err())
	}
}
