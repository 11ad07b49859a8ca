// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ToolHandler is the signature for MCP tool handlers that do not require
// configuration access.
type ToolHandler = func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// ToolHandlerWithConfig is the signature for MCP tool handlers that need the
// server configuration, e.g. for the default trust bundle or the expiry
// warning threshold.
type ToolHandlerWithConfig func(ctx context.Context, request mcp.CallToolRequest, config *Config) (*mcp.CallToolResult, error)

// ToolDefinition pairs an MCP tool specification with its handler.
type ToolDefinition struct {
	Tool    mcp.Tool
	Handler ToolHandler
	// Role describes the tool's function for instruction generation.
	Role string
}

// ToolDefinitionWithConfig pairs an MCP tool specification with a
// configuration-aware handler.
type ToolDefinitionWithConfig struct {
	Tool    mcp.Tool
	Handler ToolHandlerWithConfig
	// Role describes the tool's function for instruction generation.
	Role string
}

// ServerDependencies holds all dependencies needed to create the MCP server.
type ServerDependencies struct {
	Config          *Config
	Version         string
	Tools           []ToolDefinition
	ToolsWithConfig []ToolDefinitionWithConfig
	Instructions    string
}

// ServerBuilder provides a fluent interface for constructing the MCP server
// with its dependencies. Tests use it to assemble servers with fake
// configurations.
type ServerBuilder struct{ deps ServerDependencies }

// NewServerBuilder creates a new ServerBuilder with empty dependencies.
func NewServerBuilder() *ServerBuilder { return &ServerBuilder{} }

// WithConfig sets the server configuration.
func (b *ServerBuilder) WithConfig(config *Config) *ServerBuilder {
	b.deps.Config = config
	return b
}

// WithVersion sets the server version string reported during the MCP
// initialize handshake.
func (b *ServerBuilder) WithVersion(version string) *ServerBuilder {
	b.deps.Version = version
	return b
}

// WithTools adds tool definitions to the server.
func (b *ServerBuilder) WithTools(tools ...ToolDefinition) *ServerBuilder {
	b.deps.Tools = append(b.deps.Tools, tools...)
	return b
}

// WithToolsWithConfig adds tool definitions that require configuration access.
func (b *ServerBuilder) WithToolsWithConfig(tools ...ToolDefinitionWithConfig) *ServerBuilder {
	b.deps.ToolsWithConfig = append(b.deps.ToolsWithConfig, tools...)
	return b
}

// WithInstructions sets the server instructions sent to MCP clients.
func (b *ServerBuilder) WithInstructions(instructions string) *ServerBuilder {
	b.deps.Instructions = instructions
	return b
}

// Build creates the MCP server with all configured dependencies. Handlers
// that need configuration are bound to the configured Config at build time.
func (b *ServerBuilder) Build() (*server.MCPServer, error) {
	if b.deps.Config == nil {
		return nil, fmt.Errorf("config is required")
	}

	s := server.NewMCPServer(
		"cert-chain-verifier",
		b.deps.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(b.deps.Instructions),
	)

	for _, tool := range b.deps.Tools {
		s.AddTool(tool.Tool, tool.Handler)
	}

	config := b.deps.Config
	for _, tool := range b.deps.ToolsWithConfig {
		handlerWithConfig := tool.Handler
		handler := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handlerWithConfig(ctx, request, config)
		}
		s.AddTool(tool.Tool, handler)
	}

	return s, nil
}
