// Copyright (c) 2025 SignerKit Authors. All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createTools creates and returns all MCP tool definitions with their
// handlers. It organizes tools into two categories: those that don't require
// configuration and those that need access to the server configuration
// (default trust bundle, expiry warning threshold).
//
// The function defines the following tools:
//   - inspect_certificate: Reports details for every certificate in a bundle
//   - verify_cert_chain: Builds and validates a certification path
//   - batch_verify_cert_chain: Verifies multiple certificate bundles in batch
//   - check_cert_expiry: Checks expiry dates with configurable warnings
//
// Each tool includes parameter definitions, descriptions, and default values
// as required by the MCP specification.
func createTools() ([]ToolDefinition, []ToolDefinitionWithConfig) {
	// Tools that don't need config
	tools := []ToolDefinition{
		{
			Tool: mcp.NewTool("inspect_certificate",
				mcp.WithDescription("Inspect X509 certificates from a file or base64-encoded data, reporting subject, issuer, validity window, and key details"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Certificate file path or base64-encoded certificate data"),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'text' or 'json' (default: text)"),
					mcp.DefaultString("text"),
				),
			),
			Handler: handleInspectCertificate,
			Role:    "certInspector",
		},
	}

	// Tools that need config
	toolsWithConfig := []ToolDefinitionWithConfig{
		{
			Tool: mcp.NewTool("verify_cert_chain",
				mcp.WithDescription("Build and validate a certification path from a leaf certificate to a trusted root using only locally supplied certificates"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Certificate bundle file path or base64-encoded certificate data, leaf first"),
				),
				mcp.WithString("trust_bundle",
					mcp.Description("Trusted root certificates (PEM file or directory); defaults to the configured trust bundle"),
				),
				mcp.WithString("at",
					mcp.Description("Validity instant in RFC3339 format (default: now)"),
				),
				mcp.WithString("format",
					mcp.Description("Output format: 'pem', 'table', 'tree', or 'json' (default: pem)"),
					mcp.DefaultString("pem"),
				),
			),
			Handler: handleVerifyCertChain,
			Role:    "chainVerifier",
		},
		{
			Tool: mcp.NewTool("batch_verify_cert_chain",
				mcp.WithDescription("Verify certification paths for multiple certificate bundles in batch"),
				mcp.WithString("certificates",
					mcp.Required(),
					mcp.Description("Comma-separated list of certificate bundle file paths or base64-encoded certificate data"),
				),
				mcp.WithString("trust_bundle",
					mcp.Description("Trusted root certificates (PEM file or directory); defaults to the configured trust bundle"),
				),
				mcp.WithString("at",
					mcp.Description("Validity instant in RFC3339 format (default: now)"),
				),
			),
			Handler: handleBatchVerifyCertChain,
			Role:    "batchVerifier",
		},
		{
			Tool: mcp.NewTool("check_cert_expiry",
				mcp.WithDescription("Check certificate expiry dates and warn about upcoming expirations"),
				mcp.WithString("certificate",
					mcp.Required(),
					mcp.Description("Certificate file path or base64-encoded certificate data"),
				),
				mcp.WithNumber("warn_days",
					mcp.Description("Number of days before expiry to show warning (default: configured warnDays)"),
				),
			),
			Handler: handleCheckCertExpiry,
			Role:    "expiryChecker",
		},
	}

	return tools, toolsWithConfig
}
